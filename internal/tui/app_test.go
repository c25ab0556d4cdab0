package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/dojo/internal/content"
	"github.com/mmcdole/dojo/internal/domain"
	"github.com/mmcdole/dojo/internal/service"
	"github.com/mmcdole/dojo/internal/store"
)

type countingStore struct {
	*store.LocalStore
	writes int
}

func (s *countingStore) Set(key, value string) error {
	s.writes++
	return s.LocalStore.Set(key, value)
}

type manualTask struct {
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() bool {
	was := t.cancelled
	t.cancelled = true
	return !was
}

type manualScheduler struct {
	tasks []*manualTask
}

func (s *manualScheduler) Schedule(_ time.Duration, fn func()) domain.Task {
	task := &manualTask{fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

type harness struct {
	model Model
	store *countingStore
	sched *manualScheduler
}

func newHarness(t *testing.T, start string) *harness {
	t.Helper()

	lib, err := content.Builtin()
	require.NoError(t, err)
	local, err := store.NewLocalStore("")
	require.NoError(t, err)

	h := &harness{store: &countingStore{LocalStore: local}, sched: &manualScheduler{}}
	h.model = NewModel(Options{
		Library:      lib,
		Progress:     service.NewProgressService(h.store, domain.DefaultCurriculum, nil),
		Store:        h.store,
		Scheduler:    h.sched,
		StartPage:    start,
		ShowProgress: true,
	})
	h.send(tea.WindowSizeMsg{Width: 80, Height: 20})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func TestStartsOnHomeWithoutTracking(t *testing.T) {
	h := newHarness(t, "")

	assert.Equal(t, StateHome, h.model.State)
	assert.Equal(t, "/", h.model.CurrentPath())
	assert.Zero(t, h.model.page.env.subscribers())

	h.press("G", "j", "k")
	assert.Zero(t, h.store.writes)
}

func TestScrollingLessonToBottomRecordsCompletion(t *testing.T) {
	h := newHarness(t, "/nmap")
	require.Equal(t, StateReading, h.model.State)
	assert.Equal(t, 1, h.model.page.env.subscribers())

	h.press("j")
	assert.Zero(t, h.store.writes)

	h.press("G", "G", "k", "G")
	assert.Equal(t, 1, h.store.writes)

	v, ok, err := h.store.Get("lesson:reconnaissance")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.DoneMarker, v)
	assert.True(t, h.model.page.tracker.Completed())
	assert.Empty(t, h.sched.tasks)
}

func TestLastLessonRedirectsHome(t *testing.T) {
	h := newHarness(t, "")
	for _, id := range domain.DefaultCurriculum.IDs() {
		if id != "password_cracking" {
			require.NoError(t, h.store.Set(domain.RecordKey(id), domain.DoneMarker))
		}
	}

	h.send(NavigateMsg{Path: "/password_cracking"})
	require.Equal(t, StateReading, h.model.State)
	h.press("G")

	require.Len(t, h.sched.tasks, 1)
	assert.Contains(t, h.model.View(), "returning home")

	h.sched.tasks[0].fn()
	msg := waitForNavigation(h.model.nav)()
	require.IsType(t, NavigateMsg{}, msg)
	assert.Equal(t, "/", msg.(NavigateMsg).Path)

	h.send(msg)
	assert.Equal(t, StateHome, h.model.State)
	assert.True(t, h.model.Summary.AllDone())
	assert.Equal(t, "All training complete", h.model.Flash)
}

func TestLeavingPageCancelsRedirect(t *testing.T) {
	h := newHarness(t, "")
	for _, id := range domain.DefaultCurriculum.IDs() {
		if id != "enumeration" {
			require.NoError(t, h.store.Set(domain.RecordKey(id), domain.DoneMarker))
		}
	}

	h.send(NavigateMsg{Path: "/netcat"})
	h.press("G")
	require.Len(t, h.sched.tasks, 1)

	h.press("h")
	assert.Equal(t, StateHome, h.model.State)
	assert.True(t, h.sched.tasks[0].cancelled)
}

func TestRedirectFromLeftPageIsIgnored(t *testing.T) {
	h := newHarness(t, "")
	for _, id := range domain.DefaultCurriculum.IDs() {
		if id != "password_cracking" {
			require.NoError(t, h.store.Set(domain.RecordKey(id), domain.DoneMarker))
		}
	}

	h.send(NavigateMsg{Path: "/password_cracking"})
	h.press("G")
	require.Len(t, h.sched.tasks, 1)

	// The timer fires just before the user leaves, so its request is already queued
	h.sched.tasks[0].fn()
	h.press("h")
	h.send(NavigateMsg{Path: "/nmap"})
	require.Equal(t, "/nmap", h.model.CurrentPath())

	stale := waitForNavigation(h.model.nav)()
	h.send(stale)

	assert.Equal(t, StateReading, h.model.State)
	assert.Equal(t, "/nmap", h.model.CurrentPath())
}

func TestUnknownPathFallsBackHome(t *testing.T) {
	h := newHarness(t, "")

	h.send(NavigateMsg{Path: "/does-not-exist"})

	assert.Equal(t, StateHome, h.model.State)
	assert.Contains(t, h.model.Flash, "/does-not-exist")
}

func TestHomeFilterAndOpen(t *testing.T) {
	h := newHarness(t, "")

	h.press("/", "h", "y", "d", "r", "a", "enter")
	entries := h.model.visible()
	require.Len(t, entries, 1)
	assert.Equal(t, "/hydra", entries[0].page.Path)

	h.press("enter")
	assert.Equal(t, StateReading, h.model.State)
	assert.Equal(t, "/hydra", h.model.CurrentPath())

	h.press("esc")
	assert.Equal(t, StateHome, h.model.State)
}

func TestHomeShowsProgress(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.store.Set("lesson:reconnaissance", domain.DoneMarker))

	h.send(NavigateMsg{Path: "/"})

	assert.Equal(t, 1, h.model.Summary.Completed)
	assert.Contains(t, h.model.View(), "1/5 lessons complete")
}

func TestQuitStopsTracker(t *testing.T) {
	h := newHarness(t, "/nmap")

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Zero(t, h.model.page.env.subscribers())
}
