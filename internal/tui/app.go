package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/dojo/internal/content"
	"github.com/mmcdole/dojo/internal/domain"
	"github.com/mmcdole/dojo/internal/service"
	"github.com/mmcdole/dojo/internal/tracker"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateHome ApplicationState = iota
	StateReading
)

// Vertical layout: header line + footer line
const ChromeHeight = 2

// Options wires the model's collaborators
type Options struct {
	Library      *content.Library
	Progress     *service.ProgressService
	Store        domain.KeyValueStore
	Scheduler    domain.Scheduler
	StartPage    string
	ShowProgress bool
	Logger       *slog.Logger
}

// pageLoad is everything scoped to one loaded page
type pageLoad struct {
	id       int
	page     content.Page
	viewport viewport.Model
	env      *pageEnv
	tracker  *tracker.Tracker
}

func (p *pageLoad) metrics() domain.ScrollMetrics {
	return domain.ScrollMetrics{
		Offset:         float64(p.viewport.YOffset),
		ViewportHeight: float64(p.viewport.Height),
		DocumentHeight: float64(p.viewport.TotalLineCount()),
	}
}

// homeEntry is one visible row on the home page
type homeEntry struct {
	page           content.Page
	matchedIndexes []int
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State  ApplicationState
	Width  int
	Height int

	// Services
	Library   *content.Library
	Progress  *service.ProgressService
	store     domain.KeyValueStore
	scheduler domain.Scheduler
	logger    *slog.Logger

	ShowProgress bool

	// Current page load
	page  *pageLoad
	loads int
	nav   chan navRequest

	// Home page
	Summary   service.Summary
	Cursor    int
	Filtering bool
	Filter    textinput.Model
	Flash     string
}

// NewModel creates the model and loads the start page
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "filter lessons"

	m := Model{
		Library:      opts.Library,
		Progress:     opts.Progress,
		store:        opts.Store,
		scheduler:    opts.Scheduler,
		logger:       logger,
		ShowProgress: opts.ShowProgress,
		nav:          make(chan navRequest, 1),
		Filter:       input,
	}

	start := opts.StartPage
	if start == "" {
		start = content.HomePath
	}
	m.openPage(start)
	return m
}

// Init starts listening for navigation requests
func (m Model) Init() tea.Cmd {
	return waitForNavigation(m.nav)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.load != 0 && m.page != nil && msg.load != m.page.id {
			// Queued by a page that has since been left
			m.logger.Debug("dropping stale navigation", "path", msg.Path, "load", msg.load)
			return m, waitForNavigation(m.nav)
		}
		m.logger.Info("navigating", "path", msg.Path)
		m.openPage(msg.Path)
		if m.State == StateHome && m.Summary.AllDone() {
			m.Flash = "All training complete"
		}
		return m, waitForNavigation(m.nav)

	case tea.MouseMsg:
		if m.State == StateReading && isWheel(msg) {
			var cmd tea.Cmd
			m.page.viewport, cmd = m.page.viewport.Update(msg)
			m.page.env.emitScroll()
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.State == StateHome {
			return m.updateHome(msg)
		}
		return m.updateReading(msg)
	}

	return m, nil
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown
}

// openPage ends the current page load and starts a new one at path
func (m *Model) openPage(path string) {
	if m.page != nil {
		m.page.tracker.Stop()
	}

	page, err := m.Library.Page(path)
	if err != nil {
		m.logger.Warn("page not found", "path", path, "error", err)
		m.Flash = fmt.Sprintf("No page at %s", path)
		page, _ = m.Library.Page(content.HomePath)
	} else {
		m.Flash = ""
	}

	m.loads++
	load := &pageLoad{
		id:       m.loads,
		page:     page,
		viewport: viewport.New(m.Width, m.readerHeight()),
	}
	load.viewport.SetContent(renderPage(page, m.Width))
	load.env = newPageEnv(page, load.id, load.metrics, m.nav)
	load.tracker = tracker.New(
		load.env,
		m.store,
		m.scheduler,
		tracker.Config{Curriculum: m.Progress.Curriculum()},
		m.logger.With("path", page.Path),
	)
	load.tracker.Start()
	m.page = load

	if page.Path == content.HomePath {
		m.State = StateHome
		m.Summary = m.Progress.Summary()
		m.Cursor = min(m.Cursor, max(len(m.visible())-1, 0))
	} else {
		m.State = StateReading
	}
}

func (m *Model) resize(width, height int) {
	m.Width = width
	m.Height = height
	if m.page == nil {
		return
	}
	m.page.viewport.Width = width
	m.page.viewport.Height = m.readerHeight()
	m.page.viewport.SetContent(renderPage(m.page.page, width))
	m.Filter.Width = max(width-4, 0)
}

func (m Model) readerHeight() int {
	return max(m.Height-ChromeHeight, 0)
}

// quit ends the page load so no redirect fires after exit
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.page != nil {
		m.page.tracker.Stop()
	}
	return m, tea.Quit
}

func (m Model) updateReading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.page.viewport
	half := max(vp.Height/2, 1)

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()
	case key.Matches(msg, Keys.Back), key.Matches(msg, Keys.Escape):
		m.openPage(content.HomePath)
		return m, nil
	case key.Matches(msg, Keys.Up):
		vp.SetYOffset(vp.YOffset - 1)
	case key.Matches(msg, Keys.Down):
		vp.SetYOffset(vp.YOffset + 1)
	case key.Matches(msg, Keys.HalfUp):
		vp.SetYOffset(vp.YOffset - half)
	case key.Matches(msg, Keys.HalfDown):
		vp.SetYOffset(vp.YOffset + half)
	case key.Matches(msg, Keys.PageUp):
		vp.SetYOffset(vp.YOffset - max(vp.Height, 1))
	case key.Matches(msg, Keys.PageDown):
		vp.SetYOffset(vp.YOffset + max(vp.Height, 1))
	case key.Matches(msg, Keys.Top):
		vp.SetYOffset(0)
	case key.Matches(msg, Keys.Bottom):
		vp.SetYOffset(vp.TotalLineCount())
	default:
		return m, nil
	}

	// Every scroll input is a scroll signal, even when the offset is clamped
	m.page.env.emitScroll()
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Filtering {
		switch {
		case key.Matches(msg, Keys.Escape):
			m.Filtering = false
			m.Filter.Blur()
			m.Filter.SetValue("")
			m.Cursor = 0
			return m, nil
		case msg.Type == tea.KeyEnter:
			m.Filtering = false
			m.Filter.Blur()
			return m, nil
		case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
			// fall through to cursor movement
		default:
			var cmd tea.Cmd
			m.Filter, cmd = m.Filter.Update(msg)
			m.Cursor = 0
			return m, cmd
		}
	}

	entries := m.visible()
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()
	case key.Matches(msg, Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.Cursor < len(entries)-1 {
			m.Cursor++
		}
	case key.Matches(msg, Keys.Top):
		m.Cursor = 0
	case key.Matches(msg, Keys.Bottom):
		m.Cursor = max(len(entries)-1, 0)
	case key.Matches(msg, Keys.Filter):
		m.Filtering = true
		return m, m.Filter.Focus()
	case key.Matches(msg, Keys.Escape):
		m.Filter.SetValue("")
		m.Flash = ""
		m.Cursor = 0
	case key.Matches(msg, Keys.Enter):
		if m.Cursor < len(entries) {
			m.openPage(entries[m.Cursor].page.Path)
		}
	}
	return m, nil
}

// visible returns the home page rows after applying the filter
func (m Model) visible() []homeEntry {
	pages := m.Library.Pages()

	query := m.Filter.Value()
	if query == "" {
		entries := make([]homeEntry, len(pages))
		for i, p := range pages {
			entries[i] = homeEntry{page: p}
		}
		return entries
	}

	titles := make([]string, len(pages))
	for i, p := range pages {
		titles[i] = p.Title
	}
	matches := fuzzy.Find(query, titles)

	entries := make([]homeEntry, len(matches))
	for i, match := range matches {
		entries[i] = homeEntry{page: pages[match.Index], matchedIndexes: match.MatchedIndexes}
	}
	return entries
}

// CurrentPath returns the path of the loaded page
func (m Model) CurrentPath() string {
	if m.page == nil {
		return ""
	}
	return m.page.page.Path
}
