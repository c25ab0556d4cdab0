// Package tracker marks a lesson complete when its page is scrolled to the
// bottom and decides whether the whole curriculum is finished.
package tracker

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/dojo/internal/domain"
)

// Defaults applied by New for zero-valued Config fields
const (
	DefaultTolerance     = 5
	DefaultRedirectDelay = 800 * time.Millisecond
	DefaultRedirectPath  = "/"
)

// Config holds the tracker's build-time settings
type Config struct {
	Curriculum    domain.Curriculum
	Tolerance     float64       // Slack absorbed at the bottom edge
	RedirectDelay time.Duration // Wait before navigating home once all lessons are done
	RedirectPath  string
}

// Tracker follows one page load. Create a new Tracker for every page.
type Tracker struct {
	env    domain.Environment
	store  domain.KeyValueStore
	sched  domain.Scheduler
	cfg    Config
	logger *slog.Logger

	lesson      domain.LessonID
	completed   atomic.Bool // session completion flag
	unsubscribe func()
	failures    int // consecutive failed writes

	mu       sync.Mutex
	redirect domain.Task
}

// New creates a tracker for the page exposed by env
func New(
	env domain.Environment,
	store domain.KeyValueStore,
	sched domain.Scheduler,
	cfg Config,
	logger *slog.Logger,
) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.RedirectDelay == 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	if cfg.RedirectPath == "" {
		cfg.RedirectPath = DefaultRedirectPath
	}
	return &Tracker{
		env:    env,
		store:  store,
		sched:  sched,
		cfg:    cfg,
		logger: logger.With("load_id", uuid.NewString()),
	}
}

// Start resolves the page's lesson and subscribes to scroll signals.
// It returns false, installing nothing, when the page has no lesson or the
// lesson is not part of the curriculum.
func (t *Tracker) Start() bool {
	id, ok := t.env.LessonContext()
	if !ok || !t.cfg.Curriculum.Contains(id) {
		t.logger.Debug("tracking disabled", "lesson", id, "has_lesson", ok)
		return false
	}

	t.lesson = id
	t.logger = t.logger.With("lesson", id)
	t.unsubscribe = t.env.SubscribeScroll(t.handleScroll)
	t.logger.Debug("tracking lesson")
	return true
}

// Stop removes the scroll subscription and cancels a pending redirect.
// Safe to call on a tracker that never started.
func (t *Tracker) Stop() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.redirect != nil {
		t.redirect.Cancel()
		t.redirect = nil
	}
}

// Lesson returns the tracked lesson, empty if tracking is disabled
func (t *Tracker) Lesson() domain.LessonID {
	return t.lesson
}

// Completed reports whether this page load recorded its lesson
func (t *Tracker) Completed() bool {
	return t.completed.Load()
}

// RedirectPending reports whether a redirect home has been scheduled
func (t *Tracker) RedirectPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.redirect != nil
}

// handleScroll runs on every scroll signal
func (t *Tracker) handleScroll() {
	if t.completed.Load() {
		return
	}
	if !ReachedBottom(t.env.ScrollMetrics(), t.cfg.Tolerance) {
		return
	}
	if !t.completed.CompareAndSwap(false, true) {
		return
	}

	if err := t.store.Set(domain.RecordKey(t.lesson), domain.DoneMarker); err != nil {
		// Let a later bottom event retry the write
		t.completed.Store(false)
		t.failures++
		if t.failures == 1 {
			t.logger.Warn("failed to record completion", "error", err)
		} else {
			t.logger.Debug("failed to record completion", "error", err, "attempt", t.failures)
		}
		return
	}
	if t.failures > 0 {
		t.logger.Info("recorded completion after failed writes", "failures", t.failures)
		t.failures = 0
	}
	t.logger.Info("lesson completed")

	statuses := Snapshot(t.store, t.cfg.Curriculum, t.logger)
	t.logger.Debug("curriculum progress", "progress", statuses)

	if !AllDone(statuses) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Info("curriculum complete, redirecting", "path", t.cfg.RedirectPath, "delay", t.cfg.RedirectDelay)
	path := t.cfg.RedirectPath
	t.redirect = t.sched.Schedule(t.cfg.RedirectDelay, func() {
		t.env.NavigateTo(path)
	})
}

// ReachedBottom reports whether the viewport touches the end of the document
// within tolerance. Non-positive heights are treated as not yet reachable.
func ReachedBottom(m domain.ScrollMetrics, tolerance float64) bool {
	if m.ViewportHeight <= 0 || m.DocumentHeight <= 0 {
		return false
	}
	return m.Offset+m.ViewportHeight >= m.DocumentHeight-tolerance
}

// Snapshot reads the completion status of every curriculum lesson.
// Read failures are logged and reported as not done.
func Snapshot(store domain.KeyValueStore, curriculum domain.Curriculum, logger *slog.Logger) []domain.LessonStatus {
	if logger == nil {
		logger = slog.Default()
	}

	ids := curriculum.IDs()
	statuses := make([]domain.LessonStatus, len(ids))
	for i, id := range ids {
		statuses[i] = domain.LessonStatus{ID: id}
		value, ok, err := store.Get(domain.RecordKey(id))
		if err != nil {
			logger.Warn("failed to read completion record", "lesson", id, "error", err)
			continue
		}
		if ok {
			statuses[i].Status = value
		}
	}
	return statuses
}

// AllDone reports whether every status carries the done marker
func AllDone(statuses []domain.LessonStatus) bool {
	if len(statuses) == 0 {
		return false
	}
	for _, s := range statuses {
		if !s.IsDone() {
			return false
		}
	}
	return true
}
