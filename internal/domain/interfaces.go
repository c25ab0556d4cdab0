package domain

import "time"

// Environment is the capability surface a page exposes to the tracker.
type Environment interface {
	// LessonContext returns the lesson of the loaded page, ok=false on non-lesson pages
	LessonContext() (LessonID, bool)

	// ScrollMetrics returns the current scroll geometry
	ScrollMetrics() ScrollMetrics

	// SubscribeScroll registers fn for every scroll signal.
	// The returned func removes the subscription.
	SubscribeScroll(fn func()) (unsubscribe func())

	// NavigateTo requests navigation to path (e.g. "/")
	NavigateTo(path string)
}

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}

// Task is a scheduled, cancellable unit of work.
type Task interface {
	// Cancel prevents the task from running. Returns false if it already ran
	// or was already cancelled.
	Cancel() bool
}
