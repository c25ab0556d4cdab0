package tui

import (
	"github.com/mmcdole/dojo/internal/content"
	"github.com/mmcdole/dojo/internal/domain"
)

// pageEnv adapts one loaded page to domain.Environment.
// Scroll listeners run on the Bubble Tea update goroutine; NavigateTo may be
// called from a timer goroutine and only touches the navigation channel.
type pageEnv struct {
	page      content.Page
	metrics   func() domain.ScrollMetrics
	listeners map[int]func()
	nextID    int
	load      int
	nav       chan<- navRequest
}

func newPageEnv(page content.Page, load int, metrics func() domain.ScrollMetrics, nav chan<- navRequest) *pageEnv {
	return &pageEnv{
		page:      page,
		metrics:   metrics,
		listeners: make(map[int]func()),
		load:      load,
		nav:       nav,
	}
}

func (e *pageEnv) LessonContext() (domain.LessonID, bool) {
	return e.page.LessonContext()
}

func (e *pageEnv) ScrollMetrics() domain.ScrollMetrics {
	if e.metrics == nil {
		return domain.ScrollMetrics{}
	}
	return e.metrics()
}

func (e *pageEnv) SubscribeScroll(fn func()) func() {
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

// NavigateTo queues a navigation request tagged with this page load
// (non-blocking if one is already queued)
func (e *pageEnv) NavigateTo(path string) {
	select {
	case e.nav <- navRequest{load: e.load, path: path}:
	default:
	}
}

// emitScroll delivers one scroll signal to every listener
func (e *pageEnv) emitScroll() {
	for _, fn := range e.listeners {
		fn()
	}
}

func (e *pageEnv) subscribers() int {
	return len(e.listeners)
}
