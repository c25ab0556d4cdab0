package service

import (
	"log/slog"
	"strings"

	"github.com/mmcdole/dojo/internal/domain"
	"github.com/mmcdole/dojo/internal/tracker"
)

// keyLister is implemented by stores that can enumerate keys (consumer-defined interface)
type keyLister interface {
	Keys(prefix string) ([]string, error)
}

// ProgressService reports curriculum progress for the home page and CLI
type ProgressService struct {
	store      domain.KeyValueStore
	curriculum domain.Curriculum
	logger     *slog.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	store domain.KeyValueStore,
	curriculum domain.Curriculum,
	logger *slog.Logger,
) *ProgressService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressService{
		store:      store,
		curriculum: curriculum,
		logger:     logger,
	}
}

// Curriculum returns the curriculum being tracked
func (s *ProgressService) Curriculum() domain.Curriculum {
	return s.curriculum
}

// Summary is a point-in-time view of curriculum progress
type Summary struct {
	Lessons   []domain.LessonStatus
	Completed int
	Total     int
}

// AllDone reports whether every lesson is complete
func (s Summary) AllDone() bool {
	return s.Total > 0 && s.Completed == s.Total
}

// StatusOf returns the status of one lesson
func (s Summary) StatusOf(id domain.LessonID) (domain.LessonStatus, bool) {
	for _, l := range s.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return domain.LessonStatus{}, false
}

// Summary reads the current status of every lesson
func (s *ProgressService) Summary() Summary {
	lessons := tracker.Snapshot(s.store, s.curriculum, s.logger)
	sum := Summary{Lessons: lessons, Total: len(lessons)}
	for _, l := range lessons {
		if l.IsDone() {
			sum.Completed++
		}
	}
	return sum
}

// StrayRecords lists completion records for lessons outside the curriculum,
// such as records left by an older lesson naming scheme.
// Stores that cannot enumerate keys report none.
func (s *ProgressService) StrayRecords() []domain.LessonID {
	lister, ok := s.store.(keyLister)
	if !ok {
		return nil
	}

	keys, err := lister.Keys(domain.RecordPrefix)
	if err != nil {
		s.logger.Warn("failed to list completion records", "error", err)
		return nil
	}

	var stray []domain.LessonID
	for _, k := range keys {
		id := domain.LessonID(strings.TrimPrefix(k, domain.RecordPrefix))
		if !s.curriculum.Contains(id) {
			stray = append(stray, id)
		}
	}
	return stray
}
