package domain

import "fmt"

// LessonID is the stable string key of a lesson (e.g. "reconnaissance")
type LessonID string

// Curriculum is the fixed, ordered set of lessons that together define
// "all training complete". Identifiers are unique and the set is non-empty.
type Curriculum struct {
	ids   []LessonID
	index map[LessonID]int
}

// DefaultCurriculum is the canonical build-time curriculum
var DefaultCurriculum = MustCurriculum(
	"reconnaissance",
	"enumeration",
	"exploitation",
	"credential_attacks",
	"password_cracking",
)

// NewCurriculum builds a curriculum, preserving order
func NewCurriculum(ids ...LessonID) (Curriculum, error) {
	if len(ids) == 0 {
		return Curriculum{}, ErrEmptyCurriculum
	}

	index := make(map[LessonID]int, len(ids))
	ordered := make([]LessonID, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			return Curriculum{}, fmt.Errorf("%w: empty identifier", ErrInvalidLesson)
		}
		if _, dup := index[id]; dup {
			return Curriculum{}, fmt.Errorf("%w: %q", ErrDuplicateLesson, id)
		}
		index[id] = len(ordered)
		ordered = append(ordered, id)
	}

	return Curriculum{ids: ordered, index: index}, nil
}

// MustCurriculum is NewCurriculum for build-time constants
func MustCurriculum(ids ...LessonID) Curriculum {
	c, err := NewCurriculum(ids...)
	if err != nil {
		panic(err)
	}
	return c
}

// Contains reports whether id is a member of the curriculum
func (c Curriculum) Contains(id LessonID) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns a copy of the lesson identifiers in curriculum order
func (c Curriculum) IDs() []LessonID {
	out := make([]LessonID, len(c.ids))
	copy(out, c.ids)
	return out
}

// Len returns the number of lessons
func (c Curriculum) Len() int {
	return len(c.ids)
}

// Position returns the 1-based position of id, or 0 if it is not a member
func (c Curriculum) Position(id LessonID) int {
	i, ok := c.index[id]
	if !ok {
		return 0
	}
	return i + 1
}

// LessonStatus pairs a lesson with its stored completion marker.
// Status is the raw stored value: DoneMarker, or empty when no record exists.
type LessonStatus struct {
	ID     LessonID `json:"id"`
	Status string   `json:"status"`
}

// IsDone reports whether the stored marker is the done sentinel
func (s LessonStatus) IsDone() bool {
	return s.Status == DoneMarker
}

// ScrollMetrics is one reading of the host page's scroll geometry
type ScrollMetrics struct {
	Offset         float64 // Distance scrolled from the top
	ViewportHeight float64 // Visible height
	DocumentHeight float64 // Total scrollable height
}
