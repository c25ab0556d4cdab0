package domain

// Completion records are stored as RecordKey(id) -> DoneMarker.
// The prefix is the only namespace; other keys in the same store are ignored.
const (
	RecordPrefix = "lesson:"
	DoneMarker   = "done"
)

// RecordKey returns the storage key of a lesson's completion record
func RecordKey(id LessonID) string {
	return RecordPrefix + string(id)
}

// KeyValueStore is the shared local persistent store.
// Get returns ok=false with a nil error for a missing key.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
