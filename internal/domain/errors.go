package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrEmptyCurriculum indicates a curriculum was built with no lessons
	ErrEmptyCurriculum = errors.New("curriculum has no lessons")

	// ErrDuplicateLesson indicates a lesson identifier appears twice in a curriculum
	ErrDuplicateLesson = errors.New("duplicate lesson identifier")

	// ErrInvalidLesson indicates a malformed lesson identifier
	ErrInvalidLesson = errors.New("invalid lesson identifier")

	// ErrStorageUnavailable indicates the persistent store cannot be read or written
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrPageNotFound indicates no page is registered for a path
	ErrPageNotFound = errors.New("page not found")
)
