package curriculum

import (
	"errors"

	"github.com/coursehub/backend/internal/models"
)

var (
	// ErrCourseNotFound is returned when BuildCourseDetail receives no course.
	ErrCourseNotFound = models.ErrCourseNotFound
	// ErrLessonNotFound is returned when BuildLessonContext receives no lesson.
	ErrLessonNotFound = models.ErrLessonNotFound
	// ErrInvariantViolation means the caller supplied inconsistent snapshots,
	// e.g. a lesson missing from its own course's sibling list.
	ErrInvariantViolation = errors.New("curriculum invariant violation")
)
