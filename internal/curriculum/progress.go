package curriculum

import (
	"math"

	"github.com/coursehub/backend/internal/models"
)

// BuildCourseProgress summarises recorded completion for one course.
//
// Completed ids that are not course siblings are ignored. NextLessonID is the
// first sibling, in order, that has not been completed yet.
func BuildCourseProgress(courseID string, siblings []models.LessonSibling, completedLessonIDs []string) *models.CourseProgressResponse {
	done := make(map[string]struct{}, len(completedLessonIDs))
	for _, id := range completedLessonIDs {
		done[id] = struct{}{}
	}

	completed := 0
	var nextID *string
	for _, sibling := range siblings {
		if _, ok := done[sibling.ID]; ok {
			completed++
			continue
		}
		if nextID == nil {
			id := sibling.ID
			nextID = &id
		}
	}

	total := len(siblings)
	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return &models.CourseProgressResponse{
		CourseID:         courseID,
		CompletedLessons: completed,
		TotalLessons:     total,
		Percent:          percent,
		NextLessonID:     nextID,
	}
}
