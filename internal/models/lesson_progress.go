package models

import "time"

// LessonProgress represents a user's progress record for a lesson
type LessonProgress struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	LessonID  string    `json:"lessonId"`
	CourseID  string    `json:"courseId"`
	Completed bool      `json:"completed"`
	WatchedAt time.Time `json:"watchedAt"`
}

// LessonProgressItem is a progress record joined with lesson and course titles
type LessonProgressItem struct {
	LessonID    string    `json:"lessonId"`
	LessonTitle string    `json:"lessonTitle"`
	CourseID    string    `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	Completed   bool      `json:"completed"`
	WatchedAt   time.Time `json:"watchedAt"`
}

// CourseProgressResponse summarises a user's actual completion of a course
type CourseProgressResponse struct {
	CourseID         string  `json:"courseId"`
	CompletedLessons int     `json:"completedLessons"`
	TotalLessons     int     `json:"totalLessons"`
	Percent          int     `json:"percent"`
	NextLessonID     *string `json:"nextLessonId,omitempty"`
}

// UpdateProgressRequest represents a request to record lesson progress
type UpdateProgressRequest struct {
	LessonID  string `json:"lessonId" validate:"required"`
	Completed *bool  `json:"completed,omitempty"`
}
