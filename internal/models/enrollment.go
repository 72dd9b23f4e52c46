package models

import "time"

// Enrollment represents a user's enrollment in a course
type Enrollment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CourseID   string    `json:"courseId"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// EnrollmentListItem is an enrollment joined with its course summary
type EnrollmentListItem struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	CourseImage string    `json:"courseImage"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}

// EnrollRequest represents a request to enroll in a course
type EnrollRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}
