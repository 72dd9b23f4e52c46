package models

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrSectionNotFound    = errors.New("curriculum section not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrNotEnrolled        = errors.New("you must be enrolled in this course to track progress")
	ErrCourseInactive     = errors.New("course is not active")
	ErrDuplicateCode      = errors.New("course code already exists")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrBlogPostNotFound   = errors.New("blog post not found")
	ErrForbidden          = errors.New("forbidden")
)
