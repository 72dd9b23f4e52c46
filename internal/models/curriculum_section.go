package models

// CurriculumSection represents a named, ordered group of lessons in a course
type CurriculumSection struct {
	ID       string `json:"id"`
	CourseID string `json:"courseId"`
	Title    string `json:"title"`
	Order    int    `json:"order"`
}

// CreateSectionRequest represents a request to create a curriculum section
type CreateSectionRequest struct {
	CourseID string `json:"courseId" validate:"required"`
	Title    string `json:"title" validate:"required,max=255"`
	Order    int    `json:"order" validate:"gt=0"`
}
