package models

// LessonResource represents a downloadable artifact attached to a lesson
type LessonResource struct {
	ID       string  `json:"id"`
	LessonID string  `json:"lessonId"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	SizeText *string `json:"sizeText,omitempty"`
	URL      string  `json:"url"`
	Order    int     `json:"order"`
}

// ResourceResponse represents a lesson resource in API responses
type ResourceResponse struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Type  string  `json:"type"`
	Size  *string `json:"size,omitempty"`
	URL   string  `json:"url"`
}

// CreateResourceRequest represents a request to attach a resource to a lesson
type CreateResourceRequest struct {
	LessonID string  `json:"lessonId" validate:"required"`
	Title    string  `json:"title" validate:"required,max=255"`
	Type     string  `json:"type" validate:"required,max=20"`
	SizeText *string `json:"sizeText,omitempty" validate:"omitempty,max=50"`
	URL      string  `json:"url" validate:"required,url"`
	Order    int     `json:"order" validate:"gt=0"`
}
