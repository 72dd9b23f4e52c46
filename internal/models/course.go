package models

import "time"

// Level represents the difficulty level of a course
type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
)

// Course represents a course row
type Course struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Instructor    string    `json:"instructor"`
	Rating        float64   `json:"rating"`
	Students      int       `json:"students"`
	Category      string    `json:"category"`
	Level         Level     `json:"level"`
	Duration      int       `json:"duration"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Image         string    `json:"image"`
	VideoURL      string    `json:"videoUrl"`
	Requirements  []string  `json:"requirements"`
	Outcomes      []string  `json:"outcomes"`
	LessonsCount  int       `json:"lessonsCount"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CourseListItem represents a course in list responses, with formatted duration
type CourseListItem struct {
	ID            string   `json:"id"`
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Instructor    string   `json:"instructor"`
	Rating        float64  `json:"rating"`
	Students      int      `json:"students"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Duration      string   `json:"duration"`
	Lessons       int      `json:"lessons"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
}

// CourseListResponse is a page of courses together with pagination info
type CourseListResponse struct {
	Courses    []CourseListItem `json:"courses"`
	Page       int              `json:"page"`
	Count      int              `json:"count"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
}

// CourseDetailResponse is the nested curriculum view of a course
type CourseDetailResponse struct {
	ID            string                    `json:"id"`
	Title         string                    `json:"title"`
	Instructor    string                    `json:"instructor"`
	Rating        float64                   `json:"rating"`
	Students      int                       `json:"students"`
	Duration      string                    `json:"duration"`
	Lessons       int                       `json:"lessons"`
	Level         string                    `json:"level"`
	Description   string                    `json:"description"`
	Price         float64                   `json:"price"`
	OriginalPrice *float64                  `json:"originalPrice,omitempty"`
	Image         string                    `json:"image"`
	VideoURL      string                    `json:"videoUrl"`
	Curriculum    []CurriculumSectionDetail `json:"curriculum"`
	Requirements  []string                  `json:"requirements"`
	Outcomes      []string                  `json:"outcomes"`
}

// CurriculumSectionDetail is one section of the curriculum tree
type CurriculumSectionDetail struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Lessons []LessonDetail `json:"lessons"`
}

// LessonDetail is a lesson entry inside a curriculum section
type LessonDetail struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Duration string     `json:"duration"`
	Type     LessonType `json:"type"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Code          string   `json:"code" validate:"required,max=32"`
	Title         string   `json:"title" validate:"required,max=255"`
	Description   string   `json:"description" validate:"required"`
	Instructor    string   `json:"instructor" validate:"required,max=255"`
	Category      string   `json:"category" validate:"required,max=100"`
	Level         Level    `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Duration      int      `json:"duration" validate:"gte=0"`
	Price         float64  `json:"price" validate:"gte=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	Image         string   `json:"image" validate:"required,url"`
	VideoURL      string   `json:"videoUrl" validate:"required,url"`
	Requirements  []string `json:"requirements"`
	Outcomes      []string `json:"outcomes"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
type UpdateCourseRequest struct {
	Code          string   `json:"code,omitempty" validate:"omitempty,max=32"`
	Title         string   `json:"title,omitempty" validate:"omitempty,max=255"`
	Description   string   `json:"description,omitempty"`
	Instructor    string   `json:"instructor,omitempty" validate:"omitempty,max=255"`
	Category      string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Level         Level    `json:"level,omitempty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Duration      *int     `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	Image         string   `json:"image,omitempty" validate:"omitempty,url"`
	VideoURL      string   `json:"videoUrl,omitempty" validate:"omitempty,url"`
	Requirements  []string `json:"requirements,omitempty"`
	Outcomes      []string `json:"outcomes,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}
