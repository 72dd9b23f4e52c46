package models

import "strings"

// LessonType represents the kind of content a lesson carries
type LessonType string

const (
	LessonTypeVideo      LessonType = "VIDEO"
	LessonTypeText       LessonType = "TEXT"
	LessonTypeQuiz       LessonType = "QUIZ"
	LessonTypeAssignment LessonType = "ASSIGNMENT"
)

// DefaultLessonType is used for rows with an empty or unknown type
const DefaultLessonType = LessonTypeVideo

// ParseLessonType maps a stored value to a LessonType.
// Matching is case-insensitive; anything unrecognised becomes DefaultLessonType.
func ParseLessonType(s string) LessonType {
	switch LessonType(strings.ToUpper(strings.TrimSpace(s))) {
	case LessonTypeVideo:
		return LessonTypeVideo
	case LessonTypeText:
		return LessonTypeText
	case LessonTypeQuiz:
		return LessonTypeQuiz
	case LessonTypeAssignment:
		return LessonTypeAssignment
	default:
		return DefaultLessonType
	}
}

// Lesson represents a lesson row
type Lesson struct {
	ID                  string     `json:"id"`
	CourseID            string     `json:"courseId"`
	CurriculumSectionID *string    `json:"curriculumSectionId,omitempty"`
	Title               string     `json:"title"`
	Description         *string    `json:"description,omitempty"`
	Content             string     `json:"content"`
	VideoURL            string     `json:"videoUrl"`
	Duration            int        `json:"duration"`
	Order               int        `json:"order"`
	Type                LessonType `json:"type"`
	Notes               []string   `json:"notes"`
}

// LessonWithContext is a lesson joined with its course and section titles
type LessonWithContext struct {
	Lesson
	CourseTitle  string
	SectionTitle *string
}

// LessonSibling is the minimal projection of a lesson used for navigation
type LessonSibling struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// LessonDataResponse is the single-lesson view with navigation context
type LessonDataResponse struct {
	CourseID        string             `json:"courseId"`
	CourseTitle     string             `json:"courseTitle"`
	SectionTitle    *string            `json:"sectionTitle,omitempty"`
	LessonID        string             `json:"lessonId"`
	Title           string             `json:"title"`
	Description     *string            `json:"description,omitempty"`
	Duration        string             `json:"duration"`
	VideoURL        string             `json:"videoUrl"`
	Index           int                `json:"index"`
	TotalLessons    int                `json:"totalLessons"`
	PrevLessonID    *string            `json:"prevLessonId,omitempty"`
	NextLessonID    *string            `json:"nextLessonId,omitempty"`
	Resources       []ResourceResponse `json:"resources"`
	Notes           []string           `json:"notes"`
	ProgressPercent int                `json:"progressPercent"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	CourseID            string     `json:"courseId" validate:"required"`
	CurriculumSectionID *string    `json:"curriculumSectionId,omitempty"`
	Title               string     `json:"title" validate:"required,max=255"`
	Description         *string    `json:"description,omitempty"`
	Content             string     `json:"content" validate:"required"`
	VideoURL            string     `json:"videoUrl" validate:"required,url"`
	Duration            int        `json:"duration" validate:"gte=0"`
	Order               int        `json:"order" validate:"gt=0"`
	Type                LessonType `json:"type,omitempty" validate:"omitempty,oneof=VIDEO TEXT QUIZ ASSIGNMENT"`
	Notes               []string   `json:"notes,omitempty"`
}
