// Package curriculum turns flat course, section, lesson and resource rows into
// the nested views served to students.
//
// Every function in this package is pure: inputs are never mutated and no I/O
// is performed, so the builders can be called concurrently without locking.
package curriculum

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/coursehub/backend/internal/models"
)

const (
	// ImplicitSectionID identifies the synthetic section holding unsectioned lessons
	ImplicitSectionID = "course-content"
	// ImplicitSectionTitle is the title of the synthetic section
	ImplicitSectionTitle = "Course Content"
)

// BuildCourseDetail assembles the curriculum tree of a course.
//
// Sections are ordered by their order field and lessons inside each section by
// their own order. Lessons without a section, or pointing at a section that is
// not in "sections", are collected into a trailing "Course Content" section.
func BuildCourseDetail(course *models.Course, lessons []models.Lesson, sections []models.CurriculumSection) (*models.CourseDetailResponse, error) {
	if course == nil {
		return nil, ErrCourseNotFound
	}

	ordered := slices.Clone(sections)
	slices.SortStableFunc(ordered, func(a, b models.CurriculumSection) int {
		return cmp.Compare(a.Order, b.Order)
	})

	grouped := make(map[string][]models.Lesson, len(ordered))
	for _, section := range ordered {
		grouped[section.ID] = nil
	}

	var unsectioned []models.Lesson
	for _, lesson := range lessons {
		if lesson.CurriculumSectionID != nil {
			if group, ok := grouped[*lesson.CurriculumSectionID]; ok {
				grouped[*lesson.CurriculumSectionID] = append(group, lesson)
				continue
			}
		}
		unsectioned = append(unsectioned, lesson)
	}

	curriculum := make([]models.CurriculumSectionDetail, 0, len(ordered)+1)
	for _, section := range ordered {
		curriculum = append(curriculum, models.CurriculumSectionDetail{
			ID:      section.ID,
			Title:   section.Title,
			Lessons: lessonDetails(grouped[section.ID]),
		})
	}
	if len(unsectioned) > 0 {
		curriculum = append(curriculum, models.CurriculumSectionDetail{
			ID:      ImplicitSectionID,
			Title:   ImplicitSectionTitle,
			Lessons: lessonDetails(unsectioned),
		})
	}

	return &models.CourseDetailResponse{
		ID:            course.ID,
		Title:         course.Title,
		Instructor:    course.Instructor,
		Rating:        course.Rating,
		Students:      course.Students,
		Duration:      FormatDuration(course.Duration),
		Lessons:       course.LessonsCount,
		Level:         FormatLevel(course.Level),
		Description:   course.Description,
		Price:         course.Price,
		OriginalPrice: course.OriginalPrice,
		Image:         course.Image,
		VideoURL:      course.VideoURL,
		Curriculum:    curriculum,
		Requirements:  nonNil(course.Requirements),
		Outcomes:      nonNil(course.Outcomes),
	}, nil
}

// BuildLessonContext builds the single-lesson view with navigation metadata.
//
// "siblings" must hold every lesson of the lesson's course sorted by order
// ascending; it is never re-sorted here. A list that is not strictly ascending,
// or that does not contain the lesson, is reported as ErrInvariantViolation.
func BuildLessonContext(lesson *models.LessonWithContext, siblings []models.LessonSibling, resources []models.LessonResource) (*models.LessonDataResponse, error) {
	if lesson == nil {
		return nil, ErrLessonNotFound
	}
	if err := checkSiblingOrder(siblings); err != nil {
		return nil, err
	}

	index := slices.IndexFunc(siblings, func(s models.LessonSibling) bool {
		return s.ID == lesson.ID
	})
	if index < 0 {
		return nil, fmt.Errorf("%w: lesson %s is not among the %d lessons of course %s",
			ErrInvariantViolation, lesson.ID, len(siblings), lesson.CourseID)
	}

	total := len(siblings)
	var prevID, nextID *string
	if index > 0 {
		id := siblings[index-1].ID
		prevID = &id
	}
	if index < total-1 {
		id := siblings[index+1].ID
		nextID = &id
	}

	return &models.LessonDataResponse{
		CourseID:        lesson.CourseID,
		CourseTitle:     lesson.CourseTitle,
		SectionTitle:    lesson.SectionTitle,
		LessonID:        lesson.ID,
		Title:           lesson.Title,
		Description:     lesson.Description,
		Duration:        FormatDuration(lesson.Duration),
		VideoURL:        lesson.VideoURL,
		Index:           index,
		TotalLessons:    total,
		PrevLessonID:    prevID,
		NextLessonID:    nextID,
		Resources:       resourceResponses(resources),
		Notes:           nonNil(lesson.Notes),
		ProgressPercent: PositionPercent(index, total),
	}, nil
}

// PositionPercent is round((index+1)/total*100), or 0 for an empty course.
// It reflects the lesson's position in the course, not recorded completion.
func PositionPercent(index, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(index+1) / float64(total) * 100))
}

func checkSiblingOrder(siblings []models.LessonSibling) error {
	for i := 1; i < len(siblings); i++ {
		if siblings[i].Order <= siblings[i-1].Order {
			return fmt.Errorf("%w: sibling lessons are not strictly ordered at position %d (order %d after %d)",
				ErrInvariantViolation, i, siblings[i].Order, siblings[i-1].Order)
		}
	}
	return nil
}

func lessonDetails(lessons []models.Lesson) []models.LessonDetail {
	sorted := slices.Clone(lessons)
	slices.SortStableFunc(sorted, func(a, b models.Lesson) int {
		return cmp.Compare(a.Order, b.Order)
	})

	details := make([]models.LessonDetail, 0, len(sorted))
	for _, lesson := range sorted {
		details = append(details, models.LessonDetail{
			ID:       lesson.ID,
			Title:    lesson.Title,
			Duration: FormatDuration(lesson.Duration),
			Type:     models.ParseLessonType(string(lesson.Type)),
		})
	}
	return details
}

func resourceResponses(resources []models.LessonResource) []models.ResourceResponse {
	sorted := slices.Clone(resources)
	slices.SortStableFunc(sorted, func(a, b models.LessonResource) int {
		return cmp.Compare(a.Order, b.Order)
	})

	out := make([]models.ResourceResponse, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, models.ResourceResponse{
			ID:    r.ID,
			Title: r.Title,
			Type:  r.Type,
			Size:  r.SizeText,
			URL:   r.URL,
		})
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
