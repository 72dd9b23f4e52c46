package main

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/coursehub/backend/internal/tasks"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

const welcomeSubjectTemplate = "Welcome to {{course}}"

const welcomeBodyTemplate = `<p>Hi,</p>
<p>You are now enrolled in <strong>{{course}}</strong>. Your first lesson is waiting for you.</p>
<p>Happy learning!</p>`

// CourseRepository defines the course operations used by background tasks
type CourseRepository interface {
	// SyncLessonsCount rewrites courses.lessons_count from the lessons table
	//
	// "courseID" parameter is the course to reconcile, or empty for every course.
	//
	// Returns the number of courses whose count changed.
	SyncLessonsCount(ctx context.Context, courseID string) (int64, error)
	// GetIDs retrieves the IDs of every course
	GetIDs(ctx context.Context) ([]string, error)
}

// CacheInvalidator drops cached course details
type CacheInvalidator interface {
	Invalidate(ctx context.Context, courseID string)
}

// EmailSender delivers a single HTML email
type EmailSender interface {
	Send(to, subject, body string) error
}

// Worker handles task processing
type Worker struct {
	logger     *zap.Logger
	courseRepo CourseRepository
	cache      CacheInvalidator
	sender     EmailSender
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, courseRepo CourseRepository, cache CacheInvalidator, sender EmailSender) *Worker {
	return &Worker{
		logger:     logger,
		courseRepo: courseRepo,
		cache:      cache,
		sender:     sender,
	}
}

// HandleEnrollmentWelcome sends the welcome email of a new enrollment
func (w *Worker) HandleEnrollmentWelcome(ctx context.Context, t *asynq.Task) error {
	p, err := tasks.ParseEnrollmentWelcome(t)
	if err != nil {
		return err
	}
	if p.Email == "" {
		return fmt.Errorf("welcome email has no recipient: %w", asynq.SkipRetry)
	}

	title := html.EscapeString(p.CourseTitle)
	subject := strings.ReplaceAll(welcomeSubjectTemplate, "{{course}}", p.CourseTitle)
	body := strings.ReplaceAll(welcomeBodyTemplate, "{{course}}", title)

	if err := w.sender.Send(p.Email, subject, body); err != nil {
		return err
	}

	w.logger.Info("Welcome email sent", zap.String("course_id", p.CourseID))
	return nil
}

// HandleLessonsCountSync reconciles courses.lessons_count for one course, or every course when the payload has no ID.
// Cached details are dropped only when a count actually changed.
func (w *Worker) HandleLessonsCountSync(ctx context.Context, t *asynq.Task) error {
	p, err := tasks.ParseLessonsCountSync(t)
	if err != nil {
		return err
	}

	changed, err := w.courseRepo.SyncLessonsCount(ctx, p.CourseID)
	if err != nil {
		return err
	}

	if changed > 0 {
		courseIDs := []string{p.CourseID}
		if p.CourseID == "" {
			// The bulk update does not report which rows changed
			if courseIDs, err = w.courseRepo.GetIDs(ctx); err != nil {
				return err
			}
		}
		for _, id := range courseIDs {
			w.cache.Invalidate(ctx, id)
		}
	}

	w.logger.Info("Lessons count synced",
		zap.String("course_id", p.CourseID),
		zap.Int64("changed", changed),
	)
	return nil
}

// smtpSender sends emails using gopkg.in/mail.v2
type smtpSender struct {
	dialer *mail.Dialer
	from   string
}

func newSMTPSender(host string, port int, username, password, from string) *smtpSender {
	return &smtpSender{
		dialer: mail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send sends an HTML email
func (s *smtpSender) Send(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
