// Package tasks defines the background jobs exchanged between the API and the worker
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeEnrollmentWelcome sends a welcome email after a user enrolls
	TypeEnrollmentWelcome = "enrollment:welcome"
	// TypeLessonsCountSync rewrites courses.lessons_count from the lessons table
	TypeLessonsCountSync = "course:lessons_count_sync"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// EnrollmentWelcomePayload is the payload of TypeEnrollmentWelcome
type EnrollmentWelcomePayload struct {
	Email       string `json:"email"`
	CourseID    string `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
}

// LessonsCountSyncPayload is the payload of TypeLessonsCountSync.
// An empty CourseID syncs every course.
type LessonsCountSyncPayload struct {
	CourseID string `json:"courseId,omitempty"`
}

// NewEnrollmentWelcomeTask builds a welcome email task
func NewEnrollmentWelcomeTask(p EnrollmentWelcomePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal welcome payload: %w", err)
	}
	return asynq.NewTask(TypeEnrollmentWelcome, payload, asynq.MaxRetry(5), asynq.Queue(QueueCritical)), nil
}

// NewLessonsCountSyncTask builds a lessons count reconciliation task
func NewLessonsCountSyncTask(courseID string) (*asynq.Task, error) {
	payload, err := json.Marshal(LessonsCountSyncPayload{CourseID: courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lessons count payload: %w", err)
	}
	return asynq.NewTask(TypeLessonsCountSync, payload, asynq.MaxRetry(3), asynq.Queue(QueueDefault), asynq.Timeout(5*time.Minute)), nil
}

// ParseEnrollmentWelcome decodes a TypeEnrollmentWelcome payload
func ParseEnrollmentWelcome(t *asynq.Task) (EnrollmentWelcomePayload, error) {
	var p EnrollmentWelcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal welcome payload: %w: %w", err, asynq.SkipRetry)
	}
	if p.Email == "" {
		return p, fmt.Errorf("welcome payload has no email: %w", asynq.SkipRetry)
	}
	return p, nil
}

// ParseLessonsCountSync decodes a TypeLessonsCountSync payload
func ParseLessonsCountSync(t *asynq.Task) (LessonsCountSyncPayload, error) {
	var p LessonsCountSyncPayload
	if len(t.Payload()) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal lessons count payload: %w: %w", err, asynq.SkipRetry)
	}
	return p, nil
}

// Client is the subset of *asynq.Client used to enqueue tasks
type Client interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer publishes background tasks. With a nil client every call is a no-op.
type Enqueuer struct {
	client Client
}

// NewEnqueuer creates a new task enqueuer
func NewEnqueuer(client Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// Enabled reports whether tasks are actually published
func (e *Enqueuer) Enabled() bool {
	return e != nil && e.client != nil
}

// EnqueueEnrollmentWelcome schedules a welcome email
func (e *Enqueuer) EnqueueEnrollmentWelcome(ctx context.Context, p EnrollmentWelcomePayload) error {
	if !e.Enabled() {
		return nil
	}
	task, err := NewEnrollmentWelcomeTask(p)
	if err != nil {
		return err
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TypeEnrollmentWelcome, err)
	}
	return nil
}

// EnqueueLessonsCountSync schedules a lessons count reconciliation for one course, or all when courseID is empty
func (e *Enqueuer) EnqueueLessonsCountSync(ctx context.Context, courseID string) error {
	if !e.Enabled() {
		return nil
	}
	task, err := NewLessonsCountSyncTask(courseID)
	if err != nil {
		return err
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TypeLessonsCountSync, err)
	}
	return nil
}
