package domain

import (
	"strings"
	"time"
)

const TaskTitleMaxLength = 255

// Task is the only persisted entity. CreatedAt is kept for ordering and is
// not part of the JSON representation.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Completed   bool      `db:"completed" json:"completed"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}

// TaskPayload is the inbound representation of a task. Nil fields were not
// present in the request.
type TaskPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`

	// DecodeErrors holds per-field failures found while parsing the request
	// body (wrong JSON type, unparsable boolean). They take precedence over
	// rule violations for the same field.
	DecodeErrors FieldErrors `json:"-"`
}

// Normalize trims surrounding whitespace from text fields.
func (p *TaskPayload) Normalize() {
	if p.Title != nil {
		s := strings.TrimSpace(*p.Title)
		p.Title = &s
	}
	if p.Description != nil {
		s := strings.TrimSpace(*p.Description)
		p.Description = &s
	}
}

// NewTask builds an unsaved Task from a validated create payload.
func (p TaskPayload) NewTask() *Task {
	t := &Task{}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// ApplyTo overwrites every mutable field of t. The payload must have passed
// ValidateForUpdate.
func (p TaskPayload) ApplyTo(t *Task) {
	t.Title = *p.Title
	t.Description = *p.Description
	t.Completed = *p.Completed
}
