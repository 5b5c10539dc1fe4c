package service

import (
	"context"
	"errors"
	"fmt"

	"task_tracker/internal/domain"
	"task_tracker/internal/logger"
	"task_tracker/internal/repository"
)

// EventPublisher receives task lifecycle events after a successful write.
type EventPublisher interface {
	Publish(evt domain.TaskEvent)
}

// TaskService handles task business logic: validation, storage and event fan-out
type TaskService struct {
	repo   repository.TaskStore
	events EventPublisher
}

// NewTaskService creates a new task service. events may be nil.
func NewTaskService(repo repository.TaskStore, events EventPublisher) *TaskService {
	return &TaskService{repo: repo, events: events}
}

// Create validates the payload and inserts a new task
func (s *TaskService) Create(ctx context.Context, p domain.TaskPayload) (*domain.Task, error) {
	p.Normalize()
	if err := domain.ValidateForCreate(p); err != nil {
		TaskOperations.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}

	t := p.NewTask()
	if err := s.repo.Create(ctx, t); err != nil {
		TaskOperations.WithLabelValues("create", "error").Inc()
		return nil, fmt.Errorf("service: create task: %w", err)
	}
	TaskOperations.WithLabelValues("create", "ok").Inc()

	logger.FromContext(ctx).Debug("task created", "task_id", t.ID)
	s.publish(domain.TaskEvent{Type: domain.EventTaskCreated, TaskID: t.ID, Task: t})
	return t, nil
}

// List returns every task ordered by id
func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task or repository.ErrTaskNotFound
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapLookup("get", id, err)
	}
	return t, nil
}

// Update replaces every mutable field of an existing task. Existence is
// checked before the payload so unknown ids always yield not-found.
func (s *TaskService) Update(ctx context.Context, id int64, p domain.TaskPayload) (*domain.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		TaskOperations.WithLabelValues("update", outcome(err)).Inc()
		return nil, wrapLookup("update", id, err)
	}

	p.Normalize()
	if err := domain.ValidateForUpdate(p); err != nil {
		TaskOperations.WithLabelValues("update", "invalid").Inc()
		return nil, err
	}

	p.ApplyTo(t)
	if err := s.repo.Update(ctx, t); err != nil {
		// deleted concurrently between lookup and write
		TaskOperations.WithLabelValues("update", outcome(err)).Inc()
		return nil, wrapLookup("update", id, err)
	}
	TaskOperations.WithLabelValues("update", "ok").Inc()

	logger.FromContext(ctx).Debug("task updated", "task_id", t.ID)
	s.publish(domain.TaskEvent{Type: domain.EventTaskUpdated, TaskID: t.ID, Task: t})
	return t, nil
}

// Delete removes one task
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		TaskOperations.WithLabelValues("delete", outcome(err)).Inc()
		return wrapLookup("delete", id, err)
	}
	TaskOperations.WithLabelValues("delete", "ok").Inc()

	logger.FromContext(ctx).Debug("task deleted", "task_id", id)
	s.publish(domain.TaskEvent{Type: domain.EventTaskDeleted, TaskID: id})
	return nil
}

// DeleteAll removes every task and reports how many were removed
func (s *TaskService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		TaskOperations.WithLabelValues("delete_all", "error").Inc()
		return 0, fmt.Errorf("service: delete all tasks: %w", err)
	}
	TaskOperations.WithLabelValues("delete_all", "ok").Inc()

	logger.FromContext(ctx).Info("all tasks deleted", "count", n)
	s.publish(domain.TaskEvent{Type: domain.EventTasksCleared, Count: n})
	return n, nil
}

// Ping checks the underlying store
func (s *TaskService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *TaskService) publish(evt domain.TaskEvent) {
	if s.events != nil {
		s.events.Publish(evt)
	}
}

func wrapLookup(op string, id int64, err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return err
	}
	return fmt.Errorf("service: %s task %d: %w", op, id, err)
}

func outcome(err error) string {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return "not_found"
	}
	return "error"
}
