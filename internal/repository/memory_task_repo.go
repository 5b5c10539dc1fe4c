package repository

import (
	"context"
	"sync"
	"time"

	"task_tracker/internal/domain"
)

// MemoryTaskRepository keeps tasks in process memory. Ids come from a
// counter that is never reset.
type MemoryTaskRepository struct {
	mu      sync.RWMutex
	tasks   map[int64]*domain.Task
	order   []int64
	counter int64
	now     func() time.Time
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[int64]*domain.Task),
		order: make([]int64, 0),
		now:   time.Now,
	}
}

func (r *MemoryTaskRepository) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counter++
	t.ID = r.counter
	t.CreatedAt = r.now().UTC()

	stored := *t
	r.tasks[t.ID] = &stored
	r.order = append(r.order, t.ID)
	return nil
}

func (r *MemoryTaskRepository) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MemoryTaskRepository) List(_ context.Context) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Task, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.tasks[id]
		res = append(res, &cp)
	}
	return res, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[t.ID]
	if !ok {
		return ErrTaskNotFound
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.Completed = t.Completed
	t.CreatedAt = stored.CreatedAt
	return nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryTaskRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.tasks))
	r.tasks = make(map[int64]*domain.Task)
	r.order = r.order[:0]
	return n, nil
}

func (r *MemoryTaskRepository) Ping(context.Context) error {
	return nil
}
