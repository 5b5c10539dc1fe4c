package repository

import (
	"context"
	"errors"
	"fmt"

	"task_tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskStore is the storage contract used by the service layer. Every method
// is a single atomic statement; lookups report a missing row as
// ErrTaskNotFound.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// DBTX is the subset of *pgxpool.Pool used by TaskRepository.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (title, description, completed)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		t.Title, t.Description, t.Completed,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, title, description, completed, created_at
		 FROM tasks
		 WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select task %d: %w", id, err)
	}
	return &t, nil
}

// List returns every task in creation order.
func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, completed, created_at
		 FROM tasks
		 ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		res = append(res, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return res, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, completed = $3 WHERE id = $4`,
		t.Title, t.Description, t.Completed, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteAll removes every row. The id sequence is left untouched so ids are
// never handed out twice.
func (r *TaskRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, fmt.Errorf("delete all tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
