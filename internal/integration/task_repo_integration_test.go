package integration

import (
	"context"
	"errors"
	"os"
	"testing"

	"task_tracker/internal/domain"
	"task_tracker/internal/migrations"
	"task_tracker/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := migrations.Apply(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestTaskRepository_CRUD(t *testing.T) {
	db := connect(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(db)

	if _, err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	task := &domain.Task{Title: "Pay water", Description: "Magnit"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID <= 0 || task.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be assigned, got %+v", task)
	}

	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Pay water" || got.Description != "Magnit" || got.Completed {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Title, got.Completed = "Paid", true
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Paid" || !list[0].Completed {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, task.ID); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
	if err := repo.Update(ctx, task); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("update deleted: expected not found, got %v", err)
	}
}

func TestTaskRepository_IDsNotReusedAfterDeleteAll(t *testing.T) {
	db := connect(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(db)

	first := &domain.Task{Title: "first"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	n, err := repo.DeleteAll(ctx)
	if err != nil || n != 0 {
		t.Fatalf("second delete all: n=%d err=%v", n, err)
	}

	second := &domain.Task{Title: "second"}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("id %d reused or went backwards (previous %d)", second.ID, first.ID)
	}
	_, _ = repo.DeleteAll(ctx)
}
