package integration

import (
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func connectIfConfigured(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		return nil
	}
	return connect(t)
}
