package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"task_tracker/internal/logger"
	"task_tracker/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apply := flag.Bool("apply", false, "apply migrations (default: only list them)")
	flag.Parse()

	if !*apply {
		names, err := migrations.Names()
		if err != nil {
			logger.Fatal("list migrations", "error", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Fatal("connect", "error", err)
	}
	defer db.Close()

	applied, err := migrations.Apply(context.Background(), db)
	if err != nil {
		db.Close()
		logger.Fatal("apply migrations", "error", err)
	}
	for _, name := range applied {
		fmt.Printf("applied %s\n", name)
	}
}
