package main

import (
	"context"
	"log"

	"backend-insyd/internal/config"
	"backend-insyd/internal/db"

	"github.com/google/uuid"
)

var seedUsers = []struct {
	Username string
	Email    string
}{
	{Username: "alice_architect", Email: "alice@insyd.com"},
	{Username: "bob_designer", Email: "bob@insyd.com"},
	{Username: "charlie_engineer", Email: "charlie@insyd.com"},
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}

	log.Printf("seeding database...")
	if err := seed(ctx, pool); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("database seeded successfully")
}

func seed(ctx context.Context, q db.Querier) error {
	for _, u := range seedUsers {
		_, err := q.Exec(ctx,
			`INSERT INTO users (id, username, email) VALUES ($1, $2, $3)
			 ON CONFLICT (email) DO NOTHING`,
			uuid.NewString(), u.Username, u.Email)
		if err != nil {
			return err
		}
	}
	return nil
}
