package graph

import (
	"context"
	"errors"
	"fmt"

	"backend-insyd/internal/db"
	"backend-insyd/internal/shared/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

// Service is the durable follower/following edge store. At most one edge
// exists per ordered (follower, following) pair; the table's primary key
// enforces that even when two follow requests race.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateEdge(ctx context.Context, followerID, followingID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1,$2)
	`, followerID, followingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("edge %s->%s: %w", followerID, followingID, apperr.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *Service) DeleteEdge(ctx context.Context, followerID, followingID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM follows
		WHERE follower_id = $1 AND following_id = $2
	`, followerID, followingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("edge %s->%s: %w", followerID, followingID, apperr.ErrNotFound)
	}
	return nil
}

func (s *Service) EdgeExists(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows
			WHERE follower_id = $1 AND following_id = $2
		)
	`, followerID, followingID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListFollowers returns the ids of every user following the given user,
// i.e. the recipient set for that user's events.
func (s *Service) ListFollowers(ctx context.Context, followingID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT follower_id FROM follows
		WHERE following_id = $1
	`, followingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		followers = append(followers, id)
	}
	return followers, nil
}
