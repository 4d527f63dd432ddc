package user

import (
	"context"
	"errors"
	"fmt"

	"backend-insyd/internal/db"
	"backend-insyd/internal/shared/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, username, email string) (User, error) {
	u := User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, username, email)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, u.ID, u.Username, u.Email)
	if err := row.Scan(&u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return User{}, fmt.Errorf("user %q: %w", username, apperr.ErrConflict)
		}
		return User{}, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, email, created_at
		FROM users WHERE id = $1
	`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
		}
		return User{}, err
	}
	return u, nil
}

// List returns every user together with follower/following/post counts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.username, u.email, u.created_at,
		       (SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id),
		       (SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id),
		       (SELECT COUNT(*) FROM posts p WHERE p.user_id = u.id)
		FROM users u
		ORDER BY u.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.Followers, &u.Following, &u.Posts); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Following returns the users the given user follows.
func (s *Service) Following(ctx context.Context, userID string) ([]User, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.username, u.email, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
