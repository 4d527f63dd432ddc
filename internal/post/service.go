package post

import (
	"context"

	"backend-insyd/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, userID, title, content string) (Post, error) {
	p := Post{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (id, user_id, title, content)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, p.ID, p.UserID, p.Title, p.Content)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

// List returns all posts newest first, with the author's username.
func (s *Service) List(ctx context.Context) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.user_id, u.username, p.title, p.content, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}
