package notification

import (
	"context"
	"errors"
	"fmt"

	"backend-insyd/internal/db"
	"backend-insyd/internal/shared/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Create persists one notification. The caller supplies recipient, kind,
// title, message and data; id and created_at are assigned here.
func (s *Service) Create(ctx context.Context, n Notification) (Notification, error) {
	n.ID = uuid.NewString()
	if len(n.Data) == 0 {
		n.Data = []byte(`{}`)
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, data)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING read, created_at
	`, n.ID, n.RecipientID, n.Kind, n.Title, n.Message, []byte(n.Data))
	if err := row.Scan(&n.Read, &n.CreatedAt); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// ListForUser returns the user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, type, title, message, data, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		var data []byte
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Kind, &n.Title, &n.Message, &data, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Data = data
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// MarkRead sets read=true. Marking an already-read notification succeeds
// and leaves it read; an unknown id is NotFound.
func (s *Service) MarkRead(ctx context.Context, id string) (Notification, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE id = $1
		RETURNING id, user_id, type, title, message, data, read, created_at
	`, id)
	var n Notification
	var data []byte
	if err := row.Scan(&n.ID, &n.RecipientID, &n.Kind, &n.Title, &n.Message, &data, &n.Read, &n.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Notification{}, fmt.Errorf("notification %s: %w", id, apperr.ErrNotFound)
		}
		return Notification{}, err
	}
	n.Data = data
	return n, nil
}
