package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend-insyd/internal/shared/apperr"

	"github.com/pashagolub/pgxmock/v3"
)

func TestCreateNotification(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO notifications`).
		WithArgs(pgxmock.AnyArg(), "user-2", KindFollow, "New Follower", "bob_designer started following you", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"read", "created_at"}).AddRow(false, createdAt))

	svc := NewService(mock)
	n, err := svc.Create(context.Background(), Notification{
		RecipientID: "user-2",
		Kind:        KindFollow,
		Title:       "New Follower",
		Message:     "bob_designer started following you",
		Data:        []byte(`{"followerId":"user-1","followerUsername":"bob_designer"}`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.ID == "" || n.Read {
		t.Fatalf("expected unread notification with id, got %+v", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateNotificationDefaultData(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO notifications`).
		WithArgs(pgxmock.AnyArg(), "user-2", KindPost, "New Post", "msg", []byte(`{}`)).
		WillReturnRows(pgxmock.NewRows([]string{"read", "created_at"}).AddRow(false, createdAt))

	svc := NewService(mock)
	if _, err := svc.Create(context.Background(), Notification{
		RecipientID: "user-2",
		Kind:        KindPost,
		Title:       "New Post",
		Message:     "msg",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestCreateNotificationError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO notifications`).
		WillReturnError(errNotification)

	svc := NewService(mock)
	if _, err := svc.Create(context.Background(), Notification{RecipientID: "user-2", Kind: KindPost}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListForUserNewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	newer := time.Now()
	older := newer.Add(-time.Hour)
	mock.ExpectQuery(`SELECT id, user_id, type, title, message, data, read, created_at`).
		WithArgs("user-2").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "type", "title", "message", "data", "read", "created_at"}).
			AddRow("n-2", "user-2", KindPost, "New Post", "post msg", []byte(`{"postId":"p-1"}`), false, newer).
			AddRow("n-1", "user-2", KindFollow, "New Follower", "follow msg", []byte(`{}`), true, older))

	svc := NewService(mock)
	notifications, err := svc.ListForUser(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notifications) != 2 || notifications[0].ID != "n-2" {
		t.Fatalf("unexpected notifications %+v", notifications)
	}
	if notifications[0].Read {
		t.Fatalf("expected newest unread")
	}
}

func TestListForUserQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, type, title, message, data, read, created_at`).
		WithArgs("user-2").
		WillReturnError(errNotification)

	svc := NewService(mock)
	if _, err := svc.ListForUser(context.Background(), "user-2"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMarkRead(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	// marking twice succeeds both times and leaves read=true
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`UPDATE notifications SET read = TRUE`).
			WithArgs("n-1").
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "type", "title", "message", "data", "read", "created_at"}).
				AddRow("n-1", "user-2", KindFollow, "New Follower", "msg", []byte(`{}`), true, createdAt))
	}

	svc := NewService(mock)
	for i := 0; i < 2; i++ {
		n, err := svc.MarkRead(context.Background(), "n-1")
		if err != nil {
			t.Fatalf("mark read (%d): %v", i, err)
		}
		if !n.Read {
			t.Fatalf("expected read=true")
		}
	}
}

func TestMarkReadNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE notifications SET read = TRUE`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "type", "title", "message", "data", "read", "created_at"}))

	svc := NewService(mock)
	_, err = svc.MarkRead(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

var errNotification = errors.New("notification error")
