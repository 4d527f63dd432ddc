package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func TestUserHandlers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "alice_architect", "alice@insyd.com").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	mock.ExpectQuery(`SELECT u.id, u.username, u.email, u.created_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "created_at", "followers", "following", "posts"}).
			AddRow("user-1", "alice_architect", "alice@insyd.com", createdAt, 0, 0, 0))

	app := fiber.New()
	RegisterRoutes(app.Group("/users"), NewService(mock))

	body, _ := json.Marshal(map[string]string{"username": "alice_architect", "email": "alice@insyd.com"})
	req := httptest.NewRequest(http.MethodPost, "/users/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/users/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list users status: %v", err)
	}
}

func TestUserHandlersBadRequest(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/users"), NewService(nil))

	req := httptest.NewRequest(http.MethodPost, "/users/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestUserHandlersFollowing(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT u.id, u.username, u.email, u.created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "created_at"}))

	app := fiber.New()
	RegisterRoutes(app.Group("/users"), NewService(mock))

	req := httptest.NewRequest(http.MethodGet, "/users/user-1/following", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("following status: %v", err)
	}

	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list")
	}
}
