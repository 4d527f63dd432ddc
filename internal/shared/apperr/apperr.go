package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors shared by services. Handlers translate them to HTTP
// statuses with Status; everything else is treated as a storage failure.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	// ErrDeliveryFailed marks a failed live push. It is never surfaced to
	// callers; the persisted notification remains the source of truth.
	ErrDeliveryFailed = errors.New("delivery failed")
)

// Status maps a service error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
