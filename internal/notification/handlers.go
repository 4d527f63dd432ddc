package notification

import (
	"github.com/gofiber/fiber/v2"

	"backend-insyd/internal/shared/apperr"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/users/:id/notifications", func(c *fiber.Ctx) error {
		notifications, err := svc.ListForUser(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		if notifications == nil {
			notifications = []Notification{}
		}
		return c.JSON(notifications)
	})

	r.Patch("/notifications/:id/read", func(c *fiber.Ctx) error {
		n, err := svc.MarkRead(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		return c.JSON(n)
	})
}
