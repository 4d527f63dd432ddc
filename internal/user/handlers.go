package user

import (
	"github.com/gofiber/fiber/v2"

	"backend-insyd/internal/shared/apperr"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		users, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		return c.JSON(users)
	})

	r.Post("/", func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		}
		if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username and email required")
		}
		u, err := svc.Create(c.Context(), req.Username, req.Email)
		if err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	})

	r.Get("/:id/following", func(c *fiber.Ctx) error {
		users, err := svc.Following(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		if users == nil {
			users = []User{}
		}
		return c.JSON(users)
	})
}
