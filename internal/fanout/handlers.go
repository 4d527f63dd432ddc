package fanout

import (
	"github.com/gofiber/fiber/v2"

	"backend-insyd/internal/shared/apperr"
)

func RegisterRoutes(r fiber.Router, engine *Engine) {
	r.Post("/users/:id/follow", func(c *fiber.Ctx) error {
		var req struct {
			FollowerID string `json:"follower_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.FollowerID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "follower_id required")
		}
		n, err := engine.OnFollow(c.Context(), req.FollowerID, c.Params("id"))
		if err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "successfully followed user",
			"notification": n,
		})
	})

	r.Delete("/users/:id/follow", func(c *fiber.Ctx) error {
		var req struct {
			FollowerID string `json:"follower_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.FollowerID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "follower_id required")
		}
		if err := engine.OnUnfollow(c.Context(), req.FollowerID, c.Params("id")); err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		return c.JSON(fiber.Map{"message": "successfully unfollowed user"})
	})

	r.Post("/posts", func(c *fiber.Ctx) error {
		var req struct {
			UserID  string `json:"user_id"`
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err != nil || req.UserID == "" || req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id and title required")
		}
		p, sent, err := engine.OnPost(c.Context(), req.UserID, req.Title, req.Content)
		if err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"post":               p,
			"notifications_sent": sent,
		})
	})
}
