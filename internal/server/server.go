package server

import (
	"time"

	"backend-insyd/internal/auth"
	"backend-insyd/internal/config"
	"backend-insyd/internal/directory"
	"backend-insyd/internal/fanout"
	"backend-insyd/internal/graph"
	"backend-insyd/internal/notification"
	"backend-insyd/internal/post"
	"backend-insyd/internal/shared/apperr"
	"backend-insyd/internal/stream"
	"backend-insyd/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App       *fiber.App
	Cfg       config.Config
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Directory *directory.Directory
	Hub       *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	dir := directory.New()
	s := &Server{
		App:       app,
		Cfg:       cfg,
		DB:        db,
		Redis:     redisClient,
		Directory: dir,
		Hub:       stream.NewHub(dir, redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	userSvc := user.NewService(s.DB)
	graphSvc := graph.NewService(s.DB)
	postSvc := post.NewService(s.DB)
	notificationSvc := notification.NewService(s.DB)
	engine := fanout.NewEngine(userSvc, graphSvc, postSvc, notificationSvc, s.Hub, s.Cfg.FanoutWorkers)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	user.RegisterRoutes(s.App.Group("/users"), userSvc)
	post.RegisterRoutes(s.App.Group("/posts"), postSvc)
	notification.RegisterRoutes(s.App, notificationSvc)
	fanout.RegisterRoutes(s.App, engine)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Hub)

	s.App.Get("/me", auth.JWTMiddleware(s.Cfg.JWTSecret), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return fiber.NewError(apperr.Status(err), err.Error())
		}
		return c.JSON(u)
	})
}
