package server

import (
	"errors"
	"fmt"

	"parcel-admin/internal/core/apierror"
	"parcel-admin/internal/core/config"
	"parcel-admin/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "parcel-admin/docs/swagger"
)

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// New creates a new Server instance with configured middleware.
// Routes registered under API() go through the supplied guard handlers.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "parcel-admin",
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Header:    "X-Ray-ID",
		Generator: uuid.NewString,
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// API mounts guards on the given path prefixes and returns the router to
// register guarded routes on. Paths outside the prefixes, unknown ones included,
// never reach the guards.
func (s *Server) API(prefixes []string, guards ...fiber.Handler) fiber.Router {
	if len(prefixes) > 0 && len(guards) > 0 {
		args := make([]interface{}, 0, len(guards)+1)
		args = append(args, prefixes)
		for _, g := range guards {
			args = append(args, g)
		}
		s.App.Use(args...)
	}
	return s.App
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// errorHandler renders unhandled errors in the shared error body.
// Internal details are logged, never returned.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return apierror.Write(c, fe.Code, fe.Message)
	}

	logger.Get().Error("Unhandled error",
		zap.String("ray_id", apierror.RayID(c)),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return apierror.Write(c, fiber.StatusInternalServerError, "Internal server error")
}
