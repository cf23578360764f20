package http

import (
	"runtime/debug"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/plantdoc/backend/internal/domain"
)

// multipartOverhead leaves room for form boundaries and the coordinate
// fields on top of the image limit.
const multipartOverhead = 2 * 1024 * 1024

// NewApp creates the fiber app with codec, limits, error handler and middleware
func NewApp(maxImageSize int64, timeout time.Duration, logger zerolog.Logger) *fiber.App {
	if maxImageSize <= 0 {
		maxImageSize = domain.MaxImageSize
	}

	app := fiber.New(fiber.Config{
		AppName:      "PlantDoc API v1.0",
		BodyLimit:    int(maxImageSize + multipartOverhead),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		ErrorHandler: ErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		// bodies over BodyLimit still reach the handler, which answers 400
		StreamRequestBody: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error().
				Interface("panic", e).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
		},
	}))
	app.Use(requestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	return app
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// Prometheus exposition
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/api/analyze", handler.Analyze)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Post("/analyze", handler.Analyze)
	}
}

// requestLogger writes one structured line per request
func requestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		event := logger.Info()
		if status >= fiber.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Dur("latency", time.Since(start)).
			Msg("request")

		return err
	}
}
