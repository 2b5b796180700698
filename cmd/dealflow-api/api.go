package main

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/dealflow/dealflow/pkg/cmd"
	"github.com/dealflow/dealflow/pkg/services"
	"github.com/dealflow/dealflow/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// allowedHeaders are the request headers browsers may send cross-origin.
var allowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

type API struct {
	logger   *slog.Logger
	runtime  *cmd.Runtime
	validate *validator.Validate
}

func NewAPI(logger *slog.Logger, runtime *cmd.Runtime) *API {
	return &API{
		logger:   logger,
		runtime:  runtime,
		validate: web.NewValidator(),
	}
}

func (a *API) App() *fiber.App {
	automationService := services.NewAutomation(a.runtime.Persistence, a.runtime.Registry)

	handlers := web.NewAPIHandlers(a.runtime.Executor, automationService, a.validate, a.runtime.Registry)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: allowedHeaders,
	}))
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Dealflow API")
	})
	app.Post("/", handlers.ExecuteAutomation)
	app.Post("/execute-automation", handlers.ExecuteAutomation)
	app.Options("/", allowCrossOrigin)
	app.Options("/execute-automation", allowCrossOrigin)

	app.Get("/actions", handlers.GetAvailableActions)

	automations := app.Group("/automations")
	automations.Get("/:id", handlers.GetAutomation)
	automations.Get("/:id/logs", handlers.GetAutomationLogs)
	automations.Put("/:id/flow", handlers.UpdateAutomationFlow)

	app.Get("/health", handlers.HealthCheck)

	return app
}

// allowCrossOrigin answers OPTIONS requests the cors middleware passes on,
// such as those without an Access-Control-Request-Method header.
func allowCrossOrigin(c fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	c.Set(fiber.HeaderAccessControlAllowHeaders, strings.Join(allowedHeaders, ", "))
	c.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")

	return c.SendStatus(fiber.StatusOK)
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
