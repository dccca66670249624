// Package http собирает HTTP сервер трекера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/static"

	"exercisetracker/internal/tracker/adapters/http/handlers"
	"exercisetracker/internal/tracker/adapters/http/middleware"
	"exercisetracker/internal/tracker/observability"
)

// Services - сценарии, которые обслуживает роутер.
type Services struct {
	Users     handlers.UserService
	Exercises handlers.ExerciseService
	Logs      handlers.LogService
}

// Options - расположение статических файлов и шаблонов.
type Options struct {
	StaticDir string
	ViewsDir  string
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, services Services, opts Options) {
	userHandler := handlers.NewUserHandler(services.Users)
	exerciseHandler := handlers.NewExerciseHandler(services.Exercises)
	logHandler := handlers.NewLogHandler(services.Logs)
	pageHandler := handlers.NewPageHandler(opts.ViewsDir)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewMetricsMiddleware())
	app.Use(cors.New())

	app.Get("/", pageHandler.Index)
	app.Get("/public*", static.New(opts.StaticDir))
	app.Get("/metrics", adaptor.HTTPHandler(observability.Handler()))

	api := app.Group("/api")
	api.Get("/hello", pageHandler.Hello)

	users := api.Group("/users")
	users.Post("/", userHandler.CreateUser)
	users.Get("/", userHandler.ListUsers)
	users.Post("/:id/exercises", exerciseHandler.AddExercise)
	users.Get("/:id/logs", logHandler.GetLog)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
