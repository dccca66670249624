package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"exercisetracker/internal/tracker/observability"
)

// NewMetricsMiddleware учитывает запросы по шаблону маршрута, а не по фактическому пути.
func NewMetricsMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		route := ctx.Route().Path
		if ctx.Response().StatusCode() == fiber.StatusNotFound && route == "/" {
			route = "unmatched"
		}
		observability.ObserveHTTPRequest(ctx.Method(), route, ctx.Response().StatusCode(), time.Since(start))

		return err
	}
}
