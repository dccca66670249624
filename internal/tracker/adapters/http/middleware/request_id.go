// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"exercisetracker/pkg/logger"
)

// Ключи и заголовки запроса.
const (
	UserContextKey  = "userContext"
	HeaderRequestID = "X-Request-ID"
)

// NewRequestIDMiddleware кладет в Locals контекст запроса с request id
// из заголовка X-Request-ID или новым UUID, если заголовок пуст или негоден.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := logger.NormalizeRequestID(ctx.Get(HeaderRequestID))

		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(UserContextKey, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}

// RequestContext возвращает контекст, сохраненный NewRequestIDMiddleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(UserContextKey).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}
