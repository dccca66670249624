package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"exercisetracker/internal/tracker/adapters/http/dto"
	"exercisetracker/internal/tracker/adapters/http/middleware"
	"exercisetracker/internal/tracker/domain/logfilter"
	"exercisetracker/pkg/logger"
)

// LogHandler обрабатывает /api/users/:id/logs.
type LogHandler struct {
	logs LogService
}

// NewLogHandler создает обработчик журнала.
func NewLogHandler(logs LogService) *LogHandler {
	return &LogHandler{logs: logs}
}

// GetLog без параметров запроса отдает полный документ пользователя,
// с любым параметром - {username, _id, count, log} с отобранным журналом.
func (h *LogHandler) GetLog(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	userID := ctx.Params("id")
	log := logger.Log(userCtx).With(
		zap.String("handler", "LogHandler.GetLog"),
		zap.String("user_id", userID))
	log.Debug(userCtx, LogHandlerGetLog)

	if len(ctx.Queries()) == 0 {
		user, err := h.logs.GetUser(userCtx, userID)
		if err != nil {
			return handleError(ctx, err, MsgLogNoUser, MsgInternalError)
		}
		if err := ctx.JSON(dto.NewUserDocument(user)); err != nil {
			return fmt.Errorf("error sending response: %w", err)
		}
		return nil
	}

	q := logfilter.ParseQuery(ctx.Query("from"), ctx.Query("to"), ctx.Query("limit"))
	result, err := h.logs.GetLog(userCtx, userID, q)
	if err != nil {
		return handleError(ctx, err, MsgLogNoUser, MsgInternalError)
	}

	if err := ctx.JSON(dto.NewLogResponse(result.User, result.Log)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
