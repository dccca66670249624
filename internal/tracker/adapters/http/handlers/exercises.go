package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"exercisetracker/internal/tracker/adapters/http/dto"
	"exercisetracker/internal/tracker/adapters/http/middleware"
	"exercisetracker/internal/tracker/app"
	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/pkg/logger"
)

// ExerciseHandler обрабатывает /api/users/:id/exercises.
type ExerciseHandler struct {
	exercises ExerciseService
}

// NewExerciseHandler создает обработчик упражнений.
func NewExerciseHandler(exercises ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

// AddExercise добавляет упражнение в журнал пользователя.
func (h *ExerciseHandler) AddExercise(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	userID := ctx.Params("id")
	log := logger.Log(userCtx).With(
		zap.String("handler", "ExerciseHandler.AddExercise"),
		zap.String("user_id", userID))
	log.Debug(userCtx, LogHandlerAddExercise)

	var req dto.AddExerciseRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(userCtx, MsgInvalidBody, zap.Error(err))
		return sendMessage(ctx, fiber.StatusBadRequest, MsgInvalidBody)
	}

	duration, err := entities.ParseDuration(string(req.Duration))
	if err != nil {
		return sendMessage(ctx, fiber.StatusBadRequest, err.Error())
	}

	user, exercise, err := h.exercises.AddExercise(userCtx, userID, app.AddExerciseInput{
		Description: req.Description,
		Duration:    duration,
		Date:        req.Date,
	})
	if err != nil {
		log.Warn(userCtx, "failed to add exercise", zap.Error(err))
		return handleError(ctx, err, MsgExerciseNoUser, MsgInternalError)
	}

	if err := ctx.JSON(dto.NewExerciseResponse(user, exercise)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
