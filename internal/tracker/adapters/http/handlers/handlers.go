// Package handlers содержит HTTP-обработчики API трекера упражнений.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"exercisetracker/internal/tracker/app"
	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/domain/logfilter"
)

// Тексты ответов.
const (
	MsgExerciseNoUser   = "could not find a user with that ID"
	MsgLogNoUser        = "could not find user with that ID"
	MsgCreateUserFailed = "uh-oh"
	MsgInvalidBody      = "invalid request body"
	MsgInternalError    = "internal server error"

	LogHandlerCreateUser  = "handling create user request"
	LogHandlerListUsers   = "handling list users request"
	LogHandlerAddExercise = "handling add exercise request"
	LogHandlerGetLog      = "handling get log request"
)

// UserService - сценарии работы с пользователями.
type UserService interface {
	CreateUser(ctx context.Context, username string) (*entities.User, error)
	ListUsers(ctx context.Context, username string) ([]*entities.User, error)
}

// ExerciseService - сценарий добавления упражнения.
type ExerciseService interface {
	AddExercise(ctx context.Context, userID string, in app.AddExerciseInput) (*entities.User, entities.Exercise, error)
}

// LogService - сценарии чтения журнала.
type LogService interface {
	GetUser(ctx context.Context, userID string) (*entities.User, error)
	GetLog(ctx context.Context, userID string, q logfilter.Query) (*app.LogResult, error)
}

var validationErrors = []error{
	entities.ErrEmptyUsername,
	entities.ErrEmptyDescription,
	entities.ErrInvalidDuration,
	entities.ErrInvalidDate,
}

func sendMessage(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"message": message}); err != nil {
		return fmt.Errorf("failed to send %d response: %w", status, err)
	}
	return nil
}

// handleError переводит ошибку сценария в ответ. notFound - текст для 404,
// internal - текст для 500.
func handleError(ctx fiber.Ctx, err error, notFound, internal string) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return sendMessage(ctx, fiber.StatusNotFound, notFound)
	case errors.Is(err, app.ErrValidation):
		for _, v := range validationErrors {
			if errors.Is(err, v) {
				return sendMessage(ctx, fiber.StatusBadRequest, v.Error())
			}
		}
		return sendMessage(ctx, fiber.StatusBadRequest, MsgInvalidBody)
	default:
		return sendMessage(ctx, fiber.StatusInternalServerError, internal)
	}
}
