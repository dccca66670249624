package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"exercisetracker/internal/tracker/adapters/http/dto"
	"exercisetracker/internal/tracker/adapters/http/middleware"
	"exercisetracker/pkg/logger"
)

// UserHandler обрабатывает /api/users.
type UserHandler struct {
	users UserService
}

// NewUserHandler создает обработчик пользователей.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUser регистрирует пользователя: {username} -> {username, _id}.
func (h *UserHandler) CreateUser(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "UserHandler.CreateUser"))
	log.Debug(userCtx, LogHandlerCreateUser)

	var req dto.CreateUserRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(userCtx, MsgInvalidBody, zap.Error(err))
		return sendMessage(ctx, fiber.StatusBadRequest, MsgInvalidBody)
	}

	user, err := h.users.CreateUser(userCtx, req.Username)
	if err != nil {
		log.Warn(userCtx, "failed to create user", zap.Error(err))
		return handleError(ctx, err, MsgInternalError, MsgCreateUserFailed)
	}

	if err := ctx.JSON(dto.NewUserResponse(user)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListUsers возвращает [{username, _id}], ?username= сужает выборку.
// Пустое хранилище дает пустой массив.
func (h *UserHandler) ListUsers(ctx fiber.Ctx) error {
	userCtx := middleware.RequestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "UserHandler.ListUsers"))
	log.Debug(userCtx, LogHandlerListUsers)

	users, err := h.users.ListUsers(userCtx, ctx.Query("username"))
	if err != nil {
		log.Error(userCtx, "failed to list users", zap.Error(err))
		return handleError(ctx, err, MsgInternalError, MsgInternalError)
	}

	if err := ctx.JSON(dto.NewUserResponses(users)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
