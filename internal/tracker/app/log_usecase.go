package app

import (
	"context"

	"go.uber.org/zap"

	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/domain/logfilter"
	"exercisetracker/internal/tracker/observability"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/pkg/logger"
)

// LogResult - пользователь и отобранная часть его журнала.
type LogResult struct {
	User *entities.User
	Log  []entities.Exercise
}

// LogUseCase читает журналы пользователей.
type LogUseCase struct {
	users  repositories.UserRepository
	legacy bool
}

// NewLogUseCase создает LogUseCase. legacy включает старую семантику to без from.
func NewLogUseCase(users repositories.UserRepository, legacy bool) *LogUseCase {
	return &LogUseCase{users: users, legacy: legacy}
}

// GetUser возвращает полный документ пользователя.
func (uc *LogUseCase) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		logger.Log(ctx).Debug(ctx, "user lookup failed",
			zap.String("method", "LogUseCase.GetUser"),
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, lookupError(err)
	}
	return user, nil
}

// GetLog возвращает пользователя и журнал, отобранный по q.
func (uc *LogUseCase) GetLog(ctx context.Context, userID string, q logfilter.Query) (*LogResult, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	q.Legacy = q.Legacy || uc.legacy
	filtered := logfilter.Apply(user.Log, q)
	observability.ObserveLogQuery(len(filtered))

	return &LogResult{User: user, Log: filtered}, nil
}
