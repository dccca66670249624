package app

import (
	"context"

	"go.uber.org/zap"

	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/observability"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/pkg/logger"
)

// UserUseCase регистрирует пользователей и выдает их список.
type UserUseCase struct {
	users repositories.UserRepository
}

// NewUserUseCase создает UserUseCase.
func NewUserUseCase(users repositories.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// CreateUser регистрирует пользователя с пустым журналом.
func (uc *UserUseCase) CreateUser(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserUseCase.CreateUser"))

	user, err := entities.NewUser(username)
	if err != nil {
		return nil, validation(err)
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		log.Error(ctx, ErrMsgCreateUser, zap.Error(err))
		return nil, persistence(ErrMsgCreateUser, err)
	}

	observability.RecordUserCreated()
	log.Debug(ctx, "user created", zap.String("user_id", created.ID))
	return created, nil
}

// ListUsers возвращает пользователей, username сужает выборку до точного совпадения.
func (uc *UserUseCase) ListUsers(ctx context.Context, username string) ([]*entities.User, error) {
	users, err := uc.users.Find(ctx, repositories.UserFilter{Username: username})
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrMsgListUsers, zap.Error(err))
		return nil, persistence(ErrMsgListUsers, err)
	}
	return users, nil
}
