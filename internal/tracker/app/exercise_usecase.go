package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/observability"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/pkg/logger"
)

// AddExerciseInput - проверенные поля нового упражнения.
// Пустая Date означает текущий день.
type AddExerciseInput struct {
	Description string
	Duration    int
	Date        string
}

// ExerciseUseCase добавляет упражнения в журнал пользователя.
type ExerciseUseCase struct {
	users repositories.UserRepository
	now   func() time.Time
}

// NewExerciseUseCase создает ExerciseUseCase. now == nil означает time.Now.
func NewExerciseUseCase(users repositories.UserRepository, now func() time.Time) *ExerciseUseCase {
	if now == nil {
		now = time.Now
	}
	return &ExerciseUseCase{users: users, now: now}
}

// AddExercise находит пользователя, добавляет запись в конец журнала,
// увеличивает счетчик и сохраняет документ. Возвращает обновленного
// пользователя и созданное упражнение.
func (uc *ExerciseUseCase) AddExercise(ctx context.Context, userID string, in AddExerciseInput) (*entities.User, entities.Exercise, error) {
	log := logger.Log(ctx).With(zap.String("method", "ExerciseUseCase.AddExercise"), zap.String("user_id", userID))

	exercise, err := entities.NewExercise(in.Description, in.Duration, in.Date, uc.now())
	if err != nil {
		return nil, entities.Exercise{}, validation(err)
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, "user lookup failed", zap.Error(err))
		return nil, entities.Exercise{}, lookupError(err)
	}

	user.AppendExercise(exercise)

	saved, err := uc.users.Save(ctx, user)
	if err != nil {
		log.Error(ctx, ErrMsgSaveUser, zap.Error(err))
		return nil, entities.Exercise{}, saveError(err)
	}

	observability.RecordExerciseLogged()
	log.Debug(ctx, "exercise logged", zap.Int("count", saved.Count))
	return saved, exercise, nil
}
