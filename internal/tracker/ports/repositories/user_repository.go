// Package repositories определяет порты хранилища документов.
package repositories

import (
	"context"

	"exercisetracker/internal/tracker/domain/entities"
)

// UserFilter ограничивает выборку Find. Пустой фильтр выбирает всех.
type UserFilter struct {
	Username string
}

// UserRepository хранит пользователей вместе с вложенным журналом.
type UserRepository interface {
	// Create сохраняет нового пользователя и возвращает его с присвоенным ID.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	// FindByID возвращает entities.ErrUserNotFound, если пользователь не найден.
	FindByID(ctx context.Context, id string) (*entities.User, error)

	// Save заменяет документ пользователя целиком, включая журнал.
	Save(ctx context.Context, user *entities.User) (*entities.User, error)

	// Find возвращает пользователей в порядке создания.
	Find(ctx context.Context, filter UserFilter) ([]*entities.User, error)
}
