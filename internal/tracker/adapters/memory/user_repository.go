// Package memory - хранилище документов в памяти процесса для разработки и тестов.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/ports/repositories"
)

// UserRepository хранит копии документов, вызывающий код не может изменить их напрямую.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User
	order []string
}

// NewUserRepository создает пустое хранилище.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entities.User)}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// Create сохраняет копию пользователя под новым UUID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := user.Clone()
	stored.ID = uuid.NewString()

	r.mu.Lock()
	r.users[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	r.mu.Unlock()

	return stored.Clone(), nil
}

// FindByID возвращает копию документа.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u.Clone(), nil
}

// Save заменяет документ целиком.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return nil, entities.ErrUserNotFound
	}
	r.users[user.ID] = user.Clone()
	return user.Clone(), nil
}

// Find возвращает копии документов в порядке создания.
func (r *UserRepository) Find(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.users[id]
		if filter.Username != "" && u.Username != filter.Username {
			continue
		}
		out = append(out, u.Clone())
	}
	return out, nil
}
