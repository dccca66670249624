package cache

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"exercisetracker/internal/tracker/adapters/document"
	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/observability"
	"exercisetracker/internal/tracker/ports/cache"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/internal/tracker/resilience"
	"exercisetracker/pkg/logger"
)

const keyPrefix = "user:"

// Key возвращает ключ кэша для документа пользователя.
func Key(userID string) string {
	return keyPrefix + userID
}

// UserRepository кэширует документы пользователей поверх основного хранилища.
// Ошибки кэша не доходят до вызывающего кода: запрос уходит в хранилище.
type UserRepository struct {
	next    repositories.UserRepository
	cache   cache.Cache
	breaker *resilience.CircuitBreaker
}

// NewUserRepository оборачивает next.
func NewUserRepository(next repositories.UserRepository, c cache.Cache, breaker *resilience.CircuitBreaker) *UserRepository {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker("user-cache", resilience.DefaultBreakerConfig())
	}
	return &UserRepository{next: next, cache: c, breaker: breaker}
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// Create создает пользователя и сразу кладет его в кэш.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	created, err := r.next.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	r.store(ctx, created)
	return created, nil
}

// FindByID читает из кэша, при промахе идет в хранилище и заполняет кэш.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if user, ok := r.load(ctx, id); ok {
		return user, nil
	}

	user, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, user)
	return user, nil
}

// Save пишет в хранилище, затем обновляет кэш.
// Если кэш обновить не удалось, ключ удаляется, чтобы не отдавать старый журнал.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	saved, err := r.next.Save(ctx, user)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			r.evict(ctx, user.ID)
		}
		return nil, err
	}
	if !r.store(ctx, saved) {
		r.evict(ctx, saved.ID)
	}
	return saved, nil
}

// Find не кэшируется.
func (r *UserRepository) Find(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, error) {
	return r.next.Find(ctx, filter)
}

func (r *UserRepository) load(ctx context.Context, id string) (*entities.User, bool) {
	var raw string
	err := r.breaker.Execute(ctx, func() error {
		var err error
		raw, err = r.cache.Get(ctx, Key(id))
		return err
	})
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		observability.RecordCacheResult(observability.CacheBypass)
		return nil, false
	case err != nil:
		observability.RecordCacheResult(observability.CacheError)
		return nil, false
	case raw == "":
		observability.RecordCacheResult(observability.CacheMiss)
		return nil, false
	}

	user, err := document.UnmarshalUser([]byte(raw))
	if err != nil {
		logger.Log(ctx).Warn(ctx, "dropping undecodable cache entry", zap.String("user_id", id), zap.Error(err))
		observability.RecordCacheResult(observability.CacheError)
		r.evict(ctx, id)
		return nil, false
	}

	observability.RecordCacheResult(observability.CacheHit)
	return user, true
}

func (r *UserRepository) store(ctx context.Context, user *entities.User) bool {
	payload, err := document.MarshalUser(user)
	if err != nil {
		logger.Log(ctx).Warn(ctx, "failed to encode user for cache", zap.String("user_id", user.ID), zap.Error(err))
		return false
	}

	err = r.breaker.Execute(ctx, func() error {
		return r.cache.Set(ctx, Key(user.ID), string(payload), 0)
	})
	return err == nil
}

func (r *UserRepository) evict(ctx context.Context, id string) {
	_ = r.breaker.Execute(ctx, func() error {
		return r.cache.Delete(ctx, Key(id))
	})
}
