// Package db открывает хранилище документов трекера по конфигурации.
package db

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"exercisetracker/internal/tracker/adapters/cache"
	"exercisetracker/internal/tracker/adapters/memory"
	mongorepo "exercisetracker/internal/tracker/adapters/mongo"
	pgrepo "exercisetracker/internal/tracker/adapters/postgres"
	"exercisetracker/internal/tracker/config"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/internal/tracker/resilience"
	mongodb "exercisetracker/pkg/db/mongo"
	"exercisetracker/pkg/db/postgres"
	redisdb "exercisetracker/pkg/db/redis"
	"exercisetracker/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogStoreOpening   = "opening document store"
	LogStoreOpened    = "document store ready"
	LogCacheEnabled   = "user cache enabled"
	LogCacheUnhealthy = "redis unavailable, serving without cache"
)

// Константы для сообщений об ошибках.
const (
	ErrUnknownDriver   = "unknown store driver"
	ErrDBMigrations    = "failed to apply tracker database migrations"
	ErrDBConnection    = "failed to connect to tracker database"
	ErrMongoConnection = "failed to connect to mongodb"
	ErrMongoIndexes    = "failed to prepare mongodb collection"
)

type closer func(ctx context.Context) error

// Store объединяет репозиторий пользователей и освобождение его ресурсов.
type Store struct {
	Users   repositories.UserRepository
	closers []closer
}

// Open подключает хранилище, выбранное cfg.Store.Driver, и при включенном Redis
// оборачивает его кэшем. Первое подключение повторяется с экспоненциальной задержкой.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	log := logger.Log(ctx).With(zap.String("driver", cfg.Store.Driver))
	log.Info(ctx, LogStoreOpening)

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.Store.ConnectRetries
	retry := resilience.NewRetry("store-connect", retryCfg)

	store := &Store{}

	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		store.Users = memory.NewUserRepository()
	case config.DriverPostgres:
		if err := store.openPostgres(ctx, retry, &cfg.Postgres); err != nil {
			return nil, err
		}
	case config.DriverMongo:
		if err := store.openMongo(ctx, retry, &cfg.Mongo); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s: %q", ErrUnknownDriver, cfg.Store.Driver)
	}

	if cfg.Redis.Enabled {
		store.enableCache(ctx, &cfg.Redis)
	}

	log.Info(ctx, LogStoreOpened)
	return store, nil
}

func (s *Store) openPostgres(ctx context.Context, retry *resilience.Retry, cfg *config.PostgresConfig) error {
	err := retry.Execute(ctx, func(ctx context.Context) error {
		return postgres.Migrate(ctx, cfg.GetConnectionURL(), cfg.MigrationsDir)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := resilience.Do(ctx, retry, func(ctx context.Context) (*postgres.Database, error) {
		return postgres.New(ctx, postgres.Options{
			DSN:             cfg.GetDSN(),
			MinConns:        cfg.MinConn,
			MaxConns:        cfg.MaxConn,
			MaxConnLifetime: cfg.ConnLifetime,
		})
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	s.Users = pgrepo.NewUserRepository(database.Pool())
	s.closers = append(s.closers, func(ctx context.Context) error {
		database.Close(ctx)
		return nil
	})
	return nil
}

func (s *Store) openMongo(ctx context.Context, retry *resilience.Retry, cfg *config.MongoConfig) error {
	client, err := resilience.Do(ctx, retry, func(ctx context.Context) (*mongodb.Client, error) {
		return mongodb.Connect(ctx, mongodb.Options{
			URI:            cfg.URI,
			Database:       cfg.Database,
			ConnectTimeout: cfg.ConnectTimeout,
		})
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMongoConnection, err)
	}

	repo := mongorepo.NewUserRepository(client.Collection(cfg.Collection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Close(context.WithoutCancel(ctx))
		return fmt.Errorf("%s: %w", ErrMongoIndexes, err)
	}

	s.Users = repo
	s.closers = append(s.closers, client.Close)
	return nil
}

func (s *Store) enableCache(ctx context.Context, cfg *config.RedisConfig) {
	log := logger.Log(ctx).With(zap.String("redis_address", cfg.GetAddress()))

	client, err := redisdb.NewClient(ctx, redisdb.Config{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})
	if err != nil {
		log.Warn(ctx, LogCacheUnhealthy, zap.Error(err))
		return
	}

	redisCache := cache.NewRedisCache(client, cfg.DefaultTTL)
	breaker := resilience.NewCircuitBreaker("user-cache", resilience.DefaultBreakerConfig())

	s.Users = cache.NewUserRepository(s.Users, redisCache, breaker)
	s.closers = append(s.closers, func(context.Context) error { return redisCache.Close() })

	log.Info(ctx, LogCacheEnabled, zap.Duration("ttl", cfg.DefaultTTL))
}

// Close освобождает ресурсы в порядке, обратном открытию.
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
