// Package config содержит конфигурацию сервиса трекера.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	pkgconfig "exercisetracker/pkg/config"
	"exercisetracker/pkg/logger"
)

// ServiceName - имя сервиса в логах загрузки конфигурации.
const ServiceName = "tracker"

// Переменные окружения, которые читал исходный сервис.
const (
	EnvPort     = "PORT"
	EnvMongoURI = "MONGO_URI"

	envTrackerPort     = "TRACKER_HTTP_PORT"
	envTrackerMongoURI = "TRACKER_MONGO_URI"
)

const (
	ErrInvalidPort = "invalid PORT value"
)

// Config представляет полную конфигурацию трекера.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	Store     StoreConfig     `yaml:"store"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	LogFilter LogFilterConfig `yaml:"log_filter"`
}

// Load загружает конфигурацию и применяет PORT и MONGO_URI,
// если одноименные TRACKER_* переменные не заданы.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyFallbacks(); err != nil {
		logger.Log(ctx).Error(ctx, ErrInvalidPort, zap.Error(err))
		return nil, err
	}

	logger.Log(ctx).Info(ctx, "tracker configuration",
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("log_filter_legacy", cfg.LogFilter.Legacy),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return cfg, nil
}

func (c *Config) applyFallbacks() error {
	if _, ok := os.LookupEnv(envTrackerPort); !ok {
		if raw, ok := os.LookupEnv(EnvPort); ok && raw != "" {
			port, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", ErrInvalidPort, err)
			}
			c.HTTP.Port = port
		}
	}

	if _, ok := os.LookupEnv(envTrackerMongoURI); !ok {
		if uri, ok := os.LookupEnv(EnvMongoURI); ok && uri != "" {
			c.Mongo.URI = uri
		}
	}
	return nil
}
