// Package config загружает конфигурацию сервисов через cleanenv.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgConfigurationLoaded  = "configuration loaded successfully"
	msgEnvFileMissing       = "env file not found, reading process environment"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// EnvFile - путь к необязательному файлу окружения.
var EnvFile = filepath.Join("deploy", ".env")

// Load заполняет T из EnvFile, если он существует, иначе из переменных окружения.
// В обоих случаях переменные окружения процесса имеют приоритет над файлом.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log := logger.Log(ctx)

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, EnvFile))

	var cfg T
	var err error

	if _, statErr := os.Stat(EnvFile); statErr == nil {
		err = cleanenv.ReadConfig(EnvFile, &cfg)
	} else {
		if !errors.Is(statErr, os.ErrNotExist) {
			log.Warn(ctx, msgEnvFileMissing, zap.Error(statErr))
		} else {
			log.Debug(ctx, msgEnvFileMissing)
		}
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, errFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrService, serviceName))

	return &cfg, nil
}
