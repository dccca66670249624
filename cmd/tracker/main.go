package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	httpServer "exercisetracker/internal/tracker/adapters/http"
	"exercisetracker/internal/tracker/app"
	"exercisetracker/internal/tracker/config"
	"exercisetracker/internal/tracker/db"
	"exercisetracker/pkg/logger"
	"exercisetracker/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "TRACKER_LOGGER_MODE"
	EnvLoggerLevel = "TRACKER_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrOpenStore            = "failed to open document store"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "exercise tracker started"
	LogServiceShutdownDone = "exercise tracker shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingStore        = "closing document store"
	LogInitStore           = "initializing document store"
	LogInitServices        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStore, zap.String("driver", cfg.Store.Driver))
		store, err := db.Open(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrOpenStore, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		services := httpServer.Services{
			Users:     app.NewUserUseCase(store.Users),
			Exercises: app.NewExerciseUseCase(store.Users, time.Now),
			Logs:      app.NewLogUseCase(store.Users, cfg.LogFilter.Legacy),
		}

		log.Info(ctx, LogInitHTTPServer)
		json := jsoniter.ConfigCompatibleWithStandardLibrary
		server := fiber.New(fiber.Config{
			AppName:      "exercise-tracker",
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			JSONEncoder:  json.Marshal,
			JSONDecoder:  json.Unmarshal,
		})

		httpServer.SetupRouter(server, services, httpServer.Options{
			StaticDir: cfg.HTTP.StaticDir,
			ViewsDir:  cfg.HTTP.ViewsDir,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		listenErr := serve(ctx, cancel, func() error {
			return server.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true})
		})

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Хранилище закрывается только после того, как сервер дождался запросов.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				httpErr := server.ShutdownWithContext(ctx)
				log.Info(ctx, LogClosingStore)
				return errors.Join(httpErr, store.Close(ctx))
			},
		)

		log.Info(ctx, LogServiceShutdownDone)

		select {
		case <-listenErr:
			exitCode = 1
		default:
		}
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
