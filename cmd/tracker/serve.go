package main

import (
	"context"

	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

// serve запускает listen в отдельной горутине. Ошибка запуска отменяет
// контекст процесса через cancel и попадает в возвращаемый канал,
// чтобы ожидание сигнала завершилось и процесс вышел с ненулевым кодом.
func serve(ctx context.Context, cancel context.CancelFunc, listen func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := listen(); err != nil {
			logger.Log(ctx).Error(ctx, ErrStartHTTPServer, zap.Error(err))
			errCh <- err
			cancel()
		}
	}()
	return errCh
}
