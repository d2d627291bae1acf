// Package utils предоставляет вспомогательные функции для graceful shutdown.
//
// Graceful Shutdown - корректное завершение режима -watch при получении сигнала:
//   - SIGINT (Ctrl+C)
//   - SIGTERM (kill)
//
// Использование:
//
//	ctx, shutdown := utils.SetupGracefulShutdownWithContext()
//	defer shutdown()
package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupGracefulShutdown устанавливает обработчик сигналов для graceful shutdown.
//
// При получении SIGINT или SIGTERM вызывается cancel(). Возвращает функцию,
// которую следует вызвать через defer: она снимает обработчик и закрывает лог.
func SetupGracefulShutdown(cancel context.CancelFunc) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
		Close()
	}
}

// SetupGracefulShutdownWithContext создаёт контекст и настраивает graceful shutdown.
func SetupGracefulShutdownWithContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	shutdown := SetupGracefulShutdown(cancel)
	return ctx, func() {
		shutdown()
		cancel()
	}
}
