// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"newsnotes/pkg/logger"
)

// Hook - функция, выполняемая при завершении работы.
type Hook func(context.Context) error

// Константы для сообщений logger.
const (
	LogShutdownStarted = "shutdown signal received, running hooks"
	LogShutdownTimeout = "shutdown timeout exceeded"
	LogHookFailed      = "shutdown hook failed"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM
// (или до отмены ctx), затем выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	Run(ctx, timeout, hooks...)
}

// Run выполняет хуки параллельно и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)
	log.Info(ctx, LogShutdownStarted, zap.Int("hooks", len(hooks)), zap.Duration("timeout", timeout))

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for _, hook := range hooks {
		wgp.Add(1)
		go func(fn Hook) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, LogShutdownTimeout)
	}
}
