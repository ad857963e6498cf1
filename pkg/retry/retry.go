// Package retry повторяет операции подключения к внешним хранилищам при старте сервиса.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"newsnotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogAttemptFailed = "connection attempt failed, retrying"
	LogRecovered     = "connection established after retry"
	LogGaveUp        = "connection attempts exhausted"
)

// ErrCanceled возвращается, если контекст отменен во время ожидания.
var ErrCanceled = errors.New("context canceled while waiting for retry")

// Policy описывает количество попыток и экспоненциальную задержку между ними.
type Policy struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Factor         float64
}

// DefaultPolicy возвращает политику для подключения при старте.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:       3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		Factor:         2,
	}
}

// Permanent помечает ошибку, после которой повторять бессмысленно.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Do выполняет op, пока она не завершится успешно, не вернет постоянную ошибку
// или не закончатся попытки. Возвращается ошибка последней попытки.
func Do(ctx context.Context, name string, policy Policy, op func(context.Context) error) error {
	log := logger.Log(ctx).With(zap.String("target", name))

	attempts := max(policy.Attempts, 1)
	backoff := policy.InitialBackoff

	var err error
	for attempt := 1; ; attempt++ {
		err = op(ctx)
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRecovered, zap.Int("attempts", attempt))
			}
			return nil
		}

		if !retryable(err) {
			var perm *permanentError
			if errors.As(err, &perm) {
				return perm.err
			}
			return err
		}

		if attempt >= attempts {
			log.Warn(ctx, LogGaveUp, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Info(ctx, LogAttemptFailed,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * policy.Factor)
		if policy.MaxBackoff > 0 && backoff > policy.MaxBackoff {
			backoff = policy.MaxBackoff
		}
	}
}
