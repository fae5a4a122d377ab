package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres 可重试的错误码
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// txRetryPolicy 事务冲突重试策略
type txRetryPolicy struct {
	attempts int
	backoff  time.Duration
	metrics  *metrics.PricingMetrics
}

func newTxRetryPolicy(attempts int, backoff time.Duration, m *metrics.PricingMetrics) txRetryPolicy {
	if attempts <= 0 {
		attempts = 1
	}
	if backoff <= 0 {
		backoff = 20 * time.Millisecond
	}
	return txRetryPolicy{attempts: attempts, backoff: backoff, metrics: m}
}

// withTxRetry 执行事务，遇到串行化失败、死锁或 sqlite 忙时整体重试
func withTxRetry(ctx context.Context, policy txRetryPolicy, operation string, run func(fn func(tx *gorm.DB) error) error, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= policy.attempts; attempt++ {
		err = run(fn)
		if err == nil || !isRetryableTxError(err) || attempt == policy.attempts {
			return err
		}
		policy.metrics.IncTxRetry(operation)
		wait := policy.backoff*time.Duration(attempt) + time.Duration(rand.Int63n(int64(policy.backoff)))
		logger.Ctx(ctx).Warnw("pricing_tx_retry",
			"operation", operation,
			"attempt", attempt,
			"wait_ms", wait.Milliseconds(),
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}

func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}
