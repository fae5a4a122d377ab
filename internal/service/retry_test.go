package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsRetryableTxError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "serialization", err: fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "sqlite busy", err: errors.New("database is locked (5) (SQLITE_BUSY)"), want: true},
		{name: "validation", err: ErrValidation, want: false},
	}
	for _, tc := range cases {
		if got := isRetryableTxError(tc.err); got != tc.want {
			t.Fatalf("%s: isRetryableTxError=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestWithTxRetryStopsAfterAttempts(t *testing.T) {
	policy := newTxRetryPolicy(3, time.Millisecond, nil)
	calls := 0
	run := func(fn func(tx *gorm.DB) error) error {
		calls++
		return fn(nil)
	}
	err := withTxRetry(context.Background(), policy, "test", run, func(tx *gorm.DB) error {
		return &pgconn.PgError{Code: "40001"}
	})
	if err == nil || calls != 3 {
		t.Fatalf("expected 3 attempts and final error, got calls=%d err=%v", calls, err)
	}

	calls = 0
	err = withTxRetry(context.Background(), policy, "test", run, func(tx *gorm.DB) error {
		if calls < 2 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("expected success on second attempt, got calls=%d err=%v", calls, err)
	}

	calls = 0
	err = withTxRetry(context.Background(), policy, "test", run, func(tx *gorm.DB) error {
		return ErrConflict
	})
	if !errors.Is(err, ErrConflict) || calls != 1 {
		t.Fatalf("non retryable error should not retry, got calls=%d err=%v", calls, err)
	}
}
