package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/duomart-next/internal/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// queryLogger 把 gorm 日志写入 zap，并带上 context 中的 request_id
type queryLogger struct {
	level gormlogger.LogLevel
	slow  time.Duration
}

func newQueryLogger(level string, slowThresholdMS int) *queryLogger {
	l := &queryLogger{level: parseGormLevel(level), slow: defaultSlowQuery}
	if slowThresholdMS > 0 {
		l.slow = time.Duration(slowThresholdMS) * time.Millisecond
	}
	return l
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.Ctx(ctx).Infow("gorm", "detail", fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.Ctx(ctx).Warnw("gorm", "detail", fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.Ctx(ctx).Errorw("gorm", "detail", fmt.Sprintf(msg, args...))
	}
}

// Trace 记录出错与慢查询；info 级别时记录全部 SQL
func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		logger.Ctx(ctx).Errorw("db_query_failed", "sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.Ctx(ctx).Warnw("db_query_slow", "sql", sql, "rows", rows, "elapsed", elapsed, "threshold", l.slow)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Ctx(ctx).Debugw("db_query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
