package logger

import (
	"context"
	"log"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

var global atomic.Pointer[zap.Logger]

type ctxKey int

const (
	requestIDKey ctxKey = iota
	fieldsKey
)

// Init 初始化全局日志
func Init(mode string, options Options) *zap.Logger {
	l := New(mode, options)
	global.Store(l)
	zap.ReplaceGlobals(l)
	return l
}

// Z 全局结构化日志；未初始化时返回输出到 stdout 的 info 级别日志
func Z() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	fallback := newConsole(zap.NewAtomicLevelAt(zap.InfoLevel))
	if global.CompareAndSwap(nil, fallback) {
		return fallback
	}
	return global.Load()
}

// S 返回 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// StdLogger 兼容标准库 log（命令行入口使用）
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Sync 刷新缓冲
func Sync() error {
	return Z().Sync()
}

// WithRequestID 将请求 ID 写入 context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFrom 读取请求 ID
func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithFields 向 context 追加日志字段，Ctx 输出时自动带上
func WithFields(ctx context.Context, kv ...interface{}) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(kv) == 0 {
		return ctx
	}
	existing, _ := ctx.Value(fieldsKey).([]interface{})
	merged := make([]interface{}, 0, len(existing)+len(kv))
	merged = append(merged, existing...)
	merged = append(merged, kv...)
	return context.WithValue(ctx, fieldsKey, merged)
}

// Ctx 返回绑定了请求 ID 与上下文字段的 SugaredLogger
func Ctx(ctx context.Context) *zap.SugaredLogger {
	log := S()
	if ctx == nil {
		return log
	}
	if id := RequestIDFrom(ctx); id != "" {
		log = log.With("request_id", id)
	}
	if fields, _ := ctx.Value(fieldsKey).([]interface{}); len(fields) > 0 {
		log = log.With(fields...)
	}
	return log
}

func Debugw(message string, kv ...interface{}) { S().Debugw(message, kv...) }

func Infow(message string, kv ...interface{}) { S().Infow(message, kv...) }

func Warnw(message string, kv ...interface{}) { S().Warnw(message, kv...) }

func Errorw(message string, kv ...interface{}) { S().Errorw(message, kv...) }
