package worker

import (
	"context"
	"errors"
	"time"

	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/queue"

	"github.com/hibiken/asynq"
)

// PricingChangeApplier 处理定价变更事件（失效缓存）
type PricingChangeApplier interface {
	Apply(ctx context.Context, payload queue.PricingChangedPayload) error
}

// Consumer 定价事件消费者
type Consumer struct {
	applier PricingChangeApplier
}

// NewConsumer 创建消费者
func NewConsumer(applier PricingChangeApplier) *Consumer {
	return &Consumer{applier: applier}
}

// Mux 构建任务路由，统一记录任务耗时
func (c *Consumer) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(taskLogging)
	mux.HandleFunc(queue.TaskPricingChanged, c.handlePricingChanged)
	return mux
}

// taskLogging 把任务 ID 写入 context，Ctx 日志可据此串联
func taskLogging(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
		if id, ok := asynq.GetTaskID(ctx); ok {
			ctx = logger.WithFields(ctx, "task_id", id)
		}
		started := time.Now()
		err := next.ProcessTask(ctx, task)
		logger.Ctx(ctx).Debugw("worker_task_done", "task", task.Type(), "elapsed", time.Since(started), "failed", err != nil)
		return err
	})
}

func (c *Consumer) handlePricingChanged(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.applier == nil {
		return errors.New("pricing change applier is not configured")
	}
	payload, err := queue.ParsePricingChangedPayload(task)
	if err != nil {
		logger.Ctx(ctx).Warnw("worker_pricing_changed_payload_invalid", "error", err)
		// 载荷格式问题重试无意义
		return errors.Join(err, asynq.SkipRetry)
	}
	if err := c.applier.Apply(ctx, payload); err != nil {
		logger.Ctx(ctx).Warnw("worker_pricing_changed_apply_failed",
			"product_id", payload.ProductID,
			"version", payload.Version,
			"error", err,
		)
		return err
	}
	logger.Ctx(ctx).Debugw("worker_pricing_changed_applied",
		"product_id", payload.ProductID,
		"version", payload.Version,
		"reason", payload.Reason,
	)
	return nil
}
