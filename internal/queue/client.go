package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 高优先级队列名称
	CriticalQueue = constants.QueueCritical

	pricingChangedMaxRetry = 5
	pricingChangedTimeout  = 30 * time.Second
	// 同一版本的事件在保留期内只投递一次
	pricingChangedRetention = 10 * time.Minute

	defaultConcurrency    = 10
	serverShutdownTimeout = 8 * time.Second
)

// Client 队列客户端，未启用时所有投递为空操作
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueuePricingChanged 投递定价变更事件；带版本号的事件按 (商品, 版本) 去重
func (c *Client) EnqueuePricingChanged(ctx context.Context, payload PricingChangedPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewPricingChangedTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{
		asynq.Queue(CriticalQueue),
		asynq.MaxRetry(pricingChangedMaxRetry),
		asynq.Timeout(pricingChangedTimeout),
	}
	if payload.Version > 0 {
		options = append(options,
			asynq.TaskID(pricingChangedTaskID(payload)),
			asynq.Retention(pricingChangedRetention),
		)
	}
	_, err = c.inner.EnqueueContext(ctx, task, options...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func pricingChangedTaskID(payload PricingChangedPayload) string {
	return fmt.Sprintf("%s:%d:v%d", TaskPricingChanged, payload.ProductID, payload.Version)
}

// BuildServerConfig 生成消费端配置，日志接入应用 logger
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := defaultConcurrency
	queues := map[string]int{CriticalQueue: 2, DefaultQueue: 1}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	log := logger.S()
	return redisOpt(cfg), asynq.Config{
		Concurrency:     concurrency,
		Queues:          queues,
		ShutdownTimeout: serverShutdownTimeout,
		Logger:          log,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.Warnw("queue_task_failed",
				"task", task.Type(),
				"retried", retried,
				"max_retry", maxRetry,
				"error", err,
			)
		}),
	}
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	if cfg == nil {
		cfg = &config.QueueConfig{}
	}
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
