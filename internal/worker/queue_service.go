package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/queue"

	"github.com/hibiken/asynq"
)

// QueueService 消费 asynq 队列，随 app.Runner 启停
type QueueService struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewQueueService 创建队列消费服务，要求队列已启用
func NewQueueService(cfg *config.QueueConfig, consumer *Consumer) (*QueueService, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue is disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	return &QueueService{
		server: asynq.NewServer(opt, serverCfg),
		mux:    consumer.Mux(),
	}, nil
}

// Name 服务名称
func (s *QueueService) Name() string {
	return "worker"
}

// Start 先确认 Redis 可达再开始消费，阻塞到 ctx 结束；系统信号由 app 统一处理
func (s *QueueService) Start(ctx context.Context) error {
	if err := s.server.Ping(); err != nil {
		return fmt.Errorf("queue redis unreachable: %w", err)
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop 等待进行中的任务结束后关闭
func (s *QueueService) Stop(context.Context) error {
	s.server.Shutdown()
	return nil
}
