package worker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/metrics"

	"github.com/robfig/cron/v3"
)

const (
	defaultSweepSpec  = "@every 1m"
	defaultSweepBatch = 200
	sweepJobName      = "seasonal_sweep"
)

// SeasonalDeactivator 停用已过期的季节策略
type SeasonalDeactivator interface {
	DeactivateExpiredSeasonal(ctx context.Context, at time.Time, limit int) (int, error)
}

// SweepService 定时停用过期季节策略
type SweepService struct {
	spec    string
	batch   int
	target  SeasonalDeactivator
	metrics *metrics.PricingMetrics
	cron    *cron.Cron
	now     func() time.Time
}

// NewSweepService 创建季节策略清理服务
func NewSweepService(spec string, target SeasonalDeactivator, m *metrics.PricingMetrics) (*SweepService, error) {
	if target == nil {
		return nil, errors.New("sweep target is nil")
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = defaultSweepSpec
	}
	s := &SweepService{
		spec:    spec,
		batch:   defaultSweepBatch,
		target:  target,
		metrics: m,
		now:     time.Now,
	}
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// Name 服务名称
func (s *SweepService) Name() string {
	return "seasonal_sweep"
}

// Start 启动调度，阻塞到 ctx 结束
func (s *SweepService) Start(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return errors.New("sweep not initialized")
	}
	logger.Infow("seasonal_sweep_scheduled", "spec", s.spec)
	s.cron.Start()
	<-ctx.Done()
	return nil
}

// Stop 停止调度并等待执行中的任务结束
func (s *SweepService) Stop(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return nil
	}
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// RunOnce 执行一次清理，返回停用数量
func (s *SweepService) RunOnce(ctx context.Context) int {
	start := time.Now()
	count, err := s.target.DeactivateExpiredSeasonal(ctx, s.now(), s.batch)
	s.metrics.ObserveJob(sweepJobName, time.Since(start), err)
	if err != nil {
		logger.Warnw("seasonal_sweep_failed", "deactivated", count, "error", err)
		return count
	}
	if count > 0 {
		logger.Infow("seasonal_sweep_done", "deactivated", count)
	}
	return count
}
