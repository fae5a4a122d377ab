package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service 可独立启停的后台服务（HTTP、队列消费、定时任务）
type Service interface {
	Name() string
	// Start 阻塞运行直至 ctx 结束或出错
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 并行运行一组服务，任一退出即整体停机
type Runner struct {
	services []Service
	closers  []func() error
	log      *zap.SugaredLogger
}

// NewRunner 创建服务运行器
func NewRunner(log *zap.SugaredLogger, services ...Service) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{services: services, log: log}
}

// OnClose 注册所有服务停止后执行的资源释放
func (r *Runner) OnClose(fn func() error) {
	if fn != nil {
		r.closers = append(r.closers, fn)
	}
}

func (r *Runner) closeAll() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.log.Warnw("runner_close_failed", "error", err)
		}
	}
}

// Run 启动所有服务；ctx 取消视为正常停机
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, svc := range r.services {
		svc := svc
		group.Go(func() error {
			r.log.Infow("service_start", "service", svc.Name())
			err := svc.Start(groupCtx)
			r.log.Infow("service_exit", "service", svc.Name(), "error", err)
			if err != nil {
				return fmt.Errorf("%s: %w", svc.Name(), err)
			}
			// 服务自行退出也触发整体停机
			return serviceExitError{name: svc.Name()}
		})
	}
	group.Go(func() error {
		<-groupCtx.Done()
		r.stopAll(stopTimeout)
		return nil
	})

	err := group.Wait()
	r.closeAll()
	var exited serviceExitError
	switch {
	case errors.As(err, &exited):
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("service %s exited unexpectedly", exited.name)
	case errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}

func (r *Runner) stopAll(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, svc := range r.services {
		if err := svc.Stop(stopCtx); err != nil {
			r.log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}

type serviceExitError struct {
	name string
}

func (e serviceExitError) Error() string {
	return "service " + e.name + " exited"
}

// runWithSignals 收到信号后取消上下文并停机
func runWithSignals(runner *Runner, opts Options) error {
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout)
}
