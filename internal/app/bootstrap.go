package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/provider"
	"github.com/duomart-next/internal/router"
	"github.com/duomart-next/internal/worker"

	"go.uber.org/zap"
)

// 启动模式
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 && opts.Config != nil {
		opts.ShutdownTimeout = seconds(opts.Config.Server.ShutdownTimeoutSeconds)
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}

// BuildRunner 按模式组装服务
// api: HTTP；worker: 失效队列消费 + 季节策略清理；all: 两者
func BuildRunner(cfg *config.Config, mode string, log *zap.SugaredLogger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if log == nil {
		log = logger.S()
	}
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	if mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, errors.New("worker mode requires queue.enabled")
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	if mode != ModeWorker {
		if _, err := container.AuthService.EnsureBootstrapAdmin(
			cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword, !IsReleaseMode(cfg),
		); err != nil {
			log.Warnw("bootstrap_admin_skipped", "error", err)
		}
	}
	var services []Service

	if mode != ModeWorker {
		services = append(services, NewHTTPService(cfg.Server, router.SetupRouter(cfg, container)))
	}
	if mode != ModeAPI {
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container.PriceChangeNotifier)
			workerService, err := worker.NewQueueService(&cfg.Queue, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			log.Warnw("app_queue_disabled", "mode", mode, "hint", "price invalidation runs inline")
		}
		sweepService, err := worker.NewSweepService(cfg.Pricing.SweepCron, container.PricingStrategyService, container.Metrics)
		if err != nil {
			return nil, err
		}
		services = append(services, sweepService)
	}
	runner := NewRunner(log, services...)
	runner.OnClose(container.Close)
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	runner, err := BuildRunner(opts.Config, opts.Mode, opts.Logger)
	if err != nil {
		return err
	}
	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return runWithSignals(runner, opts)
}
