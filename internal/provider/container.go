package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/duomart-next/internal/authz"
	"github.com/duomart-next/internal/cache"
	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/metrics"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/queue"
	"github.com/duomart-next/internal/repository"
	"github.com/duomart-next/internal/service"

	"gorm.io/gorm"
)

const redisPingTimeout = 2 * time.Second

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.PricingMetrics

	AdminRepo           repository.AdminRepository
	UserRepo            repository.UserRepository
	AccountMemberRepo   repository.AccountMemberRepository
	CategoryRepo        repository.CategoryRepository
	ProductRepo         repository.ProductRepository
	PricingStrategyRepo repository.PricingStrategyRepository
	CartRepo            repository.CartRepository
	OrderRepo           repository.OrderRepository

	AuthzService              *authz.Service
	AuthService               *service.AuthService
	UserAuthService           *service.UserAuthService
	CategoryService           *service.CategoryService
	PriceSummaryMaintainer    *service.PriceSummaryMaintainer
	PriceChangeNotifier       *service.PriceChangeNotifier
	PricingStrategyService    *service.PricingStrategyService
	PriceResolveService       *service.PriceResolveService
	CompetitivePricingService *service.CompetitivePricingService
	ProductService            *service.ProductService
	CartService               *service.CartService
	CheckoutService           *service.CheckoutService
}

// NewContainer 基于全局数据库连接组装依赖
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if models.DB == nil {
		return nil, errors.New("database is not initialized")
	}
	c := &Container{Config: cfg, Metrics: newMetrics(cfg.Metrics)}
	c.connectInfra()
	c.initRepositories(models.DB)
	if err := c.initServices(models.DB); err != nil {
		return nil, err
	}
	return c, nil
}

// connectInfra Redis 与队列不可用时降级运行，仅记录告警
func (c *Container) connectInfra() {
	if err := cache.InitRedis(&c.Config.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	} else if cache.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			logger.Warnw("provider_redis_unreachable", "addr", c.Config.Redis.Addr(), "error", err)
		}
	}

	client, err := queue.NewClient(&c.Config.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		return
	}
	c.QueueClient = client
}

func newMetrics(cfg config.MetricsConfig) *metrics.PricingMetrics {
	if !cfg.Enabled {
		return metrics.NewPricingMetrics(nil)
	}
	return metrics.NewPricingMetrics(metrics.NewRegistry())
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.AccountMemberRepo = repository.NewAccountMemberRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.PricingStrategyRepo = repository.NewPricingStrategyRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		return fmt.Errorf("init authz: %w", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("bootstrap builtin roles: %w", err)
	}
	c.AuthzService = authzService

	pricingCfg := c.Config.Pricing
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)

	c.PriceSummaryMaintainer = service.NewPriceSummaryMaintainer(c.ProductRepo, c.PricingStrategyRepo)
	c.PriceChangeNotifier = service.NewPriceChangeNotifier(c.QueueClient, c.Metrics)
	c.PricingStrategyService = service.NewPricingStrategyService(
		c.ProductRepo,
		c.PricingStrategyRepo,
		c.OrderRepo,
		c.AccountMemberRepo,
		c.PriceSummaryMaintainer,
		c.PriceChangeNotifier,
		c.Metrics,
		pricingCfg,
	)
	c.PriceResolveService = service.NewPriceResolveService(c.ProductRepo, c.PricingStrategyRepo, c.Metrics, pricingCfg)
	c.CompetitivePricingService = service.NewCompetitivePricingService(c.ProductRepo, c.PricingStrategyRepo, c.AccountMemberRepo, pricingCfg)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.AccountMemberRepo, c.PricingStrategyService, pricingCfg)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.UserRepo, c.PriceResolveService)
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.OrderRepo, c.CartRepo, c.ProductRepo, c.PricingStrategyRepo)
	return nil
}

// Close 释放队列客户端与 Redis 连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return errors.Join(c.QueueClient.Close(), cache.Close())
}
