package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/duomart-next/internal/cache"
	"github.com/duomart-next/internal/config"
	adminhandlers "github.com/duomart-next/internal/http/handlers/admin"
	publichandlers "github.com/duomart-next/internal/http/handlers/public"
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 2 * time.Second

var errDatabaseUnavailable = errors.New("database is not initialized")

type limits struct {
	userLogin  RateLimitRule
	adminLogin RateLimitRule
	resolve    RateLimitRule
}

func newLimits(sec config.SecurityConfig) limits {
	login := func(name string) RateLimitRule {
		return RateLimitRule{
			Prefix:        cache.Key("rate", name),
			WindowSeconds: sec.LoginRateLimit.WindowSeconds,
			MaxRequests:   sec.LoginRateLimit.MaxRequests,
			MessageKey:    "error.login_too_many",
		}
	}
	return limits{
		userLogin:  login("login"),
		adminLogin: login("admin_login"),
		// 价格解析在 Redis 故障时放行，登录则拒绝
		resolve: RateLimitRule{
			Prefix:        cache.Key("rate", "resolve"),
			WindowSeconds: sec.ResolveRateLimit.WindowSeconds,
			MaxRequests:   sec.ResolveRateLimit.MaxRequests,
			MessageKey:    "error.rate_limited",
			FailOpen:      true,
		},
	}
}

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	if err := handlershared.RegisterValidators(); err != nil {
		logger.Errorw("router_register_validators_failed", "error", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(logger.Z()), CORSMiddleware(cfg.CORS))

	rl := newLimits(cfg.Security)
	redisClient := cache.Client()
	apiV1 := r.Group("/api/v1")
	registerPublicRoutes(apiV1, cfg, c, rl, redisClient)
	registerUserRoutes(apiV1, cfg, c)
	registerAdminRoutes(r, apiV1, cfg, c, rl, redisClient)

	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(c.Metrics.Handler()))
	}
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", readiness)
	return r
}

// 游客可访问的商品目录与价格解析
func registerPublicRoutes(api *gin.RouterGroup, cfg *config.Config, c *provider.Container, rl limits, redisClient *redis.Client) {
	h := publichandlers.New(c)

	public := api.Group("/public")
	public.GET("/products", h.GetProducts)
	public.GET("/products/:id", h.GetProduct)
	public.GET("/products/:id/price",
		OptionalUserMiddleware(cfg.UserJWT.SecretKey, c.UserRepo),
		RateLimitMiddleware(redisClient, rl.resolve, KeyByUserOrIP),
		h.ResolveProductPrice,
	)
	public.GET("/categories", h.GetCategories)

	api.POST("/auth/login", RateLimitMiddleware(redisClient, rl.userLogin, KeyByIPAndJSONField("email")), h.UserLogin)
}

// 登录用户：购物车、订单以及卖家自己的商品定价
func registerUserRoutes(api *gin.RouterGroup, cfg *config.Config, c *provider.Container) {
	h := publichandlers.New(c)
	pricing := h.Pricing()

	user := api.Group("", UserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
	user.GET("/me", h.GetCurrentUser)

	user.GET("/cart", h.GetCart)
	user.POST("/cart/items", h.UpsertCartItem)
	user.DELETE("/cart/items/:product_id", h.DeleteCartItem)
	user.POST("/checkout", h.Checkout)
	user.GET("/orders", h.ListOrders)
	user.GET("/orders/:id", h.GetOrder)

	mine := user.Group("/me")
	mine.GET("/products", h.ListMyProducts)
	mine.POST("/products", h.CreateMyProduct)
	registerPricingRoutes(mine, pricing)
}

func registerAdminRoutes(engine *gin.Engine, api *gin.RouterGroup, cfg *config.Config, c *provider.Container, rl limits, redisClient *redis.Client) {
	h := adminhandlers.New(c)

	admin := api.Group("/admin")
	admin.POST("/login", RateLimitMiddleware(redisClient, rl.adminLogin, KeyByIPAndJSONField("username")), h.AdminLogin)

	authorized := admin.Group("", AdminJWTMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
	authorized.GET("/products", h.GetAdminProducts)
	authorized.POST("/products", h.CreateProduct)
	authorized.GET("/products/:id", h.GetAdminProduct)
	authorized.POST("/products/:id/pricing-summary/recompute", h.RecomputePricingSummary)
	authorized.GET("/categories", h.GetAdminCategories)
	authorized.POST("/categories", h.CreateCategory)
	registerPricingRoutes(authorized, h.Pricing())

	authorized.GET("/authz/me", h.GetAuthzMe)
	authorized.GET("/authz/roles", h.ListAuthzRoles)
	authorized.GET("/authz/admins/:id/roles", h.GetAuthzAdminRoles)
	authorized.PUT("/authz/admins/:id/roles", h.SetAuthzAdminRoles)
	authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
		response.Success(ctx, permissionCatalog(engine.Routes()))
	})
}

// registerPricingRoutes 卖家与管理员共用的定价接口，归属校验由 Actor 决定
func registerPricingRoutes(group *gin.RouterGroup, p handlershared.PricingEndpoints) {
	group.GET("/products/:id/pricing-strategies", p.ListStrategies)
	group.POST("/products/:id/pricing-strategies", p.CreateStrategy)
	group.PUT("/pricing-strategies/:id", p.UpdateStrategy)
	group.DELETE("/pricing-strategies/:id", p.DeleteStrategy)
	group.PUT("/products/:id/volume-discounts", p.SetVolumeDiscounts)
	group.GET("/products/:id/competitive-analysis", p.AnalyzeCompetition)
}

// readiness 数据库与 Redis 均可用时返回 200
func readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks := gin.H{"database": "ok", "redis": "ok"}
	ready := true
	if err := pingDatabase(ctx); err != nil {
		checks["database"] = err.Error()
		ready = false
	}
	if !cache.Enabled() {
		checks["redis"] = "disabled"
	} else if err := cache.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		ready = false
	}
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"ready": ready, "checks": checks})
}

func pingDatabase(ctx context.Context) error {
	if models.DB == nil {
		return errDatabaseUnavailable
	}
	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
