package router

import (
	"context"
	"strings"
	"time"

	"github.com/duomart-next/internal/authz"
	"github.com/duomart-next/internal/cache"
	"github.com/duomart-next/internal/constants"
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/i18n"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/repository"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 返回令牌，或失败时的文案 key
func bearerToken(c *gin.Context) (string, string) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", "error.auth_header_missing"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", "error.auth_header_invalid"
	}
	return strings.TrimSpace(parts[1]), ""
}

func parseHS256(tokenString, secretKey string, claims jwt.Claims) bool {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	return err == nil && token.Valid
}

// AdminJWTMiddleware 管理员令牌校验，鉴权快照优先走缓存
func AdminJWTMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		tokenString, failKey := bearerToken(c)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}
		claims := &service.AdminJWTClaims{}
		if !parseHS256(tokenString, secretKey, claims) || claims.AdminID == 0 || adminRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		state, failKey := loadAdminState(c.Request.Context(), adminRepo, claims.AdminID)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}
		if claims.TokenVersion != state.TokenVersion || !issuedAfter(claims.IssuedAt, state.TokenInvalidBefore) {
			abortUnauthorized(c, "error.token_revoked")
			return
		}
		c.Set(handlershared.ContextKeyAdminID, claims.AdminID)
		c.Set(handlershared.ContextKeyAdminName, claims.Username)
		c.Set(handlershared.ContextKeyAdminIsSuper, state.IsSuper)
		c.Request = c.Request.WithContext(logger.WithFields(c.Request.Context(), "admin_id", claims.AdminID))
		c.Next()
	}
}

func loadAdminState(ctx context.Context, adminRepo repository.AdminRepository, adminID uint) (*cache.AdminAuthState, string) {
	if cached, hit, err := cache.GetAdminAuthState(ctx, adminID); err == nil && hit && cached != nil {
		return cached, ""
	}
	admin, err := adminRepo.GetByID(adminID)
	if err != nil || admin == nil {
		return nil, "error.token_invalid"
	}
	state := cache.BuildAdminAuthState(admin)
	_ = cache.SetAdminAuthState(ctx, state)
	return state, ""
}

// AdminRBACMiddleware 按路由模板 + 方法判定权限，超级管理员直接放行
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if handlershared.IsSuperAdmin(c) {
			c.Next()
			return
		}
		adminID, _ := c.Get(handlershared.ContextKeyAdminID)
		id, ok := adminID.(uint)
		if !ok || id == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceAdmin(id, resource, c.Request.Method)
		if err != nil {
			logger.Ctx(c.Request.Context()).Errorw("admin_rbac_enforce_failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Ctx(c.Request.Context()).Warnw("admin_rbac_permission_denied",
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// userAuthenticator 校验用户令牌并返回鉴权快照
type userAuthenticator struct {
	secretKey string
	userRepo  repository.UserRepository
}

func (a userAuthenticator) authenticate(c *gin.Context) (*service.UserJWTClaims, *cache.UserAuthState, string) {
	if a.secretKey == "" {
		return nil, nil, "error.jwt_secret_missing"
	}
	tokenString, failKey := bearerToken(c)
	if failKey != "" {
		return nil, nil, failKey
	}
	claims := &service.UserJWTClaims{}
	if !parseHS256(tokenString, a.secretKey, claims) || claims.UserID == 0 || a.userRepo == nil {
		return nil, nil, "error.token_invalid"
	}

	ctx := c.Request.Context()
	state, hit, err := cache.GetUserAuthState(ctx, claims.UserID)
	if err != nil || !hit || state == nil {
		user, err := a.userRepo.GetByID(claims.UserID)
		if err != nil || user == nil {
			return nil, nil, "error.token_invalid"
		}
		state = cache.BuildUserAuthState(user)
		_ = cache.SetUserAuthState(ctx, state)
	}
	if !isActiveUserStatus(state.Status) {
		return nil, nil, "error.user_disabled"
	}
	if claims.TokenVersion != state.TokenVersion || !issuedAfter(claims.IssuedAt, state.TokenInvalidBefore) {
		return nil, nil, "error.token_revoked"
	}
	return claims, state, ""
}

func setUserContext(c *gin.Context, claims *service.UserJWTClaims, state *cache.UserAuthState) {
	c.Set(handlershared.ContextKeyUserID, claims.UserID)
	c.Set(handlershared.ContextKeyUserEmail, claims.Email)
	c.Set(handlershared.ContextKeyCustomerType, state.CustomerType)
	c.Request = c.Request.WithContext(logger.WithFields(c.Request.Context(), "user_id", claims.UserID))
}

// UserJWTMiddleware 用户令牌校验，必须登录
func UserJWTMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	auth := userAuthenticator{secretKey: secretKey, userRepo: userRepo}
	return func(c *gin.Context) {
		claims, state, failKey := auth.authenticate(c)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}
		setUserContext(c, claims, state)
		c.Next()
	}
}

// OptionalUserMiddleware 携带有效令牌时写入用户身份，否则按游客继续
func OptionalUserMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	auth := userAuthenticator{secretKey: secretKey, userRepo: userRepo}
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		if claims, state, failKey := auth.authenticate(c); failKey == "" {
			setUserContext(c, claims, state)
		}
		c.Next()
	}
}

// issuedAfter 令牌签发时间不早于失效时间点（Unix 秒，0 表示未设置）
func issuedAfter(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return !issuedAt.Time.Before(time.Unix(invalidBeforeUnix, 0))
}

func isActiveUserStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), constants.UserStatusActive)
}
