package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/duomart-next/internal/cache"
	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/repository"
)

const (
	defaultBootstrapAdmin    = "admin"
	defaultBootstrapPassword = "admin123"
)

// AuthService 管理员认证服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
	}
}

// IssueToken 为管理员签发 Token
func (s *AuthService) IssueToken(admin *models.Admin) (string, time.Time, error) {
	now := time.Now()
	claims := AdminJWTClaims{
		AdminID:          admin.ID,
		Username:         admin.Username,
		TokenVersion:     admin.TokenVersion,
		RegisteredClaims: registeredClaims(fmt.Sprintf("admin:%d", admin.ID), now, tokenTTL(s.cfg.JWT)),
	}
	signed, err := signHS256(s.cfg.JWT.SecretKey, claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Login 管理员登录
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil || !passwordMatches(admin.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.adminRepo.TouchLastLogin(admin.ID); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(admin)); err != nil {
		logger.Ctx(ctx).Warnw("admin_auth_state_cache_failed", "admin_id", admin.ID, "error", err)
	}
	return admin, token, expiresAt, nil
}

// EnsureBootstrapAdmin 库中没有管理员时创建超级管理员，返回是否新建
// 未配置密码时使用默认密码，allowDefaultPassword 为 false 则拒绝
func (s *AuthService) EnsureBootstrapAdmin(username, password string, allowDefaultPassword bool) (bool, error) {
	count, err := s.adminRepo.Count()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = defaultBootstrapAdmin
	}
	usingDefault := password == ""
	if usingDefault {
		if !allowDefaultPassword {
			return false, fmt.Errorf("%w: bootstrap.admin_password is required in release mode", ErrBadRequest)
		}
		password = defaultBootstrapPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	if err := s.adminRepo.Create(&models.Admin{Username: username, PasswordHash: hash, IsSuper: true}); err != nil {
		return false, err
	}

	if usingDefault {
		logger.Warnw("bootstrap_admin_default_password", "username", username)
	} else {
		logger.Infow("bootstrap_admin_created", "username", username)
	}
	return true, nil
}
