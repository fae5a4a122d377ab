package app

import (
	"fmt"
	"strings"

	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/models"
)

// OpenDatabase 连接数据库并执行迁移
func OpenDatabase(cfg *config.Config) error {
	db := cfg.Database
	if err := models.InitDB(models.DBOptions{
		Driver: db.Driver,
		DSN:    db.DSN,
		Pool: models.DBPoolConfig{
			MaxOpenConns:           db.Pool.MaxOpenConns,
			MaxIdleConns:           db.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: db.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: db.Pool.ConnMaxIdleTimeSeconds,
		},
		LogLevel:        db.LogLevel,
		SlowThresholdMS: db.SlowThresholdMS,
	}); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// IsReleaseMode 是否生产模式
func IsReleaseMode(cfg *config.Config) bool {
	return strings.EqualFold(strings.TrimSpace(cfg.Server.Mode), "release")
}

// WeakSecrets 返回强度不足的签名密钥名称
func WeakSecrets(cfg *config.Config) []string {
	var weak []string
	for _, item := range []struct {
		name   string
		secret string
	}{
		{name: "jwt.secret", secret: cfg.JWT.SecretKey},
		{name: "user_jwt.secret", secret: cfg.UserJWT.SecretKey},
	} {
		if isWeakSecret(item.secret) {
			weak = append(weak, item.name)
		}
	}
	return weak
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	for _, marker := range []string{"change-me", "change-in-production", "your-secret-key"} {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}
