package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/duomart-next/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "dm"

type store struct {
	client *redis.Client
	prefix string
}

var current atomic.Pointer[store]

func active() *store {
	s := current.Load()
	if s == nil || s.client == nil {
		return nil
	}
	return s
}

func (s *store) key(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.prefix
	}
	return s.prefix + ":" + key
}

// InitRedis 按配置创建客户端；未启用时缓存全部降级为空操作
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		current.Store(nil)
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	current.Store(&store{client: client, prefix: cfg.KeyPrefix()})
	return nil
}

// UseClient 替换当前客户端（测试或共享连接时使用），nil 表示禁用
func UseClient(client *redis.Client, prefix string) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	current.Store(&store{client: client, prefix: prefix})
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return active() != nil
}

// Client 获取 Redis 客户端，未启用返回 nil
func Client() *redis.Client {
	if s := active(); s != nil {
		return s.client
	}
	return nil
}

// Key 拼接带前缀的完整 key
func Key(parts ...string) string {
	prefix := defaultKeyPrefix
	if s := current.Load(); s != nil {
		prefix = s.prefix
	}
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// GetJSON 读取 JSON 缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	s := active()
	if s == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s := active()
	if s == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, keys ...string) error {
	s := active()
	if s == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = s.key(key)
	}
	return s.client.Del(ctx, full...).Err()
}

// Ping 检查连通性，未启用视为正常
func Ping(ctx context.Context) error {
	s := active()
	if s == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Close 关闭客户端
func Close() error {
	s := current.Swap(nil)
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
