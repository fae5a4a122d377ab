package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 定价版本号的缓存有效期，过期后从数据库重新读取
const pricingVersionTTL = 24 * time.Hour

// 仅当新版本号更大时才写入，防止慢请求用旧版本覆盖失效事件写入的新版本
var setVersionIfGreaterScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if current and tonumber(current) >= tonumber(ARGV[1]) then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "EX", ARGV[2])
return 1
`)

func pricingVersionKey(productID uint) string {
	return fmt.Sprintf("pricing:version:%d", productID)
}

func resolvedPriceKey(productID uint, version int64, fingerprint string) string {
	return fmt.Sprintf("pricing:resolve:%d:v%d:%s", productID, version, fingerprint)
}

func productDetailKey(productID uint) string {
	return fmt.Sprintf("product:detail:%d", productID)
}

// ConditionFingerprint 计算解析条件的短摘要，用作缓存 key 的一部分
func ConditionFingerprint(parts ...string) string {
	h := sha1.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// GetPricingVersion 读取商品定价版本号
func GetPricingVersion(ctx context.Context, productID uint) (int64, bool, error) {
	s := active()
	if s == nil || productID == 0 {
		return 0, false, nil
	}
	raw, err := s.client.Get(ctx, s.key(pricingVersionKey(productID))).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return version, true, nil
}

// AdvancePricingVersion 推进商品定价版本号（只增不减）
func AdvancePricingVersion(ctx context.Context, productID uint, version int64) error {
	s := active()
	if s == nil || productID == 0 {
		return nil
	}
	seconds := int(pricingVersionTTL / time.Second)
	return setVersionIfGreaterScript.Run(ctx, s.client, []string{s.key(pricingVersionKey(productID))}, version, seconds).Err()
}

// GetResolvedPrice 读取价格解析缓存
func GetResolvedPrice(ctx context.Context, productID uint, version int64, fingerprint string, dest interface{}) (bool, error) {
	return GetJSON(ctx, resolvedPriceKey(productID, version, fingerprint), dest)
}

// SetResolvedPrice 写入价格解析缓存
func SetResolvedPrice(ctx context.Context, productID uint, version int64, fingerprint string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, resolvedPriceKey(productID, version, fingerprint), value, ttl)
}

// GetProductDetail 读取商品详情缓存
func GetProductDetail(ctx context.Context, productID uint, dest interface{}) (bool, error) {
	return GetJSON(ctx, productDetailKey(productID), dest)
}

// SetProductDetail 写入商品详情缓存
func SetProductDetail(ctx context.Context, productID uint, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, productDetailKey(productID), value, ttl)
}

// InvalidateProductPricing 商品定价变更后的缓存失效：推进版本号使旧解析结果不可达，并删除详情缓存
func InvalidateProductPricing(ctx context.Context, productID uint, version int64) error {
	if !Enabled() || productID == 0 {
		return nil
	}
	if version > 0 {
		if err := AdvancePricingVersion(ctx, productID, version); err != nil {
			return err
		}
	} else if err := Del(ctx, pricingVersionKey(productID)); err != nil {
		return err
	}
	return Del(ctx, productDetailKey(productID))
}
