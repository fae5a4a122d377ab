package service

import (
	"context"

	"github.com/duomart-next/internal/cache"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/metrics"
	"github.com/duomart-next/internal/queue"
)

// 缓存失效的投递方式
const (
	invalidationQueued = "queued"
	invalidationDirect = "direct"
	invalidationFailed = "failed"
)

// PriceChangeNotifier 定价变更通知：事务提交后发送 pricing:changed 事件，队列不可用时同步失效缓存
type PriceChangeNotifier struct {
	queueClient *queue.Client
	metrics     *metrics.PricingMetrics
}

// NewPriceChangeNotifier 创建定价变更通知器
func NewPriceChangeNotifier(queueClient *queue.Client, m *metrics.PricingMetrics) *PriceChangeNotifier {
	return &PriceChangeNotifier{queueClient: queueClient, metrics: m}
}

// Notify 通知商品定价已变更；失败只记录日志，不影响已提交的事务
func (n *PriceChangeNotifier) Notify(ctx context.Context, productID uint, version int64, reason string) {
	if n == nil || productID == 0 {
		return
	}
	payload := queue.PricingChangedPayload{ProductID: productID, Version: version, Reason: reason}
	if n.queueClient != nil && n.queueClient.Enabled() {
		err := n.queueClient.EnqueuePricingChanged(ctx, payload)
		if err == nil {
			n.metrics.IncInvalidation(invalidationQueued)
			return
		}
		logger.Ctx(ctx).Warnw("pricing_changed_enqueue_failed",
			"product_id", productID,
			"version", version,
			"reason", reason,
			"error", err,
		)
	}
	if err := n.Apply(ctx, payload); err != nil {
		logger.Ctx(ctx).Errorw("pricing_cache_invalidate_failed",
			"product_id", productID,
			"version", version,
			"error", err,
		)
		return
	}
	n.metrics.IncInvalidation(invalidationDirect)
}

// Apply 执行缓存失效（worker 消费事件时调用）
func (n *PriceChangeNotifier) Apply(ctx context.Context, payload queue.PricingChangedPayload) error {
	if err := cache.InvalidateProductPricing(ctx, payload.ProductID, payload.Version); err != nil {
		if n != nil {
			n.metrics.IncInvalidation(invalidationFailed)
		}
		return err
	}
	return nil
}
