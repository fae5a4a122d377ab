package admin

import (
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/logger"

	"github.com/gin-gonic/gin"
)

// Pricing 管理端定价接口
func (h *Handler) Pricing() handlershared.PricingEndpoints {
	return handlershared.PricingEndpoints{
		Strategies:  h.PricingStrategyService,
		Competitive: h.CompetitivePricingService,
		Actor:       adminActor,
	}
}

// RecomputePricingSummary 按当前策略重算商品价格汇总（修复工具）
func (h *Handler) RecomputePricingSummary(c *gin.Context) {
	actor, ok := adminActor(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	summary, err := h.PricingStrategyService.RecomputeSummary(c.Request.Context(), actor, productID)
	if err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.pricing_mutation_failed")
		return
	}
	logger.Infow("admin_pricing_summary_recomputed",
		"admin_id", actor.AdminID,
		"product_id", productID,
		"pricing_version", summary.PricingVersion,
	)
	response.Success(c, summary)
}
