package shared

import (
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ActorResolver 从请求上下文解析操作者，失败时已写入响应
type ActorResolver func(c *gin.Context) (service.Actor, bool)

// PricingEndpoints 卖家端与管理端共用的定价接口，仅操作者来源不同
type PricingEndpoints struct {
	Strategies  *service.PricingStrategyService
	Competitive *service.CompetitivePricingService
	Actor       ActorResolver
}

// ListStrategies 获取商品定价策略与价格汇总
func (e PricingEndpoints) ListStrategies(c *gin.Context) {
	actor, ok := e.Actor(c)
	if !ok {
		return
	}
	productID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	activeOnly := c.Query("active_only") == "true"
	result, err := e.Strategies.ListStrategies(c.Request.Context(), actor, productID, activeOnly)
	if err != nil {
		RespondMappedError(c, err, PricingErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, result)
}

// CreateStrategy 创建定价策略
func (e PricingEndpoints) CreateStrategy(c *gin.Context) {
	actor, ok := e.Actor(c)
	if !ok {
		return
	}
	productID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req StrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	strategy, err := e.Strategies.CreateStrategy(c.Request.Context(), actor, productID, req.ToInput())
	if err != nil {
		RespondMappedError(c, err, PricingErrorRules, response.CodeInternal, "error.pricing_mutation_failed")
		return
	}
	response.Success(c, strategy)
}

// UpdateStrategy 更新定价策略
func (e PricingEndpoints) UpdateStrategy(c *gin.Context) {
	actor, ok := e.Actor(c)
	if !ok {
		return
	}
	strategyID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req StrategyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	strategy, err := e.Strategies.UpdateStrategy(c.Request.Context(), actor, strategyID, req.ToPatch())
	if err != nil {
		RespondMappedError(c, err, PricingErrorRules, response.CodeInternal, "error.pricing_mutation_failed")
		return
	}
	response.Success(c, strategy)
}

// DeleteStrategy 删除定价策略（被订单引用时软停用）
func (e PricingEndpoints) DeleteStrategy(c *gin.Context) {
	actor, ok := e.Actor(c)
	if !ok {
		return
	}
	strategyID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	result, err := e.Strategies.DeleteStrategy(c.Request.Context(), actor, strategyID)
	if err != nil {
		RespondMappedError(c, err, PricingErrorRules, response.CodeInternal, "error.pricing_mutation_failed")
		return
	}
	response.Success(c, result)
}

// SetVolumeDiscounts 整体替换批量折扣
func (e PricingEndpoints) SetVolumeDiscounts(c *gin.Context) {
	actor, ok := e.Actor(c)
	if !ok {
		return
	}
	productID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req VolumeDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, response.CodeBadRequest, "error.volume_discount_invalid", err)
		return
	}
	result, err := e.Strategies.SetVolumeDiscounts(c.Request.Context(), actor, productID, req.ToRules())
	if err != nil {
		RespondMappedError(c, err, PricingErrorRules, response.CodeInternal, "error.pricing_mutation_failed")
		return
	}
	response.Success(c, result)
}

// AnalyzeCompetition 竞争定价分析
func (e PricingEndpoints) AnalyzeCompetition(c *gin.Context) {
	actor, ok := e.Actor(c)
	if !ok {
		return
	}
	productID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	opts, ok := ParseCompetitiveQuery(c)
	if !ok {
		return
	}
	result, err := e.Competitive.Analyze(c.Request.Context(), actor, productID, opts)
	if err != nil {
		RespondMappedError(c, err, PricingErrorRules, response.CodeInternal, "error.pricing_analysis_failed")
		return
	}
	response.Success(c, BuildCompetitiveView(c, result))
}
