package public

import (
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Pricing 卖家定价接口
func (h *Handler) Pricing() handlershared.PricingEndpoints {
	return handlershared.PricingEndpoints{
		Strategies:  h.PricingStrategyService,
		Competitive: h.CompetitivePricingService,
		Actor:       userActor,
	}
}

// CreateMyProduct 卖家创建商品（同时生成默认主策略）
func (h *Handler) CreateMyProduct(c *gin.Context) {
	actor, ok := userActor(c)
	if !ok {
		return
	}
	var req handlershared.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.product_create_failed")
		return
	}
	response.Success(c, handlershared.ProductDetail{Product: product, Summary: service.SummaryOf(product)})
}

// ListMyProducts 卖家商品列表
func (h *Handler) ListMyProducts(c *gin.Context) {
	actor, ok := userActor(c)
	if !ok {
		return
	}
	query, ok := handlershared.ParseProductQuery(c)
	if !ok {
		return
	}
	products, total, err := h.ProductService.ListMine(actor, query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(query.Page, query.PageSize, total))
}
