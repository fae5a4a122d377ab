package public

import (
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取商品列表（按计算价格区间过滤与排序）
func (h *Handler) GetProducts(c *gin.Context) {
	query, ok := handlershared.ParseProductQuery(c)
	if !ok {
		return
	}
	products, total, err := h.ProductService.ListPublic(query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(query.Page, query.PageSize, total))
}

// GetProduct 获取商品详情与价格汇总
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetPublic(c.Request.Context(), id)
	if err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, handlershared.ProductDetail{Product: product, Summary: service.SummaryOf(product)})
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// ResolveProductPrice 按条件解析商品价格
// 未传 customer_type 且携带有效用户令牌时，使用该用户的客户类型。
func (h *Handler) ResolveProductPrice(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var query handlershared.ResolveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	conditions, err := query.ToConditions()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if conditions.CustomerType == "" {
		conditions.CustomerType = handlershared.CustomerType(c)
	}

	resolved, err := h.PriceResolveService.ResolvePrice(c.Request.Context(), id, conditions)
	if err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.pricing_resolve_failed")
		return
	}
	response.Success(c, handlershared.BuildResolvedPriceView(c, resolved))
}
