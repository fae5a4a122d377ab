package public

import (
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// cartPricingQuery 购物车计价条件（查询参数）
type cartPricingQuery struct {
	PaymentMethod  string `form:"payment_method" binding:"omitempty,condition_type"`
	DeliveryMethod string `form:"delivery_method" binding:"omitempty,condition_type"`
}

// GetCart 获取购物车（每项按当前条件解析价格）
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var query cartPricingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CartService.ListByUser(c.Request.Context(), uid, service.CartPricingInput{
		PaymentMethod:  query.PaymentMethod,
		DeliveryMethod: query.DeliveryMethod,
	})
	if err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	response.Success(c, view)
}

// UpsertCartItem 新增或更新购物车项
func (h *Handler) UpsertCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.UpsertItem(service.UpsertCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}); err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseIDParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, productID); err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
