package admin

import (
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	admin, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handlershared.RespondMappedError(c, err, handlershared.AuthErrorRules, response.CodeInternal, "error.internal")
		return
	}
	handlershared.RequestLog(c).Infow("admin_login_succeeded", "admin_id", admin.ID)
	handlershared.RespondLogin(c, token, expiresAt, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"is_super": admin.IsSuper,
	})
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	query, ok := handlershared.ParseProductQuery(c)
	if !ok {
		return
	}
	products, total, err := h.ProductService.ListAdmin(query)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(query.Page, query.PageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, handlershared.ProductDetail{Product: product, Summary: service.SummaryOf(product)})
}

// CreateProduct 创建商品并生成默认主策略 (Admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req handlershared.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), service.AdminActor(adminID), req.ToInput())
	if err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.product_create_failed")
		return
	}
	response.Success(c, handlershared.ProductDetail{Product: product, Summary: service.SummaryOf(product)})
}

type createCategoryRequest struct {
	Slug      string                 `json:"slug" binding:"required"`
	NameJSON  map[string]interface{} `json:"name" binding:"required"`
	SortOrder int                    `json:"sort_order"`
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Create(service.CreateCategoryInput{
		Slug:      req.Slug,
		NameJSON:  req.NameJSON,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondPricingError(c, err, response.CodeInternal, "error.category_create_failed")
		return
	}

	response.Success(c, category)
}
