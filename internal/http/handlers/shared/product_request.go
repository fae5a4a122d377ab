package shared

import (
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/service"

	"github.com/shopspring/decimal"
)

// ProductRequest 创建商品请求；base_price 生成默认主策略
type ProductRequest struct {
	CategoryID      uint                   `json:"category_id" binding:"required"`
	AccountID       *uint                  `json:"account_id"`
	Slug            string                 `json:"slug" binding:"required"`
	Brand           string                 `json:"brand"`
	TitleJSON       map[string]interface{} `json:"title" binding:"required"`
	DescriptionJSON map[string]interface{} `json:"description"`
	BasePrice       decimal.Decimal        `json:"base_price"`
	PriceUnit       string                 `json:"price_unit"`
	PriceCurrency   string                 `json:"price_currency" binding:"omitempty,currency_code"`
	Images          []string               `json:"images"`
	Tags            []string               `json:"tags"`
	IsActive        *bool                  `json:"is_active"`
	SortOrder       int                    `json:"sort_order"`
}

// ToInput 转换为服务层输入
func (r ProductRequest) ToInput() service.CreateProductInput {
	return service.CreateProductInput{
		CategoryID:      r.CategoryID,
		AccountID:       r.AccountID,
		Slug:            r.Slug,
		Brand:           r.Brand,
		TitleJSON:       r.TitleJSON,
		DescriptionJSON: r.DescriptionJSON,
		BasePrice:       r.BasePrice,
		PriceUnit:       r.PriceUnit,
		PriceCurrency:   r.PriceCurrency,
		Images:          r.Images,
		Tags:            r.Tags,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
	}
}

// ProductDetail 商品详情与价格汇总
type ProductDetail struct {
	Product *models.Product             `json:"product"`
	Summary service.ProductPriceSummary `json:"summary"`
}
