package shared

import (
	"strconv"
	"strings"
	"time"

	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BulkOrderRequest 批量条件参数
type BulkOrderRequest struct {
	MinQuantity               int              `json:"min_quantity" binding:"min=1"`
	MaxQuantity               *int             `json:"max_quantity"`
	AdditionalDiscountPerUnit *decimal.Decimal `json:"additional_discount_per_unit"`
}

func (r *BulkOrderRequest) toConfig() *models.BulkOrderConfig {
	if r == nil {
		return nil
	}
	return &models.BulkOrderConfig{
		MinQuantity:               r.MinQuantity,
		MaxQuantity:               r.MaxQuantity,
		AdditionalDiscountPerUnit: r.AdditionalDiscountPerUnit,
	}
}

// SeasonalRequest 季节条件参数
type SeasonalRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

func (r *SeasonalRequest) toConfig() *models.SeasonalConfig {
	if r == nil {
		return nil
	}
	return &models.SeasonalConfig{StartsAt: r.StartsAt.UTC(), EndsAt: r.EndsAt.UTC()}
}

// PriceRangeRequest 价格区间参数
type PriceRangeRequest struct {
	MinPrice *models.Money `json:"min_price"`
	MaxPrice *models.Money `json:"max_price"`
}

func (r *PriceRangeRequest) toConfig() *models.PriceRangeConfig {
	if r == nil {
		return nil
	}
	return &models.PriceRangeConfig{MinPrice: r.MinPrice, MaxPrice: r.MaxPrice}
}

// StrategyRequest 创建定价策略请求
type StrategyRequest struct {
	Name                    string              `json:"name" binding:"max=120"`
	ConditionCategory       string              `json:"condition_category" binding:"condition_category"`
	ConditionType           string              `json:"condition_type" binding:"condition_type"`
	PriceUnit               string              `json:"price_unit" binding:"max=32"`
	ConversionRate          *decimal.Decimal    `json:"conversion_rate"`
	BasePriceAmount         decimal.Decimal     `json:"base_price_amount"`
	CustomAdjustmentPercent decimal.NullDecimal `json:"custom_adjustment_percent"`
	BulkOrder               *BulkOrderRequest   `json:"bulk_order"`
	Seasonal                *SeasonalRequest    `json:"seasonal"`
	PriceRange              *PriceRangeRequest  `json:"price_range"`
	IsPrimary               bool                `json:"is_primary"`
	IsActive                *bool               `json:"is_active"`
}

// ToInput 转换为服务层输入
func (r StrategyRequest) ToInput() service.StrategyInput {
	return service.StrategyInput{
		Name:                    strings.TrimSpace(r.Name),
		ConditionCategory:       strings.TrimSpace(r.ConditionCategory),
		ConditionType:           strings.TrimSpace(r.ConditionType),
		PriceUnit:               strings.TrimSpace(r.PriceUnit),
		ConversionRate:          r.ConversionRate,
		BasePriceAmount:         r.BasePriceAmount,
		CustomAdjustmentPercent: r.CustomAdjustmentPercent,
		BulkOrder:               r.BulkOrder.toConfig(),
		Seasonal:                r.Seasonal.toConfig(),
		PriceRange:              r.PriceRange.toConfig(),
		IsPrimary:               r.IsPrimary,
		IsActive:                r.IsActive,
	}
}

// StrategyPatchRequest 更新定价策略请求（缺省字段不修改）
type StrategyPatchRequest struct {
	Name                    *string              `json:"name" binding:"omitempty,max=120"`
	ConditionCategory       *string              `json:"condition_category" binding:"omitempty,condition_category"`
	ConditionType           *string              `json:"condition_type" binding:"omitempty,condition_type"`
	PriceUnit               *string              `json:"price_unit" binding:"omitempty,max=32"`
	ConversionRate          *decimal.Decimal     `json:"conversion_rate"`
	BasePriceAmount         *decimal.Decimal     `json:"base_price_amount"`
	CustomAdjustmentPercent *decimal.NullDecimal `json:"custom_adjustment_percent"`
	ClearAdjustment         bool                 `json:"clear_adjustment"`
	BulkOrder               *BulkOrderRequest    `json:"bulk_order"`
	Seasonal                *SeasonalRequest     `json:"seasonal"`
	PriceRange              *PriceRangeRequest   `json:"price_range"`
	ClearPriceRange         bool                 `json:"clear_price_range"`
	IsPrimary               *bool                `json:"is_primary"`
	IsActive                *bool                `json:"is_active"`
}

// ToPatch 转换为服务层补丁
func (r StrategyPatchRequest) ToPatch() service.StrategyPatch {
	return service.StrategyPatch{
		Name:                    r.Name,
		ConditionCategory:       r.ConditionCategory,
		ConditionType:           r.ConditionType,
		PriceUnit:               r.PriceUnit,
		ConversionRate:          r.ConversionRate,
		BasePriceAmount:         r.BasePriceAmount,
		CustomAdjustmentPercent: r.CustomAdjustmentPercent,
		ClearAdjustment:         r.ClearAdjustment,
		BulkOrder:               r.BulkOrder.toConfig(),
		Seasonal:                r.Seasonal.toConfig(),
		PriceRange:              r.PriceRange.toConfig(),
		ClearPriceRange:         r.ClearPriceRange,
		IsPrimary:               r.IsPrimary,
		IsActive:                r.IsActive,
	}
}

// VolumeDiscountRuleRequest 单条批量折扣规则
type VolumeDiscountRuleRequest struct {
	Name                      string             `json:"name" binding:"max=120"`
	MinQuantity               int                `json:"min_quantity" binding:"min=1"`
	MaxQuantity               *int               `json:"max_quantity"`
	DiscountPercent           decimal.Decimal    `json:"discount_percent"`
	AdditionalDiscountPerUnit *decimal.Decimal   `json:"additional_discount_per_unit"`
	PriceRange                *PriceRangeRequest `json:"price_range"`
}

// VolumeDiscountRequest 替换批量折扣请求
type VolumeDiscountRequest struct {
	Rules []VolumeDiscountRuleRequest `json:"rules" binding:"required,min=1,dive"`
}

// ToRules 转换为服务层规则
func (r VolumeDiscountRequest) ToRules() []service.VolumeDiscountRule {
	rules := make([]service.VolumeDiscountRule, 0, len(r.Rules))
	for _, item := range r.Rules {
		rules = append(rules, service.VolumeDiscountRule{
			Name:                      strings.TrimSpace(item.Name),
			MinQuantity:               item.MinQuantity,
			MaxQuantity:               item.MaxQuantity,
			DiscountPercent:           item.DiscountPercent,
			AdditionalDiscountPerUnit: item.AdditionalDiscountPerUnit,
			PriceRange:                item.PriceRange.toConfig(),
		})
	}
	return rules
}

// ResolveQuery 价格解析查询参数
type ResolveQuery struct {
	PaymentMethod  string `form:"payment_method" binding:"omitempty,condition_type"`
	DeliveryMethod string `form:"delivery_method" binding:"omitempty,condition_type"`
	CustomerType   string `form:"customer_type" binding:"omitempty,condition_type"`
	Quantity       int    `form:"quantity" binding:"omitempty,min=0"`
	At             string `form:"at"`
}

// ToConditions 转换为解析条件；at 支持 RFC3339
func (q ResolveQuery) ToConditions() (pricing.Conditions, error) {
	conditions := pricing.Conditions{
		PaymentMethod:  q.PaymentMethod,
		DeliveryMethod: q.DeliveryMethod,
		CustomerType:   q.CustomerType,
		Quantity:       q.Quantity,
	}
	if raw := strings.TrimSpace(q.At); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return conditions, err
		}
		conditions.At = at
	}
	return conditions, nil
}

// CompetitiveQuery 竞争分析查询参数
type CompetitiveQuery struct {
	BandPercent *decimal.Decimal `form:"-"`
	Limit       int              `form:"limit" binding:"omitempty,min=0"`
	SameBrand   bool             `form:"same_brand"`
}

// ParseCompetitiveQuery 解析竞争分析参数
func ParseCompetitiveQuery(c *gin.Context) (service.AnalyzeOptions, bool) {
	var q CompetitiveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return service.AnalyzeOptions{}, false
	}
	opts := service.AnalyzeOptions{
		Limit:     q.Limit,
		SameBrand: q.SameBrand,
		Locale:    localeOf(c),
	}
	if raw := strings.TrimSpace(c.Query("band_percent")); raw != "" {
		band, err := decimal.NewFromString(raw)
		if err != nil {
			RespondError(c, response.CodeBadRequest, "error.bad_request", err)
			return service.AnalyzeOptions{}, false
		}
		opts.BandPercent = &band
	}
	return opts, true
}

// ParseIDParam 解析路径中的 ID 参数
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePage 读取 page/page_size，非法值回退默认
func ParsePage(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// ParseProductQuery 解析商品列表查询参数
func ParseProductQuery(c *gin.Context) (service.ProductQuery, bool) {
	page, pageSize := ParsePage(c)
	query := service.ProductQuery{
		Page:     page,
		PageSize: pageSize,
		Brand:    strings.TrimSpace(c.Query("brand")),
		Search:   strings.TrimSpace(c.Query("search")),
		Sort:     strings.TrimSpace(c.Query("sort")),
		Locale:   localeOf(c),
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			RespondError(c, response.CodeBadRequest, "error.bad_request", err)
			return query, false
		}
		query.CategoryID = uint(id)
	}
	for _, item := range []struct {
		key  string
		dest **decimal.Decimal
	}{
		{key: "min_price", dest: &query.MinPrice},
		{key: "max_price", dest: &query.MaxPrice},
	} {
		raw := strings.TrimSpace(c.Query(item.key))
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			RespondError(c, response.CodeBadRequest, "error.bad_request", err)
			return query, false
		}
		*item.dest = &value
	}
	if raw := strings.TrimSpace(c.Query("has_discount")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(c, response.CodeBadRequest, "error.bad_request", err)
			return query, false
		}
		query.HasDiscount = &value
	}
	return query, true
}
