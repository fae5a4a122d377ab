package constants

// 定价条件分类常量
const (
	ConditionCategoryNone              = ""
	ConditionCategoryPaymentSettlement = "payment_settlement"
	ConditionCategoryOrderCondition    = "order_condition"
	ConditionCategoryCustomerType      = "customer_type"
	ConditionCategoryDelivery          = "delivery"
	ConditionCategorySeasonal          = "seasonal"
)

// 定价条件类型常量
const (
	ConditionTypeCashPayment      = "cash_payment"
	ConditionTypeCardPayment      = "card_payment"
	ConditionTypeBankTransfer     = "bank_transfer"
	ConditionTypeInstallment      = "installment"
	ConditionTypeBulkOrder        = "bulk_order"
	ConditionTypeCorporate        = "corporate"
	ConditionTypeWholesale        = "wholesale"
	ConditionTypeVIP              = "vip"
	ConditionTypePickup           = "pickup"
	ConditionTypeExpress          = "express"
	ConditionTypeStandardDelivery = "standard_delivery"
	ConditionTypeSeasonal         = "seasonal"
)

// 条件配置变体常量
const (
	ConditionKindNone      = "none"
	ConditionKindBulkOrder = "bulk_order"
	ConditionKindSeasonal  = "seasonal"
)

// conditionTypeCategory 条件类型 -> 所属分类
var conditionTypeCategory = map[string]string{
	ConditionTypeCashPayment:      ConditionCategoryPaymentSettlement,
	ConditionTypeCardPayment:      ConditionCategoryPaymentSettlement,
	ConditionTypeBankTransfer:     ConditionCategoryPaymentSettlement,
	ConditionTypeInstallment:      ConditionCategoryPaymentSettlement,
	ConditionTypeBulkOrder:        ConditionCategoryOrderCondition,
	ConditionTypeCorporate:        ConditionCategoryCustomerType,
	ConditionTypeWholesale:        ConditionCategoryCustomerType,
	ConditionTypeVIP:              ConditionCategoryCustomerType,
	ConditionTypePickup:           ConditionCategoryDelivery,
	ConditionTypeExpress:          ConditionCategoryDelivery,
	ConditionTypeStandardDelivery: ConditionCategoryDelivery,
	ConditionTypeSeasonal:         ConditionCategorySeasonal,
}

// conditionCategoryOrder 分类排序（主策略晋升时数值越小越优先）
var conditionCategoryOrder = map[string]int{
	ConditionCategoryNone:              0,
	ConditionCategoryPaymentSettlement: 1,
	ConditionCategoryOrderCondition:    2,
	ConditionCategoryCustomerType:      3,
	ConditionCategoryDelivery:          4,
	ConditionCategorySeasonal:          5,
}

// CategoryOfConditionType 返回条件类型所属分类
func CategoryOfConditionType(conditionType string) (string, bool) {
	category, ok := conditionTypeCategory[conditionType]
	return category, ok
}

// IsValidConditionType 判断条件类型是否合法
func IsValidConditionType(conditionType string) bool {
	_, ok := conditionTypeCategory[conditionType]
	return ok
}

// IsValidConditionCategory 判断条件分类是否合法
func IsValidConditionCategory(category string) bool {
	_, ok := conditionCategoryOrder[category]
	return ok
}

// ConditionCategoryOrder 返回分类排序值，未知分类排在最后
func ConditionCategoryOrder(category string) int {
	if order, ok := conditionCategoryOrder[category]; ok {
		return order
	}
	return len(conditionCategoryOrder)
}

// ConditionTypes 返回指定分类下的条件类型
func ConditionTypes(category string) []string {
	result := make([]string, 0, 4)
	for _, conditionType := range []string{
		ConditionTypeCashPayment,
		ConditionTypeCardPayment,
		ConditionTypeBankTransfer,
		ConditionTypeInstallment,
		ConditionTypeBulkOrder,
		ConditionTypeCorporate,
		ConditionTypeWholesale,
		ConditionTypeVIP,
		ConditionTypePickup,
		ConditionTypeExpress,
		ConditionTypeStandardDelivery,
		ConditionTypeSeasonal,
	} {
		if conditionTypeCategory[conditionType] == category {
			result = append(result, conditionType)
		}
	}
	return result
}

// 市场定位常量
const (
	MarketPositionLow           = "low"
	MarketPositionCompetitive   = "competitive"
	MarketPositionHigh          = "high"
	MarketPositionNoCompetition = "no_competition"
)

// 竞争分析建议常量
const (
	RecommendationRaisePrice        = "raise_price"
	RecommendationLowerPrice        = "lower_price"
	RecommendationMaintainPrice     = "maintain_price"
	RecommendationHighlightDiscount = "highlight_discount"
	RecommendationNoCompetition     = "no_competition"
)

// 价格变更原因常量
const (
	PriceChangeStrategyCreated   = "strategy_created"
	PriceChangeStrategyUpdated   = "strategy_updated"
	PriceChangeStrategyDeleted   = "strategy_deleted"
	PriceChangeVolumeDiscounts   = "volume_discounts_replaced"
	PriceChangeSeasonalExpired   = "seasonal_expired"
	PriceChangeSummaryRecomputed = "summary_recomputed"
	PriceChangeProductCreated    = "product_created"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 订单状态常量
const (
	OrderStatusCreated  = "created"
	OrderStatusCanceled = "canceled"
)

// 商品计价单位默认值
const DefaultPriceUnit = "piece"

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskPricingChanged = "pricing:changed"
)
