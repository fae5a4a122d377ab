package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/duomart-next/internal/constants"

	"github.com/shopspring/decimal"
)

// ErrConditionConfigInvalid 条件配置非法
var ErrConditionConfigInvalid = errors.New("condition config invalid")

// PricingStrategy 商品定价策略表（一行即一条按条件生效的价格规则）
type PricingStrategy struct {
	ID                      uint                `gorm:"primarykey" json:"id"`                                                                                                          // 主键
	ProductID               uint                `gorm:"not null;index;uniqueIndex:idx_pricing_strategy_single_primary,where:is_primary = true AND is_active = true" json:"product_id"` // 商品ID
	Name                    string              `gorm:"type:varchar(120);not null;default:''" json:"name"`                                                                             // 策略名称
	ConditionCategory       string              `gorm:"type:varchar(40);not null;default:'';index" json:"condition_category"`                                                          // 条件分类（空表示无条件）
	ConditionType           string              `gorm:"type:varchar(40);not null;default:'';index" json:"condition_type"`                                                              // 条件类型
	PriceUnit               string              `gorm:"type:varchar(20);not null;default:'piece'" json:"price_unit"`                                                                   // 计价单位
	ConversionRate          decimal.Decimal     `gorm:"type:decimal(20,6);not null" json:"conversion_rate"`                                                                            // 换算到商品标准单位的比率
	BasePriceAmount         Money               `gorm:"type:decimal(20,2);not null;default:0" json:"base_price_amount"`                                                                // 基础价格
	CustomAdjustmentPercent decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"custom_adjustment_percent"`                                                                           // 调整百分比（负数为折扣）
	ConditionConfig         ConditionConfig     `gorm:"type:json" json:"condition_config"`                                                                                             // 条件参数
	FinalPriceAmount        Money               `gorm:"type:decimal(20,2);not null;default:0" json:"final_price_amount"`                                                               // 最终价格（派生）
	HasDiscount             bool                `gorm:"not null" json:"has_discount"`                                                                                                  // 是否折扣（派生）
	MinEffectivePrice       Money               `gorm:"type:decimal(20,2);not null;default:0" json:"min_effective_price"`                                                              // 有效价格下界（派生）
	MaxEffectivePrice       Money               `gorm:"type:decimal(20,2);not null;default:0" json:"max_effective_price"`                                                              // 有效价格上界（派生）
	IsPrimary               bool                `gorm:"not null;index" json:"is_primary"`                                                                                              // 是否主策略
	IsActive                bool                `gorm:"not null;index" json:"is_active"`                                                                                               // 是否启用
	CreatedAt               time.Time           `gorm:"index" json:"created_at"`                                                                                                       // 创建时间
	UpdatedAt               time.Time           `json:"updated_at"`                                                                                                                    // 更新时间
}

// TableName 指定表名
func (PricingStrategy) TableName() string {
	return "pricing_strategies"
}

// IsBulkOrder 是否批量订购策略
func (s *PricingStrategy) IsBulkOrder() bool {
	return s != nil && s.ConditionType == constants.ConditionTypeBulkOrder && s.ConditionConfig.BulkOrder != nil
}

// IsSeasonal 是否季节性策略
func (s *PricingStrategy) IsSeasonal() bool {
	return s != nil && s.ConditionType == constants.ConditionTypeSeasonal && s.ConditionConfig.Seasonal != nil
}

// AdjustmentOrZero 返回调整百分比，未设置时为 0
func (s *PricingStrategy) AdjustmentOrZero() decimal.Decimal {
	if s == nil || !s.CustomAdjustmentPercent.Valid {
		return decimal.Zero
	}
	return s.CustomAdjustmentPercent.Decimal
}

// BulkOrderConfig 批量订购条件参数
type BulkOrderConfig struct {
	MinQuantity               int              `json:"min_quantity"`
	MaxQuantity               *int             `json:"max_quantity,omitempty"`
	AdditionalDiscountPerUnit *decimal.Decimal `json:"additional_discount_per_unit,omitempty"`
}

// Contains 判断数量是否落在区间内（max 为空表示无上限）
func (c BulkOrderConfig) Contains(quantity int) bool {
	if quantity < c.MinQuantity {
		return false
	}
	return c.MaxQuantity == nil || quantity <= *c.MaxQuantity
}

// Overlaps 判断两个数量区间是否重叠：除非一方上限严格小于另一方下限，否则视为重叠
func (c BulkOrderConfig) Overlaps(other BulkOrderConfig) bool {
	if c.MaxQuantity != nil && *c.MaxQuantity < other.MinQuantity {
		return false
	}
	if other.MaxQuantity != nil && *other.MaxQuantity < c.MinQuantity {
		return false
	}
	return true
}

// RangeLabel 区间的可读表示
func (c BulkOrderConfig) RangeLabel() string {
	if c.MaxQuantity == nil {
		return fmt.Sprintf("[%d, +inf)", c.MinQuantity)
	}
	return fmt.Sprintf("[%d, %d]", c.MinQuantity, *c.MaxQuantity)
}

// SeasonalConfig 季节性条件参数，区间左闭右开
type SeasonalConfig struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Contains 判断时间点是否处于活动窗口
func (c SeasonalConfig) Contains(at time.Time) bool {
	return !at.Before(c.StartsAt) && at.Before(c.EndsAt)
}

// ExpiredAt 判断在给定时间是否已结束
func (c SeasonalConfig) ExpiredAt(at time.Time) bool {
	return !at.Before(c.EndsAt)
}

// PriceRangeConfig 可选的价格上下限
type PriceRangeConfig struct {
	MinPrice *Money `json:"min_price,omitempty"`
	MaxPrice *Money `json:"max_price,omitempty"`
}

// ConditionConfig 条件参数（按 kind 区分的变体，仅携带对应字段）
type ConditionConfig struct {
	Kind       string            `json:"kind"`
	BulkOrder  *BulkOrderConfig  `json:"bulk_order,omitempty"`
	Seasonal   *SeasonalConfig   `json:"seasonal,omitempty"`
	PriceRange *PriceRangeConfig `json:"price_range,omitempty"`
}

// NoConditionConfig 无条件参数
func NoConditionConfig() ConditionConfig {
	return ConditionConfig{Kind: constants.ConditionKindNone}
}

// NewBulkOrderConfig 创建批量订购条件参数
func NewBulkOrderConfig(minQuantity int, maxQuantity *int, extraPerUnit *decimal.Decimal) (ConditionConfig, error) {
	cfg := BulkOrderConfig{
		MinQuantity:               minQuantity,
		MaxQuantity:               maxQuantity,
		AdditionalDiscountPerUnit: extraPerUnit,
	}
	if err := cfg.validate(); err != nil {
		return ConditionConfig{}, err
	}
	return ConditionConfig{Kind: constants.ConditionKindBulkOrder, BulkOrder: &cfg}, nil
}

// NewSeasonalConfig 创建季节性条件参数
func NewSeasonalConfig(startsAt, endsAt time.Time) (ConditionConfig, error) {
	cfg := SeasonalConfig{StartsAt: startsAt.UTC(), EndsAt: endsAt.UTC()}
	if err := cfg.validate(); err != nil {
		return ConditionConfig{}, err
	}
	return ConditionConfig{Kind: constants.ConditionKindSeasonal, Seasonal: &cfg}, nil
}

// WithPriceRange 附加价格上下限
func (c ConditionConfig) WithPriceRange(minPrice, maxPrice *Money) (ConditionConfig, error) {
	if minPrice == nil && maxPrice == nil {
		c.PriceRange = nil
		return c, nil
	}
	pr := PriceRangeConfig{MinPrice: minPrice, MaxPrice: maxPrice}
	if err := pr.validate(); err != nil {
		return ConditionConfig{}, err
	}
	c.PriceRange = &pr
	return c, nil
}

// ConditionKindFor 条件类型对应的配置变体
func ConditionKindFor(conditionType string) string {
	switch conditionType {
	case constants.ConditionTypeBulkOrder:
		return constants.ConditionKindBulkOrder
	case constants.ConditionTypeSeasonal:
		return constants.ConditionKindSeasonal
	default:
		return constants.ConditionKindNone
	}
}

// CheckFor 校验配置变体与条件类型一致
func (c ConditionConfig) CheckFor(conditionType string) error {
	kind := c.Kind
	if kind == "" {
		kind = constants.ConditionKindNone
	}
	expected := ConditionKindFor(conditionType)
	if kind != expected {
		return fmt.Errorf("%w: condition_type %q requires kind %q, got %q", ErrConditionConfigInvalid, conditionType, expected, kind)
	}
	switch kind {
	case constants.ConditionKindBulkOrder:
		if c.BulkOrder == nil {
			return fmt.Errorf("%w: bulk_order parameters are required", ErrConditionConfigInvalid)
		}
		if err := c.BulkOrder.validate(); err != nil {
			return err
		}
	case constants.ConditionKindSeasonal:
		if c.Seasonal == nil {
			return fmt.Errorf("%w: seasonal window is required", ErrConditionConfigInvalid)
		}
		if err := c.Seasonal.validate(); err != nil {
			return err
		}
	}
	if kind != constants.ConditionKindBulkOrder && c.BulkOrder != nil {
		return fmt.Errorf("%w: bulk_order parameters are only allowed for bulk_order", ErrConditionConfigInvalid)
	}
	if kind != constants.ConditionKindSeasonal && c.Seasonal != nil {
		return fmt.Errorf("%w: seasonal window is only allowed for seasonal", ErrConditionConfigInvalid)
	}
	if c.PriceRange != nil {
		return c.PriceRange.validate()
	}
	return nil
}

func (c BulkOrderConfig) validate() error {
	if c.MinQuantity < 1 {
		return fmt.Errorf("%w: min_quantity must be at least 1", ErrConditionConfigInvalid)
	}
	if c.MaxQuantity != nil && *c.MaxQuantity <= c.MinQuantity {
		return fmt.Errorf("%w: max_quantity must be greater than min_quantity", ErrConditionConfigInvalid)
	}
	if c.AdditionalDiscountPerUnit != nil && c.AdditionalDiscountPerUnit.IsNegative() {
		return fmt.Errorf("%w: additional_discount_per_unit must not be negative", ErrConditionConfigInvalid)
	}
	return nil
}

func (c SeasonalConfig) validate() error {
	if c.StartsAt.IsZero() || c.EndsAt.IsZero() {
		return fmt.Errorf("%w: seasonal window requires starts_at and ends_at", ErrConditionConfigInvalid)
	}
	if !c.EndsAt.After(c.StartsAt) {
		return fmt.Errorf("%w: ends_at must be after starts_at", ErrConditionConfigInvalid)
	}
	return nil
}

func (c PriceRangeConfig) validate() error {
	if c.MinPrice != nil && c.MinPrice.IsNegative() {
		return fmt.Errorf("%w: min_price must not be negative", ErrConditionConfigInvalid)
	}
	if c.MaxPrice != nil && c.MaxPrice.IsNegative() {
		return fmt.Errorf("%w: max_price must not be negative", ErrConditionConfigInvalid)
	}
	if c.MinPrice != nil && c.MaxPrice != nil && c.MinPrice.GreaterThan(c.MaxPrice.Decimal) {
		return fmt.Errorf("%w: min_price must not exceed max_price", ErrConditionConfigInvalid)
	}
	return nil
}

// Value 实现 driver.Valuer 接口
func (c ConditionConfig) Value() (driver.Value, error) {
	if c.Kind == "" {
		c.Kind = constants.ConditionKindNone
	}
	return json.Marshal(c)
}

// Scan 实现 sql.Scanner 接口
func (c *ConditionConfig) Scan(value interface{}) error {
	raw, ok := rawJSONBytes(value)
	if !ok {
		if value != nil {
			if _, isBytes := value.([]byte); !isBytes {
				if _, isString := value.(string); !isString {
					return scanTypeError("condition_config", value)
				}
			}
		}
		*c = NoConditionConfig()
		return nil
	}
	var parsed ConditionConfig
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	if parsed.Kind == "" {
		parsed.Kind = constants.ConditionKindNone
	}
	*c = parsed
	return nil
}
