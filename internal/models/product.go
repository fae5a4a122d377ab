package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint        `gorm:"primarykey" json:"id"`                                          // 主键
	OwnerID         uint        `gorm:"not null;index" json:"owner_id"`                                // 卖家用户ID（0 表示平台自营）
	AccountID       *uint       `gorm:"index" json:"account_id,omitempty"`                             // 企业账户ID
	CategoryID      uint        `gorm:"not null;index" json:"category_id"`                             // 分类ID
	Brand           string      `gorm:"type:varchar(120);not null;default:'';index" json:"brand"`      // 品牌
	Slug            string      `gorm:"uniqueIndex;not null" json:"slug"`                              // 唯一标识
	TitleJSON       JSON        `gorm:"type:json;not null" json:"title"`                               // 多语言标题
	DescriptionJSON JSON        `gorm:"type:json" json:"description"`                                  // 多语言描述
	PriceCurrency   string      `gorm:"type:varchar(10);not null;default:'CNY'" json:"price_currency"` // 价格币种
	Images          StringArray `gorm:"type:json" json:"images"`                                       // 图片数组
	Tags            StringArray `gorm:"type:json" json:"tags"`                                         // 标签数组
	IsActive        bool        `gorm:"not null;index" json:"is_active"`                               // 是否上架
	SortOrder       int         `gorm:"default:0;index" json:"sort_order"`                             // 排序权重

	// 价格汇总（由定价策略派生，仅在策略变更事务内重算）
	BaseMinPrice        Money               `gorm:"type:decimal(20,2);not null;default:0" json:"base_min_price"`             // 基础价最小值
	BaseMaxPrice        Money               `gorm:"type:decimal(20,2);not null;default:0" json:"base_max_price"`             // 基础价最大值
	CalculatedMinPrice  Money               `gorm:"type:decimal(20,2);not null;default:0;index" json:"calculated_min_price"` // 最终价最小值
	CalculatedMaxPrice  Money               `gorm:"type:decimal(20,2);not null;default:0" json:"calculated_max_price"`       // 最终价最大值
	HasAnyDiscount      bool                `gorm:"not null;index" json:"has_any_discount"`                                  // 是否存在折扣策略
	BestDiscountPercent decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"best_discount_percent"`                         // 最大折扣百分比（负数）
	PricingVersion      int64               `gorm:"not null;default:0" json:"pricing_version"`                               // 定价版本（每次策略变更递增）
	PricingUpdatedAt    *time.Time          `json:"pricing_updated_at"`                                                      // 定价汇总更新时间

	CreatedAt time.Time      `gorm:"index" json:"created_at"` // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`          // 软删除时间

	// 关联
	Category   Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`          // 分类信息
	Strategies []PricingStrategy `gorm:"foreignKey:ProductID" json:"pricing_strategies,omitempty"` // 定价策略
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
