package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID          uint        `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo     string      `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单号
	UserID      uint        `gorm:"not null;index" json:"user_id"`                             // 用户ID
	Status      string      `gorm:"type:varchar(20);not null;index" json:"status"`             // 订单状态
	Currency    string      `gorm:"type:varchar(10);not null" json:"currency"`                 // 币种
	TotalAmount Money       `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time   `json:"updated_at"`                                                // 更新时间
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`                 // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项表（记录下单时命中的定价策略，被引用的策略只能停用不能删除）
type OrderItem struct {
	ID                uint      `gorm:"primarykey" json:"id"`                                     // 主键
	OrderID           uint      `gorm:"index;not null" json:"order_id"`                           // 订单ID
	ProductID         uint      `gorm:"index;not null" json:"product_id"`                         // 商品ID
	PricingStrategyID *uint     `gorm:"index" json:"pricing_strategy_id,omitempty"`               // 命中的定价策略
	TitleJSON         JSON      `gorm:"type:json;not null" json:"title"`                          // 商品标题快照
	UnitPrice         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`  // 成交单价
	Quantity          int       `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 小计
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                                  // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
