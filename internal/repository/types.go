package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品列表排序方式
const (
	ProductSortDefault   = "default"
	ProductSortPriceAsc  = "price_asc"
	ProductSortPriceDesc = "price_desc"
	ProductSortDiscount  = "discount"
	ProductSortTitle     = "title"
)

// ProductListFilter 查询商品列表的过滤条件（价格过滤与排序只读取汇总字段）
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	OwnerID      uint
	Brand        string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	HasDiscount  *bool
	Sort         string
	Locale       string
	OnlyActive   bool
	WithCategory bool
}

// PeerFilter 竞争分析的同类商品过滤条件
type PeerFilter struct {
	ExcludeID  uint
	CategoryID uint
	Brand      string
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	Limit      int
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
