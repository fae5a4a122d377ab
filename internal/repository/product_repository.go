package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	GetForUpdate(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	ListPeers(filter PeerFilter) ([]models.Product, error)
	Create(product *models.Product) error
	CountBySlug(slug string) (int64, error)
	UpdatePriceSummary(productID uint, summary pricing.Summary, at time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	dialect := dialectOf(r.db)
	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		query = query.Where(brandEqualsClause(dialect), brand)
	}
	if filter.MinPrice != nil {
		query = query.Where("calculated_min_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("calculated_min_price <= ?", *filter.MaxPrice)
	}
	if filter.HasDiscount != nil {
		query = query.Where("has_any_discount = ?", *filter.HasDiscount)
	}
	if cond, args := productSearchClause(dialect, filter.Search); cond != "" {
		query = query.Where(cond, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	if err := query.Order(productListOrder(dialect, filter.Sort, filter.Locale)).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func productListOrder(dialect, sort, locale string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case ProductSortTitle:
		return localizedSortExpr(dialect, "title_json", locale) + " ASC, id ASC"
	case ProductSortPriceAsc:
		return "calculated_min_price ASC, id ASC"
	case ProductSortPriceDesc:
		return "calculated_min_price DESC, id DESC"
	case ProductSortDiscount:
		// best_discount_percent 为负数，越小折扣越大；无折扣排最后
		return "has_any_discount DESC, COALESCE(best_discount_percent, 0) ASC, id DESC"
	default:
		return "sort_order DESC, created_at DESC, id DESC"
	}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	query := r.db.Preload("Category").Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetForUpdate 在事务内锁定商品行，串行化同一商品的定价变更
func (r *GormProductRepository) GetForUpdate(id uint) (*models.Product, error) {
	var product models.Product
	query := r.db
	if dialectOf(r.db) != dialectSQLite {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListPeers 获取同分类、价格带内的其他上架商品
func (r *GormProductRepository) ListPeers(filter PeerFilter) ([]models.Product, error) {
	dialect := dialectOf(r.db)
	query := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Where("category_id = ?", filter.CategoryID).
		Where("id <> ?", filter.ExcludeID).
		Where("calculated_min_price >= ? AND calculated_min_price <= ?", filter.MinPrice, filter.MaxPrice)
	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		query = query.Where(brandEqualsClause(dialect), brand)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var products []models.Product
	if err := query.Order("calculated_min_price ASC, id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdatePriceSummary 写入价格汇总并递增定价版本，返回新版本号
func (r *GormProductRepository) UpdatePriceSummary(productID uint, summary pricing.Summary, at time.Time) (int64, error) {
	updates := map[string]interface{}{
		"base_min_price":        models.NewMoneyFromDecimal(summary.BaseMin),
		"base_max_price":        models.NewMoneyFromDecimal(summary.BaseMax),
		"calculated_min_price":  models.NewMoneyFromDecimal(summary.CalculatedMin),
		"calculated_max_price":  models.NewMoneyFromDecimal(summary.CalculatedMax),
		"has_any_discount":      summary.HasAnyDiscount,
		"best_discount_percent": summary.BestDiscountPercent,
		"pricing_version":       gorm.Expr("pricing_version + 1"),
		"pricing_updated_at":    at,
		"updated_at":            at,
	}
	result := r.db.Model(&models.Product{}).Where("id = ?", productID).Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	var version int64
	if err := r.db.Model(&models.Product{}).Where("id = ?", productID).Select("pricing_version").Scan(&version).Error; err != nil {
		return 0, err
	}
	return version, nil
}
