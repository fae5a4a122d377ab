package repository

import (
	"errors"
	"time"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/models"

	"gorm.io/gorm"
)

// PricingStrategyRepository 定价策略数据访问接口
type PricingStrategyRepository interface {
	ListByProduct(productID uint, activeOnly bool) ([]models.PricingStrategy, error)
	GetByID(id uint) (*models.PricingStrategy, error)
	Create(strategy *models.PricingStrategy) error
	Save(strategy *models.PricingStrategy) error
	Delete(id uint) error
	DemoteOthers(productID, keepID uint) (int64, error)
	ListExpiredSeasonal(at time.Time, limit int) ([]models.PricingStrategy, error)
	WithTx(tx *gorm.DB) PricingStrategyRepository
}

// GormPricingStrategyRepository GORM 实现
type GormPricingStrategyRepository struct {
	db *gorm.DB
}

// NewPricingStrategyRepository 创建定价策略仓库
func NewPricingStrategyRepository(db *gorm.DB) *GormPricingStrategyRepository {
	return &GormPricingStrategyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPricingStrategyRepository) WithTx(tx *gorm.DB) PricingStrategyRepository {
	if tx == nil {
		return r
	}
	return &GormPricingStrategyRepository{db: tx}
}

// ListByProduct 获取商品的定价策略，按创建顺序返回
func (r *GormPricingStrategyRepository) ListByProduct(productID uint, activeOnly bool) ([]models.PricingStrategy, error) {
	query := r.db.Where("product_id = ?", productID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	strategies := make([]models.PricingStrategy, 0)
	if err := query.Order("created_at ASC, id ASC").Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

// GetByID 根据 ID 获取定价策略
func (r *GormPricingStrategyRepository) GetByID(id uint) (*models.PricingStrategy, error) {
	var strategy models.PricingStrategy
	if err := r.db.First(&strategy, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &strategy, nil
}

// Create 创建定价策略
func (r *GormPricingStrategyRepository) Create(strategy *models.PricingStrategy) error {
	return r.db.Create(strategy).Error
}

// Save 保存定价策略（全字段）
func (r *GormPricingStrategyRepository) Save(strategy *models.PricingStrategy) error {
	return r.db.Save(strategy).Error
}

// Delete 物理删除定价策略
func (r *GormPricingStrategyRepository) Delete(id uint) error {
	return r.db.Delete(&models.PricingStrategy{}, id).Error
}

// DemoteOthers 取消商品下除 keepID 外所有策略的主策略标记
func (r *GormPricingStrategyRepository) DemoteOthers(productID, keepID uint) (int64, error) {
	query := r.db.Model(&models.PricingStrategy{}).
		Where("product_id = ? AND is_primary = ?", productID, true)
	if keepID != 0 {
		query = query.Where("id <> ?", keepID)
	}
	result := query.Updates(map[string]interface{}{
		"is_primary": false,
		"updated_at": time.Now(),
	})
	return result.RowsAffected, result.Error
}

// ListExpiredSeasonal 获取活动窗口已结束但仍启用的季节性策略
// 商品唯一启用的策略不会被停用，因此不列出
func (r *GormPricingStrategyRepository) ListExpiredSeasonal(at time.Time, limit int) ([]models.PricingStrategy, error) {
	var candidates []models.PricingStrategy
	others := r.db.Table("pricing_strategies AS others").Select("1").
		Where("others.product_id = pricing_strategies.product_id AND others.id <> pricing_strategies.id AND others.is_active = ?", true)
	query := r.db.Where("pricing_strategies.is_active = ? AND pricing_strategies.condition_type = ?", true, constants.ConditionTypeSeasonal).
		Where("EXISTS (?)", others).
		Order("product_id ASC, id ASC")
	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}
	expired := make([]models.PricingStrategy, 0)
	for _, candidate := range candidates {
		if candidate.IsSeasonal() && candidate.ConditionConfig.Seasonal.ExpiredAt(at) {
			expired = append(expired, candidate)
			if limit > 0 && len(expired) >= limit {
				break
			}
		}
	}
	return expired, nil
}
