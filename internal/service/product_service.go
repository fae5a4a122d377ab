package service

import (
	"context"
	"strings"
	"time"

	"github.com/duomart-next/internal/cache"
	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"
	"github.com/duomart-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 默认主策略名称
const defaultStrategyName = "default"

// ProductService 商品业务服务
type ProductService struct {
	repo            repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	memberRepo      repository.AccountMemberRepository
	strategies      *PricingStrategyService
	defaultCurrency string
	detailTTL       time.Duration
}

// NewProductService 创建商品服务
func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	memberRepo repository.AccountMemberRepository,
	strategies *PricingStrategyService,
	cfg config.PricingConfig,
) *ProductService {
	return &ProductService{
		repo:            repo,
		categoryRepo:    categoryRepo,
		memberRepo:      memberRepo,
		strategies:      strategies,
		defaultCurrency: cfg.DefaultCurrency,
		detailTTL:       cfg.ResolveCacheTTL(),
	}
}

// CreateProductInput 创建商品输入；BasePrice 用于生成默认主策略
type CreateProductInput struct {
	CategoryID      uint
	AccountID       *uint
	Slug            string
	Brand           string
	TitleJSON       map[string]interface{}
	DescriptionJSON map[string]interface{}
	BasePrice       decimal.Decimal
	PriceUnit       string
	PriceCurrency   string
	Images          []string
	Tags            []string
	IsActive        *bool
	SortOrder       int
}

// ProductQuery 商品列表查询
type ProductQuery struct {
	Page        int
	PageSize    int
	CategoryID  uint
	Brand       string
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	HasDiscount *bool
	Sort        string
	Locale      string
}

func (q ProductQuery) toFilter() repository.ProductListFilter {
	return repository.ProductListFilter{
		Page:         q.Page,
		PageSize:     q.PageSize,
		CategoryID:   q.CategoryID,
		Brand:        q.Brand,
		Search:       q.Search,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		HasDiscount:  q.HasDiscount,
		Sort:         q.Sort,
		Locale:       q.Locale,
		WithCategory: true,
	}
}

// ListPublic 获取公开商品列表（价格过滤与排序基于价格汇总）
func (s *ProductService) ListPublic(query ProductQuery) ([]models.Product, int64, error) {
	filter := query.toFilter()
	filter.OnlyActive = true
	return s.repo.List(filter)
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(query ProductQuery) ([]models.Product, int64, error) {
	return s.repo.List(query.toFilter())
}

// ListMine 获取卖家自己的商品
func (s *ProductService) ListMine(actor Actor, query ProductQuery) ([]models.Product, int64, error) {
	if actor.UserID == 0 {
		return nil, 0, ErrForbidden
	}
	filter := query.toFilter()
	filter.OwnerID = actor.UserID
	return s.repo.List(filter)
}

// GetPublic 获取公开商品详情（带缓存，定价变更时失效）
func (s *ProductService) GetPublic(ctx context.Context, id uint) (*models.Product, error) {
	if s.detailTTL > 0 {
		var cached models.Product
		hit, err := cache.GetProductDetail(ctx, id, &cached)
		if err != nil {
			logger.Ctx(ctx).Warnw("product_detail_cache_get_failed", "product_id", id, "error", err)
		}
		if hit {
			return &cached, nil
		}
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	if s.detailTTL > 0 {
		if err := cache.SetProductDetail(ctx, id, product, s.detailTTL); err != nil {
			logger.Ctx(ctx).Warnw("product_detail_cache_set_failed", "product_id", id, "error", err)
		}
	}
	return product, nil
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品并生成默认主策略
func (s *ProductService) Create(ctx context.Context, actor Actor, input CreateProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, fieldValidationError("slug", "required", "slug is required")
	}
	if len(input.TitleJSON) == 0 {
		return nil, fieldValidationError("title", "required", "title is required")
	}
	if input.BasePrice.IsNegative() {
		return nil, fieldValidationError("base_price", pricing.RuleNegativeBasePrice, "base price must not be negative")
	}
	rawCurrency := input.PriceCurrency
	if strings.TrimSpace(rawCurrency) == "" {
		rawCurrency = s.defaultCurrency
	}
	currency, ok := pricing.NormalizeCurrency(rawCurrency)
	if !ok {
		return nil, ErrInvalidCurrency
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	count, err := s.repo.CountBySlug(slug)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}
	if input.AccountID != nil && !actor.IsAdmin() {
		member, err := s.memberRepo.IsMember(*input.AccountID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrForbidden
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	product := &models.Product{
		OwnerID:         actor.UserID,
		AccountID:       input.AccountID,
		CategoryID:      category.ID,
		Brand:           strings.TrimSpace(input.Brand),
		Slug:            slug,
		TitleJSON:       models.JSON(input.TitleJSON),
		DescriptionJSON: models.JSON(input.DescriptionJSON),
		PriceCurrency:   currency,
		Images:          input.Images,
		Tags:            input.Tags,
		IsActive:        isActive,
		SortOrder:       input.SortOrder,
	}
	defaultStrategy := StrategyInput{
		Name:            defaultStrategyName,
		PriceUnit:       input.PriceUnit,
		BasePriceAmount: input.BasePrice,
		IsPrimary:       true,
	}

	err = s.strategies.runMutation(ctx, "create_product", constants.PriceChangeProductCreated, func(tx *gorm.DB, out *mutationOutcome) error {
		product.ID = 0
		if err := s.repo.WithTx(tx).Create(product); err != nil {
			return err
		}
		if _, err := s.strategies.createStrategyTx(tx, product, defaultStrategy); err != nil {
			return err
		}
		recomputed, err := s.strategies.summary.Recompute(tx, product.ID)
		if err != nil {
			return err
		}
		out.productID, out.version = product.ID, recomputed.Version
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetAdminByID(product.ID)
}
