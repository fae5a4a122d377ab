package service

import (
	"context"
	"strings"

	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"
	"github.com/duomart-next/internal/repository"

	"github.com/shopspring/decimal"
)

// 同类商品数量上限
const (
	defaultCompetitivePeerLimit = 20
	maxCompetitivePeerLimit     = 100
)

// AnalyzeOptions 竞争分析参数
type AnalyzeOptions struct {
	BandPercent *decimal.Decimal
	Limit       int
	SameBrand   bool
	Locale      string
}

// CompetitivePricingService 竞争定价分析服务
type CompetitivePricingService struct {
	productRepo  repository.ProductRepository
	strategyRepo repository.PricingStrategyRepository
	memberRepo   repository.AccountMemberRepository
	band         decimal.Decimal
	tolerance    decimal.Decimal
	peerLimit    int
}

// NewCompetitivePricingService 创建竞争定价分析服务
func NewCompetitivePricingService(productRepo repository.ProductRepository, strategyRepo repository.PricingStrategyRepository, memberRepo repository.AccountMemberRepository, cfg config.PricingConfig) *CompetitivePricingService {
	band := pricing.DefaultCompetitiveBandPercent
	if cfg.CompetitiveBandPercent > 0 {
		band = decimal.NewFromFloat(cfg.CompetitiveBandPercent)
	}
	tolerance := pricing.DefaultCompetitiveTolerancePercent
	if cfg.CompetitiveTolerancePercent > 0 {
		tolerance = decimal.NewFromFloat(cfg.CompetitiveTolerancePercent)
	}
	limit := cfg.CompetitivePeerLimit
	if limit <= 0 {
		limit = defaultCompetitivePeerLimit
	}
	return &CompetitivePricingService{
		productRepo:  productRepo,
		strategyRepo: strategyRepo,
		memberRepo:   memberRepo,
		band:         band,
		tolerance:    tolerance,
		peerLimit:    limit,
	}
}

// Analyze 将商品价格与同分类价格带内的其他商品比较；没有同类商品时返回 no_competition
func (s *CompetitivePricingService) Analyze(ctx context.Context, actor Actor, productID uint, opts AnalyzeOptions) (*pricing.CompetitiveResult, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := authorizeProduct(actor, product, s.memberRepo); err != nil {
		return nil, err
	}

	band := s.band
	if opts.BandPercent != nil {
		if opts.BandPercent.IsNegative() || opts.BandPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fieldValidationError("band_percent", "band_percent_out_of_range", "band_percent must be between 0 and 100")
		}
		band = *opts.BandPercent
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.peerLimit
	}
	if limit > maxCompetitivePeerLimit {
		limit = maxCompetitivePeerLimit
	}

	price, err := s.listedPrice(product)
	if err != nil {
		return nil, err
	}
	low, high := pricing.PriceBand(price, band)
	filter := repository.PeerFilter{
		ExcludeID:  product.ID,
		CategoryID: product.CategoryID,
		MinPrice:   low,
		MaxPrice:   high,
		Limit:      limit,
	}
	if opts.SameBrand {
		filter.Brand = strings.TrimSpace(product.Brand)
	}
	products, err := s.productRepo.ListPeers(filter)
	if err != nil {
		return nil, err
	}
	peers := make([]pricing.Peer, 0, len(products))
	for i := range products {
		peers = append(peers, pricing.Peer{
			ProductID:      products[i].ID,
			Title:          products[i].TitleJSON.Localized(opts.Locale),
			Brand:          products[i].Brand,
			Price:          products[i].CalculatedMinPrice.Decimal,
			HasAnyDiscount: products[i].HasAnyDiscount,
		})
	}
	result := pricing.AnalyzeCompetition(pricing.CompetitiveInput{
		Price:            price,
		HasAnyDiscount:   product.HasAnyDiscount,
		Peers:            peers,
		TolerancePercent: s.tolerance,
		Scale:            pricing.CurrencyScale(product.PriceCurrency),
	})
	return &result, nil
}

// listedPrice 商品对外标价：主策略最终价；没有主策略时退回汇总最低价
func (s *CompetitivePricingService) listedPrice(product *models.Product) (decimal.Decimal, error) {
	strategies, err := s.strategyRepo.ListByProduct(product.ID, true)
	if err != nil {
		return decimal.Zero, err
	}
	if primary := pricing.CurrentPrimary(strategies); primary != nil {
		return primary.FinalPriceAmount.Decimal, nil
	}
	return product.CalculatedMinPrice.Decimal, nil
}
