package service

import (
	"context"
	"errors"
	"time"

	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/pricing"
	"github.com/duomart-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（按当前条件解析的成交价）
type CartItemDetail struct {
	ProductID         uint            `json:"product_id"`
	Quantity          int             `json:"quantity"`
	UnitPrice         models.Money    `json:"unit_price"`
	LineTotal         models.Money    `json:"line_total"`
	Currency          string          `json:"currency"`
	PricingStrategyID uint            `json:"pricing_strategy_id"`
	Selection         string          `json:"selection"`
	Product           *models.Product `json:"product"`
}

// CartView 购物车视图
type CartView struct {
	Items       []CartItemDetail `json:"items"`
	Currency    string           `json:"currency"`
	TotalAmount models.Money     `json:"total_amount"`
}

// CartPricingInput 购物车计价条件
type CartPricingInput struct {
	PaymentMethod  string
	DeliveryMethod string
}

// UpsertCartItemInput 购物车更新输入
type UpsertCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	resolver    *PriceResolveService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, resolver *PriceResolveService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		resolver:    resolver,
	}
}

// ListByUser 获取用户购物车，每项按数量与用户客户类型解析价格
func (s *CartService) ListByUser(ctx context.Context, userID uint, input CartPricingInput) (*CartView, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartItemDetail, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 || !product.IsActive {
			_ = s.cartRepo.DeleteByUserAndProduct(userID, item.ProductID)
			continue
		}
		resolved, err := s.resolver.ResolvePrice(ctx, item.ProductID, pricing.Conditions{
			PaymentMethod:  input.PaymentMethod,
			DeliveryMethod: input.DeliveryMethod,
			CustomerType:   user.CustomerType,
			Quantity:       item.Quantity,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				logger.Ctx(ctx).Warnw("cart_item_unpriced", "user_id", userID, "product_id", item.ProductID, "error", err)
				continue
			}
			return nil, err
		}
		lineTotal := resolved.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, CartItemDetail{
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			UnitPrice:         resolved.Price,
			LineTotal:         models.NewMoneyFromDecimal(lineTotal),
			Currency:          resolved.Currency,
			PricingStrategyID: resolved.AppliedStrategyID,
			Selection:         resolved.Selection,
			Product:           product,
		})
		if view.Currency == "" {
			view.Currency = resolved.Currency
		}
		total = total.Add(lineTotal)
	}
	view.TotalAmount = models.NewMoneyFromDecimal(total)
	return view, nil
}

// MaxCartItems 购物车最多容纳的不同商品数
const MaxCartItems = 100

// UpsertItem 添加商品或覆盖其数量
func (s *CartService) UpsertItem(input UpsertCartItemInput) error {
	if input.UserID == 0 {
		return ErrUserNotFound
	}
	if input.Quantity < 1 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotAvailable
	}
	count, err := s.cartRepo.CountByUser(input.UserID)
	if err != nil {
		return err
	}
	// 覆盖已有行不占新名额
	if count >= MaxCartItems && !s.inCart(input.UserID, input.ProductID) {
		return ErrCartFull
	}
	now := time.Now()
	return s.cartRepo.Upsert(&models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *CartService) inCart(userID, productID uint) bool {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return false
	}
	for _, item := range items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(userID, productID uint) error {
	if userID == 0 {
		return ErrUserNotFound
	}
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}
