package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 下单输入
type CheckoutInput struct {
	UserID         uint
	PaymentMethod  string
	DeliveryMethod string
}

// CheckoutService 下单服务：按解析价格生成订单，订单项记录命中的定价策略
type CheckoutService struct {
	cart        *CartService
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	strategyRepo repository.PricingStrategyRepository
}

// NewCheckoutService 创建下单服务
func NewCheckoutService(cart *CartService, orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, strategyRepo repository.PricingStrategyRepository) *CheckoutService {
	return &CheckoutService{
		cart:         cart,
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		strategyRepo: strategyRepo,
	}
}

// Checkout 将购物车转为订单
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	view, err := s.cart.ListByUser(ctx, input.UserID, CartPricingInput{
		PaymentMethod:  input.PaymentMethod,
		DeliveryMethod: input.DeliveryMethod,
	})
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, ErrCartEmpty
	}

	items := make([]models.OrderItem, 0, len(view.Items))
	total := decimal.Zero
	for _, detail := range view.Items {
		if detail.Currency != view.Currency {
			return nil, ErrCurrencyMismatch
		}
		strategyID := detail.PricingStrategyID
		items = append(items, models.OrderItem{
			ProductID:         detail.ProductID,
			PricingStrategyID: &strategyID,
			TitleJSON:         detail.Product.TitleJSON,
			UnitPrice:         detail.UnitPrice,
			Quantity:          detail.Quantity,
			TotalPrice:        detail.LineTotal,
		})
		total = total.Add(detail.LineTotal.Decimal)
	}
	order := &models.Order{
		OrderNo:     generateOrderNo(),
		UserID:      input.UserID,
		Status:      constants.OrderStatusCreated,
		Currency:    view.Currency,
		TotalAmount: models.NewMoneyFromDecimal(total),
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.confirmPricing(tx, view.Items); err != nil {
			return err
		}
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Infow("order_created",
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"items", len(items),
		"total_amount", order.TotalAmount.String(),
	)
	return order, nil
}

// confirmPricing 锁定商品行并确认解析价格后定价未再变更，命中的策略仍然存在
func (s *CheckoutService) confirmPricing(tx *gorm.DB, details []CartItemDetail) error {
	productRepo := s.productRepo.WithTx(tx)
	strategyRepo := s.strategyRepo.WithTx(tx)
	locked := make(map[uint]struct{}, len(details))
	for _, detail := range details {
		if _, ok := locked[detail.ProductID]; !ok {
			product, err := productRepo.GetForUpdate(detail.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return ErrProductNotAvailable
			}
			if detail.Product != nil && product.PricingVersion != detail.Product.PricingVersion {
				return ErrPricingChanged
			}
			locked[detail.ProductID] = struct{}{}
		}
		strategy, err := strategyRepo.GetByID(detail.PricingStrategyID)
		if err != nil {
			return err
		}
		if strategy == nil || !strategy.IsActive || strategy.ProductID != detail.ProductID {
			return ErrPricingChanged
		}
	}
	return nil
}

// GetOrder 获取用户订单
func (s *CheckoutService) GetOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 用户订单列表
func (s *CheckoutService) ListOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("DM%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
