package service

import (
	"errors"
	"fmt"

	"github.com/duomart-next/internal/pricing"
)

// 错误分类：handler 通过 errors.Is 映射到响应码
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

// 资源不存在
var (
	ErrProductNotFound  = fmt.Errorf("%w: product", ErrNotFound)
	ErrStrategyNotFound = fmt.Errorf("%w: pricing strategy", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrNoActivePricing  = fmt.Errorf("%w: no active pricing strategy", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("%w: order", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("%w: user", ErrNotFound)
)

// 状态冲突
var (
	ErrSoleActiveStrategy   = fmt.Errorf("%w: cannot remove the only active pricing strategy", ErrConflict)
	ErrNoPromotionCandidate = fmt.Errorf("%w: no active strategy can be promoted to primary", ErrConflict)
	ErrNoPrimaryStrategy    = fmt.Errorf("%w: product has no primary pricing strategy", ErrConflict)
	ErrSlugExists           = fmt.Errorf("%w: slug already exists", ErrConflict)
	ErrCurrencyMismatch     = fmt.Errorf("%w: cart items use different currencies", ErrConflict)
	ErrPricingChanged       = fmt.Errorf("%w: pricing changed during checkout", ErrConflict)
)

// 请求参数错误
var (
	ErrVolumeDiscountSetInvalid = fmt.Errorf("%w: volume discount set is invalid", ErrBadRequest)
	ErrInvalidQuantity          = fmt.Errorf("%w: quantity must be at least 1", ErrBadRequest)
	ErrCartEmpty                = fmt.Errorf("%w: cart is empty", ErrBadRequest)
	ErrCartFull                 = fmt.Errorf("%w: cart is full", ErrBadRequest)
	ErrProductNotAvailable      = fmt.Errorf("%w: product is not available", ErrBadRequest)
	ErrInvalidCurrency          = fmt.Errorf("%w: unsupported currency", ErrBadRequest)
)

// 认证相关
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
)

// newValidationError 包装策略校验失败，保留 *pricing.ValidationError 供 handler 取详情
func newValidationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// fieldValidationError 构造单字段校验失败
func fieldValidationError(field, rule, reason string) error {
	return newValidationError(&pricing.ValidationError{Field: field, Rule: rule, Reason: reason})
}

// ValidationDetail 提取校验失败详情
func ValidationDetail(err error) (*pricing.ValidationError, bool) {
	var detail *pricing.ValidationError
	if errors.As(err, &detail) {
		return detail, true
	}
	return nil, false
}
