package shared

import (
	"errors"
	"strconv"

	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/i18n"
	"github.com/duomart-next/internal/logger"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 当前请求的日志（request_id 等字段由中间件写入 context）
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil || c.Request == nil {
		return logger.S()
	}
	log := logger.Ctx(c.Request.Context())
	if logger.RequestIDFrom(c.Request.Context()) == "" {
		if id := RequestID(c); id != "" {
			log = log.With("request_id", id)
		}
	}
	return log
}

// RespondError 返回本地化错误；有原始错误时记录，5xx 记为 error，其余为 warn
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	if err != nil {
		log := RequestLog(c)
		fields := []interface{}{"code", code, "key", key, "route", c.FullPath(), "error", err}
		if code >= response.CodeInternal {
			log.Errorw("handler_error", fields...)
		} else {
			log.Warnw("handler_error", fields...)
		}
	}
	response.Error(c, code, msg)
}

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// PricingErrorRules 定价相关业务错误映射（具体错误在前，错误族在后）
var PricingErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrStrategyNotFound, Code: response.CodeNotFound, Key: "error.strategy_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrNoActivePricing, Code: response.CodeNotFound, Key: "error.no_active_pricing"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
	{Target: service.ErrSoleActiveStrategy, Code: response.CodeConflict, Key: "error.sole_active_strategy"},
	{Target: service.ErrNoPromotionCandidate, Code: response.CodeConflict, Key: "error.no_promotion_candidate"},
	{Target: service.ErrNoPrimaryStrategy, Code: response.CodeConflict, Key: "error.no_primary_strategy"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
	{Target: service.ErrCurrencyMismatch, Code: response.CodeConflict, Key: "error.currency_mismatch"},
	{Target: service.ErrPricingChanged, Code: response.CodeConflict, Key: "error.pricing_changed"},
	{Target: service.ErrConflict, Code: response.CodeConflict, Key: "error.conflict"},
	{Target: service.ErrVolumeDiscountSetInvalid, Code: response.CodeBadRequest, Key: "error.volume_discount_invalid"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.invalid_quantity"},
	{Target: service.ErrCartEmpty, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrCartFull, Code: response.CodeBadRequest, Key: "error.cart_full"},
	{Target: service.ErrProductNotAvailable, Code: response.CodeBadRequest, Key: "error.product_not_available"},
	{Target: service.ErrInvalidCurrency, Code: response.CodeBadRequest, Key: "error.invalid_currency"},
	{Target: service.ErrBadRequest, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

// RespondMappedError 按映射表返回错误；校验错误附带规则说明与冲突策略，未命中时使用兜底错误并记录日志。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	if errors.Is(err, service.ErrValidation) {
		RespondValidationError(c, err)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// RespondValidationError 返回本地化的校验错误，data 中携带字段、规则与冲突策略 ID
func RespondValidationError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, "error.validation")
	detail, ok := service.ValidationDetail(err)
	if !ok {
		response.ErrorWithData(c, response.CodeBadRequest, msg, nil)
		return
	}
	ruleKey := "validation." + detail.Rule
	if i18n.Has(locale, ruleKey) || i18n.Has(i18n.DefaultLocale, ruleKey) {
		msg = msg + ": " + i18n.T(locale, ruleKey)
	}
	data := gin.H{
		"field": detail.Field,
		"rule":  detail.Rule,
	}
	if detail.ConflictID > 0 {
		id := strconv.FormatUint(uint64(detail.ConflictID), 10)
		msg = msg + " (" + i18n.Sprintf(locale, "validation.conflict_with", id) + ")"
		data["conflict_strategy_id"] = detail.ConflictID
	}
	RequestLog(c).Infow("pricing_validation_rejected", "field", detail.Field, "rule", detail.Rule, "conflict_id", detail.ConflictID)
	response.ErrorWithData(c, response.CodeBadRequest, msg, data)
}
