package shared

import (
	"reflect"
	"strings"
	"sync"

	"github.com/duomart-next/internal/constants"
	"github.com/duomart-next/internal/pricing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 注册定价请求使用的自定义 binding 标签：condition_type / condition_category / currency_code
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonTagName)
		if err = v.RegisterValidation("condition_type", validateConditionType); err != nil {
			return
		}
		if err = v.RegisterValidation("condition_category", validateConditionCategory); err != nil {
			return
		}
		err = v.RegisterValidation("currency_code", validateCurrencyCode)
	})
	return err
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	}
	return name
}

func validateConditionType(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || constants.IsValidConditionType(value)
}

func validateConditionCategory(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || constants.IsValidConditionCategory(value)
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, ok := pricing.NormalizeCurrency(value)
	return ok
}
