package shared

import (
	"github.com/duomart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入 gin.Context 的键
const (
	ContextKeyAdminID      = "admin_id"
	ContextKeyAdminName    = "username"
	ContextKeyAdminIsSuper = "admin_is_super"
	ContextKeyUserID       = "user_id"
	ContextKeyUserEmail    = "user_email"
	ContextKeyCustomerType = "customer_type"
	ContextKeyRequestID    = "request_id"
)

// contextUint 读取鉴权中间件写入的 ID，缺失视为未登录
func contextUint(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		if v == 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return v, true
	case int:
		if v <= 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// AdminID 当前管理员 ID，失败时已写入响应
func AdminID(c *gin.Context) (uint, bool) {
	return contextUint(c, ContextKeyAdminID, "error.admin_id_invalid", "error.admin_id_type_invalid")
}

// UserID 当前用户 ID，失败时已写入响应
func UserID(c *gin.Context) (uint, bool) {
	return contextUint(c, ContextKeyUserID, "error.user_id_invalid", "error.user_id_type_invalid")
}

// IsSuperAdmin 当前管理员是否超级管理员
func IsSuperAdmin(c *gin.Context) bool {
	return c.GetBool(ContextKeyAdminIsSuper)
}

// CustomerType 已登录用户的客户类型，游客为空
func CustomerType(c *gin.Context) string {
	return c.GetString(ContextKeyCustomerType)
}

// RequestID 当前请求 ID
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
