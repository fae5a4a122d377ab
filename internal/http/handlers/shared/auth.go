package shared

import (
	"time"

	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthErrorRules 登录相关错误映射，账号不存在与密码错误统一返回 login_invalid
var AuthErrorRules = []MappedError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.invalid_email"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
}

// TokenResponse 登录成功的返回
type TokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
	User      interface{} `json:"user"`
}

// RespondLogin 返回令牌与账号概要
func RespondLogin(c *gin.Context, token string, expiresAt time.Time, profile interface{}) {
	response.Success(c, TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      profile,
	})
}
