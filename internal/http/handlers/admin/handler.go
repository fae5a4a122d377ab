package admin

import (
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/provider"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler 后台管理接口
// 目录、定价与授权管理，均要求管理员令牌并经过 RBAC 判定。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.AdminID(c)
}

// adminActor 管理员可操作任意商品的定价
func adminActor(c *gin.Context) (service.Actor, bool) {
	adminID, ok := getAdminID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.AdminActor(adminID), true
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondPricingError(c *gin.Context, err error, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, handlershared.PricingErrorRules, fallbackCode, fallbackKey)
}
