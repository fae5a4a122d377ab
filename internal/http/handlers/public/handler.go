package public

import (
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/provider"
	"github.com/duomart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler 前台接口：游客浏览与询价、用户购物车与下单、卖家自助定价
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.UserID(c)
}

// userActor 卖家只能操作自己账户下的商品
func userActor(c *gin.Context) (service.Actor, bool) {
	uid, ok := getUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.UserActor(uid), true
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondPricingError(c *gin.Context, err error, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, handlershared.PricingErrorRules, fallbackCode, fallbackKey)
}
