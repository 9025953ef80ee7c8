package public

import (
	"strings"

	"github.com/roikaa/tamshopex/internal/constants"
	handlershared "github.com/roikaa/tamshopex/internal/http/handlers/shared"
	"github.com/roikaa/tamshopex/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "invalid user id", "invalid user id type")
}

// currentUserID 读取可选登录态用户 ID（未登录返回 0）
func currentUserID(c *gin.Context) uint {
	value, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

// resolveIdentity 解析购物车归属标识
// 登录用户优先，否则回退到 X-Session-ID 请求头。
func resolveIdentity(c *gin.Context) (service.Identity, bool) {
	if userID := currentUserID(c); userID != 0 {
		return service.UserIdentity(userID), true
	}
	sessionID := strings.TrimSpace(c.GetHeader(constants.SessionIDHeader))
	if sessionID != "" {
		return service.GuestIdentity(sessionID), true
	}
	return service.Identity{}, false
}
