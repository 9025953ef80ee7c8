package public

import (
	"github.com/roikaa/tamshopex/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NewSession 签发游客会话标识
// GET /api/v1/session
// 游客将返回的 session_id 放入 X-Session-ID 请求头即可使用购物车。
func (h *Handler) NewSession(c *gin.Context) {
	response.Success(c, gin.H{"session_id": uuid.NewString()})
}
