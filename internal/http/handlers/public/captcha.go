package public

import (
	"github.com/roikaa/tamshopex/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CaptchaImage 获取图片验证码挑战
// GET /api/v1/public/captcha/image
func (h *Handler) CaptchaImage(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "captcha generate failed")
		return
	}
	response.Success(c, challenge)
}
