package service

import (
	"strings"
	"sync"
	"time"

	"github.com/roikaa/tamshopex/internal/config"
	"github.com/roikaa/tamshopex/internal/constants"

	"github.com/mojocn/base64Captcha"
)

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 验证码服务
// 按场景开关决定是否需要验证码，仅支持图片验证码。
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu         sync.Mutex
	imageStore base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s.cfg.Provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfigInvalid
	}

	store := s.ensureImageStore()
	driver := base64Captcha.NewDriverString(
		resolveImageDimension(s.cfg.Image.Height, 60),
		resolveImageDimension(s.cfg.Image.Width, 200),
		s.cfg.Image.NoiseCount,
		s.cfg.Image.ShowLine,
		resolveCodeLength(s.cfg.Image.Length),
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, store)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}

	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 按场景校验验证码（场景未开启时直接放行）
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.isSceneEnabled(scene) {
		return nil
	}

	switch s.cfg.Provider {
	case constants.CaptchaProviderImage:
		captchaID := strings.TrimSpace(payload.CaptchaID)
		captchaCode := strings.TrimSpace(payload.CaptchaCode)
		if captchaID == "" || captchaCode == "" {
			return ErrCaptchaRequired
		}
		if !s.ensureImageStore().Verify(captchaID, captchaCode, true) {
			return ErrCaptchaInvalid
		}
		return nil
	default:
		return ErrCaptchaConfigInvalid
	}
}

func (s *CaptchaService) isSceneEnabled(scene string) bool {
	if s == nil || s.cfg.Provider == "" || s.cfg.Provider == constants.CaptchaProviderNone {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(scene))
	for _, enabled := range s.cfg.Scenes {
		if strings.ToLower(strings.TrimSpace(enabled)) == normalized {
			return true
		}
	}
	return false
}

func (s *CaptchaService) ensureImageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageStore == nil {
		maxStore := s.cfg.Image.MaxStore
		if maxStore <= 0 {
			maxStore = 10240
		}
		expireSeconds := s.cfg.Image.ExpireSeconds
		if expireSeconds <= 0 {
			expireSeconds = 300
		}
		s.imageStore = base64Captcha.NewMemoryStore(maxStore, time.Duration(expireSeconds)*time.Second)
	}
	return s.imageStore
}

func resolveImageDimension(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func resolveCodeLength(length int) int {
	if length < 4 || length > 10 {
		return 5
	}
	return length
}
