package router

import (
	"fmt"
	"strings"

	"github.com/roikaa/tamshopex/internal/cache"
	"github.com/roikaa/tamshopex/internal/config"
	"github.com/roikaa/tamshopex/internal/constants"
	publichandlers "github.com/roikaa/tamshopex/internal/http/handlers/public"
	"github.com/roikaa/tamshopex/internal/logger"
	"github.com/roikaa/tamshopex/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/categories/:id", publicHandler.GetCategory)
			public.GET("/captcha/image", publicHandler.CaptchaImage)
		}

		// 游客会话
		apiV1.GET("/session", publicHandler.NewSession)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 购物车与订单（登录用户或携带会话的游客）
		shop := apiV1.Group("")
		shop.Use(OptionalUserAuthMiddleware(cfg.JWT.SecretKey))
		{
			shop.GET("/cart", publicHandler.GetCart)
			shop.DELETE("/cart", publicHandler.ClearCart)
			shop.POST("/cart/items", publicHandler.AddCartItem)
			shop.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			shop.DELETE("/cart/items/:id", publicHandler.RemoveCartItem)
			shop.POST("/orders", publicHandler.CreateOrder)
			shop.GET("/orders/:id", publicHandler.GetOrder)
			shop.PATCH("/orders/:id/status", publicHandler.UpdateOrderStatus)
			shop.POST("/orders/:id/cancel", publicHandler.CancelOrder)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.GET("/orders", publicHandler.ListOrders)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
