package router

import (
	"fmt"
	"strings"

	"github.com/schoolbreak-next/internal/cache"
	"github.com/schoolbreak-next/internal/config"
	adminhandlers "github.com/schoolbreak-next/internal/http/handlers/admin"
	publichandlers "github.com/schoolbreak-next/internal/http/handlers/public"
	shophandlers "github.com/schoolbreak-next/internal/http/handlers/shopapi"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/店铺/后台分组）
	publicHandler := publichandlers.New(c)
	shopHandler := shophandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sb"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	shopLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:shop_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（持卡人侧，无需鉴权）
		public := apiV1.Group("/public")
		{
			public.GET("/cards/:card_no/status", publicHandler.GetCardStatus)
			public.POST("/cards/:card_no/activate", publicHandler.ActivateCard)
			public.GET("/cards/:card_no/promotions", publicHandler.GetCardPromotions)
			public.POST("/cards/:card_no/promotions/activate", publicHandler.SelfActivatePromotion)
			public.POST("/card-requests", publicHandler.SubmitCardRequest)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 店铺接口
		shop := apiV1.Group("/shop")
		{
			shop.POST("/login", RateLimitMiddleware(redisClient, shopLoginRule, KeyByIP), shopHandler.ShopLogin)

			authorized := shop.Use(ShopJWTAuthMiddleware(cfg.ShopJWT.SecretKey, c.ShopRepo))
			{
				authorized.POST("/scan", shopHandler.ScanCard)
				authorized.POST("/verify", shopHandler.VerifyPromotion)
				authorized.POST("/validate", shopHandler.ValidatePromotion)
			}
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				// 仪表盘
				authorized.GET("/dashboard/overview", adminHandler.GetDashboardOverview)
				authorized.GET("/dashboard/shops", adminHandler.GetDashboardShops)

				// 促销管理
				authorized.GET("/promotions", adminHandler.GetAdminPromotions)
				authorized.GET("/promotions/:id", adminHandler.GetAdminPromotion)
				authorized.POST("/promotions", adminHandler.CreatePromotion)
				authorized.PUT("/promotions/:id", adminHandler.UpdatePromotion)
				authorized.PATCH("/promotions/:id/active", adminHandler.SetPromotionActive)
				authorized.DELETE("/promotions/:id", adminHandler.DeletePromotion)

				// 店铺管理
				authorized.GET("/shops", adminHandler.GetAdminShops)
				authorized.POST("/shops", adminHandler.CreateShop)
				authorized.PUT("/shops/:id", adminHandler.UpdateShop)
				authorized.DELETE("/shops/:id", adminHandler.DeleteShop)

				// 卡片管理
				authorized.GET("/cards", adminHandler.GetAdminCards)
				authorized.POST("/cards/batch", adminHandler.GenerateCards)
				authorized.GET("/activations", adminHandler.GetAdminActivations)

				// 领卡申请
				authorized.GET("/card-requests", adminHandler.GetAdminCardRequests)
				authorized.POST("/card-requests/:id/handle", adminHandler.HandleCardRequest)

				// 账号
				authorized.PUT("/password", adminHandler.ChangePassword)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
