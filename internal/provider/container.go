package provider

import (
	"github.com/schoolbreak-next/internal/cache"
	"github.com/schoolbreak-next/internal/config"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"
	"github.com/schoolbreak-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	AdminRepo       repository.AdminRepository
	CardRepo        repository.CardRepository
	CardRequestRepo repository.CardRequestRepository
	PromotionRepo   repository.PromotionRepository
	ShopRepo        repository.ShopRepository
	ActivationRepo  repository.ActivationRepository
	DashboardRepo   repository.DashboardRepository

	// Services
	AuthService           *service.AuthService
	ShopAuthService       *service.ShopAuthService
	CaptchaService        *service.CaptchaService
	CardService           *service.CardService
	CardBatchService      *service.CardBatchService
	CardRequestService    *service.CardRequestService
	ActivationService     *service.ActivationService
	PromotionAdminService *service.PromotionAdminService
	ShopAdminService      *service.ShopAdminService
	DashboardService      *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CardRepo = repository.NewCardRepository(db)
	c.CardRequestRepo = repository.NewCardRequestRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.ShopRepo = repository.NewShopRepository(db)
	c.ActivationRepo = repository.NewActivationRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.ShopAuthService = service.NewShopAuthService(c.Config, c.ShopRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CardService = service.NewCardService(c.CardRepo)
	c.CardBatchService = service.NewCardBatchService(c.Config, c.CardRepo)
	c.CardRequestService = service.NewCardRequestService(c.CardRequestRepo)
	c.ActivationService = service.NewActivationService(c.CardRepo, c.PromotionRepo, c.ActivationRepo)
	c.PromotionAdminService = service.NewPromotionAdminService(c.PromotionRepo, c.ShopRepo)
	c.ShopAdminService = service.NewShopAdminService(c.ShopRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
