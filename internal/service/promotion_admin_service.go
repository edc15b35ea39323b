package service

import (
	"strings"

	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"
)

// PromotionAdminService 促销后台管理服务
type PromotionAdminService struct {
	promotionRepo repository.PromotionRepository
	shopRepo      repository.ShopRepository
}

// NewPromotionAdminService 创建促销管理服务
func NewPromotionAdminService(promotionRepo repository.PromotionRepository, shopRepo repository.ShopRepository) *PromotionAdminService {
	return &PromotionAdminService{
		promotionRepo: promotionRepo,
		shopRepo:      shopRepo,
	}
}

// PromotionInput 创建/更新促销的请求载荷
type PromotionInput struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	TargetGender       string   `json:"target_gender"`
	TargetAgeMin       int      `json:"target_age_min"`
	TargetAgeMax       int      `json:"target_age_max"`
	TargetMode         string   `json:"target_mode"`
	TargetUsers        []string `json:"target_users"`
	UsageLimit         string   `json:"usage_limit"`
	RequiresActivation bool     `json:"requires_activation"`
	Shops              []uint   `json:"shops"`
	Active             *bool    `json:"active"`
}

// Create 创建促销
func (s *PromotionAdminService) Create(input PromotionInput) (*models.Promotion, error) {
	if err := s.normalizeInput(&input); err != nil {
		return nil, err
	}

	promotion := &models.Promotion{
		Title:              input.Title,
		Description:        input.Description,
		TargetGender:       input.TargetGender,
		TargetAgeMin:       input.TargetAgeMin,
		TargetAgeMax:       input.TargetAgeMax,
		TargetMode:         input.TargetMode,
		TargetUsers:        models.EncodeStringList(input.TargetUsers),
		UsageLimit:         input.UsageLimit,
		RequiresActivation: input.RequiresActivation,
		Shops:              models.EncodeUintList(input.Shops),
		Active:             true,
	}
	if input.Active != nil {
		promotion.Active = *input.Active
	}

	if err := s.promotionRepo.Create(promotion); err != nil {
		return nil, err
	}
	logger.Infow("promotion_created",
		"promotion_id", promotion.ID,
		"target_mode", promotion.TargetMode,
		"usage_limit", promotion.UsageLimit,
	)
	return promotion, nil
}

// Update 更新促销
// 已产生台账的促销也允许修改，历史记录不回溯。
func (s *PromotionAdminService) Update(id uint, input PromotionInput) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	if err := s.normalizeInput(&input); err != nil {
		return nil, err
	}

	promotion.Title = input.Title
	promotion.Description = input.Description
	promotion.TargetGender = input.TargetGender
	promotion.TargetAgeMin = input.TargetAgeMin
	promotion.TargetAgeMax = input.TargetAgeMax
	promotion.TargetMode = input.TargetMode
	promotion.TargetUsers = models.EncodeStringList(input.TargetUsers)
	promotion.UsageLimit = input.UsageLimit
	promotion.RequiresActivation = input.RequiresActivation
	promotion.Shops = models.EncodeUintList(input.Shops)
	if input.Active != nil {
		promotion.Active = *input.Active
	}

	if err := s.promotionRepo.Update(promotion); err != nil {
		return nil, err
	}
	logger.Infow("promotion_updated", "promotion_id", promotion.ID)
	return promotion, nil
}

// SetActive 启用/停用促销
func (s *PromotionAdminService) SetActive(id uint, active bool) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	promotion.Active = active
	if err := s.promotionRepo.Update(promotion); err != nil {
		return nil, err
	}
	logger.Infow("promotion_active_changed", "promotion_id", promotion.ID, "active", active)
	return promotion, nil
}

// Delete 删除促销
// 台账行保留促销ID引用，历史统计不受影响。
func (s *PromotionAdminService) Delete(id uint) error {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return ErrPromotionNotFound
	}
	if err := s.promotionRepo.Delete(id); err != nil {
		return err
	}
	logger.Infow("promotion_deleted", "promotion_id", id)
	return nil
}

// Get 获取促销详情
func (s *PromotionAdminService) Get(id uint) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// List 分页查询促销
func (s *PromotionAdminService) List(filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	return s.promotionRepo.List(filter)
}

// normalizeInput 归一化并校验促销载荷
// 空的枚举字段回填默认值；Personam 模式必须给出定向卡号；
// 至少指定一家适用店铺，且引用的店铺必须存在。
func (s *PromotionAdminService) normalizeInput(input *PromotionInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return ErrPromotionInvalid
	}

	if input.TargetGender == "" {
		input.TargetGender = constants.TargetGenderAll
	}
	if input.TargetMode == "" {
		input.TargetMode = constants.TargetModeAll
	}
	if input.UsageLimit == "" {
		input.UsageLimit = constants.UsageLimitUnlimited
	}
	if !constants.ValidTargetGender(input.TargetGender) ||
		!constants.ValidTargetMode(input.TargetMode) ||
		!constants.ValidUsageLimit(input.UsageLimit) {
		return ErrPromotionInvalid
	}

	if input.TargetAgeMax == 0 {
		input.TargetAgeMax = 99
	}
	if input.TargetAgeMin < 0 || input.TargetAgeMax < input.TargetAgeMin {
		return ErrPromotionInvalid
	}

	cleaned := make([]string, 0, len(input.TargetUsers))
	for _, cardNo := range input.TargetUsers {
		cardNo = strings.TrimSpace(cardNo)
		if cardNo != "" {
			cleaned = append(cleaned, cardNo)
		}
	}
	input.TargetUsers = cleaned
	if input.TargetMode == constants.TargetModePersonam && len(input.TargetUsers) == 0 {
		return ErrPromotionInvalid
	}

	if len(input.Shops) == 0 {
		return ErrPromotionInvalid
	}
	for _, shopID := range input.Shops {
		shop, err := s.shopRepo.GetByID(shopID)
		if err != nil {
			return err
		}
		if shop == nil {
			return ErrPromotionInvalid
		}
	}
	return nil
}
