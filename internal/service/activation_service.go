package service

import (
	"sort"

	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"
)

// ActivationService 两段式激活与核销服务
// 用户侧负责自助激活，店铺侧负责扫码、预检与核销落账。
type ActivationService struct {
	cardRepo       repository.CardRepository
	promotionRepo  repository.PromotionRepository
	activationRepo repository.ActivationRepository
}

// NewActivationService 创建激活核销服务
func NewActivationService(
	cardRepo repository.CardRepository,
	promotionRepo repository.PromotionRepository,
	activationRepo repository.ActivationRepository,
) *ActivationService {
	return &ActivationService{
		cardRepo:       cardRepo,
		promotionRepo:  promotionRepo,
		activationRepo: activationRepo,
	}
}

// PromotionForCard 促销及其在该卡上的状态
type PromotionForCard struct {
	Promotion models.Promotion `json:"promotion"`
	Status    string           `json:"status"`
}

// ShopScanResult 店铺扫码结果
type ShopScanResult struct {
	CardStatus string             `json:"card_status"`
	Card       *models.Card       `json:"card,omitempty"`
	Promotions []PromotionForCard `json:"promotions"`
}

// ListCardPromotions 列出某张卡可见的促销及状态
// 仅已激活的卡有促销视图；待激活的促销排在最前，提醒持卡人操作。
func (s *ActivationService) ListCardPromotions(cardNo string) ([]PromotionForCard, error) {
	card, err := s.requireActiveCard(cardNo)
	if err != nil {
		return nil, err
	}
	promotions, err := s.eligiblePromotions(card, 0)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(promotions, func(i, j int) bool {
		return promotionStatusRank(promotions[i].Status) < promotionStatusRank(promotions[j].Status)
	})
	return promotions, nil
}

func promotionStatusRank(status string) int {
	switch status {
	case constants.PromotionStatusPendingActivation:
		return 0
	case constants.PromotionStatusReady:
		return 1
	default:
		return 2
	}
}

// SelfActivate 持卡人自助激活促销
// 仅 requires_activation 的促销可激活；重复激活与已核销的
// Single 促销均拒绝。
func (s *ActivationService) SelfActivate(cardNo string, promotionID uint) (*PromotionForCard, error) {
	card, err := s.requireActiveCard(cardNo)
	if err != nil {
		return nil, err
	}
	promotion, state, err := s.requireEligiblePromotion(card, promotionID)
	if err != nil {
		return nil, err
	}

	if !promotion.RequiresActivation {
		return nil, ErrActivationNotRequired
	}
	if promotion.UsageLimit == constants.UsageLimitSingle && state.shopUses > 0 {
		return nil, ErrAlreadyUsed
	}

	created, err := s.activationRepo.AppendUserActivation(card.CardNo, promotion.ID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrAlreadyActivated
	}

	logger.Infow("promotion_self_activated",
		"card_no", card.CardNo,
		"promotion_id", promotion.ID,
	)
	state.userActivated = true
	return &PromotionForCard{
		Promotion: *promotion,
		Status:    derivePromotionStatus(promotion, state),
	}, nil
}

// Scan 店铺扫码
// 解析二维码内容取卡号，返回卡片状态与该店可核销的促销视图。
func (s *ActivationService) Scan(shopID uint, rawCode string) (*ShopScanResult, error) {
	cardNo, ok := ExtractCardNo(rawCode)
	if !ok {
		return nil, ErrScanInvalid
	}

	card, err := s.cardRepo.GetByCardNo(cardNo)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return &ShopScanResult{CardStatus: constants.CardStatusNotFound, Promotions: []PromotionForCard{}}, nil
	}
	if !card.IsActive() {
		return &ShopScanResult{CardStatus: constants.CardStatusPreRegistered, Promotions: []PromotionForCard{}}, nil
	}

	promotions, err := s.eligiblePromotions(card, shopID)
	if err != nil {
		return nil, err
	}
	return &ShopScanResult{
		CardStatus: constants.CardStatusActive,
		Card:       card,
		Promotions: promotions,
	}, nil
}

// Verify 核销预检
// 只读检查，不落账；核销前店员据此确认促销可用。
func (s *ActivationService) Verify(shopID uint, cardNo string, promotionID uint) (*PromotionForCard, error) {
	_, promotion, state, err := s.checkValidation(shopID, cardNo, promotionID)
	if err != nil {
		return nil, err
	}
	return &PromotionForCard{
		Promotion: *promotion,
		Status:    derivePromotionStatus(promotion, state),
	}, nil
}

// Validate 店铺核销落账
// 通过全部预检后追加 shop 台账行；Single 促销的并发核销由
// 仓库层条件插入裁决，落败方收到已使用错误。
func (s *ActivationService) Validate(shopID uint, cardNo string, promotionID uint) (*PromotionForCard, error) {
	card, promotion, state, err := s.checkValidation(shopID, cardNo, promotionID)
	if err != nil {
		return nil, err
	}

	singleUse := promotion.UsageLimit == constants.UsageLimitSingle
	created, err := s.activationRepo.AppendShopValidation(card.CardNo, promotion.ID, shopID, singleUse)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrAlreadyUsed
	}

	logger.Infow("promotion_validated",
		"card_no", card.CardNo,
		"promotion_id", promotion.ID,
		"shop_id", shopID,
		"usage_limit", promotion.UsageLimit,
	)
	state.shopUses++
	return &PromotionForCard{
		Promotion: *promotion,
		Status:    derivePromotionStatus(promotion, state),
	}, nil
}

// History 查询台账记录
func (s *ActivationService) History(filter repository.ActivationListFilter) ([]models.ActivationRecord, int64, error) {
	return s.activationRepo.List(filter)
}

// checkValidation 核销前置检查
// 依次校验卡片、促销可见性、店铺适用范围、激活前置与使用次数。
func (s *ActivationService) checkValidation(shopID uint, cardNo string, promotionID uint) (*models.Card, *models.Promotion, ledgerState, error) {
	card, err := s.requireActiveCard(cardNo)
	if err != nil {
		return nil, nil, ledgerState{}, err
	}
	promotion, state, err := s.requireEligiblePromotion(card, promotionID)
	if err != nil {
		return nil, nil, ledgerState{}, err
	}

	if !PromotionValidAtShop(promotion, shopID) {
		return nil, nil, ledgerState{}, ErrPromotionNotEligible
	}
	if promotion.RequiresActivation && !state.userActivated {
		return nil, nil, ledgerState{}, ErrNotActivated
	}
	if promotion.UsageLimit == constants.UsageLimitSingle && state.shopUses > 0 {
		return nil, nil, ledgerState{}, ErrAlreadyUsed
	}
	return card, promotion, state, nil
}

func (s *ActivationService) requireActiveCard(cardNo string) (*models.Card, error) {
	card, err := s.cardRepo.GetByCardNo(cardNo)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}
	if !card.IsActive() {
		return nil, ErrCardNotActive
	}
	return card, nil
}

func (s *ActivationService) requireEligiblePromotion(card *models.Card, promotionID uint) (*models.Promotion, ledgerState, error) {
	promotion, err := s.promotionRepo.GetByID(promotionID)
	if err != nil {
		return nil, ledgerState{}, err
	}
	if promotion == nil {
		return nil, ledgerState{}, ErrPromotionNotFound
	}
	if !PromotionEligible(promotion, card) {
		return nil, ledgerState{}, ErrPromotionNotEligible
	}

	records, err := s.activationRepo.ListByCard(card.CardNo)
	if err != nil {
		return nil, ledgerState{}, err
	}
	return promotion, summarizeLedger(records)[promotion.ID], nil
}

// eligiblePromotions 组装可见促销视图
// shopID 非零时为店铺扫码视角：按店铺适用范围过滤，且已核销的
// 促销不再出现在店铺视图中（持卡人视图保留，状态标记 consumed）。
func (s *ActivationService) eligiblePromotions(card *models.Card, shopID uint) ([]PromotionForCard, error) {
	promotions, err := s.promotionRepo.ListActive()
	if err != nil {
		return nil, err
	}
	records, err := s.activationRepo.ListByCard(card.CardNo)
	if err != nil {
		return nil, err
	}
	states := summarizeLedger(records)

	result := make([]PromotionForCard, 0, len(promotions))
	for i := range promotions {
		promotion := &promotions[i]
		if !PromotionEligible(promotion, card) {
			continue
		}
		status := derivePromotionStatus(promotion, states[promotion.ID])
		if shopID != 0 {
			if !PromotionValidAtShop(promotion, shopID) {
				continue
			}
			if status == constants.PromotionStatusConsumed {
				continue
			}
		}
		result = append(result, PromotionForCard{
			Promotion: *promotion,
			Status:    status,
		})
	}
	return result, nil
}
