package service

import (
	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/models"
)

// PromotionEligible 判断促销对某张卡是否可见
// Personam 模式只看定向卡号集合，不再叠加人口属性过滤；
// All 模式按性别与年龄区间（含边界）过滤。
func PromotionEligible(promotion *models.Promotion, card *models.Card) bool {
	if promotion == nil || card == nil {
		return false
	}
	if !promotion.Active {
		return false
	}

	if promotion.TargetMode == constants.TargetModePersonam {
		for _, cardNo := range promotion.TargetCardNos() {
			if cardNo == card.CardNo {
				return true
			}
		}
		return false
	}

	if promotion.TargetGender != constants.TargetGenderAll && promotion.TargetGender != card.Gender {
		return false
	}
	if card.Age < promotion.TargetAgeMin || card.Age > promotion.TargetAgeMax {
		return false
	}
	return true
}

// PromotionValidAtShop 判断促销在某家店铺是否可核销
// shops 为空集合表示任何店铺均不可核销。
func PromotionValidAtShop(promotion *models.Promotion, shopID uint) bool {
	if promotion == nil || shopID == 0 {
		return false
	}
	for _, id := range promotion.ShopIDs() {
		if id == shopID {
			return true
		}
	}
	return false
}

// ledgerState 单张卡在单个促销上的台账汇总
type ledgerState struct {
	userActivated bool
	shopUses      int
}

// summarizeLedger 按促销聚合台账记录
func summarizeLedger(records []models.ActivationRecord) map[uint]ledgerState {
	states := make(map[uint]ledgerState, len(records))
	for _, record := range records {
		state := states[record.PromotionID]
		switch record.Actor {
		case constants.ActivationActorUser:
			state.userActivated = true
		case constants.ActivationActorShop:
			state.shopUses++
		}
		states[record.PromotionID] = state
	}
	return states
}

// derivePromotionStatus 由台账推导促销在该卡上的状态
// 优先级：Single 且已核销 → consumed；需激活且未激活 → pending_activation；
// 其余 → ready。Unlimited 促销核销后仍回到 ready。
func derivePromotionStatus(promotion *models.Promotion, state ledgerState) string {
	if promotion.UsageLimit == constants.UsageLimitSingle && state.shopUses > 0 {
		return constants.PromotionStatusConsumed
	}
	if promotion.RequiresActivation && !state.userActivated {
		return constants.PromotionStatusPendingActivation
	}
	return constants.PromotionStatusReady
}
