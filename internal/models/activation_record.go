package models

import "time"

// ActivationRecord 核销台账
// 仅追加，正常流程不更新不删除；用户激活与店铺核销各记一行。
// Unlimited 促销允许同一 (card_no, promotion_id) 累积多条 shop 行，
// 唯一性约束由仓库层的条件插入保证。
type ActivationRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                  // 主键
	CardNo      string    `gorm:"index:idx_activations_card_promo;not null" json:"card_no"` // 卡号
	PromotionID uint      `gorm:"index:idx_activations_card_promo;not null" json:"promotion_id"` // 促销ID
	Actor       string    `gorm:"index;not null" json:"actor"`                           // 操作方（user/shop）
	ShopID      *uint     `gorm:"index" json:"shop_id,omitempty"`                        // 店铺ID（actor=shop 时存在）
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                               // 发生时间

	Promotion *Promotion `gorm:"foreignKey:PromotionID" json:"promotion,omitempty"` // 促销信息
	Shop      *Shop      `gorm:"foreignKey:ShopID" json:"shop,omitempty"`           // 店铺信息
}

// TableName 指定表名
func (ActivationRecord) TableName() string {
	return "promo_activations"
}
