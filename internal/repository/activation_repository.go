package repository

import (
	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/models"

	"gorm.io/gorm"
)

// ActivationRepository 核销台账数据访问接口
// 台账只追加；两类条件插入保证同一 (card_no, promotion_id) 至多一条
// user 行、Single 促销至多一条 shop 行。
type ActivationRepository interface {
	AppendUserActivation(cardNo string, promotionID uint) (bool, error)
	AppendShopValidation(cardNo string, promotionID, shopID uint, singleUse bool) (bool, error)
	ListByCard(cardNo string) ([]models.ActivationRecord, error)
	List(filter ActivationListFilter) ([]models.ActivationRecord, int64, error)
}

// GormActivationRepository GORM 实现
type GormActivationRepository struct {
	db *gorm.DB
}

// NewActivationRepository 创建核销台账仓库
func NewActivationRepository(db *gorm.DB) *GormActivationRepository {
	return &GormActivationRepository{db: db}
}

// AppendUserActivation 追加用户自助激活记录
// 同一 (card_no, promotion_id) 已存在 user 行时不再插入，返回 false。
// sqlite 下事务天然串行；postgres 下由部分唯一索引兜底。
func (r *GormActivationRepository) AppendUserActivation(cardNo string, promotionID uint) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ActivationRecord{}).
			Where("card_no = ? AND promotion_id = ? AND actor = ?", cardNo, promotionID, constants.ActivationActorUser).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		record := models.ActivationRecord{
			CardNo:      cardNo,
			PromotionID: promotionID,
			Actor:       constants.ActivationActorUser,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// AppendShopValidation 追加店铺核销记录
// singleUse 为 true 时，同一 (card_no, promotion_id) 已存在 shop 行则
// 不再插入，返回 false；Unlimited 促销每次核销都追加一行。
func (r *GormActivationRepository) AppendShopValidation(cardNo string, promotionID, shopID uint, singleUse bool) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if singleUse {
			var count int64
			if err := tx.Model(&models.ActivationRecord{}).
				Where("card_no = ? AND promotion_id = ? AND actor = ?", cardNo, promotionID, constants.ActivationActorShop).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
		}
		record := models.ActivationRecord{
			CardNo:      cardNo,
			PromotionID: promotionID,
			Actor:       constants.ActivationActorShop,
			ShopID:      &shopID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// ListByCard 获取某张卡的全部台账记录
func (r *GormActivationRepository) ListByCard(cardNo string) ([]models.ActivationRecord, error) {
	records := make([]models.ActivationRecord, 0)
	if err := r.db.Where("card_no = ?", cardNo).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// List 获取台账记录列表
func (r *GormActivationRepository) List(filter ActivationListFilter) ([]models.ActivationRecord, int64, error) {
	records := make([]models.ActivationRecord, 0)
	query := r.db.Model(&models.ActivationRecord{})

	if filter.CardNo != "" {
		query = query.Where("card_no = ?", filter.CardNo)
	}
	if filter.PromotionID != 0 {
		query = query.Where("promotion_id = ?", filter.PromotionID)
	}
	if filter.ShopID != 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Actor != "" {
		query = query.Where("actor = ?", filter.Actor)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithRelations {
		query = query.Preload("Promotion").Preload("Shop")
	}
	if err := query.Order("id desc").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
