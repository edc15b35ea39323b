package repository

import (
	"time"

	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetShopStats(startAt, endAt time.Time) ([]DashboardShopStatsRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	CardsTotal      int64
	CardsActive     int64
	PromotionsTotal int64
	PromotionsLive  int64
	ShopsTotal      int64
	UserActivations int64
	ShopValidations int64
	PendingRequests int64
}

// DashboardShopStatsRow 店铺核销统计行
type DashboardShopStatsRow struct {
	ShopID      uint
	ShopName    string
	Validations int64
	UniqueCards int64
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	var row DashboardOverviewRow

	if err := r.db.Model(&models.Card{}).Count(&row.CardsTotal).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Card{}).
		Where("name <> '' AND surname <> ''").
		Count(&row.CardsActive).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Promotion{}).Count(&row.PromotionsTotal).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Promotion{}).
		Where("active = ?", true).
		Count(&row.PromotionsLive).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Shop{}).Count(&row.ShopsTotal).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.ActivationRecord{}).
		Where("actor = ? AND created_at BETWEEN ? AND ?", constants.ActivationActorUser, startAt, endAt).
		Count(&row.UserActivations).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.ActivationRecord{}).
		Where("actor = ? AND created_at BETWEEN ? AND ?", constants.ActivationActorShop, startAt, endAt).
		Count(&row.ShopValidations).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.CardRequest{}).
		Where("status = ?", constants.CardRequestStatusPending).
		Count(&row.PendingRequests).Error; err != nil {
		return row, err
	}
	return row, nil
}

// GetShopStats 获取各店铺核销统计
func (r *GormDashboardRepository) GetShopStats(startAt, endAt time.Time) ([]DashboardShopStatsRow, error) {
	rows := make([]DashboardShopStatsRow, 0)
	err := r.db.Model(&models.Shop{}).
		Select(`shops.id AS shop_id,
			shops.name AS shop_name,
			COUNT(promo_activations.id) AS validations,
			COUNT(DISTINCT promo_activations.card_no) AS unique_cards`).
		Joins(`LEFT JOIN promo_activations
			ON promo_activations.shop_id = shops.id
			AND promo_activations.actor = ?
			AND promo_activations.created_at BETWEEN ? AND ?`,
			constants.ActivationActorShop, startAt, endAt).
		Group("shops.id, shops.name").
		Order("validations desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
