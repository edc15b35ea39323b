package service

import (
	"context"
	"fmt"
	"time"

	"github.com/schoolbreak-next/internal/cache"
	"github.com/schoolbreak-next/internal/repository"
)

const dashboardCacheTTL = 60 * time.Second

// DashboardService 后台仪表盘服务
// 聚合卡片、促销、台账三侧统计；短 TTL 的 Redis 缓存挡住刷新风暴。
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// DashboardOverview 仪表盘总览
type DashboardOverview struct {
	CardsTotal      int64     `json:"cards_total"`
	CardsActive     int64     `json:"cards_active"`
	PromotionsTotal int64     `json:"promotions_total"`
	PromotionsLive  int64     `json:"promotions_live"`
	ShopsTotal      int64     `json:"shops_total"`
	UserActivations int64     `json:"user_activations"`
	ShopValidations int64     `json:"shop_validations"`
	PendingRequests int64     `json:"pending_requests"`
	WindowStart     time.Time `json:"window_start"`
	WindowEnd       time.Time `json:"window_end"`
}

// ShopStats 单店核销统计
type ShopStats struct {
	ShopID      uint   `json:"shop_id"`
	ShopName    string `json:"shop_name"`
	Validations int64  `json:"validations"`
	UniqueCards int64  `json:"unique_cards"`
}

// Overview 获取总览统计
// 时间窗缺省为最近 30 天。
func (s *DashboardService) Overview(ctx context.Context, startAt, endAt time.Time) (*DashboardOverview, error) {
	startAt, endAt = normalizeWindow(startAt, endAt)

	cacheKey := fmt.Sprintf("dashboard:overview:%d:%d", startAt.Unix(), endAt.Unix())
	var cached DashboardOverview
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	row, err := s.dashboardRepo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}
	overview := &DashboardOverview{
		CardsTotal:      row.CardsTotal,
		CardsActive:     row.CardsActive,
		PromotionsTotal: row.PromotionsTotal,
		PromotionsLive:  row.PromotionsLive,
		ShopsTotal:      row.ShopsTotal,
		UserActivations: row.UserActivations,
		ShopValidations: row.ShopValidations,
		PendingRequests: row.PendingRequests,
		WindowStart:     startAt,
		WindowEnd:       endAt,
	}
	_ = cache.SetJSON(ctx, cacheKey, overview, dashboardCacheTTL)
	return overview, nil
}

// ShopRanking 获取各店铺核销排行
func (s *DashboardService) ShopRanking(ctx context.Context, startAt, endAt time.Time) ([]ShopStats, error) {
	startAt, endAt = normalizeWindow(startAt, endAt)

	cacheKey := fmt.Sprintf("dashboard:shops:%d:%d", startAt.Unix(), endAt.Unix())
	cached := make([]ShopStats, 0)
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.dashboardRepo.GetShopStats(startAt, endAt)
	if err != nil {
		return nil, err
	}
	stats := make([]ShopStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, ShopStats{
			ShopID:      row.ShopID,
			ShopName:    row.ShopName,
			Validations: row.Validations,
			UniqueCards: row.UniqueCards,
		})
	}
	_ = cache.SetJSON(ctx, cacheKey, stats, dashboardCacheTTL)
	return stats, nil
}

func normalizeWindow(startAt, endAt time.Time) (time.Time, time.Time) {
	if endAt.IsZero() {
		endAt = time.Now()
	}
	if startAt.IsZero() || startAt.After(endAt) {
		startAt = endAt.AddDate(0, 0, -30)
	}
	return startAt, endAt
}
