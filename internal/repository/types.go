package repository

import "time"

// CardListFilter 查询卡片列表的过滤条件
type CardListFilter struct {
	Page              int
	PageSize          int
	Search            string
	BatchTag          string
	OnlyActive        bool
	OnlyPreRegistered bool
}

// PromotionListFilter 查询促销列表的过滤条件
type PromotionListFilter struct {
	Page       int
	PageSize   int
	ID         uint
	Search     string
	Active     *bool
	TargetMode string
}

// ShopListFilter 查询店铺列表的过滤条件
type ShopListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// ActivationListFilter 查询台账记录列表的过滤条件
type ActivationListFilter struct {
	Page          int
	PageSize      int
	CardNo        string
	PromotionID   uint
	ShopID        uint
	Actor         string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	WithRelations bool
}

// CardRequestListFilter 查询领卡申请列表的过滤条件
type CardRequestListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}
