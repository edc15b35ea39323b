package repository

import (
	"errors"
	"strings"

	"github.com/schoolbreak-next/internal/models"

	"gorm.io/gorm"
)

// ShopRepository 店铺数据访问接口
type ShopRepository interface {
	GetByID(id uint) (*models.Shop, error)
	GetByPINFingerprint(fingerprint string) (*models.Shop, error)
	Create(shop *models.Shop) error
	Update(shop *models.Shop) error
	Delete(id uint) error
	List(filter ShopListFilter) ([]models.Shop, int64, error)
	ListAll() ([]models.Shop, error)
}

// GormShopRepository GORM 实现
type GormShopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓库
func NewShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// GetByID 根据ID获取店铺
func (r *GormShopRepository) GetByID(id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// GetByPINFingerprint 根据 PIN 指纹获取店铺
func (r *GormShopRepository) GetByPINFingerprint(fingerprint string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.Where("pin_fingerprint = ?", fingerprint).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// Create 创建店铺
func (r *GormShopRepository) Create(shop *models.Shop) error {
	return r.db.Create(shop).Error
}

// Update 更新店铺
func (r *GormShopRepository) Update(shop *models.Shop) error {
	return r.db.Save(shop).Error
}

// Delete 删除店铺（硬删除）
func (r *GormShopRepository) Delete(id uint) error {
	return r.db.Delete(&models.Shop{}, id).Error
}

// List 获取店铺列表
func (r *GormShopRepository) List(filter ShopListFilter) ([]models.Shop, int64, error) {
	shops := make([]models.Shop, 0)
	query := r.db.Model(&models.Shop{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}

// ListAll 获取全部店铺
func (r *GormShopRepository) ListAll() ([]models.Shop, error) {
	shops := make([]models.Shop, 0)
	if err := r.db.Order("id asc").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}
