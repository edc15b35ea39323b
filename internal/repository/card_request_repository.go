package repository

import (
	"errors"
	"strings"

	"github.com/schoolbreak-next/internal/models"

	"gorm.io/gorm"
)

// CardRequestRepository 领卡申请数据访问接口
type CardRequestRepository interface {
	GetByID(id uint) (*models.CardRequest, error)
	Create(request *models.CardRequest) error
	Update(request *models.CardRequest) error
	List(filter CardRequestListFilter) ([]models.CardRequest, int64, error)
}

// GormCardRequestRepository GORM 实现
type GormCardRequestRepository struct {
	db *gorm.DB
}

// NewCardRequestRepository 创建领卡申请仓库
func NewCardRequestRepository(db *gorm.DB) *GormCardRequestRepository {
	return &GormCardRequestRepository{db: db}
}

// GetByID 根据ID获取申请
func (r *GormCardRequestRepository) GetByID(id uint) (*models.CardRequest, error) {
	var request models.CardRequest
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// Create 创建申请
func (r *GormCardRequestRepository) Create(request *models.CardRequest) error {
	return r.db.Create(request).Error
}

// Update 更新申请
func (r *GormCardRequestRepository) Update(request *models.CardRequest) error {
	return r.db.Save(request).Error
}

// List 获取申请列表
func (r *GormCardRequestRepository) List(filter CardRequestListFilter) ([]models.CardRequest, int64, error) {
	requests := make([]models.CardRequest, 0)
	query := r.db.Model(&models.CardRequest{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR surname LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}
