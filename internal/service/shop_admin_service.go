package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const shopPINMinLength = 4

// ShopAdminService 店铺后台管理服务
// PIN 以 bcrypt 哈希落库，另存 SHA-256 指纹保证全局唯一与可查找。
type ShopAdminService struct {
	shopRepo repository.ShopRepository
}

// NewShopAdminService 创建店铺管理服务
func NewShopAdminService(shopRepo repository.ShopRepository) *ShopAdminService {
	return &ShopAdminService{shopRepo: shopRepo}
}

// ShopInput 创建/更新店铺的请求载荷
type ShopInput struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin"`
}

// Create 创建店铺
// 新店铺必须携带 PIN，且 PIN 不得与既有店铺重复。
func (s *ShopAdminService) Create(input ShopInput) (*models.Shop, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.PIN = strings.TrimSpace(input.PIN)
	if input.Name == "" {
		return nil, ErrShopInvalid
	}
	if err := validateShopPIN(input.PIN); err != nil {
		return nil, err
	}

	fingerprint := FingerprintPIN(input.PIN)
	if err := s.checkPINConflict(fingerprint, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	shop := &models.Shop{
		Name:           input.Name,
		PINHash:        string(hash),
		PINFingerprint: fingerprint,
	}
	if err := s.shopRepo.Create(shop); err != nil {
		return nil, err
	}
	logger.Infow("shop_created", "shop_id", shop.ID, "name", shop.Name)
	return shop, nil
}

// Update 更新店铺
// PIN 留空表示不变更；变更时重新做冲突检查。
func (s *ShopAdminService) Update(id uint, input ShopInput) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	input.Name = strings.TrimSpace(input.Name)
	input.PIN = strings.TrimSpace(input.PIN)
	if input.Name == "" {
		return nil, ErrShopInvalid
	}
	shop.Name = input.Name

	if input.PIN != "" {
		if err := validateShopPIN(input.PIN); err != nil {
			return nil, err
		}
		fingerprint := FingerprintPIN(input.PIN)
		if err := s.checkPINConflict(fingerprint, shop.ID); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		shop.PINHash = string(hash)
		shop.PINFingerprint = fingerprint
	}

	if err := s.shopRepo.Update(shop); err != nil {
		return nil, err
	}
	logger.Infow("shop_updated", "shop_id", shop.ID)
	return shop, nil
}

// Delete 删除店铺
// 台账行保留店铺ID引用，历史统计不受影响。
func (s *ShopAdminService) Delete(id uint) error {
	shop, err := s.shopRepo.GetByID(id)
	if err != nil {
		return err
	}
	if shop == nil {
		return ErrShopNotFound
	}
	if err := s.shopRepo.Delete(id); err != nil {
		return err
	}
	logger.Infow("shop_deleted", "shop_id", id)
	return nil
}

// Get 获取店铺详情
func (s *ShopAdminService) Get(id uint) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// List 分页查询店铺
func (s *ShopAdminService) List(filter repository.ShopListFilter) ([]models.Shop, int64, error) {
	return s.shopRepo.List(filter)
}

// ListAll 获取全部店铺（促销编辑页下拉用）
func (s *ShopAdminService) ListAll() ([]models.Shop, error) {
	return s.shopRepo.ListAll()
}

// FingerprintPIN 计算 PIN 的 SHA-256 指纹
func FingerprintPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

func (s *ShopAdminService) checkPINConflict(fingerprint string, selfID uint) error {
	existing, err := s.shopRepo.GetByPINFingerprint(fingerprint)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrShopPINConflict
	}
	return nil
}

func validateShopPIN(pin string) error {
	if len(pin) < shopPINMinLength {
		return ErrShopInvalid
	}
	return nil
}
