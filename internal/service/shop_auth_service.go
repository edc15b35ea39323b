package service

import (
	"errors"
	"strings"
	"time"

	"github.com/schoolbreak-next/internal/config"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ShopAuthService 店铺登录认证服务
// 店铺凭共享 PIN 登录，先按 SHA-256 指纹定位店铺，再用 bcrypt 复核。
type ShopAuthService struct {
	cfg      *config.Config
	shopRepo repository.ShopRepository
}

// NewShopAuthService 创建店铺认证服务
func NewShopAuthService(cfg *config.Config, shopRepo repository.ShopRepository) *ShopAuthService {
	return &ShopAuthService{
		cfg:      cfg,
		shopRepo: shopRepo,
	}
}

// ShopJWTClaims 店铺 JWT 声明
type ShopJWTClaims struct {
	ShopID   uint   `json:"shop_id"`
	ShopName string `json:"shop_name"`
	jwt.RegisteredClaims
}

// Login 店铺 PIN 登录
func (s *ShopAuthService) Login(pin string) (*models.Shop, string, time.Time, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return nil, "", time.Time{}, ErrShopPINInvalid
	}

	shop, err := s.shopRepo.GetByPINFingerprint(FingerprintPIN(pin))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if shop == nil {
		return nil, "", time.Time{}, ErrShopPINInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(shop.PINHash), []byte(pin)); err != nil {
		return nil, "", time.Time{}, ErrShopPINInvalid
	}

	token, expiresAt, err := s.GenerateJWT(shop)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	logger.Infow("shop_logged_in", "shop_id", shop.ID, "name", shop.Name)
	return shop, token, expiresAt, nil
}

// GenerateJWT 生成店铺 JWT Token
func (s *ShopAuthService) GenerateJWT(shop *models.Shop) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.ShopJWT.ExpireHours) * time.Hour)

	claims := ShopJWTClaims{
		ShopID:   shop.ID,
		ShopName: shop.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.ShopJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析店铺 JWT Token
func (s *ShopAuthService) ParseJWT(tokenString string) (*ShopJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &ShopJWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.ShopJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*ShopJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}
