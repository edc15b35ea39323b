package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/schoolbreak-next/internal/config"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupShopAdminServiceTest(t *testing.T) (*ShopAdminService, *ShopAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:shop_admin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Shop{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	shopRepo := repository.NewShopRepository(db)
	cfg := &config.Config{
		ShopJWT: config.JWTConfig{
			SecretKey:   "shop-test-secret-key-for-unit-tests-only",
			ExpireHours: 12,
		},
	}
	return NewShopAdminService(shopRepo), NewShopAuthService(cfg, shopRepo), db
}

func TestShopCreateAndPINConflict(t *testing.T) {
	adminSvc, _, _ := setupShopAdminServiceTest(t)

	shop, err := adminSvc.Create(ShopInput{Name: "Bar Centrale", PIN: "104729"})
	if err != nil {
		t.Fatalf("create shop failed: %v", err)
	}
	if shop.PINHash == "104729" {
		t.Fatal("PIN must not be stored in clear")
	}
	if shop.PINFingerprint != FingerprintPIN("104729") {
		t.Fatal("fingerprint mismatch")
	}

	// 同一 PIN 不允许分配给第二家店铺
	if _, err := adminSvc.Create(ShopInput{Name: "Libreria Dante", PIN: "104729"}); !errors.Is(err, ErrShopPINConflict) {
		t.Fatalf("error = %v, want ErrShopPINConflict", err)
	}

	// 新店铺缺少 PIN 或 PIN 过短均拒绝
	if _, err := adminSvc.Create(ShopInput{Name: "Pizzeria da Gino"}); !errors.Is(err, ErrShopInvalid) {
		t.Fatalf("error = %v, want ErrShopInvalid", err)
	}
	if _, err := adminSvc.Create(ShopInput{Name: "Pizzeria da Gino", PIN: "12"}); !errors.Is(err, ErrShopInvalid) {
		t.Fatalf("error = %v, want ErrShopInvalid", err)
	}
}

func TestShopUpdateKeepsPINWhenOmitted(t *testing.T) {
	adminSvc, authSvc, _ := setupShopAdminServiceTest(t)

	shop, err := adminSvc.Create(ShopInput{Name: "Bar Centrale", PIN: "104729"})
	if err != nil {
		t.Fatalf("create shop failed: %v", err)
	}

	// 只改名，PIN 留空表示不变更
	updated, err := adminSvc.Update(shop.ID, ShopInput{Name: "Bar Centrale 2"})
	if err != nil {
		t.Fatalf("update shop failed: %v", err)
	}
	if updated.Name != "Bar Centrale 2" {
		t.Fatalf("name = %q, want renamed", updated.Name)
	}
	if _, _, _, err := authSvc.Login("104729"); err != nil {
		t.Fatalf("old PIN should still work: %v", err)
	}

	// 更换 PIN 后旧 PIN 失效
	if _, err := adminSvc.Update(shop.ID, ShopInput{Name: "Bar Centrale 2", PIN: "285311"}); err != nil {
		t.Fatalf("update PIN failed: %v", err)
	}
	if _, _, _, err := authSvc.Login("104729"); !errors.Is(err, ErrShopPINInvalid) {
		t.Fatalf("error = %v, want ErrShopPINInvalid", err)
	}
	if _, _, _, err := authSvc.Login("285311"); err != nil {
		t.Fatalf("new PIN should work: %v", err)
	}
}

func TestShopLoginIssuesJWT(t *testing.T) {
	adminSvc, authSvc, _ := setupShopAdminServiceTest(t)

	created, err := adminSvc.Create(ShopInput{Name: "Bar Centrale", PIN: "104729"})
	if err != nil {
		t.Fatalf("create shop failed: %v", err)
	}

	shop, token, expiresAt, err := authSvc.Login("104729")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if shop.ID != created.ID {
		t.Fatalf("shop id = %d, want %d", shop.ID, created.ID)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatal("expected a token with a future expiry")
	}

	claims, err := authSvc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.ShopID != created.ID || claims.ShopName != "Bar Centrale" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, _, _, err := authSvc.Login("999999"); !errors.Is(err, ErrShopPINInvalid) {
		t.Fatalf("error = %v, want ErrShopPINInvalid", err)
	}
}

func TestShopDelete(t *testing.T) {
	adminSvc, _, _ := setupShopAdminServiceTest(t)

	shop, err := adminSvc.Create(ShopInput{Name: "Bar Centrale", PIN: "104729"})
	if err != nil {
		t.Fatalf("create shop failed: %v", err)
	}
	if err := adminSvc.Delete(shop.ID); err != nil {
		t.Fatalf("delete shop failed: %v", err)
	}
	if _, err := adminSvc.Get(shop.ID); !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("error = %v, want ErrShopNotFound", err)
	}

	// 删除后 PIN 释放，可分配给新店铺
	if _, err := adminSvc.Create(ShopInput{Name: "Libreria Dante", PIN: "104729"}); err != nil {
		t.Fatalf("reusing released PIN failed: %v", err)
	}
}
