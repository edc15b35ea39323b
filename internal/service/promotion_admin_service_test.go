package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPromotionAdminServiceTest(t *testing.T) (*PromotionAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:promotion_admin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}, &models.Shop{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewPromotionAdminService(
		repository.NewPromotionRepository(db),
		repository.NewShopRepository(db),
	)
	return svc, db
}

func seedShop(t *testing.T, db *gorm.DB, name string) models.Shop {
	t.Helper()
	shop := models.Shop{
		Name:           name,
		PINHash:        "hash-" + name,
		PINFingerprint: "fp-" + name,
	}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("create shop failed: %v", err)
	}
	return shop
}

func TestPromotionCreateRequiresShops(t *testing.T) {
	svc, db := setupPromotionAdminServiceTest(t)
	shop := seedShop(t, db, "Bar Centrale")

	// 无适用店铺的促销拒绝创建
	if _, err := svc.Create(PromotionInput{Title: "Nessun negozio"}); !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("create error = %v, want ErrPromotionInvalid", err)
	}
	var count int64
	if err := db.Model(&models.Promotion{}).Count(&count).Error; err != nil {
		t.Fatalf("count promotions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("promotions = %d, want 0 after rejected create", count)
	}

	promotion, err := svc.Create(PromotionInput{
		Title: "Sconto studenti",
		Shops: []uint{shop.ID},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 更新同样不允许清空店铺集合
	if _, err := svc.Update(promotion.ID, PromotionInput{Title: "Sconto studenti"}); !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("update error = %v, want ErrPromotionInvalid", err)
	}
}

func TestPromotionCreateRejectsUnknownShop(t *testing.T) {
	svc, _ := setupPromotionAdminServiceTest(t)

	if _, err := svc.Create(PromotionInput{
		Title: "Negozio fantasma",
		Shops: []uint{42},
	}); !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("create error = %v, want ErrPromotionInvalid", err)
	}
}

func TestPromotionCreatePersonamRequiresTargets(t *testing.T) {
	svc, db := setupPromotionAdminServiceTest(t)
	shop := seedShop(t, db, "Libreria Dante")

	if _, err := svc.Create(PromotionInput{
		Title:      "Solo su invito",
		TargetMode: constants.TargetModePersonam,
		Shops:      []uint{shop.ID},
	}); !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("create error = %v, want ErrPromotionInvalid", err)
	}

	promotion, err := svc.Create(PromotionInput{
		Title:       "Solo su invito",
		TargetMode:  constants.TargetModePersonam,
		TargetUsers: []string{"SB-0001"},
		Shops:       []uint{shop.ID},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !promotion.Active {
		t.Fatalf("promotion inactive by default, want active")
	}
}
