package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupActivationRepositoryTest(t *testing.T) (*GormActivationRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:activation_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ActivationRecord{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewActivationRepository(db), db
}

func TestAppendUserActivationIsIdempotent(t *testing.T) {
	repo, db := setupActivationRepositoryTest(t)

	created, err := repo.AppendUserActivation("SB-0001", 1)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if !created {
		t.Fatal("first append should create a row")
	}

	created, err = repo.AppendUserActivation("SB-0001", 1)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if created {
		t.Fatal("duplicate append must not create a second row")
	}

	// 不同促销与不同卡号互不影响
	if created, err = repo.AppendUserActivation("SB-0001", 2); err != nil || !created {
		t.Fatalf("append for other promotion: created=%v err=%v", created, err)
	}
	if created, err = repo.AppendUserActivation("SB-0002", 1); err != nil || !created {
		t.Fatalf("append for other card: created=%v err=%v", created, err)
	}

	var count int64
	if err := db.Model(&models.ActivationRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("rows = %d, want 3", count)
	}
}

func TestAppendShopValidationSingleUse(t *testing.T) {
	repo, _ := setupActivationRepositoryTest(t)

	created, err := repo.AppendShopValidation("SB-0001", 1, 7, true)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if !created {
		t.Fatal("first validation should create a row")
	}

	// Single 促销：同一 (card_no, promotion_id) 不再追加，哪家店铺核销都一样
	created, err = repo.AppendShopValidation("SB-0001", 1, 8, true)
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if created {
		t.Fatal("single-use promotion must reject a second validation")
	}
}

func TestAppendShopValidationUnlimitedAccumulates(t *testing.T) {
	repo, db := setupActivationRepositoryTest(t)

	for i := 0; i < 3; i++ {
		created, err := repo.AppendShopValidation("SB-0001", 1, 7, false)
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
		if !created {
			t.Fatalf("append %d should create a row", i)
		}
	}

	var count int64
	if err := db.Model(&models.ActivationRecord{}).
		Where("actor = ?", constants.ActivationActorShop).
		Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("rows = %d, want 3", count)
	}
}

func TestListByCardOrdersAscending(t *testing.T) {
	repo, _ := setupActivationRepositoryTest(t)

	if _, err := repo.AppendUserActivation("SB-0001", 1); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := repo.AppendShopValidation("SB-0001", 1, 7, true); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := repo.AppendUserActivation("SB-0002", 1); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	records, err := repo.ListByCard("SB-0001")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Actor != constants.ActivationActorUser || records[1].Actor != constants.ActivationActorShop {
		t.Fatalf("order = %s,%s, want user,shop", records[0].Actor, records[1].Actor)
	}
	if records[1].ShopID == nil || *records[1].ShopID != 7 {
		t.Fatalf("shop id = %v, want 7", records[1].ShopID)
	}
}

func TestActivationListFilter(t *testing.T) {
	repo, _ := setupActivationRepositoryTest(t)

	if _, err := repo.AppendUserActivation("SB-0001", 1); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := repo.AppendShopValidation("SB-0001", 1, 7, false); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := repo.AppendShopValidation("SB-0002", 2, 8, false); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	records, total, err := repo.List(ActivationListFilter{Actor: constants.ActivationActorShop})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(records) != 2 {
		t.Fatalf("total = %d len = %d, want 2", total, len(records))
	}

	records, total, err = repo.List(ActivationListFilter{ShopID: 8})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || records[0].CardNo != "SB-0002" {
		t.Fatalf("filter by shop: total=%d records=%+v", total, records)
	}
}
