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

func setupActivationServiceTest(t *testing.T) (*ActivationService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:activation_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Card{},
		&models.Promotion{},
		&models.Shop{},
		&models.ActivationRecord{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewActivationService(
		repository.NewCardRepository(db),
		repository.NewPromotionRepository(db),
		repository.NewActivationRepository(db),
	)
	return svc, db
}

func seedActiveCard(t *testing.T, db *gorm.DB, cardNo string) models.Card {
	t.Helper()
	now := time.Now()
	card := models.Card{
		CardNo:      cardNo,
		Name:        "Giulia",
		Surname:     "Rossi",
		Age:         17,
		Gender:      constants.GenderFemale,
		Email:       "giulia.rossi@example.com",
		ActivatedAt: &now,
	}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("create card failed: %v", err)
	}
	return card
}

func seedPromotion(t *testing.T, db *gorm.DB, promotion models.Promotion) models.Promotion {
	t.Helper()
	if promotion.TargetGender == "" {
		promotion.TargetGender = constants.TargetGenderAll
	}
	if promotion.TargetMode == "" {
		promotion.TargetMode = constants.TargetModeAll
	}
	if promotion.TargetAgeMax == 0 {
		promotion.TargetAgeMax = 99
	}
	if promotion.UsageLimit == "" {
		promotion.UsageLimit = constants.UsageLimitUnlimited
	}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	return promotion
}

func TestSelfActivateFlow(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	card := seedActiveCard(t, db, "SB-0001")
	promotion := seedPromotion(t, db, models.Promotion{
		Title:              "Aperitivo di benvenuto",
		UsageLimit:         constants.UsageLimitSingle,
		RequiresActivation: true,
		Shops:              models.EncodeUintList([]uint{1}),
		Active:             true,
	})

	result, err := svc.SelfActivate(card.CardNo, promotion.ID)
	if err != nil {
		t.Fatalf("self activate failed: %v", err)
	}
	if result.Status != constants.PromotionStatusReady {
		t.Fatalf("status = %q, want ready", result.Status)
	}

	// 重复激活拒绝，台账不追加
	if _, err := svc.SelfActivate(card.CardNo, promotion.ID); !errors.Is(err, ErrAlreadyActivated) {
		t.Fatalf("second activation error = %v, want ErrAlreadyActivated", err)
	}
	var count int64
	if err := db.Model(&models.ActivationRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count records failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("ledger rows = %d, want 1", count)
	}
}

func TestListCardPromotionsPendingFirst(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	card := seedActiveCard(t, db, "SB-0001")
	seedPromotion(t, db, models.Promotion{
		Title:  "Subito pronta",
		Shops:  models.EncodeUintList([]uint{1}),
		Active: true,
	})
	seedPromotion(t, db, models.Promotion{
		Title:              "Da attivare",
		RequiresActivation: true,
		Shops:              models.EncodeUintList([]uint{1}),
		Active:             true,
	})

	promotions, err := svc.ListCardPromotions(card.CardNo)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(promotions) != 2 {
		t.Fatalf("promotions = %d, want 2", len(promotions))
	}
	if promotions[0].Status != constants.PromotionStatusPendingActivation {
		t.Fatalf("first status = %q, want pending_activation", promotions[0].Status)
	}
	if promotions[1].Status != constants.PromotionStatusReady {
		t.Fatalf("second status = %q, want ready", promotions[1].Status)
	}
}

func TestSelfActivateRejectsNonActivatable(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	card := seedActiveCard(t, db, "SB-0001")
	promotion := seedPromotion(t, db, models.Promotion{
		Title:  "Sconto studenti",
		Shops:  models.EncodeUintList([]uint{1}),
		Active: true,
	})

	if _, err := svc.SelfActivate(card.CardNo, promotion.ID); !errors.Is(err, ErrActivationNotRequired) {
		t.Fatalf("error = %v, want ErrActivationNotRequired", err)
	}
}

func TestValidateRequiresUserActivationFirst(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	card := seedActiveCard(t, db, "SB-0001")
	shopID := uint(1)
	promotion := seedPromotion(t, db, models.Promotion{
		Title:              "Aperitivo di benvenuto",
		UsageLimit:         constants.UsageLimitSingle,
		RequiresActivation: true,
		Shops:              models.EncodeUintList([]uint{shopID}),
		Active:             true,
	})

	if _, err := svc.Validate(shopID, card.CardNo, promotion.ID); !errors.Is(err, ErrNotActivated) {
		t.Fatalf("error = %v, want ErrNotActivated", err)
	}

	if _, err := svc.SelfActivate(card.CardNo, promotion.ID); err != nil {
		t.Fatalf("self activate failed: %v", err)
	}
	result, err := svc.Validate(shopID, card.CardNo, promotion.ID)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if result.Status != constants.PromotionStatusConsumed {
		t.Fatalf("status = %q, want consumed", result.Status)
	}

	// Single 促销二次核销拒绝
	if _, err := svc.Validate(shopID, card.CardNo, promotion.ID); !errors.Is(err, ErrAlreadyUsed) {
		t.Fatalf("second validate error = %v, want ErrAlreadyUsed", err)
	}
}

func TestValidateUnlimitedRepeats(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	card := seedActiveCard(t, db, "SB-0001")
	shopID := uint(3)
	promotion := seedPromotion(t, db, models.Promotion{
		Title:  "Sconto studenti",
		Shops:  models.EncodeUintList([]uint{shopID}),
		Active: true,
	})

	for i := 0; i < 3; i++ {
		result, err := svc.Validate(shopID, card.CardNo, promotion.ID)
		if err != nil {
			t.Fatalf("validate %d failed: %v", i, err)
		}
		if result.Status != constants.PromotionStatusReady {
			t.Fatalf("status = %q, want ready", result.Status)
		}
	}

	var count int64
	if err := db.Model(&models.ActivationRecord{}).
		Where("actor = ?", constants.ActivationActorShop).
		Count(&count).Error; err != nil {
		t.Fatalf("count records failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("shop ledger rows = %d, want 3", count)
	}
}

func TestValidateRejectsWrongShop(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	card := seedActiveCard(t, db, "SB-0001")
	promotion := seedPromotion(t, db, models.Promotion{
		Title:  "Sconto studenti",
		Shops:  models.EncodeUintList([]uint{7}),
		Active: true,
	})

	if _, err := svc.Validate(8, card.CardNo, promotion.ID); !errors.Is(err, ErrPromotionNotEligible) {
		t.Fatalf("error = %v, want ErrPromotionNotEligible", err)
	}

	// 空店铺集合：任何店铺均不可核销
	empty := seedPromotion(t, db, models.Promotion{
		Title:  "Promozione orfana",
		Shops:  models.EncodeUintList(nil),
		Active: true,
	})
	if _, err := svc.Validate(7, card.CardNo, empty.ID); !errors.Is(err, ErrPromotionNotEligible) {
		t.Fatalf("error = %v, want ErrPromotionNotEligible", err)
	}
}

func TestScanReturnsCardStatus(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	shopID := uint(2)

	// 未注册卡号
	result, err := svc.Scan(shopID, "SB-9999")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if result.CardStatus != constants.CardStatusNotFound {
		t.Fatalf("status = %q, want not_found", result.CardStatus)
	}

	// 预注册未激活
	if err := db.Create(&models.Card{CardNo: "SB-0002"}).Error; err != nil {
		t.Fatalf("create card failed: %v", err)
	}
	result, err = svc.Scan(shopID, "SB-0002")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if result.CardStatus != constants.CardStatusPreRegistered {
		t.Fatalf("status = %q, want pre_registered", result.CardStatus)
	}

	// 已激活卡，从激活链接扫码，仅返回本店可核销的促销
	card := seedActiveCard(t, db, "SB-0003")
	seedPromotion(t, db, models.Promotion{
		Title:  "Valida qui",
		Shops:  models.EncodeUintList([]uint{shopID}),
		Active: true,
	})
	seedPromotion(t, db, models.Promotion{
		Title:  "Valida altrove",
		Shops:  models.EncodeUintList([]uint{99}),
		Active: true,
	})

	result, err = svc.Scan(shopID, "https://card.schoolbreak.it/activate/"+card.CardNo)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if result.CardStatus != constants.CardStatusActive {
		t.Fatalf("status = %q, want active", result.CardStatus)
	}
	if len(result.Promotions) != 1 || result.Promotions[0].Promotion.Title != "Valida qui" {
		t.Fatalf("promotions = %+v, want only the local one", result.Promotions)
	}

	// 无法解析的二维码内容
	if _, err := svc.Scan(shopID, "not a qr payload"); !errors.Is(err, ErrScanInvalid) {
		t.Fatalf("error = %v, want ErrScanInvalid", err)
	}
}

func TestScanExcludesConsumedPromotions(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	card := seedActiveCard(t, db, "SB-0001")
	shopID := uint(5)
	promotion := seedPromotion(t, db, models.Promotion{
		Title:      "Una volta sola",
		UsageLimit: constants.UsageLimitSingle,
		Shops:      models.EncodeUintList([]uint{shopID}),
		Active:     true,
	})

	if _, err := svc.Validate(shopID, card.CardNo, promotion.ID); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	// 已核销的 Single 促销不再出现在店铺扫码结果中
	result, err := svc.Scan(shopID, card.CardNo)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(result.Promotions) != 0 {
		t.Fatalf("shop scan promotions = %+v, want none after consumption", result.Promotions)
	}

	// 持卡人视图保留该促销，状态标记为 consumed
	promotions, err := svc.ListCardPromotions(card.CardNo)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(promotions) != 1 || promotions[0].Status != constants.PromotionStatusConsumed {
		t.Fatalf("card promotions = %+v, want one consumed entry", promotions)
	}
}

func TestVerifyIsReadOnly(t *testing.T) {
	svc, db := setupActivationServiceTest(t)
	card := seedActiveCard(t, db, "SB-0001")
	shopID := uint(1)
	promotion := seedPromotion(t, db, models.Promotion{
		Title:  "Sconto studenti",
		Shops:  models.EncodeUintList([]uint{shopID}),
		Active: true,
	})

	result, err := svc.Verify(shopID, card.CardNo, promotion.ID)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if result.Status != constants.PromotionStatusReady {
		t.Fatalf("status = %q, want ready", result.Status)
	}

	var count int64
	if err := db.Model(&models.ActivationRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count records failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("ledger rows = %d, want 0 after verify", count)
	}
}
