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

func setupCardBatchServiceTest(t *testing.T, cardCfg config.CardConfig) (*CardBatchService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:card_batch_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Card{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{Card: cardCfg}
	return NewCardBatchService(cfg, repository.NewCardRepository(db)), db
}

func TestGenerateContinuesSequence(t *testing.T) {
	svc, db := setupCardBatchServiceTest(t, config.CardConfig{
		Prefix:            "SB-",
		SequenceDigits:    4,
		ActivationBaseURL: "https://card.schoolbreak.it/activate/",
	})

	first, err := svc.Generate(3, "batch-a")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if first[0].CardNo != "SB-0001" || first[2].CardNo != "SB-0003" {
		t.Fatalf("cards = %+v, want SB-0001..SB-0003", first)
	}
	if first[0].ActivationURL != "https://card.schoolbreak.it/activate/SB-0001" {
		t.Fatalf("activation url = %q", first[0].ActivationURL)
	}

	// 第二批续接已有最大序号
	second, err := svc.Generate(2, "batch-b")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if second[0].CardNo != "SB-0004" || second[1].CardNo != "SB-0005" {
		t.Fatalf("cards = %+v, want SB-0004..SB-0005", second)
	}

	var count int64
	if err := db.Model(&models.Card{}).Where("batch_tag = ?", "batch-b").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("batch-b rows = %d, want 2", count)
	}

	// 生成的卡均为预注册状态
	var card models.Card
	if err := db.Where("card_no = ?", "SB-0004").First(&card).Error; err != nil {
		t.Fatalf("load card failed: %v", err)
	}
	if card.IsActive() {
		t.Fatal("generated card must be pre-registered")
	}
}

func TestGenerateValidatesCount(t *testing.T) {
	svc, _ := setupCardBatchServiceTest(t, config.CardConfig{Prefix: "SB-", SequenceDigits: 4})

	if _, err := svc.Generate(0, ""); !errors.Is(err, ErrCardInvalid) {
		t.Fatalf("error = %v, want ErrCardInvalid", err)
	}
	if _, err := svc.Generate(maxCardBatchSize+1, ""); !errors.Is(err, ErrCardInvalid) {
		t.Fatalf("error = %v, want ErrCardInvalid", err)
	}
}

func TestActivationURLFallsBackToCardNo(t *testing.T) {
	svc, _ := setupCardBatchServiceTest(t, config.CardConfig{Prefix: "SB-", SequenceDigits: 4})

	if got := svc.ActivationURL("SB-0042"); got != "SB-0042" {
		t.Fatalf("activation url = %q, want bare card no", got)
	}
}
