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

func setupCardServiceTest(t *testing.T) (*CardService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:card_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Card{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCardService(repository.NewCardRepository(db)), db
}

func validHolderInput() CardHolderInput {
	return CardHolderInput{
		Name:    "Giulia",
		Surname: "Rossi",
		Age:     17,
		Gender:  constants.GenderFemale,
		Email:   "giulia.rossi@example.com",
		Phone:   "+39 333 1234567",
	}
}

func TestCardStatusTransitions(t *testing.T) {
	svc, db := setupCardServiceTest(t)

	info, err := svc.Status("SB-0001")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if info.Status != constants.CardStatusNotFound {
		t.Fatalf("status = %q, want not_found", info.Status)
	}

	if err := db.Create(&models.Card{CardNo: "SB-0001"}).Error; err != nil {
		t.Fatalf("create card failed: %v", err)
	}
	info, err = svc.Status("SB-0001")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if info.Status != constants.CardStatusPreRegistered {
		t.Fatalf("status = %q, want pre_registered", info.Status)
	}
	if info.Card != nil {
		t.Fatal("pre-registered card must not expose holder data")
	}

	if _, err := svc.Activate("SB-0001", validHolderInput()); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	info, err = svc.Status("SB-0001")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if info.Status != constants.CardStatusActive {
		t.Fatalf("status = %q, want active", info.Status)
	}
	if info.Card == nil || info.Card.Name != "Giulia" {
		t.Fatalf("card = %+v, want holder data", info.Card)
	}
}

func TestActivateRefusesSecondActivation(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	if err := db.Create(&models.Card{CardNo: "SB-0001"}).Error; err != nil {
		t.Fatalf("create card failed: %v", err)
	}

	card, err := svc.Activate("SB-0001", validHolderInput())
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if card.ActivatedAt == nil {
		t.Fatal("activated_at should be set")
	}

	second := validHolderInput()
	second.Name = "Marco"
	second.Surname = "Bianchi"
	if _, err := svc.Activate("SB-0001", second); !errors.Is(err, ErrCardAlreadyActive) {
		t.Fatalf("error = %v, want ErrCardAlreadyActive", err)
	}

	// 持卡人资料未被覆盖
	stored, err := svc.Get("SB-0001")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Name != "Giulia" || stored.Surname != "Rossi" {
		t.Fatalf("holder = %s %s, want Giulia Rossi", stored.Name, stored.Surname)
	}
}

func TestActivateUnknownCard(t *testing.T) {
	svc, _ := setupCardServiceTest(t)
	if _, err := svc.Activate("SB-9999", validHolderInput()); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("error = %v, want ErrCardNotFound", err)
	}
}

func TestActivateValidatesHolderInput(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	if err := db.Create(&models.Card{CardNo: "SB-0001"}).Error; err != nil {
		t.Fatalf("create card failed: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CardHolderInput)
	}{
		{name: "blank name", mutate: func(in *CardHolderInput) { in.Name = "   " }},
		{name: "blank surname", mutate: func(in *CardHolderInput) { in.Surname = "" }},
		{name: "zero age", mutate: func(in *CardHolderInput) { in.Age = 0 }},
		{name: "age out of range", mutate: func(in *CardHolderInput) { in.Age = 150 }},
		{name: "unknown gender", mutate: func(in *CardHolderInput) { in.Gender = "Altro" }},
		{name: "blank email", mutate: func(in *CardHolderInput) { in.Email = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validHolderInput()
			tc.mutate(&input)
			if _, err := svc.Activate("SB-0001", input); !errors.Is(err, ErrCardInvalid) {
				t.Fatalf("error = %v, want ErrCardInvalid", err)
			}
		})
	}
}
