package service

import (
	"testing"

	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/models"
)

func TestPromotionEligibleDemographics(t *testing.T) {
	card := &models.Card{CardNo: "SB-0001", Name: "Giulia", Surname: "Rossi", Age: 17, Gender: constants.GenderFemale}

	cases := []struct {
		name      string
		promotion models.Promotion
		want      bool
	}{
		{
			name:      "matches gender and age",
			promotion: models.Promotion{Active: true, TargetMode: constants.TargetModeAll, TargetGender: constants.TargetGenderFemale, TargetAgeMin: 14, TargetAgeMax: 25},
			want:      true,
		},
		{
			name:      "age bounds are inclusive",
			promotion: models.Promotion{Active: true, TargetMode: constants.TargetModeAll, TargetGender: constants.TargetGenderAll, TargetAgeMin: 17, TargetAgeMax: 17},
			want:      true,
		},
		{
			name:      "wrong gender",
			promotion: models.Promotion{Active: true, TargetMode: constants.TargetModeAll, TargetGender: constants.TargetGenderMale, TargetAgeMin: 0, TargetAgeMax: 99},
			want:      false,
		},
		{
			name:      "below age range",
			promotion: models.Promotion{Active: true, TargetMode: constants.TargetModeAll, TargetGender: constants.TargetGenderAll, TargetAgeMin: 18, TargetAgeMax: 99},
			want:      false,
		},
		{
			name:      "inactive promotion",
			promotion: models.Promotion{Active: false, TargetMode: constants.TargetModeAll, TargetGender: constants.TargetGenderAll, TargetAgeMin: 0, TargetAgeMax: 99},
			want:      false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PromotionEligible(&tc.promotion, card); got != tc.want {
				t.Fatalf("PromotionEligible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPromotionEligiblePersonamSkipsDemographics(t *testing.T) {
	// 定向模式只看卡号集合，人口属性完全不匹配也应可见
	card := &models.Card{CardNo: "SB-0007", Name: "Marco", Surname: "Bianchi", Age: 70, Gender: constants.GenderMale}
	promotion := models.Promotion{
		Active:       true,
		TargetMode:   constants.TargetModePersonam,
		TargetGender: constants.TargetGenderFemale,
		TargetAgeMin: 14,
		TargetAgeMax: 25,
		TargetUsers:  models.EncodeStringList([]string{"SB-0007", "SB-0009"}),
	}

	if !PromotionEligible(&promotion, card) {
		t.Fatal("targeted card should be eligible regardless of demographics")
	}

	promotion.TargetUsers = models.EncodeStringList([]string{"SB-0009"})
	if PromotionEligible(&promotion, card) {
		t.Fatal("card outside target list should not be eligible")
	}
}

func TestPromotionValidAtShop(t *testing.T) {
	promotion := models.Promotion{Shops: models.EncodeUintList([]uint{3, 5})}

	if !PromotionValidAtShop(&promotion, 5) {
		t.Fatal("listed shop should be valid")
	}
	if PromotionValidAtShop(&promotion, 4) {
		t.Fatal("unlisted shop should not be valid")
	}

	// 空店铺集合表示任何店铺均不可核销
	promotion.Shops = models.EncodeUintList(nil)
	if PromotionValidAtShop(&promotion, 5) {
		t.Fatal("empty shop list should be valid nowhere")
	}
}

func TestDerivePromotionStatus(t *testing.T) {
	single := &models.Promotion{UsageLimit: constants.UsageLimitSingle, RequiresActivation: true}
	unlimited := &models.Promotion{UsageLimit: constants.UsageLimitUnlimited}

	if got := derivePromotionStatus(single, ledgerState{}); got != constants.PromotionStatusPendingActivation {
		t.Fatalf("status = %q, want pending_activation", got)
	}
	if got := derivePromotionStatus(single, ledgerState{userActivated: true}); got != constants.PromotionStatusReady {
		t.Fatalf("status = %q, want ready", got)
	}
	if got := derivePromotionStatus(single, ledgerState{userActivated: true, shopUses: 1}); got != constants.PromotionStatusConsumed {
		t.Fatalf("status = %q, want consumed", got)
	}
	// consumed 优先于 pending_activation
	if got := derivePromotionStatus(single, ledgerState{shopUses: 1}); got != constants.PromotionStatusConsumed {
		t.Fatalf("status = %q, want consumed", got)
	}
	// Unlimited 核销后仍回到 ready
	if got := derivePromotionStatus(unlimited, ledgerState{shopUses: 4}); got != constants.PromotionStatusReady {
		t.Fatalf("status = %q, want ready", got)
	}
}

func TestSummarizeLedger(t *testing.T) {
	shopID := uint(2)
	records := []models.ActivationRecord{
		{CardNo: "SB-0001", PromotionID: 1, Actor: constants.ActivationActorUser},
		{CardNo: "SB-0001", PromotionID: 1, Actor: constants.ActivationActorShop, ShopID: &shopID},
		{CardNo: "SB-0001", PromotionID: 2, Actor: constants.ActivationActorShop, ShopID: &shopID},
		{CardNo: "SB-0001", PromotionID: 2, Actor: constants.ActivationActorShop, ShopID: &shopID},
	}

	states := summarizeLedger(records)
	if !states[1].userActivated || states[1].shopUses != 1 {
		t.Fatalf("promotion 1 state = %+v", states[1])
	}
	if states[2].userActivated || states[2].shopUses != 2 {
		t.Fatalf("promotion 2 state = %+v", states[2])
	}
}
