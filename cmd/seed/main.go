package main

import (
	"fmt"
	"time"

	"github.com/schoolbreak-next/internal/config"
	"github.com/schoolbreak-next/internal/constants"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"
	"github.com/schoolbreak-next/internal/service"
)

// seed 生成演示数据：店铺、促销与若干已激活的卡片
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	cardRepo := repository.NewCardRepository(models.DB)
	shopRepo := repository.NewShopRepository(models.DB)
	promotionRepo := repository.NewPromotionRepository(models.DB)
	shopService := service.NewShopAdminService(shopRepo)
	promotionService := service.NewPromotionAdminService(promotionRepo, shopRepo)
	batchService := service.NewCardBatchService(cfg, cardRepo)

	// 演示店铺
	shops := []service.ShopInput{
		{Name: "Bar Centrale", PIN: "104729"},
		{Name: "Libreria Dante", PIN: "285311"},
		{Name: "Pizzeria da Gino", PIN: "611953"},
	}
	shopIDs := map[string]uint{}
	for _, input := range shops {
		var existing models.Shop
		if err := models.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Shop already exists: %s", input.Name)
			shopIDs[input.Name] = existing.ID
			continue
		}
		shop, err := shopService.Create(input)
		if err != nil {
			stdLog.Printf("Failed to create shop %s: %v", input.Name, err)
			continue
		}
		shopIDs[input.Name] = shop.ID
		stdLog.Printf("Created shop: %s", shop.Name)
	}

	// 演示卡片（批量预注册，再激活前两张）
	cards, err := batchService.Generate(10, "seed-demo")
	if err != nil {
		stdLog.Printf("Failed to generate demo cards: %v", err)
	} else {
		stdLog.Printf("Generated %d demo cards", len(cards))
	}

	holders := []models.Card{
		{Name: "Giulia", Surname: "Rossi", Age: 17, Gender: constants.GenderFemale, Email: "giulia.rossi@example.com"},
		{Name: "Marco", Surname: "Bianchi", Age: 19, Gender: constants.GenderMale, Email: "marco.bianchi@example.com"},
	}
	for i, holder := range holders {
		if i >= len(cards) {
			break
		}
		card, err := cardRepo.GetByCardNo(cards[i].CardNo)
		if err != nil || card == nil {
			stdLog.Printf("Skip holder seed for %s: card not found", cards[i].CardNo)
			continue
		}
		if card.IsActive() {
			stdLog.Printf("Card already active: %s", card.CardNo)
			continue
		}
		now := time.Now()
		card.Name = holder.Name
		card.Surname = holder.Surname
		card.Age = holder.Age
		card.Gender = holder.Gender
		card.Email = holder.Email
		card.ActivatedAt = &now
		if err := cardRepo.Update(card); err != nil {
			stdLog.Printf("Failed to activate card %s: %v", card.CardNo, err)
			continue
		}
		stdLog.Printf("Activated card: %s (%s %s)", card.CardNo, card.Name, card.Surname)
	}

	// 演示促销
	allShops := make([]uint, 0, len(shopIDs))
	for _, id := range shopIDs {
		allShops = append(allShops, id)
	}
	active := true
	promotions := []service.PromotionInput{
		{
			Title:        "Sconto studenti -20%",
			Description:  "Sconto del 20% per tutti i titolari di carta attivi.",
			TargetGender: constants.TargetGenderAll,
			TargetAgeMin: 14,
			TargetAgeMax: 25,
			TargetMode:   constants.TargetModeAll,
			UsageLimit:   constants.UsageLimitUnlimited,
			Shops:        allShops,
			Active:       &active,
		},
		{
			Title:              "Aperitivo di benvenuto",
			Description:        "Un aperitivo gratuito, utilizzabile una sola volta previa attivazione.",
			TargetGender:       constants.TargetGenderAll,
			TargetAgeMin:       18,
			TargetAgeMax:       99,
			TargetMode:         constants.TargetModeAll,
			UsageLimit:         constants.UsageLimitSingle,
			RequiresActivation: true,
			Shops:              allShops,
			Active:             &active,
		},
	}
	for _, input := range promotions {
		var existing models.Promotion
		if err := models.DB.Where("title = ?", input.Title).First(&existing).Error; err == nil {
			stdLog.Printf("Promotion already exists: %s", input.Title)
			continue
		}
		promotion, err := promotionService.Create(input)
		if err != nil {
			stdLog.Printf("Failed to create promotion %s: %v", input.Title, err)
			continue
		}
		stdLog.Printf("Created promotion: %s", promotion.Title)
	}

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Shops (PIN: 104729 / 285311 / 611953)")
	fmt.Println("- 10 Cards (seed-demo batch, 2 activated)")
	fmt.Println("- 2 Promotions (1 unlimited, 1 single-use with activation)")
}
