package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/schoolbreak-next/internal/config"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"
	"github.com/schoolbreak-next/internal/repository"
	"github.com/schoolbreak-next/internal/service"
)

// cardgen 批量预注册实体卡并导出打印清单（卡号 + 激活链接）
func main() {
	var (
		count    int
		batchTag string
		outPath  string
	)
	flag.IntVar(&count, "count", 100, "生成卡片数量")
	flag.StringVar(&batchTag, "batch", "", "批次标签（可选）")
	flag.StringVar(&outPath, "out", "cards.csv", "导出 CSV 文件路径")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	cardRepo := repository.NewCardRepository(models.DB)
	batchService := service.NewCardBatchService(cfg, cardRepo)

	cards, err := batchService.Generate(count, batchTag)
	if err != nil {
		stdLog.Fatalf("批量生成卡片失败: %v", err)
	}

	file, err := os.Create(outPath)
	if err != nil {
		stdLog.Fatalf("创建导出文件失败: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"card_no", "activation_url"}); err != nil {
		stdLog.Fatalf("写入导出文件失败: %v", err)
	}
	for _, card := range cards {
		if err := writer.Write([]string{card.CardNo, card.ActivationURL}); err != nil {
			stdLog.Fatalf("写入导出文件失败: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		stdLog.Fatalf("写入导出文件失败: %v", err)
	}

	fmt.Printf("✅ 已生成 %d 张卡片，清单已导出至 %s\n", len(cards), outPath)
}
