package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/schoolbreak-next/internal/app"
	"github.com/schoolbreak-next/internal/config"
	"github.com/schoolbreak-next/internal/logger"
	"github.com/schoolbreak-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiBlue      = "\033[34m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("管理端 JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		if isWeakSecret(cfg.ShopJWT.SecretKey) {
			stdLog.Fatalf("店铺端 JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Printf("警告: 管理端 JWT secret 过弱或仍为默认值，建议在生产环境中更换")
		}
		if isWeakSecret(cfg.ShopJWT.SecretKey) {
			stdLog.Printf("警告: 店铺端 JWT secret 过弱或仍为默认值，建议在生产环境中更换")
		}
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化默认管理员账号
	defaultAdminUser := os.Getenv("SB_DEFAULT_ADMIN_USERNAME")
	defaultAdminPass := os.Getenv("SB_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("警告: 未设置 SB_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
	} else if err := models.InitDefaultAdmin(defaultAdminUser, defaultAdminPass); err != nil {
		stdLog.Printf("警告: 初始化默认管理员失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║                    🎫 SchoolBreak API 启动中                         ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗ ██████╗██╗  ██╗ ██████╗  ██████╗ ██╗     ██████╗ ██████╗ ███████╗ █████╗ ██╗  ██╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔════╝██╔════╝██║  ██║██╔═══██╗██╔═══██╗██║     ██╔══██╗██╔══██╗██╔════╝██╔══██╗██║ ██╔╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗██║     ███████║██║   ██║██║   ██║██║     ██████╔╝██████╔╝█████╗  ███████║█████╔╝ " + ansiReset)
	fmt.Println(ansiCyan + "╚════██║██║     ██╔══██║██║   ██║██║   ██║██║     ██╔══██╗██╔══██╗██╔══╝  ██╔══██║██╔═██╗ " + ansiReset)
	fmt.Println(ansiCyan + "███████║╚██████╗██║  ██║╚██████╔╝╚██████╔╝███████╗██████╔╝██║  ██║███████╗██║  ██║██║  ██╗" + ansiReset)
	fmt.Println(ansiCyan + "╚══════╝ ╚═════╝╚═╝  ╚═╝ ╚═════╝  ╚═════╝ ╚══════╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Open Source Repositories" + ansiReset)
	fmt.Println(ansiBlue + "• Root:    https://github.com/schoolbreak-next" + ansiReset)
	fmt.Println(ansiBlue + "• API:     https://github.com/schoolbreak-next/schoolbreak-next" + ansiReset)
	fmt.Println(ansiBlue + "• Card:    https://github.com/schoolbreak-next/card" + ansiReset)
	fmt.Println(ansiBlue + "• Shop:    https://github.com/schoolbreak-next/shop" + ansiReset)
	fmt.Println(ansiBlue + "• Admin:   https://github.com/schoolbreak-next/admin" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
