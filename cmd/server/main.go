package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lvclicks/internal/config"
	"github.com/lvclicks/internal/db"
	"github.com/lvclicks/internal/handler"
	"github.com/lvclicks/internal/router"
	"github.com/lvclicks/internal/service"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 按需创建管理员账号（未配置时跳过）
	if err := db.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	media := service.NewDiskMediaStore(cfg.MediaDir, cfg.MediaURLPath)
	api := handler.NewAPI(db.DB, media)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
