package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"meeting_web/internal/api"
	"meeting_web/internal/config"
	"meeting_web/internal/models"
	"meeting_web/internal/repository"
	"meeting_web/internal/service"
	"meeting_web/internal/storage"
)

func main() {
	// 先初始化全域 logger，後續載入流程才有輸出
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	// 這裡遷移 Meeting 和 AgendaItem 兩個模型
	if err := db.AutoMigrate(&models.Meeting{}, &models.AgendaItem{}); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate database")
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos)

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services, cfg.Auth)

	// 啟動伺服器
	log.Info().Str("addr", cfg.Server.Address).Msg("meeting server started")
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
