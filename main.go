package main

import (
	"log"
	"time"

	"github.com/perezbrayan/tienda/config"
	"github.com/perezbrayan/tienda/internal/api"
	"github.com/perezbrayan/tienda/internal/database"
	"github.com/perezbrayan/tienda/internal/fulfillment/bot"
	"github.com/perezbrayan/tienda/internal/models"
	"github.com/perezbrayan/tienda/internal/services"
	"github.com/perezbrayan/tienda/internal/storage"
	"github.com/perezbrayan/tienda/pkg/logger"
)

// @title tienda API
// @version 1.0
// @description Gaming goods storefront backend: product catalogs, bank-transfer payment proofs and Fortnite gift orders.

// @host localhost:10000
// @BasePath /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if _, err := database.Connect(cfg.DSN()); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	err = database.DB.AutoMigrate(
		&models.User{},
		&models.GameProduct{},
		&models.RobloxProduct{},
		&models.ExtrasProduct{},
		&models.FortniteOrder{},
		&models.PaymentProof{},
		&models.GameAccount{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := database.ConnectRedis(cfg); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	if err := storage.Init(cfg.UploadDir); err != nil {
		log.Fatalf("failed to init upload storage: %v", err)
	}
	storage.SetMaxUploadSize(cfg.UploadMaxSize)

	services.GiftSender = bot.New(cfg.BotBaseURL, time.Duration(cfg.BotTimeoutSec)*time.Second)
	services.BotID = cfg.BotID

	router := api.NewRouter(cfg)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
