package main

import (
	"time"

	"engage_api/config"
	destinationmodels "engage_api/internal/api/destination/models"
	"engage_api/internal/global"
	"engage_api/internal/logger"
	"engage_api/internal/platform"

	// Đăng ký các subscriber audit/toggle qua events.OnDataChanged
	_ "engage_api/internal/notification"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry đăng ký collections và platform clients vào các registry toàn cục
func InitRegistry() {
	log := logger.GetAppLogger()

	if err := initCollections(global.MongoDB_Session, global.ServerConfig); err != nil {
		log.Fatalf("Failed to initialize collections: %v", err)
	}
	log.Info("Initialized collection registry")

	initPlatformClients(global.ServerConfig)
	log.Info("Initialized platform client registry")
}

// initCollections đăng ký database và tất cả collection vào registry.
// Các service tra cứu collection qua global.RegistryCollections khi khởi tạo.
func initCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	if _, err := global.RegistryDatabase.Register(cfg.MongoDB_DBName, db); err != nil {
		return err
	}

	colNames := []string{
		global.MongoDB_ColNames.Engagements,
		global.MongoDB_ColNames.Audiences,
		global.MongoDB_ColNames.LookalikeAudiences,
		global.MongoDB_ColNames.DeliveryPlatforms,
		global.MongoDB_ColNames.DeliveryJobs,
		global.MongoDB_ColNames.PerformanceMetrics,
		global.MongoDB_ColNames.CampaignActivity,
	}
	for _, name := range colNames {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			return err
		}
	}
	return nil
}

// initPlatformClients đăng ký các client outbound tới ad platform.
// Key của registry là platform type, trùng với trường type của delivery platform.
func initPlatformClients(cfg *config.Configuration) {
	timeout := time.Duration(cfg.PlatformCallTimeout) * time.Second

	_, _ = platform.Clients.Register(destinationmodels.PlatformTypeFacebook, platform.NewFacebookClient(cfg.FacebookGraphVersion, timeout))
	_, _ = platform.Clients.Register(destinationmodels.PlatformTypeSfmc, platform.NewSfmcClient(timeout))
}
