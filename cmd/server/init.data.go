package main

import (
	"context"
	"time"

	models "engage_api/internal/api/destination/models"
	destinationsvc "engage_api/internal/api/destination/service"
	"engage_api/internal/global"
	"engage_api/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// InitDefaultData seed dữ liệu mặc định khi chạy ở InitMode.
// Hiện tại chỉ seed một delivery platform SFMC placeholder để môi trường mới
// có sẵn destination cấu hình thử; auth details do người vận hành cập nhật sau.
func InitDefaultData() {
	log := logger.GetAppLogger()

	if !global.ServerConfig.InitMode {
		log.Info("InitMode disabled, skipping default data seeding")
		return
	}

	platformService, err := destinationsvc.NewDeliveryPlatformService()
	if err != nil {
		log.Fatalf("Failed to create delivery platform service: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Chỉ seed khi chưa có platform nào
	count, err := platformService.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count delivery platforms: %v", err)
	}
	if count > 0 {
		log.Info("Delivery platforms already exist, skipping default data seeding")
		return
	}

	defaultPlatform := models.DeliveryPlatform{
		Name:         "Default SFMC",
		Type:         models.PlatformTypeSfmc,
		AuthDetails:  map[string]string{},
		Status:       models.PlatformStatusUnknown,
		IsAdPlatform: false,
	}
	if _, err := platformService.InsertOne(ctx, defaultPlatform); err != nil {
		log.Fatalf("Failed to seed default delivery platform: %v", err)
	}

	log.Info("Seeded default SFMC delivery platform")
}
