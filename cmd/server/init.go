package main

import (
	"context"
	"time"

	"engage_api/config"
	audiencemodels "engage_api/internal/api/audience/models"
	deliverymodels "engage_api/internal/api/delivery/models"
	destinationmodels "engage_api/internal/api/destination/models"
	engagementmodels "engage_api/internal/api/engagement/models"
	metricsmodels "engage_api/internal/api/metrics/models"
	"engage_api/internal/database"
	"engage_api/internal/global"
	"engage_api/internal/logger"
)

// InitGlobal khởi tạo các biến toàn cục của ứng dụng.
// Thứ tự có ý nghĩa: config phải có trước khi kết nối database.
func InitGlobal() {
	initColNames()
	initConfig()
	initValidator()
	initDatabase_MongoDB()
}

// initColNames khởi tạo tên của các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Engagements = "engagements"
	global.MongoDB_ColNames.Audiences = "audiences"
	global.MongoDB_ColNames.LookalikeAudiences = "lookalike_audiences"
	global.MongoDB_ColNames.DeliveryPlatforms = "delivery_platforms"
	global.MongoDB_ColNames.DeliveryJobs = "delivery_jobs"
	global.MongoDB_ColNames.PerformanceMetrics = "performance_metrics"
	global.MongoDB_ColNames.CampaignActivity = "campaign_activity"
}

// initConfig đọc cấu hình server từ file env
func initConfig() {
	cfg := config.NewConfig()
	if cfg == nil {
		logger.GetAppLogger().Fatal("Failed to load server configuration")
	}
	global.ServerConfig = cfg
}

// initValidator khởi tạo validator và đăng ký các custom validation
func initValidator() {
	global.InitValidator()
}

// initDatabase_MongoDB kết nối MongoDB, đảm bảo database/collections tồn tại
// và tạo index khi chạy ở InitMode.
func initDatabase_MongoDB() {
	log := logger.GetAppLogger()

	client, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	global.MongoDB_Session = client

	if err := database.EnsureDatabaseAndCollections(client); err != nil {
		log.Fatalf("Failed to ensure database and collections: %v", err)
	}

	// Index chỉ tạo ở InitMode (lần triển khai đầu hoặc khi đổi schema index)
	if !global.ServerConfig.InitMode {
		log.Info("InitMode disabled, skipping index creation")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := client.Database(global.ServerConfig.MongoDB_DBName)

	// Index đơn đọc từ tag `index` trên model
	tagIndexModels := map[string]interface{}{
		global.MongoDB_ColNames.Engagements:        engagementmodels.Engagement{},
		global.MongoDB_ColNames.Audiences:          audiencemodels.Audience{},
		global.MongoDB_ColNames.LookalikeAudiences: audiencemodels.LookalikeAudience{},
		global.MongoDB_ColNames.DeliveryPlatforms:  destinationmodels.DeliveryPlatform{},
		global.MongoDB_ColNames.DeliveryJobs:       deliverymodels.DeliveryJob{},
		global.MongoDB_ColNames.PerformanceMetrics: metricsmodels.PerformanceMetric{},
		global.MongoDB_ColNames.CampaignActivity:   metricsmodels.CampaignActivity{},
	}
	for colName, model := range tagIndexModels {
		if err := database.CreateIndexes(ctx, db.Collection(colName), model); err != nil {
			log.Fatalf("Failed to create indexes for collection %s: %v", colName, err)
		}
	}

	// Index compound/unique không biểu diễn được qua tag
	if err := database.CreateEngageIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create compound indexes: %v", err)
	}

	log.Info("MongoDB indexes are ensured")
}
