package global

import (
	"engage_api/config"
	"engage_api/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Engagements        string // Tên collection cho engagement (kế hoạch marketing)
	Audiences          string // Tên collection cho audience (tập khách hàng mục tiêu)
	LookalikeAudiences string // Tên collection cho lookalike audience (audience phái sinh)
	DeliveryPlatforms  string // Tên collection cho destination platform (tài khoản Facebook Ads / SFMC)
	DeliveryJobs       string // Tên collection cho delivery job (một lần đẩy audience lên platform)
	PerformanceMetrics string // Tên collection cho số liệu hiệu quả chiến dịch
	CampaignActivity   string // Tên collection cho log hoạt động chiến dịch
}

// Các biến toàn cục
var Validate *validator.Validate                                           // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                          // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                     // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
