package models

import (
	deliverymodels "engage_api/internal/api/delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignActivity là một sự kiện hoạt động chiến dịch do ad platform báo về
// (gửi mail, click, unsubscribe...). Cùng vòng đời append-only như PerformanceMetric
// nhưng chứa chi tiết sự kiện thay vì số liệu tổng hợp.
type CampaignActivity struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của bản ghi

	DeliveryJobID        primitive.ObjectID `json:"deliveryJobId" bson:"deliveryJobId" index:"single:1"`           // Delivery job sinh ra sự kiện
	DeliveryPlatformID   primitive.ObjectID `json:"deliveryPlatformId" bson:"deliveryPlatformId" index:"single:1"` // Platform báo sự kiện
	DeliveryPlatformType string             `json:"deliveryPlatformType" bson:"deliveryPlatformType"`              // Loại platform: facebook, sfmc

	// ===== SỰ KIỆN =====
	EventDetails     map[string]interface{}           `json:"eventDetails" bson:"eventDetails"`                             // Chi tiết sự kiện thô từ platform
	GenericCampaigns []deliverymodels.GenericCampaign `json:"genericCampaigns,omitempty" bson:"genericCampaigns,omitempty"` // Campaign/ad set sự kiện thuộc về
	EventDate        int64                            `json:"eventDate" bson:"eventDate" index:"single:-1"`                 // Thời điểm sự kiện xảy ra

	// ===== FEEDBACK LOOP =====
	TransferredForFeedback bool `json:"transferredForFeedback" bson:"transferredForFeedback" index:"single:1"` // Đã chuyển cho hệ thống feedback chưa

	// ===== METADATA =====
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`                     // Thời gian tạo
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`                     // Thời gian cập nhật
	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"` // Actor tạo
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"` // Actor cập nhật gần nhất
}
