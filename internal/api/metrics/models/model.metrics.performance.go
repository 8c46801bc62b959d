package models

import (
	deliverymodels "engage_api/internal/api/delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PerformanceMetric là một bản ghi số liệu hiệu quả chiến dịch do ad platform
// báo về cho một delivery job trong một khoảng thời gian. Bản ghi append-only,
// chỉ có cờ transferredForFeedback được cập nhật sau khi ghi.
type PerformanceMetric struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của bản ghi

	DeliveryJobID        primitive.ObjectID `json:"deliveryJobId" bson:"deliveryJobId" index:"single:1"`           // Delivery job sinh ra số liệu
	DeliveryPlatformID   primitive.ObjectID `json:"deliveryPlatformId" bson:"deliveryPlatformId" index:"single:1"` // Platform báo số liệu
	DeliveryPlatformType string             `json:"deliveryPlatformType" bson:"deliveryPlatformType"`              // Loại platform: facebook, sfmc

	// ===== SỐ LIỆU =====
	Metrics          map[string]interface{}           `json:"metrics" bson:"metrics"`                                       // Số liệu thô theo tên chỉ số (impressions, clicks, spend...)
	GenericCampaigns []deliverymodels.GenericCampaign `json:"genericCampaigns,omitempty" bson:"genericCampaigns,omitempty"` // Campaign/ad set số liệu thuộc về

	// ===== KHOẢNG THỜI GIAN =====
	StartTime int64 `json:"startTime" bson:"startTime"`               // Đầu khoảng báo cáo
	EndTime   int64 `json:"endTime" bson:"endTime" index:"single:-1"` // Cuối khoảng báo cáo

	// ===== FEEDBACK LOOP =====
	TransferredForFeedback bool `json:"transferredForFeedback" bson:"transferredForFeedback" index:"single:1"` // Đã chuyển cho hệ thống feedback chưa

	// ===== METADATA =====
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`                     // Thời gian tạo
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`                     // Thời gian cập nhật
	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"` // Actor tạo
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"` // Actor cập nhật gần nhất
}
