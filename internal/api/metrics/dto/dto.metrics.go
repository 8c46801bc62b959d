package metricsdto

import (
	deliverymodels "engage_api/internal/api/delivery/models"
)

// PerformanceMetricCreateInput dữ liệu đầu vào khi ghi nhận số liệu hiệu quả.
// Cờ transferredForFeedback luôn bắt đầu là false, không nhận từ client.
type PerformanceMetricCreateInput struct {
	DeliveryJobID        string                           `json:"deliveryJobId" validate:"required,object_id" transform:"str_objectid"`
	DeliveryPlatformID   string                           `json:"deliveryPlatformId" validate:"required,object_id" transform:"str_objectid"`
	DeliveryPlatformType string                           `json:"deliveryPlatformType" validate:"required,platform_type"`
	Metrics              map[string]interface{}           `json:"metrics" validate:"required"`
	GenericCampaigns     []deliverymodels.GenericCampaign `json:"genericCampaigns,omitempty"`
	StartTime            int64                            `json:"startTime" validate:"required,gt=0"`
	EndTime              int64                            `json:"endTime" validate:"required,gtefield=StartTime"`
}

// PerformanceMetricUpdateInput chỉ tồn tại cho base handler generic.
// Bản ghi số liệu là append-only, các route update generic không được mở.
type PerformanceMetricUpdateInput struct{}

// CampaignActivityCreateInput dữ liệu đầu vào khi ghi nhận sự kiện hoạt động chiến dịch
type CampaignActivityCreateInput struct {
	DeliveryJobID        string                           `json:"deliveryJobId" validate:"required,object_id" transform:"str_objectid"`
	DeliveryPlatformID   string                           `json:"deliveryPlatformId" validate:"required,object_id" transform:"str_objectid"`
	DeliveryPlatformType string                           `json:"deliveryPlatformType" validate:"required,platform_type"`
	EventDetails         map[string]interface{}           `json:"eventDetails" validate:"required"`
	GenericCampaigns     []deliverymodels.GenericCampaign `json:"genericCampaigns,omitempty"`
	EventDate            int64                            `json:"eventDate" validate:"required,gt=0"`
}

// CampaignActivityUpdateInput chỉ tồn tại cho base handler generic (append-only)
type CampaignActivityUpdateInput struct{}

// MarkTransferredInput danh sách bản ghi cần đánh dấu đã chuyển cho feedback.
// Gọi lại với cùng danh sách không đổi kết quả.
type MarkTransferredInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,object_id"`
}
