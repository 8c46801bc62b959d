package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobStatus định nghĩa trạng thái của delivery job
const (
	JobStatusPending    = "PENDING"    // Job đã được ghi nhận, chưa bắt đầu đẩy
	JobStatusDelivering = "DELIVERING" // Đang đẩy audience lên platform
	JobStatusDelivered  = "DELIVERED"  // Đẩy xong, platform đã nhận audience
	JobStatusSucceeded  = "SUCCEEDED"  // Đẩy xong và platform xác nhận xử lý thành công
	JobStatusFailed     = "FAILED"     // Đẩy thất bại (lỗi nghiệp vụ từ platform)
	JobStatusError      = "ERROR"      // Đẩy thất bại (lỗi hệ thống)
)

// IsTerminalJobStatus cho biết status có phải trạng thái kết thúc không.
// Chuyển sang trạng thái kết thúc sẽ stamp jobEndTime.
func IsTerminalJobStatus(status string) bool {
	switch status {
	case JobStatusDelivered, JobStatusSucceeded, JobStatusFailed, JobStatusError:
		return true
	}
	return false
}

// IsSuccessfulJobStatus cho biết job đã đẩy audience lên platform thành công chưa.
// Chỉ job ở trạng thái này mới dùng được làm seed cho lookalike audience.
func IsSuccessfulJobStatus(status string) bool {
	return status == JobStatusDelivered || status == JobStatusSucceeded
}

// ValidJobStatuses trả về danh sách status hợp lệ (dùng cho validate input)
func ValidJobStatuses() []string {
	return []string{
		JobStatusPending,
		JobStatusDelivering,
		JobStatusDelivered,
		JobStatusSucceeded,
		JobStatusFailed,
		JobStatusError,
	}
}

// GenericCampaign là ánh xạ một delivery job sang campaign/ad set trên ad platform.
// Cùng một cấu trúc dùng chung cho Facebook (campaign + ad set) và SFMC (journey + send definition).
type GenericCampaign struct {
	CampaignID string `json:"campaignId" bson:"campaignId"`                 // ID campaign trên platform
	AdSetID    string `json:"adSetId,omitempty" bson:"adSetId,omitempty"`   // ID ad set trên platform
	Name       string `json:"name,omitempty" bson:"name,omitempty"`         // Tên campaign
	AdSetName  string `json:"adSetName,omitempty" bson:"adSetName,omitempty"` // Tên ad set

	DeliveryJobID primitive.ObjectID `json:"deliveryJobId,omitempty" bson:"deliveryJobId,omitempty"` // Job sở hữu mapping này
	CreateTime    int64              `json:"createTime,omitempty" bson:"createTime,omitempty"`       // createTime của job sở hữu
}

// DeliveryJob ghi nhận một lần đẩy audience lên một delivery platform.
// Job có thể thuộc một engagement hoặc chạy độc lập (engagementId = null).
type DeliveryJob struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của delivery job

	AudienceID         primitive.ObjectID  `json:"audienceId" bson:"audienceId" index:"single:1"`                 // Audience được đẩy
	DeliveryPlatformID primitive.ObjectID  `json:"deliveryPlatformId" bson:"deliveryPlatformId" index:"single:1"` // Platform đích
	EngagementID       *primitive.ObjectID `json:"engagementId,omitempty" bson:"engagementId,omitempty" index:"single:1"` // Engagement chứa job (null nếu job độc lập)

	// ===== TRẠNG THÁI =====
	Status       string `json:"status" bson:"status" index:"single:1"` // PENDING, DELIVERING, DELIVERED, SUCCEEDED, FAILED, ERROR
	AudienceSize int64  `json:"audienceSize" bson:"audienceSize"`      // Số lượng khách hàng đã đẩy (platform báo về)

	// ===== CAMPAIGN MAPPING =====
	GenericCampaigns   []GenericCampaign    `json:"genericCampaigns,omitempty" bson:"genericCampaigns,omitempty"`     // Các campaign/ad set job được gán vào
	LookalikeAudiences []primitive.ObjectID `json:"lookalikeAudiences,omitempty" bson:"lookalikeAudiences,omitempty"` // Các lookalike audience được tạo từ job này

	// ===== THỜI GIAN =====
	CreateTime   int64 `json:"createTime" bson:"createTime" index:"single:-1"` // Thời điểm tạo job
	JobStartTime int64 `json:"jobStartTime" bson:"jobStartTime"`               // Thời điểm bắt đầu đẩy
	JobEndTime   int64 `json:"jobEndTime,omitempty" bson:"jobEndTime,omitempty"` // Thời điểm kết thúc (chỉ set khi vào trạng thái kết thúc)

	// ===== METADATA =====
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`                     // Thời gian tạo
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`                     // Thời gian cập nhật
	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"` // Actor tạo
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"` // Actor cập nhật gần nhất
}
