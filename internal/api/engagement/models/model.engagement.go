package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementStatus là trạng thái tổng hợp của engagement, suy ra từ latestDelivery
// của các destination bên trong (không lưu trong DB).
const (
	EngagementStatusDelivering   = "DELIVERING"    // Còn ít nhất một destination đang đẩy
	EngagementStatusDelivered    = "DELIVERED"     // Không có destination nào đang đẩy, ít nhất một destination đã đẩy thành công
	EngagementStatusNotDelivered = "NOT_DELIVERED" // Chưa có destination nào đẩy thành công
)

// Các trạng thái delivery job có trọng số khi tổng hợp trạng thái engagement
const (
	deliveryStatusDelivering = "DELIVERING"
	deliveryStatusDelivered  = "DELIVERED"
	deliveryStatusSucceeded  = "SUCCEEDED"
)

// LatestDelivery là cache kết quả delivery job gần nhất của một destination
// trong engagement. Được tính lại khi refresh, không phải nguồn sự thật.
type LatestDelivery struct {
	Status     string `json:"status" bson:"status"`         // Trạng thái job gần nhất
	Size       int64  `json:"size" bson:"size"`             // Số lượng khách hàng đã đẩy
	UpdateTime int64  `json:"updateTime" bson:"updateTime"` // Thời điểm job cập nhật gần nhất
}

// DestinationRef gắn một delivery platform vào một audience trong engagement
type DestinationRef struct {
	DestinationID          primitive.ObjectID     `json:"destinationId" bson:"destinationId"`                                             // ID của delivery platform
	DeliveryPlatformConfig map[string]interface{} `json:"deliveryPlatformConfig,omitempty" bson:"deliveryPlatformConfig,omitempty"`       // Cấu hình đẩy riêng cho destination này
	LatestDelivery         *LatestDelivery        `json:"latestDelivery,omitempty" bson:"latestDelivery,omitempty"`                       // Kết quả job gần nhất (cache)
}

// AudienceRef gắn một audience (hoặc lookalike audience) vào engagement,
// kèm danh sách destination audience này sẽ được đẩy tới.
type AudienceRef struct {
	AudienceID   primitive.ObjectID `json:"audienceId" bson:"audienceId"`   // ID của audience hoặc lookalike audience
	Destinations []DestinationRef   `json:"destinations" bson:"destinations"` // Các destination của audience trong engagement này
}

// Engagement là một kế hoạch marketing: tập hợp audience và các destination
// chúng sẽ được đẩy tới, kèm lịch đẩy.
type Engagement struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của engagement

	Name        string `json:"name" bson:"name" index:"single:1"`                    // Tên engagement
	Description string `json:"description,omitempty" bson:"description,omitempty"` // Mô tả

	Audiences        []AudienceRef          `json:"audiences" bson:"audiences"`                                       // Các audience được gắn vào engagement
	DeliverySchedule map[string]interface{} `json:"deliverySchedule,omitempty" bson:"deliverySchedule,omitempty"` // Lịch đẩy (cron, khoảng lặp...)

	// ===== METADATA =====
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`                     // Thời gian tạo
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`                     // Thời gian cập nhật
	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"` // Actor tạo
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"` // Actor cập nhật gần nhất
}

// WeightedStatus tổng hợp trạng thái engagement từ latestDelivery của mọi destination.
// Thứ tự ưu tiên: DELIVERING > DELIVERED/SUCCEEDED > còn lại. Kết quả không phụ
// thuộc thứ tự audience/destination trong mảng.
func (e *Engagement) WeightedStatus() string {
	status := EngagementStatusNotDelivered
	for _, audience := range e.Audiences {
		for _, destination := range audience.Destinations {
			if destination.LatestDelivery == nil {
				continue
			}
			switch destination.LatestDelivery.Status {
			case deliveryStatusDelivering:
				return EngagementStatusDelivering
			case deliveryStatusDelivered, deliveryStatusSucceeded:
				status = EngagementStatusDelivered
			}
		}
	}
	return status
}

// FindAudienceRef trả về AudienceRef của một audience trong engagement (nil nếu chưa gắn)
func (e *Engagement) FindAudienceRef(audienceID primitive.ObjectID) *AudienceRef {
	for i := range e.Audiences {
		if e.Audiences[i].AudienceID == audienceID {
			return &e.Audiences[i]
		}
	}
	return nil
}

// HasDestination kiểm tra destination đã được gắn vào audience trong engagement chưa
func (e *Engagement) HasDestination(audienceID, destinationID primitive.ObjectID) bool {
	ref := e.FindAudienceRef(audienceID)
	if ref == nil {
		return false
	}
	for _, d := range ref.Destinations {
		if d.DestinationID == destinationID {
			return true
		}
	}
	return false
}
