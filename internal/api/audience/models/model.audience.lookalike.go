package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LookalikeAudience là audience phái sinh do ad platform tạo ra từ một source
// audience đã đẩy lên thành công. Trạng thái do platform quyết định (caller ghi nhận),
// không có state machine phía server.
type LookalikeAudience struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của lookalike audience

	DeliveryPlatformID primitive.ObjectID `json:"deliveryPlatformId" bson:"deliveryPlatformId" index:"single:1"` // Platform tạo ra lookalike
	SourceAudienceID   primitive.ObjectID `json:"sourceAudienceId" bson:"sourceAudienceId" index:"single:1"`     // Audience gốc dùng làm seed

	Name           string  `json:"name" bson:"name"`                     // Tên lookalike audience
	SizePercentage float64 `json:"sizePercentage" bson:"sizePercentage"` // Tỉ lệ phần trăm dân số quốc gia (1-10)
	Country        string  `json:"country" bson:"country"`               // Mã quốc gia (ví dụ: VN, US)
	Size           int64   `json:"size" bson:"size"`                     // Số lượng ước tính do platform trả về
	Status         string  `json:"status" bson:"status" index:"single:1"` // Trạng thái do platform báo về

	// ===== METADATA =====
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`                     // Thời gian tạo
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`                     // Thời gian cập nhật
	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"` // Actor tạo
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"` // Actor cập nhật gần nhất
}
