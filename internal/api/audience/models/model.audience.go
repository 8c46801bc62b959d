package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AudienceSource định nghĩa nguồn gốc của audience
const (
	AudienceSourceSegment = "segment" // Được tạo từ bộ lọc segment trên dữ liệu khách hàng
	AudienceSourceUpload  = "upload"  // Được import từ file upload
	AudienceSourceSync    = "sync"    // Được đồng bộ từ hệ thống ngoài
)

// Audience đại diện cho một tập khách hàng mục tiêu. Audience được gắn vào
// engagement và đẩy lên delivery platform thông qua delivery job.
type Audience struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của audience

	Name string `json:"name" bson:"name" index:"single:1"` // Tên audience

	// ===== SELECTION =====
	Filters map[string]interface{} `json:"filters,omitempty" bson:"filters,omitempty"` // Điều kiện chọn khách hàng vào audience
	Source  string                 `json:"source,omitempty" bson:"source,omitempty"`   // Nguồn gốc: segment, upload, sync
	Size    int64                  `json:"size" bson:"size"`                           // Số lượng khách hàng trong audience

	// ===== DELIVERY =====
	Destinations []primitive.ObjectID `json:"destinations,omitempty" bson:"destinations,omitempty"` // Các delivery platform audience này từng được đẩy lên

	// ===== METADATA =====
	Tags      []string `json:"tags,omitempty" bson:"tags,omitempty"`           // Nhãn phân loại
	CreatedAt int64    `json:"createdAt" bson:"createdAt"`                     // Thời gian tạo
	UpdatedAt int64    `json:"updatedAt" bson:"updatedAt"`                     // Thời gian cập nhật
	CreatedBy string   `json:"createdBy,omitempty" bson:"createdBy,omitempty"` // Actor tạo
	UpdatedBy string   `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"` // Actor cập nhật gần nhất
}
