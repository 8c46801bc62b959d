package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlatformType định nghĩa các loại delivery platform được hỗ trợ
const (
	PlatformTypeFacebook = "facebook" // Facebook Ads (custom audience)
	PlatformTypeSfmc     = "sfmc"     // Salesforce Marketing Cloud
)

// PlatformStatus định nghĩa trạng thái kết nối của delivery platform
const (
	PlatformStatusSucceeded = "SUCCEEDED" // Lần check connection gần nhất thành công
	PlatformStatusFailed    = "FAILED"    // Lần check connection gần nhất thất bại
	PlatformStatusUnknown   = "UNKNOWN"   // Chưa check connection lần nào
)

// DeliveryPlatform đại diện cho một tài khoản ad platform đã kết nối
// (Facebook Ads account, SFMC tenant). Là đích nhận audience khi chạy delivery job.
type DeliveryPlatform struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của delivery platform

	Name string `json:"name" bson:"name" index:"single:1"` // Tên hiển thị, unique trong phạm vi một type
	Type string `json:"type" bson:"type" index:"single:1"` // Loại platform: facebook, sfmc

	// ===== CONNECTION =====
	AuthDetails  map[string]string `json:"authDetails,omitempty" bson:"authDetails,omitempty"`      // Thông tin xác thực với platform (accessToken, clientId...)
	Status       string            `json:"status" bson:"status" index:"single:1" default:"UNKNOWN"` // Trạng thái kết nối: SUCCEEDED, FAILED, UNKNOWN
	IsAdPlatform bool              `json:"isAdPlatform" bson:"isAdPlatform"`                        // Platform có campaign/ad set để gán delivery job không

	// ===== METADATA =====
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`                     // Thời gian tạo
	UpdatedAt int64  `json:"updatedAt" bson:"updatedAt"`                     // Thời gian cập nhật
	CreatedBy string `json:"createdBy,omitempty" bson:"createdBy,omitempty"` // Actor tạo
	UpdatedBy string `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"` // Actor cập nhật gần nhất
}
