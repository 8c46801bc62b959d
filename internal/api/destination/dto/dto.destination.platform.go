package destinationdto

// DeliveryPlatformCreateInput dữ liệu đầu vào khi tạo delivery platform
type DeliveryPlatformCreateInput struct {
	Name         string            `json:"name" validate:"required" maxLength:"200"`
	Type         string            `json:"type" validate:"required,platform_type"`
	AuthDetails  map[string]string `json:"authDetails" validate:"required"`
	IsAdPlatform bool              `json:"isAdPlatform,omitempty"`
	Status       string            `json:"status,omitempty" transform:"string,default=UNKNOWN"`
}

// DeliveryPlatformUpdateInput dữ liệu đầu vào khi cập nhật delivery platform.
// Các field bỏ trống sẽ giữ nguyên giá trị cũ (partial update).
type DeliveryPlatformUpdateInput struct {
	Name        string            `json:"name,omitempty" maxLength:"200"`
	AuthDetails map[string]string `json:"authDetails,omitempty"`
	Status      string            `json:"status,omitempty"`
}
