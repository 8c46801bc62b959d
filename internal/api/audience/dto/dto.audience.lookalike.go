package audiencedto

// LookalikeAudienceCreateInput dữ liệu đầu vào khi tạo lookalike audience.
// EngagementIDs (tùy chọn) vừa giới hạn phạm vi chọn delivery job seed,
// vừa là danh sách engagement sẽ được gắn lookalike sau khi tạo.
type LookalikeAudienceCreateInput struct {
	DeliveryPlatformID string   `json:"deliveryPlatformId" validate:"required,object_id"`
	SourceAudienceID   string   `json:"sourceAudienceId" validate:"required,object_id"`
	Name               string   `json:"name" validate:"required" maxLength:"200"`
	SizePercentage     float64  `json:"sizePercentage" validate:"required,gte=1,lte=10"`
	Country            string   `json:"country" validate:"required"`
	Size               int64    `json:"size,omitempty" validate:"omitempty,gte=0"`
	Status             string   `json:"status,omitempty"`
	EngagementIDs      []string `json:"engagementIds,omitempty" validate:"omitempty,dive,object_id"`
}

// LookalikeAudienceUpdateInput dữ liệu đầu vào khi cập nhật lookalike audience.
// Các field bỏ trống sẽ giữ nguyên giá trị cũ (partial update).
type LookalikeAudienceUpdateInput struct {
	Name           string  `json:"name,omitempty" maxLength:"200"`
	SizePercentage float64 `json:"sizePercentage,omitempty" validate:"omitempty,gte=1,lte=10"`
	Country        string  `json:"country,omitempty"`
	Size           int64   `json:"size,omitempty" validate:"omitempty,gte=0"`
	Status         string  `json:"status,omitempty"`
}
