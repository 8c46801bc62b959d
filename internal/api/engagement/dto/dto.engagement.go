package engagementdto

// EngagementCreateInput dữ liệu đầu vào khi tạo engagement.
// Audience và destination được gắn sau qua các API attach riêng.
type EngagementCreateInput struct {
	Name             string                 `json:"name" validate:"required" maxLength:"200"`
	Description      string                 `json:"description,omitempty" maxLength:"2000"`
	DeliverySchedule map[string]interface{} `json:"deliverySchedule,omitempty"`
}

// EngagementUpdateInput dữ liệu đầu vào khi cập nhật engagement.
// Các field bỏ trống sẽ giữ nguyên giá trị cũ (partial update).
type EngagementUpdateInput struct {
	Name             string                 `json:"name,omitempty" maxLength:"200"`
	Description      string                 `json:"description,omitempty" maxLength:"2000"`
	DeliverySchedule map[string]interface{} `json:"deliverySchedule,omitempty"`
}

// AudienceIdsInput danh sách audience cho API detach audience
type AudienceIdsInput struct {
	AudienceIDs []string `json:"audienceIds" validate:"required,min=1,dive,object_id"`
}

// AudienceRefInput một audience kèm danh sách destination gắn sẵn
type AudienceRefInput struct {
	AudienceID   string                   `json:"audienceId" validate:"required,object_id"`
	Destinations []DestinationAttachInput `json:"destinations,omitempty" validate:"omitempty,dive"`
}

// AudienceAttachInput dữ liệu gắn audience vào engagement. Nhận danh sách id trần
// hoặc danh sách ref kèm destination, phải có ít nhất một audience trong hai danh sách.
type AudienceAttachInput struct {
	AudienceIDs  []string           `json:"audienceIds,omitempty" validate:"omitempty,dive,object_id"`
	AudienceRefs []AudienceRefInput `json:"audienceRefs,omitempty" validate:"omitempty,dive"`
}

// DestinationAttachInput dữ liệu gắn một destination vào audience trong engagement
type DestinationAttachInput struct {
	DestinationID          string                 `json:"destinationId" validate:"required,object_id"`
	DeliveryPlatformConfig map[string]interface{} `json:"deliveryPlatformConfig,omitempty"`
}

// DestinationDetachInput dữ liệu gỡ một destination khỏi audience trong engagement
type DestinationDetachInput struct {
	DestinationID string `json:"destinationId" validate:"required,object_id"`
}
