package deliverydto

// DeliveryJobCreateInput dữ liệu đầu vào khi tạo delivery job.
// Job luôn được tạo ở trạng thái DELIVERING, trạng thái sau đó cập nhật qua API riêng.
type DeliveryJobCreateInput struct {
	AudienceID         string `json:"audienceId" validate:"required,object_id" transform:"str_objectid"`
	DeliveryPlatformID string `json:"deliveryPlatformId" validate:"required,object_id" transform:"str_objectid"`
	EngagementID       string `json:"engagementId,omitempty" validate:"omitempty,object_id" transform:"str_objectid_ptr,optional"`
	AudienceSize       int64  `json:"audienceSize,omitempty" validate:"omitempty,gte=0"`
}

// DeliveryJobUpdateInput chỉ dùng cho base handler generic, các route update
// generic không được mở cho delivery job (trạng thái đi qua API riêng).
type DeliveryJobUpdateInput struct {
	AudienceSize int64 `json:"audienceSize,omitempty" validate:"omitempty,gte=0"`
}

// JobStatusInput dữ liệu cập nhật trạng thái delivery job
type JobStatusInput struct {
	Status string `json:"status" validate:"required,job_status"`
}

// AudienceSizeInput dữ liệu cập nhật số lượng khách hàng đã đẩy
type AudienceSizeInput struct {
	AudienceSize int64 `json:"audienceSize" validate:"gte=0"`
}

// FindByMetadataInput điều kiện tra cứu delivery job theo bộ metadata.
// Các field bỏ trống không tham gia lọc, limit <= 0 nghĩa là không giới hạn.
type FindByMetadataInput struct {
	EngagementID  string   `json:"engagementId,omitempty" validate:"omitempty,object_id"`
	AudienceID    string   `json:"audienceId,omitempty" validate:"omitempty,object_id"`
	DestinationID string   `json:"destinationId,omitempty" validate:"omitempty,object_id"`
	AudienceIDs   []string `json:"audienceIds,omitempty" validate:"omitempty,dive,object_id"`
	Limit         int64    `json:"limit,omitempty" validate:"omitempty,gte=0"`
}

// CampaignAssignmentInput một dòng gán delivery job vào campaign/ad set
type CampaignAssignmentInput struct {
	DeliveryJobID string `json:"deliveryJobId" validate:"required,object_id"`
	CampaignID    string `json:"campaignId" validate:"required"`
	AdSetID       string `json:"adSetId,omitempty"`
	Name          string `json:"name,omitempty"`
	AdSetName     string `json:"adSetName,omitempty"`
}

// ReplaceCampaignsInput thay toàn bộ campaign mapping của các delivery job thuộc
// bộ ba (engagement, audience, destination) bằng danh sách assignments mới.
type ReplaceCampaignsInput struct {
	EngagementID  string                    `json:"engagementId" validate:"required,object_id"`
	AudienceID    string                    `json:"audienceId" validate:"required,object_id"`
	DestinationID string                    `json:"destinationId" validate:"required,object_id"`
	Assignments   []CampaignAssignmentInput `json:"assignments" validate:"omitempty,dive"`
}
