package audiencedto

// AudienceCreateInput dữ liệu đầu vào khi tạo audience.
// Danh sách destinations do server quản lý theo delivery job, không nhận từ client.
type AudienceCreateInput struct {
	Name    string                 `json:"name" validate:"required" maxLength:"200"`
	Filters map[string]interface{} `json:"filters,omitempty"`
	Source  string                 `json:"source,omitempty"`
	Size    int64                  `json:"size,omitempty" validate:"omitempty,gte=0"`
	Tags    []string               `json:"tags,omitempty"`
}

// AudienceUpdateInput dữ liệu đầu vào khi cập nhật audience.
// Các field bỏ trống sẽ giữ nguyên giá trị cũ (partial update).
type AudienceUpdateInput struct {
	Name    string                 `json:"name,omitempty" maxLength:"200"`
	Filters map[string]interface{} `json:"filters,omitempty"`
	Source  string                 `json:"source,omitempty"`
	Size    int64                  `json:"size,omitempty" validate:"omitempty,gte=0"`
	Tags    []string               `json:"tags,omitempty"`
}
