// Package notification chứa các side effect best-effort chạy sau khi dữ liệu thay đổi:
// audit notification sink và router toggler. Cả hai đăng ký qua events.OnDataChanged
// và không bao giờ làm fail thao tác chính.
package notification

import (
	"context"
	"fmt"

	"engage_api/internal/api/events"
	"engage_api/internal/global"
	"engage_api/internal/logger"
)

// Severity constants - Mức độ nghiêm trọng của notification
const (
	SeverityHigh   = "high"   // Cao - xử lý sớm
	SeverityMedium = "medium" // Trung bình - xử lý trong giờ làm việc
	SeverityInfo   = "info"   // Thông tin - chỉ log/ghi nhận
)

func init() {
	events.OnDataChanged(handleAuditNotification)
}

// auditedLabels map collection name sang nhãn hiển thị trong audit message.
// Chỉ các collection nghiệp vụ chính mới được audit.
func auditedLabels() map[string]string {
	return map[string]string{
		global.MongoDB_ColNames.Engagements:        "Engagement",
		global.MongoDB_ColNames.Audiences:          "Audience",
		global.MongoDB_ColNames.LookalikeAudiences: "Lookalike audience",
		global.MongoDB_ColNames.DeliveryPlatforms:  "Delivery platform",
	}
}

// opLabel chuyển operation sang mô tả tiếng Việt cho audit message
func opLabel(operation string) string {
	switch operation {
	case events.OpInsert:
		return "được tạo"
	case events.OpUpdate:
		return "được cập nhật"
	case events.OpUpsert:
		return "được tạo hoặc cập nhật"
	case events.OpDelete:
		return "bị xóa"
	default:
		return "thay đổi"
	}
}

// handleAuditNotification ghi audit message cho các thay đổi trên collection nghiệp vụ.
// Best-effort: lỗi chỉ log, không ảnh hưởng thao tác chính.
func handleAuditNotification(ctx context.Context, e events.DataChangeEvent) {
	label, ok := auditedLabels()[e.CollectionName]
	if !ok {
		return
	}

	id := events.GetObjectIDField(e.Document, "ID")
	message := fmt.Sprintf("%s %s", label, opLabel(e.Operation))

	fields := map[string]interface{}{
		"collection": e.CollectionName,
		"operation":  e.Operation,
		"actor":      e.Actor,
		"severity":   SeverityInfo,
	}
	if !id.IsZero() {
		fields["documentId"] = id.Hex()
	}

	logger.GetAuditLogger().WithFields(fields).Info(message)
}
