package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction log một hành động audit
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên hành động (ví dụ: "engagement_create", "audience_delete")
	Actor        string                 `json:"actor"`         // Người thực hiện (từ X-Actor header)
	ResourceID   string                 `json:"resource_id"`   // ID tài nguyên bị ảnh hưởng
	ResourceType string                 `json:"resource_type"` // Loại tài nguyên (engagement, audience, delivery_job, ...)
	IP           string                 `json:"ip"`            // IP address
	Details      map[string]interface{} `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time              `json:"timestamp"`     // Thời gian
}

// LogAction log một hành động audit từ request context
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = map[string]interface{}{}
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		Details:   details,
		Timestamp: time.Now(),
	}

	// Lấy actor từ context nếu có (được middleware set)
	if actor := c.Locals("actor"); actor != nil {
		if a, ok := actor.(string); ok {
			audit.Actor = a
		}
	}

	// Lấy request ID
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":    audit.Action,
		"actor":     audit.Actor,
		"ip":        audit.IP,
		"details":   audit.Details,
		"timestamp": audit.Timestamp,
	}).Info("audit")
}
