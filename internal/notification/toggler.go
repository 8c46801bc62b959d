package notification

import (
	"context"

	"engage_api/internal/api/events"
	"engage_api/internal/global"
	"engage_api/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RouterToggleFunc là collaborator bên ngoài thực hiện bật/tắt delivery router
// cho một engagement. Mặc định chỉ log; hệ thống tích hợp có thể thay bằng
// SetRouterToggler khi khởi động.
type RouterToggleFunc func(ctx context.Context, engagementID primitive.ObjectID) error

var routerToggler RouterToggleFunc = func(ctx context.Context, engagementID primitive.ObjectID) error {
	logger.GetAppLogger().WithField("engagementId", engagementID.Hex()).Debug("Router toggle được yêu cầu (chưa có collaborator)")
	return nil
}

// SetRouterToggler thay collaborator bật/tắt router. Gọi khi khởi động, trước khi nhận request.
func SetRouterToggler(fn RouterToggleFunc) {
	if fn != nil {
		routerToggler = fn
	}
}

func init() {
	events.OnDataChanged(handleRouterToggle)
}

// handleRouterToggle re-evaluate router khi engagement thay đổi cấu trúc
// (attach/detach audience hoặc destination đều ghi lên collection engagements).
// Fire-and-forget: lỗi toggle chỉ log vào error logger, không roll back thao tác chính.
func handleRouterToggle(ctx context.Context, e events.DataChangeEvent) {
	if e.CollectionName != global.MongoDB_ColNames.Engagements {
		return
	}

	engagementID := events.GetObjectIDField(e.Document, "ID")
	if engagementID.IsZero() {
		return
	}

	if err := routerToggler(ctx, engagementID); err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"engagementId": engagementID.Hex(),
			"operation":    e.Operation,
		}).Warn("Router toggle thất bại")
	}
}
