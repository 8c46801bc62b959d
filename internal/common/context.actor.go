package common

import "context"

// actorContextKey là key riêng cho actor trong context, tránh đụng độ với key của package khác.
type actorContextKey string

const actorKey actorContextKey = "actor"

// DefaultActor dùng khi request không mang thông tin người thực hiện
// (ví dụ các tiến trình init hoặc worker nội bộ).
const DefaultActor = "system"

// WithActor gắn định danh người thực hiện vào context.
// Middleware actor gọi hàm này từ header X-Actor trước khi vào handler.
func WithActor(ctx context.Context, actor string) context.Context {
	if actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext lấy định danh người thực hiện từ context.
// Trả về DefaultActor nếu context không có actor.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}
