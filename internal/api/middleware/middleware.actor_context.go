package middleware

import (
	"github.com/gofiber/fiber/v3"
)

// ActorContextMiddleware middleware để quản lý actor context.
// - Đọc X-Actor từ header (định danh người/hệ thống thực hiện request)
// - Lưu actor vào c.Locals("actor") cho handler và audit log
// Không có header thì bỏ qua, service sẽ dùng actor mặc định "system".
func ActorContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		actor := c.Get("X-Actor")
		if actor != "" {
			c.Locals("actor", actor)
		}
		return c.Next()
	}
}
