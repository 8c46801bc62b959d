// Package router đăng ký các route thuộc domain Engagement.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	engagementhdl "engage_api/internal/api/engagement/handler"
	"engage_api/internal/api/middleware"
	apirouter "engage_api/internal/api/router"
)

// Register đăng ký tất cả route engagement lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	engagementHandler, err := engagementhdl.NewEngagementHandler()
	if err != nil {
		return fmt.Errorf("create engagement handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/engagements", engagementHandler, apirouter.ReadWriteConfig)

	actorMiddleware := middleware.ActorContextMiddleware()
	chain := []fiber.Handler{actorMiddleware}
	apirouter.RegisterRouteWithMiddleware(v1, "/engagements", "POST", "/:id/attach-audiences", chain, engagementHandler.AttachAudiences)
	apirouter.RegisterRouteWithMiddleware(v1, "/engagements", "POST", "/:id/detach-audiences", chain, engagementHandler.DetachAudiences)
	apirouter.RegisterRouteWithMiddleware(v1, "/engagements", "POST", "/:id/audiences/:audienceId/attach-destination", chain, engagementHandler.AttachDestination)
	apirouter.RegisterRouteWithMiddleware(v1, "/engagements", "POST", "/:id/audiences/:audienceId/detach-destination", chain, engagementHandler.DetachDestination)
	apirouter.RegisterRouteWithMiddleware(v1, "/engagements", "POST", "/:id/refresh-latest-delivery", chain, engagementHandler.RefreshLatestDelivery)
	apirouter.RegisterRouteWithMiddleware(v1, "/engagements", "GET", "/:id/status", chain, engagementHandler.GetStatus)

	return nil
}
