// Package router đăng ký các route thuộc domain Delivery: Delivery Jobs và Campaign Mapping.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	deliveryhdl "engage_api/internal/api/delivery/handler"
	"engage_api/internal/api/middleware"
	apirouter "engage_api/internal/api/router"
)

// Register đăng ký tất cả route delivery job lên v1.
// Không mở route update generic hay delete: job không bao giờ bị xóa, còn
// trạng thái và audience size phải đi qua API riêng để state machine được tôn trọng.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	deliveryJobHandler, err := deliveryhdl.NewDeliveryJobHandler()
	if err != nil {
		return fmt.Errorf("create delivery job handler: %w", err)
	}

	jobConfig := apirouter.CRUDConfig{
		InsOne:   true,
		Find:     true,
		FindOne:  true,
		FindById: true,
		FindIds:  true,
		Paginate: true,
		Count:    true,
		Distinct: true,
		Exists:   true,
	}
	r.RegisterCRUDRoutes(v1, "/delivery-jobs", deliveryJobHandler, jobConfig)

	actorMiddleware := middleware.ActorContextMiddleware()
	chain := []fiber.Handler{actorMiddleware}
	apirouter.RegisterRouteWithMiddleware(v1, "/delivery-jobs", "PUT", "/:id/status", chain, deliveryJobHandler.SetStatus)
	apirouter.RegisterRouteWithMiddleware(v1, "/delivery-jobs", "PUT", "/:id/audience-size", chain, deliveryJobHandler.SetAudienceSize)
	apirouter.RegisterRouteWithMiddleware(v1, "/delivery-jobs", "POST", "/find-by-metadata", chain, deliveryJobHandler.FindByMetadata)
	apirouter.RegisterRouteWithMiddleware(v1, "/delivery-jobs", "GET", "/candidate-mappings/:destinationId", chain, deliveryJobHandler.ListCandidateMappings)
	apirouter.RegisterRouteWithMiddleware(v1, "/delivery-jobs", "POST", "/replace-campaigns", chain, deliveryJobHandler.ReplaceCampaigns)

	return nil
}
