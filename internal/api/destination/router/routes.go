// Package router đăng ký các route thuộc domain Destination: Delivery Platforms.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	destinationhdl "engage_api/internal/api/destination/handler"
	"engage_api/internal/api/middleware"
	apirouter "engage_api/internal/api/router"
)

// Register đăng ký tất cả route delivery platform lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	deliveryPlatformHandler, err := destinationhdl.NewDeliveryPlatformHandler()
	if err != nil {
		return fmt.Errorf("create delivery platform handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/delivery-platforms", deliveryPlatformHandler, apirouter.ReadWriteConfig)

	actorMiddleware := middleware.ActorContextMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/delivery-platforms", "POST", "/:id/check-connection", []fiber.Handler{actorMiddleware}, deliveryPlatformHandler.CheckConnection)

	return nil
}
