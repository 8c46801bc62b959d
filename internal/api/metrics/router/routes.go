// Package router đăng ký các route thuộc domain Metrics: Performance Metrics và Campaign Activity.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	metricshdl "engage_api/internal/api/metrics/handler"
	"engage_api/internal/api/middleware"
	apirouter "engage_api/internal/api/router"
)

// Register đăng ký tất cả route metrics lên v1. Hai collection đều append-only
// nên chỉ mở route insert + read; cờ transferredForFeedback đi qua API riêng.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	metricHandler, err := metricshdl.NewPerformanceMetricHandler()
	if err != nil {
		return fmt.Errorf("create performance metric handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/performance-metrics", metricHandler, apirouter.AppendOnlyConfig)

	actorMiddleware := middleware.ActorContextMiddleware()
	chain := []fiber.Handler{actorMiddleware}
	apirouter.RegisterRouteWithMiddleware(v1, "/performance-metrics", "POST", "/bulk-record", chain, metricHandler.BulkRecord)
	apirouter.RegisterRouteWithMiddleware(v1, "/performance-metrics", "PUT", "/mark-transferred", chain, metricHandler.MarkTransferred)
	apirouter.RegisterRouteWithMiddleware(v1, "/performance-metrics", "GET", "/most-recent/:deliveryJobId", chain, metricHandler.MostRecent)
	apirouter.RegisterRouteWithMiddleware(v1, "/performance-metrics", "GET", "/pending-transfer", chain, metricHandler.PendingTransfer)
	apirouter.RegisterRouteWithMiddleware(v1, "/performance-metrics", "GET", "/rollup/:engagementId", chain, metricHandler.RollupByEngagement)

	activityHandler, err := metricshdl.NewCampaignActivityHandler()
	if err != nil {
		return fmt.Errorf("create campaign activity handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/campaign-activity", activityHandler, apirouter.AppendOnlyConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign-activity", "PUT", "/mark-transferred", chain, activityHandler.MarkTransferred)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign-activity", "GET", "/most-recent/:deliveryJobId", chain, activityHandler.MostRecent)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign-activity", "GET", "/pending-transfer", chain, activityHandler.PendingTransfer)

	return nil
}
