// Package router đăng ký các route thuộc domain Audience: Audiences và Lookalike Audiences.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	audiencehdl "engage_api/internal/api/audience/handler"
	apirouter "engage_api/internal/api/router"
)

// Register đăng ký tất cả route audience lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	audienceHandler, err := audiencehdl.NewAudienceHandler()
	if err != nil {
		return fmt.Errorf("create audience handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/audiences", audienceHandler, apirouter.ReadWriteConfig)

	lookalikeHandler, err := audiencehdl.NewLookalikeAudienceHandler()
	if err != nil {
		return fmt.Errorf("create lookalike audience handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/lookalike-audiences", lookalikeHandler, apirouter.ReadWriteConfig)

	return nil
}
