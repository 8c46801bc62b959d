package audiencehdl

import (
	"fmt"

	audiencedto "engage_api/internal/api/audience/dto"
	models "engage_api/internal/api/audience/models"
	audiencesvc "engage_api/internal/api/audience/service"
	basehdl "engage_api/internal/api/base/handler"
	"engage_api/internal/common"
	"engage_api/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AudienceHandler xử lý các request liên quan đến Audience
type AudienceHandler struct {
	*basehdl.BaseHandler[models.Audience, audiencedto.AudienceCreateInput, audiencedto.AudienceUpdateInput]
	AudienceService *audiencesvc.AudienceService
}

// NewAudienceHandler tạo mới AudienceHandler
func NewAudienceHandler() (*AudienceHandler, error) {
	audienceService, err := audiencesvc.NewAudienceService()
	if err != nil {
		return nil, fmt.Errorf("failed to create audience service: %v", err)
	}
	hdl := &AudienceHandler{
		AudienceService: audienceService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Audience, audiencedto.AudienceCreateInput, audiencedto.AudienceUpdateInput](audienceService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// DeleteById xóa mềm audience và gỡ mọi tham chiếu trong các engagement đang gắn.
// Che khuất handler generic để đảm bảo cascade luôn chạy.
func (h *AudienceHandler) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if id == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"ID không được để trống trong URL params",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		_, err := h.AudienceService.DeleteWithCascade(h.RequestContext(c), utility.String2ObjectID(id))
		h.HandleResponse(c, nil, err)
		return nil
	})
}
