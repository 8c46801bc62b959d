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
)

// LookalikeAudienceHandler xử lý các request liên quan đến Lookalike Audience
type LookalikeAudienceHandler struct {
	*basehdl.BaseHandler[models.LookalikeAudience, audiencedto.LookalikeAudienceCreateInput, audiencedto.LookalikeAudienceUpdateInput]
	LookalikeAudienceService *audiencesvc.LookalikeAudienceService
}

// NewLookalikeAudienceHandler tạo mới LookalikeAudienceHandler
func NewLookalikeAudienceHandler() (*LookalikeAudienceHandler, error) {
	lookalikeService, err := audiencesvc.NewLookalikeAudienceService()
	if err != nil {
		return nil, fmt.Errorf("failed to create lookalike audience service: %v", err)
	}
	hdl := &LookalikeAudienceHandler{
		LookalikeAudienceService: lookalikeService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.LookalikeAudience, audiencedto.LookalikeAudienceCreateInput, audiencedto.LookalikeAudienceUpdateInput](lookalikeService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// InsertOne tạo lookalike audience qua quy trình kiểm tra đủ điều kiện của service
// (source audience đã đẩy thành công lên platform đích). Che khuất handler generic.
func (h *LookalikeAudienceHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input audiencedto.LookalikeAudienceCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		lookalike := models.LookalikeAudience{
			DeliveryPlatformID: utility.String2ObjectID(input.DeliveryPlatformID),
			SourceAudienceID:   utility.String2ObjectID(input.SourceAudienceID),
			Name:               input.Name,
			SizePercentage:     input.SizePercentage,
			Country:            input.Country,
			Size:               input.Size,
			Status:             input.Status,
		}

		data, err := h.LookalikeAudienceService.CreateLookalike(
			h.RequestContext(c),
			lookalike,
			utility.StringArray2ObjectIDArray(input.EngagementIDs),
		)
		h.HandleResponse(c, data, err)
		return nil
	})
}
