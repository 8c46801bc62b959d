package engagementhdl

import (
	"fmt"

	basehdl "engage_api/internal/api/base/handler"
	engagementdto "engage_api/internal/api/engagement/dto"
	models "engage_api/internal/api/engagement/models"
	engagementsvc "engage_api/internal/api/engagement/service"
	"engage_api/internal/common"
	"engage_api/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EngagementHandler xử lý các request liên quan đến Engagement
type EngagementHandler struct {
	*basehdl.BaseHandler[models.Engagement, engagementdto.EngagementCreateInput, engagementdto.EngagementUpdateInput]
	EngagementService *engagementsvc.EngagementService
}

// NewEngagementHandler tạo mới EngagementHandler
func NewEngagementHandler() (*EngagementHandler, error) {
	engagementService, err := engagementsvc.NewEngagementService()
	if err != nil {
		return nil, fmt.Errorf("failed to create engagement service: %v", err)
	}
	hdl := &EngagementHandler{
		EngagementService: engagementService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Engagement, engagementdto.EngagementCreateInput, engagementdto.EngagementUpdateInput](engagementService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// AttachAudiences gắn danh sách audience vào engagement, nhận cả audienceIds trần
// lẫn audienceRefs kèm destination. Gọi lặp lại với cùng danh sách không tạo
// tham chiếu trùng.
func (h *EngagementHandler) AttachAudiences(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		engagementID, err := h.requireObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		refs, err := h.parseAudienceRefs(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.EngagementService.AttachAudiences(h.RequestContext(c), engagementID, refs)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DetachAudiences gỡ danh sách audience khỏi engagement
func (h *EngagementHandler) DetachAudiences(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		engagementID, err := h.requireObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input, err := h.parseAudienceIds(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.EngagementService.DetachAudiences(h.RequestContext(c), engagementID, input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// AttachDestination gắn một destination vào một audience trong engagement
func (h *EngagementHandler) AttachDestination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		engagementID, err := h.requireObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		audienceID, err := h.requireObjectID(c, "audienceId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input engagementdto.DestinationAttachInput
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

		ref := models.DestinationRef{
			DestinationID:          utility.String2ObjectID(input.DestinationID),
			DeliveryPlatformConfig: input.DeliveryPlatformConfig,
		}
		data, err := h.EngagementService.AttachDestination(h.RequestContext(c), engagementID, audienceID, ref)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// DetachDestination gỡ một destination khỏi một audience trong engagement
func (h *EngagementHandler) DetachDestination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		engagementID, err := h.requireObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		audienceID, err := h.requireObjectID(c, "audienceId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input engagementdto.DestinationDetachInput
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

		data, err := h.EngagementService.DetachDestination(h.RequestContext(c), engagementID, audienceID, utility.String2ObjectID(input.DestinationID))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// RefreshLatestDelivery tính lại cache latestDelivery của mọi destination trong engagement
func (h *EngagementHandler) RefreshLatestDelivery(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		engagementID, err := h.requireObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.EngagementService.RefreshLatestDelivery(h.RequestContext(c), engagementID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetStatus trả về trạng thái tổng hợp của engagement sau khi refresh cache latestDelivery
func (h *EngagementHandler) GetStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		engagementID, err := h.requireObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		engagement, err := h.EngagementService.RefreshLatestDelivery(h.RequestContext(c), engagementID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, map[string]interface{}{
			"engagementId": engagement.ID,
			"status":       engagement.WeightedStatus(),
		}, nil)
		return nil
	})
}

// parseAudienceRefs parse và validate body attach audience thành danh sách AudienceRef.
// audienceIds trần được chuyển thành ref không có destination.
func (h *EngagementHandler) parseAudienceRefs(c fiber.Ctx) ([]models.AudienceRef, error) {
	var input engagementdto.AudienceAttachInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	if err := h.ValidateInput(&input); err != nil {
		return nil, err
	}
	if len(input.AudienceIDs) == 0 && len(input.AudienceRefs) == 0 {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Phải truyền audienceIds hoặc audienceRefs với ít nhất một audience",
			common.StatusBadRequest,
			nil,
		)
	}

	var refs []models.AudienceRef
	for _, id := range input.AudienceIDs {
		refs = append(refs, models.AudienceRef{
			AudienceID:   utility.String2ObjectID(id),
			Destinations: []models.DestinationRef{},
		})
	}
	for _, r := range input.AudienceRefs {
		destinations := make([]models.DestinationRef, 0, len(r.Destinations))
		for _, d := range r.Destinations {
			destinations = append(destinations, models.DestinationRef{
				DestinationID:          utility.String2ObjectID(d.DestinationID),
				DeliveryPlatformConfig: d.DeliveryPlatformConfig,
			})
		}
		refs = append(refs, models.AudienceRef{
			AudienceID:   utility.String2ObjectID(r.AudienceID),
			Destinations: destinations,
		})
	}
	return refs, nil
}

// parseAudienceIds parse và validate body {audienceIds: [...]} thành danh sách ObjectID
func (h *EngagementHandler) parseAudienceIds(c fiber.Ctx) ([]primitive.ObjectID, error) {
	var input engagementdto.AudienceIdsInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	if err := h.ValidateInput(&input); err != nil {
		return nil, err
	}
	return utility.StringArray2ObjectIDArray(input.AudienceIDs), nil
}

// requireObjectID đọc và validate một ObjectID từ URL params
func (h *EngagementHandler) requireObjectID(c fiber.Ctx, param string) (primitive.ObjectID, error) {
	id := c.Params(param)
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Param '%s' không được để trống trong URL", param),
			common.StatusBadRequest,
			nil,
		)
	}
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}
