package deliveryhdl

import (
	"fmt"

	basehdl "engage_api/internal/api/base/handler"
	deliverydto "engage_api/internal/api/delivery/dto"
	models "engage_api/internal/api/delivery/models"
	deliverysvc "engage_api/internal/api/delivery/service"
	"engage_api/internal/common"
	"engage_api/internal/logger"
	"engage_api/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryJobHandler xử lý các request liên quan đến Delivery Job
type DeliveryJobHandler struct {
	*basehdl.BaseHandler[models.DeliveryJob, deliverydto.DeliveryJobCreateInput, deliverydto.DeliveryJobUpdateInput]
	DeliveryJobService *deliverysvc.DeliveryJobService
}

// NewDeliveryJobHandler tạo mới DeliveryJobHandler
func NewDeliveryJobHandler() (*DeliveryJobHandler, error) {
	deliveryJobService, err := deliverysvc.NewDeliveryJobService()
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery job service: %v", err)
	}
	hdl := &DeliveryJobHandler{
		DeliveryJobService: deliveryJobService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.DeliveryJob, deliverydto.DeliveryJobCreateInput, deliverydto.DeliveryJobUpdateInput](deliveryJobService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	// Job mới nhất lên đầu khi client không truyền sort
	hdl.SetDefaultFindSort(bson.D{{Key: "createTime", Value: -1}})
	return hdl, nil
}

// InsertOne tạo delivery job qua state machine của service (luôn bắt đầu DELIVERING).
// Che khuất handler generic để áp các điều kiện tiên quyết về platform và audience.
func (h *DeliveryJobHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input deliverydto.DeliveryJobCreateInput
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

		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Lỗi transform dữ liệu: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		data, err := h.DeliveryJobService.Create(h.RequestContext(c), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// SetStatus cập nhật trạng thái delivery job theo state machine
func (h *DeliveryJobHandler) SetStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.requireJobID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input deliverydto.JobStatusInput
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

		data, err := h.DeliveryJobService.SetStatus(h.RequestContext(c), id, input.Status)
		if err == nil {
			logger.LogAction("delivery_job_set_status", c, map[string]interface{}{
				"deliveryJobId": id.Hex(),
				"status":        input.Status,
			})
		}
		h.HandleResponse(c, data, err)
		return nil
	})
}

// SetAudienceSize cập nhật số lượng khách hàng đã đẩy của delivery job
func (h *DeliveryJobHandler) SetAudienceSize(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.requireJobID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input deliverydto.AudienceSizeInput
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

		data, err := h.DeliveryJobService.SetAudienceSize(h.RequestContext(c), id, input.AudienceSize)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// FindByMetadata tra cứu delivery job theo bộ metadata (engagement, audience, destination)
func (h *DeliveryJobHandler) FindByMetadata(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input deliverydto.FindByMetadataInput
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

		data, err := h.DeliveryJobService.FindByMetadata(
			c.Context(),
			optionalObjectID(input.EngagementID),
			optionalObjectID(input.AudienceID),
			optionalObjectID(input.DestinationID),
			utility.StringArray2ObjectIDArray(input.AudienceIDs),
			input.Limit,
		)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// ListCandidateMappings liệt kê campaign/ad set khả dụng trên một delivery platform
func (h *DeliveryJobHandler) ListCandidateMappings(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("destinationId")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		data, err := h.DeliveryJobService.ListCandidateMappings(c.Context(), utility.String2ObjectID(id))
		h.HandleResponse(c, data, err)
		return nil
	})
}

// ReplaceCampaigns thay toàn bộ campaign mapping của các delivery job thuộc
// bộ ba (engagement, audience, destination)
func (h *DeliveryJobHandler) ReplaceCampaigns(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input deliverydto.ReplaceCampaignsInput
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

		assignments := make([]deliverysvc.CampaignAssignment, 0, len(input.Assignments))
		for _, a := range input.Assignments {
			assignments = append(assignments, deliverysvc.CampaignAssignment{
				DeliveryJobID: utility.String2ObjectID(a.DeliveryJobID),
				Campaign: models.GenericCampaign{
					CampaignID: a.CampaignID,
					AdSetID:    a.AdSetID,
					Name:       a.Name,
					AdSetName:  a.AdSetName,
				},
			})
		}

		updated, err := h.DeliveryJobService.ReplaceCampaigns(
			h.RequestContext(c),
			utility.String2ObjectID(input.EngagementID),
			utility.String2ObjectID(input.AudienceID),
			utility.String2ObjectID(input.DestinationID),
			assignments,
		)
		h.HandleResponse(c, map[string]interface{}{"updatedJobs": updated}, err)
		return nil
	})
}

// requireJobID đọc và validate ObjectID từ URL params
func (h *DeliveryJobHandler) requireJobID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := h.GetIDFromContext(c)
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID không được để trống trong URL params",
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

// optionalObjectID convert string ID sang *ObjectID, trả nil khi rỗng
func optionalObjectID(id string) *primitive.ObjectID {
	if id == "" {
		return nil
	}
	objID := utility.String2ObjectID(id)
	return &objID
}
