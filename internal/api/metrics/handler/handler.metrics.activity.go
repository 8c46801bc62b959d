package metricshdl

import (
	"fmt"

	basehdl "engage_api/internal/api/base/handler"
	metricsdto "engage_api/internal/api/metrics/dto"
	models "engage_api/internal/api/metrics/models"
	metricssvc "engage_api/internal/api/metrics/service"
	"engage_api/internal/common"
	"engage_api/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// CampaignActivityHandler xử lý các request liên quan đến sự kiện hoạt động chiến dịch
type CampaignActivityHandler struct {
	*basehdl.BaseHandler[models.CampaignActivity, metricsdto.CampaignActivityCreateInput, metricsdto.CampaignActivityUpdateInput]
	CampaignActivityService *metricssvc.CampaignActivityService
}

// NewCampaignActivityHandler tạo mới CampaignActivityHandler
func NewCampaignActivityHandler() (*CampaignActivityHandler, error) {
	activityService, err := metricssvc.NewCampaignActivityService()
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign activity service: %v", err)
	}
	hdl := &CampaignActivityHandler{
		CampaignActivityService: activityService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.CampaignActivity, metricsdto.CampaignActivityCreateInput, metricsdto.CampaignActivityUpdateInput](activityService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// InsertOne ghi nhận một sự kiện hoạt động qua service (kiểm tra delivery job tồn tại).
// Che khuất handler generic.
func (h *CampaignActivityHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input metricsdto.CampaignActivityCreateInput
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

		data, err := h.CampaignActivityService.Record(h.RequestContext(c), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// MarkTransferred đánh dấu các sự kiện đã chuyển cho hệ thống feedback
func (h *CampaignActivityHandler) MarkTransferred(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input metricsdto.MarkTransferredInput
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

		count, err := h.CampaignActivityService.MarkTransferred(h.RequestContext(c), utility.StringArray2ObjectIDArray(input.IDs))
		h.HandleResponse(c, map[string]interface{}{"transferredCount": count}, err)
		return nil
	})
}

// MostRecent trả về sự kiện gần nhất (theo eventDate) của một delivery job
func (h *CampaignActivityHandler) MostRecent(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		jobID, err := requireParamObjectID(c, "deliveryJobId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.CampaignActivityService.MostRecent(c.Context(), jobID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// PendingTransfer liệt kê các sự kiện chưa chuyển cho feedback
func (h *CampaignActivityHandler) PendingTransfer(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		jobID, limit, err := parsePendingTransferQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.CampaignActivityService.PendingTransfer(c.Context(), jobID, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}
