package metricshdl

import (
	"fmt"
	"strings"

	basehdl "engage_api/internal/api/base/handler"
	metricsdto "engage_api/internal/api/metrics/dto"
	models "engage_api/internal/api/metrics/models"
	metricssvc "engage_api/internal/api/metrics/service"
	"engage_api/internal/common"
	"engage_api/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PerformanceMetricHandler xử lý các request liên quan đến số liệu hiệu quả chiến dịch
type PerformanceMetricHandler struct {
	*basehdl.BaseHandler[models.PerformanceMetric, metricsdto.PerformanceMetricCreateInput, metricsdto.PerformanceMetricUpdateInput]
	PerformanceMetricService *metricssvc.PerformanceMetricService
}

// NewPerformanceMetricHandler tạo mới PerformanceMetricHandler
func NewPerformanceMetricHandler() (*PerformanceMetricHandler, error) {
	metricService, err := metricssvc.NewPerformanceMetricService()
	if err != nil {
		return nil, fmt.Errorf("failed to create performance metric service: %v", err)
	}
	hdl := &PerformanceMetricHandler{
		PerformanceMetricService: metricService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.PerformanceMetric, metricsdto.PerformanceMetricCreateInput, metricsdto.PerformanceMetricUpdateInput](metricService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// InsertOne ghi nhận một bản ghi số liệu qua service (kiểm tra delivery job tồn tại).
// Che khuất handler generic.
func (h *PerformanceMetricHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		model, err := h.parseMetricBody(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.PerformanceMetricService.Record(h.RequestContext(c), *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// BulkRecord ghi nhận cả lô số liệu, trả về cờ trạng thái partial-batch
func (h *PerformanceMetricHandler) BulkRecord(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var inputs []metricsdto.PerformanceMetricCreateInput
		if err := h.ParseRequestBody(c, &inputs); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên phải là một mảng JSON và các phần tử phải khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		var metrics []models.PerformanceMetric
		for i := range inputs {
			if err := h.ValidateInput(&inputs[i]); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			model, err := h.TransformCreateInputToModel(&inputs[i])
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Lỗi transform dữ liệu item %d: %v", i+1, err),
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			metrics = append(metrics, *model)
		}

		result := h.PerformanceMetricService.BulkRecord(h.RequestContext(c), metrics)
		h.HandleResponse(c, result, nil)
		return nil
	})
}

// MarkTransferred đánh dấu các bản ghi đã chuyển cho hệ thống feedback
func (h *PerformanceMetricHandler) MarkTransferred(c fiber.Ctx) error {
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

		count, err := h.PerformanceMetricService.MarkTransferred(h.RequestContext(c), utility.StringArray2ObjectIDArray(input.IDs))
		h.HandleResponse(c, map[string]interface{}{"transferredCount": count}, err)
		return nil
	})
}

// MostRecent trả về bản ghi số liệu gần nhất của một delivery job (null nếu chưa có)
func (h *PerformanceMetricHandler) MostRecent(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		jobID, err := requireParamObjectID(c, "deliveryJobId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.PerformanceMetricService.MostRecent(c.Context(), jobID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// PendingTransfer liệt kê các bản ghi chưa chuyển cho feedback.
// Query params: deliveryJobId (tùy chọn), limit (tùy chọn).
func (h *PerformanceMetricHandler) PendingTransfer(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		jobID, limit, err := parsePendingTransferQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.PerformanceMetricService.PendingTransfer(c.Context(), jobID, limit)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// RollupByEngagement gom toàn bộ số liệu của mọi delivery job thuộc một engagement.
// Query param destinationIds (danh sách ObjectID cách nhau bằng dấu phẩy, tùy chọn)
// thu hẹp rollup về các destination tương ứng.
func (h *PerformanceMetricHandler) RollupByEngagement(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		engagementID, err := requireParamObjectID(c, "engagementId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		destinationIDs, err := parseDestinationIdsQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.PerformanceMetricService.RollupByEngagement(c.Context(), engagementID, destinationIDs)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// parseMetricBody parse, validate và transform body thành PerformanceMetric
func (h *PerformanceMetricHandler) parseMetricBody(c fiber.Ctx) (*models.PerformanceMetric, error) {
	var input metricsdto.PerformanceMetricCreateInput
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

	model, err := h.TransformCreateInputToModel(&input)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Lỗi transform dữ liệu: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return model, nil
}

// requireParamObjectID đọc và validate một ObjectID từ URL params
func requireParamObjectID(c fiber.Ctx, param string) (primitive.ObjectID, error) {
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

// parsePendingTransferQuery đọc deliveryJobId và limit từ query string
func parsePendingTransferQuery(c fiber.Ctx) (*primitive.ObjectID, int64, error) {
	var jobID *primitive.ObjectID
	if raw := c.Query("deliveryJobId"); raw != "" {
		if !primitive.IsValidObjectID(raw) {
			return nil, 0, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("deliveryJobId '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", raw),
				common.StatusBadRequest,
				nil,
			)
		}
		id := utility.String2ObjectID(raw)
		jobID = &id
	}
	limit := utility.P2Int64(c.Query("limit", "0"))
	return jobID, limit, nil
}

// parseDestinationIdsQuery đọc danh sách destinationIds (cách nhau bằng dấu phẩy)
// từ query string, rỗng nghĩa là không lọc theo destination
func parseDestinationIdsQuery(c fiber.Ctx) ([]primitive.ObjectID, error) {
	raw := c.Query("destinationIds")
	if raw == "" {
		return nil, nil
	}

	var ids []primitive.ObjectID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !primitive.IsValidObjectID(part) {
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("destinationIds chứa ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", part),
				common.StatusBadRequest,
				nil,
			)
		}
		ids = append(ids, utility.String2ObjectID(part))
	}
	return ids, nil
}
