package destinationhdl

import (
	"fmt"

	basehdl "engage_api/internal/api/base/handler"
	destinationdto "engage_api/internal/api/destination/dto"
	models "engage_api/internal/api/destination/models"
	destinationsvc "engage_api/internal/api/destination/service"
	"engage_api/internal/common"
	"engage_api/internal/logger"
	"engage_api/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryPlatformHandler xử lý các request liên quan đến Delivery Platform
type DeliveryPlatformHandler struct {
	*basehdl.BaseHandler[models.DeliveryPlatform, destinationdto.DeliveryPlatformCreateInput, destinationdto.DeliveryPlatformUpdateInput]
	DeliveryPlatformService *destinationsvc.DeliveryPlatformService
}

// NewDeliveryPlatformHandler tạo mới DeliveryPlatformHandler
func NewDeliveryPlatformHandler() (*DeliveryPlatformHandler, error) {
	deliveryPlatformService, err := destinationsvc.NewDeliveryPlatformService()
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery platform service: %v", err)
	}
	hdl := &DeliveryPlatformHandler{
		DeliveryPlatformService: deliveryPlatformService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.DeliveryPlatform, destinationdto.DeliveryPlatformCreateInput, destinationdto.DeliveryPlatformUpdateInput](deliveryPlatformService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"authDetails", "password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// InsertOne tạo mới delivery platform, chặn trùng tên trong phạm vi một platform type.
// Che khuất handler generic để thêm bước kiểm tra duplicate name trước khi ghi.
func (h *DeliveryPlatformHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input destinationdto.DeliveryPlatformCreateInput
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

		ctx := h.RequestContext(c)
		if err := h.DeliveryPlatformService.CheckDuplicateName(ctx, model.Name, model.Type, nil); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.InsertOne(ctx, *model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateById cập nhật delivery platform theo ID, kiểm tra duplicate name khi đổi tên.
func (h *DeliveryPlatformHandler) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.requirePlatformID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input destinationdto.DeliveryPlatformUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu cập nhật không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx := h.RequestContext(c)

		// Khi đổi tên phải kiểm tra trùng trong phạm vi type hiện tại của document
		if input.Name != "" {
			current, err := h.DeliveryPlatformService.FindOneById(ctx, id)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			if err := h.DeliveryPlatformService.CheckDuplicateName(ctx, input.Name, current.Type, &id); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		}

		update := map[string]interface{}{}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.AuthDetails != nil {
			update["authDetails"] = input.AuthDetails
		}
		if input.Status != "" {
			update["status"] = input.Status
		}

		data, err := h.DeliveryPlatformService.UpdateById(ctx, id, update)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// CheckConnection xác thực kết nối của platform với upstream (Facebook, SFMC)
// và cập nhật trạng thái. Trả về platform kèm trạng thái mới.
func (h *DeliveryPlatformHandler) CheckConnection(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.requirePlatformID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.DeliveryPlatformService.CheckConnection(h.RequestContext(c), id)
		logger.LogAction("delivery_platform_check_connection", c, map[string]interface{}{
			"deliveryPlatformId": id.Hex(),
			"success":            err == nil,
		})
		h.HandleResponse(c, data, err)
		return nil
	})
}

// requirePlatformID đọc và validate ObjectID từ URL params
func (h *DeliveryPlatformHandler) requirePlatformID(c fiber.Ctx) (primitive.ObjectID, error) {
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
