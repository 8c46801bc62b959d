package destinationsvc

import (
	"context"
	"fmt"

	basesvc "engage_api/internal/api/base/service"
	models "engage_api/internal/api/destination/models"
	"engage_api/internal/common"
	"engage_api/internal/global"
	"engage_api/internal/platform"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryPlatformService là service quản lý các delivery platform (Facebook Ads, SFMC)
type DeliveryPlatformService struct {
	*basesvc.BaseServiceMongoImpl[models.DeliveryPlatform]
}

// NewDeliveryPlatformService tạo mới DeliveryPlatformService
func NewDeliveryPlatformService() (*DeliveryPlatformService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryPlatforms)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_platforms collection: %v", common.ErrNotFound)
	}
	return &DeliveryPlatformService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.DeliveryPlatform](collection),
	}, nil
}

// CheckDuplicateName báo lỗi nếu đã có platform khác cùng (name, type).
// excludeID loại trừ chính document đang update. Unique index trên (name, type)
// vẫn là chốt chặn cuối cho trường hợp ghi đồng thời.
func (s *DeliveryPlatformService) CheckDuplicateName(ctx context.Context, name string, platformType string, excludeID *primitive.ObjectID) error {
	if name == "" || platformType == "" {
		return nil
	}
	filter := bson.M{"name": name, "type": platformType}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	exists, err := s.DocumentExists(ctx, filter)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrDuplicateName
	}
	return nil
}

// CheckConnection xác thực auth config của platform với upstream và cập nhật
// trạng thái kết nối (SUCCEEDED/FAILED). Trả về platform sau khi cập nhật;
// nếu kết nối thất bại thì trả kèm lỗi upstream để handler báo về client.
func (s *DeliveryPlatformService) CheckConnection(ctx context.Context, id primitive.ObjectID) (models.DeliveryPlatform, error) {
	var zero models.DeliveryPlatform

	p, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	client, err := platform.GetClient(p.Type)
	if err != nil {
		return zero, err
	}

	connErr := client.CheckConnection(ctx, platform.AuthConfig(p.AuthDetails))
	status := models.PlatformStatusSucceeded
	if connErr != nil {
		status = models.PlatformStatusFailed
	}

	updated, err := s.UpdateById(ctx, id, map[string]interface{}{"status": status})
	if err != nil {
		return zero, err
	}
	if connErr != nil {
		return updated, connErr
	}
	return updated, nil
}
