package deliverysvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	audiencemodels "engage_api/internal/api/audience/models"
	basesvc "engage_api/internal/api/base/service"
	models "engage_api/internal/api/delivery/models"
	destinationmodels "engage_api/internal/api/destination/models"
	engagementmodels "engage_api/internal/api/engagement/models"
	"engage_api/internal/common"
	"engage_api/internal/global"
	"engage_api/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DeliveryJobService là service quản lý delivery job: tạo job, cập nhật trạng thái
// theo state machine và tra cứu job theo metadata.
type DeliveryJobService struct {
	*basesvc.BaseServiceMongoImpl[models.DeliveryJob]

	audienceBase   *basesvc.BaseServiceMongoImpl[audiencemodels.Audience]
	lookalikeBase  *basesvc.BaseServiceMongoImpl[audiencemodels.LookalikeAudience]
	platformBase   *basesvc.BaseServiceMongoImpl[destinationmodels.DeliveryPlatform]
	engagementBase *basesvc.BaseServiceMongoImpl[engagementmodels.Engagement]
}

// NewDeliveryJobService tạo mới DeliveryJobService
func NewDeliveryJobService() (*DeliveryJobService, error) {
	jobs, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryJobs)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_jobs collection: %v", common.ErrNotFound)
	}
	audiences, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Audiences)
	if !exist {
		return nil, fmt.Errorf("failed to get audiences collection: %v", common.ErrNotFound)
	}
	lookalikes, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LookalikeAudiences)
	if !exist {
		return nil, fmt.Errorf("failed to get lookalike_audiences collection: %v", common.ErrNotFound)
	}
	platforms, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryPlatforms)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_platforms collection: %v", common.ErrNotFound)
	}
	engagements, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Engagements)
	if !exist {
		return nil, fmt.Errorf("failed to get engagements collection: %v", common.ErrNotFound)
	}
	return &DeliveryJobService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.DeliveryJob](jobs),
		audienceBase:         basesvc.NewBaseServiceMongo[audiencemodels.Audience](audiences),
		lookalikeBase:        basesvc.NewBaseServiceMongo[audiencemodels.LookalikeAudience](lookalikes),
		platformBase:         basesvc.NewBaseServiceMongo[destinationmodels.DeliveryPlatform](platforms),
		engagementBase:       basesvc.NewBaseServiceMongo[engagementmodels.Engagement](engagements),
	}, nil
}

// Create tạo một delivery job mới. Job chỉ được tạo khi platform đích đã check
// connection thành công, và luôn bắt đầu ở trạng thái DELIVERING với
// createTime = jobStartTime = thời điểm tạo.
func (s *DeliveryJobService) Create(ctx context.Context, job models.DeliveryJob) (models.DeliveryJob, error) {
	var zero models.DeliveryJob

	exists, err := s.audienceBase.DocumentExists(ctx, bson.M{"_id": job.AudienceID})
	if err != nil {
		return zero, err
	}
	if !exists {
		exists, err = s.lookalikeBase.DocumentExists(ctx, bson.M{"_id": job.AudienceID})
		if err != nil {
			return zero, err
		}
	}
	if !exists {
		return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy audience '%s'", job.AudienceID.Hex()))
	}

	if job.EngagementID != nil {
		exists, err := s.engagementBase.DocumentExists(ctx, bson.M{"_id": *job.EngagementID})
		if err != nil {
			return zero, err
		}
		if !exists {
			return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy engagement '%s'", job.EngagementID.Hex()))
		}
	}

	p, err := s.platformBase.FindOneById(ctx, job.DeliveryPlatformID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy delivery platform '%s'", job.DeliveryPlatformID.Hex()))
		}
		return zero, err
	}
	if p.Status != destinationmodels.PlatformStatusSucceeded {
		return zero, common.PreconditionWithMessage("Delivery platform chưa kết nối thành công, không thể tạo delivery job")
	}

	// Job DELIVERING đồng thời cho cùng bộ ba là trách nhiệm của caller,
	// server chỉ cảnh báo để truy vết
	dupFilter := bson.M{
		"audienceId":         job.AudienceID,
		"deliveryPlatformId": job.DeliveryPlatformID,
		"engagementId":       job.EngagementID,
		"status":             models.JobStatusDelivering,
	}
	if running, err := s.DocumentExists(ctx, dupFilter); err == nil && running {
		logger.GetAppLogger().WithFields(map[string]interface{}{
			"audienceId":         job.AudienceID.Hex(),
			"deliveryPlatformId": job.DeliveryPlatformID.Hex(),
		}).Warn("Đã có delivery job DELIVERING cho cùng audience/platform, vẫn tạo job mới")
	}

	now := time.Now().UnixMilli()
	job.Status = models.JobStatusDelivering
	job.CreateTime = now
	job.JobStartTime = now
	job.JobEndTime = 0
	job.GenericCampaigns = nil
	job.LookalikeAudiences = nil

	return s.InsertOne(ctx, job)
}

// SetStatus cập nhật trạng thái delivery job. Chuyển sang trạng thái kết thúc
// (DELIVERED, SUCCEEDED, FAILED, ERROR) sẽ stamp jobEndTime; trạng thái khác
// không chạm tới jobEndTime.
func (s *DeliveryJobService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (models.DeliveryJob, error) {
	var zero models.DeliveryJob

	valid := false
	for _, st := range models.ValidJobStatuses() {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Trạng thái '%s' không hợp lệ", status),
			common.StatusBadRequest,
			nil,
		)
	}

	update := &basesvc.UpdateData{Set: map[string]interface{}{"status": status}}
	if models.IsTerminalJobStatus(status) {
		update.Set["jobEndTime"] = time.Now().UnixMilli()
	}
	return s.UpdateById(ctx, id, update)
}

// SetAudienceSize cập nhật số lượng khách hàng đã đẩy do platform báo về
func (s *DeliveryJobService) SetAudienceSize(ctx context.Context, id primitive.ObjectID, size int64) (models.DeliveryJob, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set: map[string]interface{}{"audienceSize": size},
	})
}

// FindByMetadata tra cứu delivery job theo bộ metadata, các tham số nil/rỗng
// không tham gia lọc. Kết quả luôn sắp xếp theo createTime giảm dần,
// limit <= 0 nghĩa là không giới hạn số lượng.
func (s *DeliveryJobService) FindByMetadata(ctx context.Context, engagementID, audienceID, destinationID *primitive.ObjectID, audienceIDs []primitive.ObjectID, limit int64) ([]models.DeliveryJob, error) {
	filter := bson.M{}
	if engagementID != nil {
		filter["engagementId"] = *engagementID
	}
	if audienceID != nil {
		filter["audienceId"] = *audienceID
	}
	if destinationID != nil {
		filter["deliveryPlatformId"] = *destinationID
	}
	if len(audienceIDs) > 0 {
		filter["audienceId"] = bson.M{"$in": audienceIDs}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createTime", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	jobs, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.DeliveryJob{}
	}
	return jobs, nil
}
