package audiencesvc

import (
	"context"
	"errors"
	"fmt"

	audiencemodels "engage_api/internal/api/audience/models"
	basesvc "engage_api/internal/api/base/service"
	deliverymodels "engage_api/internal/api/delivery/models"
	destinationmodels "engage_api/internal/api/destination/models"
	engagementmodels "engage_api/internal/api/engagement/models"
	engagementsvc "engage_api/internal/api/engagement/service"
	"engage_api/internal/common"
	"engage_api/internal/global"
	"engage_api/internal/logger"
	"engage_api/internal/platform"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LookalikeAudienceService là service tạo và quản lý lookalike audience.
// Lookalike chỉ được tạo khi source audience đã từng đẩy thành công lên
// platform đích qua một delivery job.
type LookalikeAudienceService struct {
	*basesvc.BaseServiceMongoImpl[audiencemodels.LookalikeAudience]

	audienceBase      *basesvc.BaseServiceMongoImpl[audiencemodels.Audience]
	platformBase      *basesvc.BaseServiceMongoImpl[destinationmodels.DeliveryPlatform]
	jobBase           *basesvc.BaseServiceMongoImpl[deliverymodels.DeliveryJob]
	engagementService *engagementsvc.EngagementService
}

// NewLookalikeAudienceService tạo mới LookalikeAudienceService
func NewLookalikeAudienceService() (*LookalikeAudienceService, error) {
	lookalikes, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LookalikeAudiences)
	if !exist {
		return nil, fmt.Errorf("failed to get lookalike_audiences collection: %v", common.ErrNotFound)
	}
	audiences, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Audiences)
	if !exist {
		return nil, fmt.Errorf("failed to get audiences collection: %v", common.ErrNotFound)
	}
	platforms, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryPlatforms)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_platforms collection: %v", common.ErrNotFound)
	}
	jobs, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryJobs)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_jobs collection: %v", common.ErrNotFound)
	}
	engagementService, err := engagementsvc.NewEngagementService()
	if err != nil {
		return nil, fmt.Errorf("failed to create engagement service: %v", err)
	}
	return &LookalikeAudienceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[audiencemodels.LookalikeAudience](lookalikes),
		audienceBase:         basesvc.NewBaseServiceMongo[audiencemodels.Audience](audiences),
		platformBase:         basesvc.NewBaseServiceMongo[destinationmodels.DeliveryPlatform](platforms),
		jobBase:              basesvc.NewBaseServiceMongo[deliverymodels.DeliveryJob](jobs),
		engagementService:    engagementService,
	}, nil
}

// CreateLookalike tạo lookalike audience từ một source audience đã đẩy thành công
// lên platform đích. Trình tự: kiểm tra source audience và platform, check connection,
// tìm delivery job thành công gần nhất (giới hạn theo engagementIDs nếu có), ghi
// lookalike, gắn ngược id lookalike vào job seed rồi gắn lookalike vào các engagement.
func (s *LookalikeAudienceService) CreateLookalike(ctx context.Context, lookalike audiencemodels.LookalikeAudience, engagementIDs []primitive.ObjectID) (audiencemodels.LookalikeAudience, error) {
	var zero audiencemodels.LookalikeAudience

	if _, err := s.audienceBase.FindOneById(ctx, lookalike.SourceAudienceID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy source audience '%s'", lookalike.SourceAudienceID.Hex()))
		}
		return zero, err
	}

	p, err := s.platformBase.FindOneById(ctx, lookalike.DeliveryPlatformID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy delivery platform '%s'", lookalike.DeliveryPlatformID.Hex()))
		}
		return zero, err
	}

	client, err := platform.GetClient(p.Type)
	if err != nil {
		return zero, err
	}
	if err := client.CheckConnection(ctx, platform.AuthConfig(p.AuthDetails)); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("deliveryPlatformId", p.ID.Hex()).Error("Check connection thất bại khi tạo lookalike audience")
		return zero, common.ErrUpstreamUnavailable
	}

	seedJob, err := s.findSeedJob(ctx, lookalike.DeliveryPlatformID, lookalike.SourceAudienceID, engagementIDs)
	if err != nil {
		return zero, err
	}

	created, err := s.InsertOne(ctx, lookalike)
	if err != nil {
		return zero, err
	}

	// Gắn ngược id lookalike vào job seed để truy vết nguồn gốc
	if _, err := s.jobBase.UpdateById(ctx, seedJob.ID, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{
			"lookalikeAudiences": created.ID,
		},
	}); err != nil {
		return created, err
	}

	for _, engagementID := range engagementIDs {
		ref := engagementmodels.AudienceRef{
			AudienceID:   created.ID,
			Destinations: []engagementmodels.DestinationRef{},
		}
		if _, err := s.engagementService.AttachAudiences(ctx, engagementID, []engagementmodels.AudienceRef{ref}); err != nil {
			return created, err
		}
	}

	return created, nil
}

// findSeedJob tìm delivery job thành công gần nhất (theo jobStartTime) của cặp
// (platform, source audience), giới hạn trong engagementIDs nếu được truyền vào.
func (s *LookalikeAudienceService) findSeedJob(ctx context.Context, platformID, sourceAudienceID primitive.ObjectID, engagementIDs []primitive.ObjectID) (deliverymodels.DeliveryJob, error) {
	var zero deliverymodels.DeliveryJob

	filter := bson.M{
		"deliveryPlatformId": platformID,
		"audienceId":         sourceAudienceID,
		"status": bson.M{"$in": []string{
			deliverymodels.JobStatusSucceeded,
			deliverymodels.JobStatusDelivered,
		}},
	}
	if len(engagementIDs) > 0 {
		filter["engagementId"] = bson.M{"$in": engagementIDs}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "jobStartTime", Value: -1}}).
		SetLimit(1)

	jobs, err := s.jobBase.Find(ctx, filter, opts)
	if err != nil {
		return zero, err
	}
	if len(jobs) == 0 {
		return zero, common.NotFoundWithMessage("Không tìm thấy delivery job thành công nào để tạo lookalike audience")
	}
	return jobs[0], nil
}
