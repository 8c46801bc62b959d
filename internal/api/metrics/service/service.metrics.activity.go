package metricssvc

import (
	"context"
	"fmt"

	basesvc "engage_api/internal/api/base/service"
	deliverymodels "engage_api/internal/api/delivery/models"
	models "engage_api/internal/api/metrics/models"
	"engage_api/internal/common"
	"engage_api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CampaignActivityService là service ghi nhận và tra cứu sự kiện hoạt động chiến dịch
type CampaignActivityService struct {
	*basesvc.BaseServiceMongoImpl[models.CampaignActivity]

	jobBase *basesvc.BaseServiceMongoImpl[deliverymodels.DeliveryJob]
}

// NewCampaignActivityService tạo mới CampaignActivityService
func NewCampaignActivityService() (*CampaignActivityService, error) {
	activities, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CampaignActivity)
	if !exist {
		return nil, fmt.Errorf("failed to get campaign_activity collection: %v", common.ErrNotFound)
	}
	jobs, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryJobs)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_jobs collection: %v", common.ErrNotFound)
	}
	return &CampaignActivityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CampaignActivity](activities),
		jobBase:              basesvc.NewBaseServiceMongo[deliverymodels.DeliveryJob](jobs),
	}, nil
}

// Record ghi nhận một sự kiện hoạt động cho delivery job.
// Cờ transferredForFeedback luôn bắt đầu là false.
func (s *CampaignActivityService) Record(ctx context.Context, activity models.CampaignActivity) (models.CampaignActivity, error) {
	var zero models.CampaignActivity

	exists, err := s.jobBase.DocumentExists(ctx, bson.M{"_id": activity.DeliveryJobID})
	if err != nil {
		return zero, err
	}
	if !exists {
		return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy delivery job '%s'", activity.DeliveryJobID.Hex()))
	}

	activity.TransferredForFeedback = false
	return s.InsertOne(ctx, activity)
}

// MarkTransferred đánh dấu các sự kiện đã chuyển cho hệ thống feedback
func (s *CampaignActivityService) MarkTransferred(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return s.UpdateMany(ctx, bson.M{
		"_id":                    bson.M{"$in": ids},
		"transferredForFeedback": bson.M{"$ne": true},
	}, &basesvc.UpdateData{
		Set: map[string]interface{}{"transferredForFeedback": true},
	}, nil)
}

// MostRecent trả về sự kiện có eventDate lớn nhất của một delivery job.
// Chưa có sự kiện nào thì trả về nil, không phải lỗi.
func (s *CampaignActivityService) MostRecent(ctx context.Context, deliveryJobID primitive.ObjectID) (*models.CampaignActivity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "eventDate", Value: -1}}).
		SetLimit(1)

	results, err := s.Find(ctx, bson.M{"deliveryJobId": deliveryJobID}, opts)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// PendingTransfer liệt kê các sự kiện chưa chuyển cho feedback, cũ nhất trước
func (s *CampaignActivityService) PendingTransfer(ctx context.Context, deliveryJobID *primitive.ObjectID, limit int64) ([]models.CampaignActivity, error) {
	filter := bson.M{"transferredForFeedback": bson.M{"$ne": true}}
	if deliveryJobID != nil {
		filter["deliveryJobId"] = *deliveryJobID
	}

	opts := options.Find().SetSort(bson.D{{Key: "eventDate", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	results, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.CampaignActivity{}
	}
	return results, nil
}
