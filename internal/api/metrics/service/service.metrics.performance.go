package metricssvc

import (
	"context"
	"fmt"

	basemodels "engage_api/internal/api/base/models"
	basesvc "engage_api/internal/api/base/service"
	deliverymodels "engage_api/internal/api/delivery/models"
	models "engage_api/internal/api/metrics/models"
	"engage_api/internal/common"
	"engage_api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PerformanceMetricService là service ghi nhận và tra cứu số liệu hiệu quả chiến dịch
type PerformanceMetricService struct {
	*basesvc.BaseServiceMongoImpl[models.PerformanceMetric]

	jobBase *basesvc.BaseServiceMongoImpl[deliverymodels.DeliveryJob]
}

// NewPerformanceMetricService tạo mới PerformanceMetricService
func NewPerformanceMetricService() (*PerformanceMetricService, error) {
	metrics, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PerformanceMetrics)
	if !exist {
		return nil, fmt.Errorf("failed to get performance_metrics collection: %v", common.ErrNotFound)
	}
	jobs, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryJobs)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_jobs collection: %v", common.ErrNotFound)
	}
	return &PerformanceMetricService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.PerformanceMetric](metrics),
		jobBase:              basesvc.NewBaseServiceMongo[deliverymodels.DeliveryJob](jobs),
	}, nil
}

// Record ghi nhận một bản ghi số liệu cho delivery job.
// Cờ transferredForFeedback luôn bắt đầu là false.
func (s *PerformanceMetricService) Record(ctx context.Context, metric models.PerformanceMetric) (models.PerformanceMetric, error) {
	var zero models.PerformanceMetric

	exists, err := s.jobBase.DocumentExists(ctx, bson.M{"_id": metric.DeliveryJobID})
	if err != nil {
		return zero, err
	}
	if !exists {
		return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy delivery job '%s'", metric.DeliveryJobID.Hex()))
	}

	metric.TransferredForFeedback = false
	return s.InsertOne(ctx, metric)
}

// BulkRecord ghi nhận cả lô số liệu, trả về cờ trạng thái thay vì lỗi
// để caller xử lý partial-batch tường minh.
func (s *PerformanceMetricService) BulkRecord(ctx context.Context, metrics []models.PerformanceMetric) *basemodels.BulkInsertResult {
	for i := range metrics {
		metrics[i].TransferredForFeedback = false
	}
	return s.InsertManyWithResult(ctx, metrics)
}

// MarkTransferred đánh dấu các bản ghi đã chuyển cho hệ thống feedback.
// Bản ghi đã đánh dấu rồi không đổi, trả về số bản ghi vừa chuyển trạng thái.
func (s *PerformanceMetricService) MarkTransferred(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return s.UpdateMany(ctx, bson.M{
		"_id":                    bson.M{"$in": ids},
		"transferredForFeedback": bson.M{"$ne": true},
	}, &basesvc.UpdateData{
		Set: map[string]interface{}{"transferredForFeedback": true},
	}, nil)
}

// MostRecent trả về bản ghi số liệu có endTime lớn nhất của một delivery job.
// Chưa có bản ghi nào thì trả về nil, không phải lỗi.
func (s *PerformanceMetricService) MostRecent(ctx context.Context, deliveryJobID primitive.ObjectID) (*models.PerformanceMetric, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "endTime", Value: -1}}).
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

// PendingTransfer liệt kê các bản ghi chưa chuyển cho feedback, cũ nhất trước.
// deliveryJobID nil nghĩa là không giới hạn job; limit <= 0 nghĩa là không giới hạn số lượng.
func (s *PerformanceMetricService) PendingTransfer(ctx context.Context, deliveryJobID *primitive.ObjectID, limit int64) ([]models.PerformanceMetric, error) {
	filter := bson.M{"transferredForFeedback": bson.M{"$ne": true}}
	if deliveryJobID != nil {
		filter["deliveryJobId"] = *deliveryJobID
	}

	opts := options.Find().SetSort(bson.D{{Key: "endTime", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	results, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.PerformanceMetric{}
	}
	return results, nil
}

// rollupJobMatch dựng điều kiện lọc delivery job cho rollup: theo engagement,
// và thu hẹp theo danh sách destination nếu caller truyền vào.
func rollupJobMatch(engagementID primitive.ObjectID, destinationIDs []primitive.ObjectID) bson.M {
	match := bson.M{
		"engagementId": engagementID,
		"deleted":      bson.M{"$ne": true},
	}
	if len(destinationIDs) > 0 {
		match["deliveryPlatformId"] = bson.M{"$in": destinationIDs}
	}
	return match
}

// RollupByEngagement gom toàn bộ số liệu của mọi delivery job thuộc một engagement
// qua aggregation join delivery_jobs → performance_metrics. destinationIDs khác rỗng
// thì chỉ gom số liệu của job đẩy lên các destination đó. Engagement không tồn tại
// hoặc chưa có số liệu thì trả về danh sách rỗng.
func (s *PerformanceMetricService) RollupByEngagement(ctx context.Context, engagementID primitive.ObjectID, destinationIDs []primitive.ObjectID) ([]models.PerformanceMetric, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: rollupJobMatch(engagementID, destinationIDs)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.PerformanceMetrics,
			"localField":   "_id",
			"foreignField": "deliveryJobId",
			"as":           "metrics",
		}}},
		{{Key: "$unwind", Value: "$metrics"}},
		{{Key: "$match", Value: bson.M{"metrics.deleted": bson.M{"$ne": true}}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$metrics"}}},
		{{Key: "$sort", Value: bson.D{{Key: "endTime", Value: -1}}}},
	}

	cursor, err := s.jobBase.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []models.PerformanceMetric
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if results == nil {
		results = []models.PerformanceMetric{}
	}
	return results, nil
}
