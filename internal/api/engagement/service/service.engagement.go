package engagementsvc

import (
	"context"
	"errors"
	"fmt"

	audiencemodels "engage_api/internal/api/audience/models"
	basesvc "engage_api/internal/api/base/service"
	deliverymodels "engage_api/internal/api/delivery/models"
	destinationmodels "engage_api/internal/api/destination/models"
	models "engage_api/internal/api/engagement/models"
	"engage_api/internal/common"
	"engage_api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EngagementService là service quản lý engagement: vòng đời CRUD cộng với việc
// gắn/gỡ audience, destination và cache latestDelivery của từng destination.
type EngagementService struct {
	*basesvc.BaseServiceMongoImpl[models.Engagement]

	audienceBase  *basesvc.BaseServiceMongoImpl[audiencemodels.Audience]
	lookalikeBase *basesvc.BaseServiceMongoImpl[audiencemodels.LookalikeAudience]
	platformBase  *basesvc.BaseServiceMongoImpl[destinationmodels.DeliveryPlatform]
	jobBase       *basesvc.BaseServiceMongoImpl[deliverymodels.DeliveryJob]
}

// NewEngagementService tạo mới EngagementService
func NewEngagementService() (*EngagementService, error) {
	engagements, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Engagements)
	if !exist {
		return nil, fmt.Errorf("failed to get engagements collection: %v", common.ErrNotFound)
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
	jobs, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryJobs)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_jobs collection: %v", common.ErrNotFound)
	}
	return &EngagementService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Engagement](engagements),
		audienceBase:         basesvc.NewBaseServiceMongo[audiencemodels.Audience](audiences),
		lookalikeBase:        basesvc.NewBaseServiceMongo[audiencemodels.LookalikeAudience](lookalikes),
		platformBase:         basesvc.NewBaseServiceMongo[destinationmodels.DeliveryPlatform](platforms),
		jobBase:              basesvc.NewBaseServiceMongo[deliverymodels.DeliveryJob](jobs),
	}, nil
}

// audienceExists kiểm tra một ID có trỏ tới audience hoặc lookalike audience còn sống không
func (s *EngagementService) audienceExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	exists, err := s.audienceBase.DocumentExists(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}
	return s.lookalikeBase.DocumentExists(ctx, bson.M{"_id": id})
}

// newAudienceRefs lọc ra các audience chưa có trong engagement và chuẩn hóa
// danh sách destination của từng ref: nil thành rỗng, trùng destinationId thì
// bản sau thắng, ref trùng audienceId trong cùng đầu vào chỉ lấy bản đầu
func newAudienceRefs(engagement models.Engagement, refs []models.AudienceRef) []models.AudienceRef {
	var newRefs []models.AudienceRef
	seen := make(map[primitive.ObjectID]bool, len(refs))
	for _, ref := range refs {
		if engagement.FindAudienceRef(ref.AudienceID) != nil || seen[ref.AudienceID] {
			continue
		}
		seen[ref.AudienceID] = true

		destinations := make([]models.DestinationRef, 0, len(ref.Destinations))
		for _, dest := range ref.Destinations {
			replaced := false
			for i := range destinations {
				if destinations[i].DestinationID == dest.DestinationID {
					destinations[i].DeliveryPlatformConfig = dest.DeliveryPlatformConfig
					replaced = true
					break
				}
			}
			if !replaced {
				destinations = append(destinations, dest)
			}
		}
		ref.Destinations = destinations
		newRefs = append(newRefs, ref)
	}
	return newRefs
}

// AttachAudiences gắn các audience (hoặc lookalike audience) vào engagement,
// mỗi ref có thể kèm sẵn danh sách destination. Audience đã gắn rồi được bỏ qua,
// gọi lại nhiều lần cho cùng danh sách không đổi kết quả.
func (s *EngagementService) AttachAudiences(ctx context.Context, engagementID primitive.ObjectID, refs []models.AudienceRef) (models.Engagement, error) {
	var zero models.Engagement

	engagement, err := s.FindOneById(ctx, engagementID)
	if err != nil {
		return zero, err
	}

	for _, ref := range refs {
		exists, err := s.audienceExists(ctx, ref.AudienceID)
		if err != nil {
			return zero, err
		}
		if !exists {
			return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy audience '%s'", ref.AudienceID.Hex()))
		}
		for _, dest := range ref.Destinations {
			exists, err := s.platformBase.DocumentExists(ctx, bson.M{"_id": dest.DestinationID})
			if err != nil {
				return zero, err
			}
			if !exists {
				return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy delivery platform '%s'", dest.DestinationID.Hex()))
			}
		}
	}

	newRefs := newAudienceRefs(engagement, refs)
	if len(newRefs) == 0 {
		return engagement, nil
	}

	return s.UpdateById(ctx, engagementID, &basesvc.UpdateData{
		AddToSet: map[string]interface{}{
			"audiences": bson.M{"$each": newRefs},
		},
	})
}

// DetachAudiences gỡ các audience khỏi engagement. Audience không có trong
// engagement được bỏ qua (no-op), không báo lỗi.
func (s *EngagementService) DetachAudiences(ctx context.Context, engagementID primitive.ObjectID, audienceIDs []primitive.ObjectID) (models.Engagement, error) {
	return s.UpdateById(ctx, engagementID, &basesvc.UpdateData{
		Pull: map[string]interface{}{
			"audiences": bson.M{"audienceId": bson.M{"$in": audienceIDs}},
		},
	})
}

// AttachDestination gắn một destination vào một audience trong engagement.
// Nếu destination đã có trong audience thì ghi đè deliveryPlatformConfig (giữ latestDelivery).
// Báo NotFound khi audience chưa được gắn vào engagement, kể cả khi bản thân audience tồn tại.
func (s *EngagementService) AttachDestination(ctx context.Context, engagementID, audienceID primitive.ObjectID, ref models.DestinationRef) (models.Engagement, error) {
	var zero models.Engagement

	exists, err := s.platformBase.DocumentExists(ctx, bson.M{"_id": ref.DestinationID})
	if err != nil {
		return zero, err
	}
	if !exists {
		return zero, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy delivery platform '%s'", ref.DestinationID.Hex()))
	}

	// Destination đã có trong audience: ghi đè config của đúng phần tử đó,
	// không chạm các destination khác và không ghi đè cả mảng
	replaceFilter := bson.M{
		"_id": engagementID,
		"audiences": bson.M{"$elemMatch": bson.M{
			"audienceId":                 audienceID,
			"destinations.destinationId": ref.DestinationID,
		}},
	}
	replaceOpts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetArrayFilters(options.ArrayFilters{Filters: []interface{}{
			bson.M{"aud.audienceId": audienceID},
			bson.M{"dest.destinationId": ref.DestinationID},
		}})
	updated, err := s.FindOneAndUpdate(ctx, replaceFilter, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"audiences.$[aud].destinations.$[dest].deliveryPlatformConfig": ref.DeliveryPlatformConfig,
		},
	}, replaceOpts)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	// Chưa có: push vào đúng audience, filter chặn push trùng khi có request song song
	pushFilter := bson.M{
		"_id": engagementID,
		"audiences": bson.M{"$elemMatch": bson.M{
			"audienceId":                 audienceID,
			"destinations.destinationId": bson.M{"$ne": ref.DestinationID},
		}},
	}
	updated, err = s.FindOneAndUpdate(ctx, pushFilter, &basesvc.UpdateData{
		Push: map[string]interface{}{
			"audiences.$.destinations": ref,
		},
	}, nil)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	// Cả hai nhánh đều không khớp: phân biệt engagement không tồn tại
	// với audience chưa được gắn
	if _, findErr := s.FindOneById(ctx, engagementID); findErr != nil {
		return zero, findErr
	}
	return zero, common.NotFoundWithMessage(fmt.Sprintf("Audience '%s' chưa được gắn vào engagement", audienceID.Hex()))
}

// DetachDestination gỡ một destination khỏi một audience trong engagement.
// Destination không có trong audience được bỏ qua (no-op).
func (s *EngagementService) DetachDestination(ctx context.Context, engagementID, audienceID, destinationID primitive.ObjectID) (models.Engagement, error) {
	var zero models.Engagement

	filter := bson.M{"_id": engagementID, "audiences.audienceId": audienceID}
	updated, err := s.UpdateOne(ctx, filter, &basesvc.UpdateData{
		Pull: map[string]interface{}{
			"audiences.$.destinations": bson.M{"destinationId": destinationID},
		},
	}, nil)
	if err != nil {
		// Phân biệt engagement không tồn tại với audience chưa được gắn
		if errors.Is(err, common.ErrNotFound) {
			if _, findErr := s.FindOneById(ctx, engagementID); findErr != nil {
				return zero, findErr
			}
			return zero, common.NotFoundWithMessage(fmt.Sprintf("Audience '%s' chưa được gắn vào engagement", audienceID.Hex()))
		}
		return zero, err
	}
	return updated, nil
}

// RefreshLatestDelivery tính lại cache latestDelivery cho mọi destination trong
// engagement từ delivery job gần nhất (theo createTime) của từng bộ ba
// (engagement, audience, destination). Destination chưa có job nào thì cache bị xóa.
func (s *EngagementService) RefreshLatestDelivery(ctx context.Context, engagementID primitive.ObjectID) (models.Engagement, error) {
	var zero models.Engagement

	engagement, err := s.FindOneById(ctx, engagementID)
	if err != nil {
		return zero, err
	}

	for _, audience := range engagement.Audiences {
		for _, destination := range audience.Destinations {
			latest, err := s.latestJob(ctx, engagementID, audience.AudienceID, destination.DestinationID)
			if err != nil {
				return zero, err
			}

			// Chỉ chạm field latestDelivery của đúng phần tử, các thay đổi
			// song song trên audiences không bị ghi đè. Destination bị gỡ
			// giữa chừng thì array filter không khớp, update thành no-op.
			update := &basesvc.UpdateData{Set: map[string]interface{}{}}
			if latest != nil {
				update.Set["audiences.$[aud].destinations.$[dest].latestDelivery"] = latest
			} else {
				update.Unset = map[string]interface{}{
					"audiences.$[aud].destinations.$[dest].latestDelivery": "",
				}
			}
			opts := options.Update().SetArrayFilters(options.ArrayFilters{Filters: []interface{}{
				bson.M{"aud.audienceId": audience.AudienceID},
				bson.M{"dest.destinationId": destination.DestinationID},
			}})
			if _, err := s.UpdateOne(ctx, bson.M{"_id": engagementID}, update, opts); err != nil {
				return zero, err
			}
		}
	}

	return s.FindOneById(ctx, engagementID)
}

// latestJob tìm delivery job gần nhất của bộ ba (engagement, audience, destination)
// và chuyển thành LatestDelivery. Trả về nil khi chưa có job nào.
func (s *EngagementService) latestJob(ctx context.Context, engagementID, audienceID, destinationID primitive.ObjectID) (*models.LatestDelivery, error) {
	filter := bson.M{
		"engagementId":       engagementID,
		"audienceId":         audienceID,
		"deliveryPlatformId": destinationID,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createTime", Value: -1}}).
		SetLimit(1)

	jobs, err := s.jobBase.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	job := jobs[0]
	updateTime := job.CreateTime
	if job.JobStartTime > updateTime {
		updateTime = job.JobStartTime
	}
	if job.JobEndTime > updateTime {
		updateTime = job.JobEndTime
	}

	return &models.LatestDelivery{
		Status:     job.Status,
		Size:       job.AudienceSize,
		UpdateTime: updateTime,
	}, nil
}
