package audiencesvc

import (
	"context"
	"fmt"

	audiencemodels "engage_api/internal/api/audience/models"
	basesvc "engage_api/internal/api/base/service"
	engagementmodels "engage_api/internal/api/engagement/models"
	"engage_api/internal/common"
	"engage_api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AudienceService là service quản lý audience (tập khách hàng mục tiêu)
type AudienceService struct {
	*basesvc.BaseServiceMongoImpl[audiencemodels.Audience]

	engagementBase *basesvc.BaseServiceMongoImpl[engagementmodels.Engagement]
}

// NewAudienceService tạo mới AudienceService
func NewAudienceService() (*AudienceService, error) {
	audiences, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Audiences)
	if !exist {
		return nil, fmt.Errorf("failed to get audiences collection: %v", common.ErrNotFound)
	}
	engagements, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Engagements)
	if !exist {
		return nil, fmt.Errorf("failed to get engagements collection: %v", common.ErrNotFound)
	}
	return &AudienceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[audiencemodels.Audience](audiences),
		engagementBase:       basesvc.NewBaseServiceMongo[engagementmodels.Engagement](engagements),
	}, nil
}

// DeleteWithCascade xóa mềm audience và gỡ mọi tham chiếu tới nó khỏi các
// engagement đang gắn. Engagement không chứa audience thì không bị chạm tới.
func (s *AudienceService) DeleteWithCascade(ctx context.Context, id primitive.ObjectID) (audiencemodels.Audience, error) {
	var zero audiencemodels.Audience

	deleted, err := s.SoftDeleteById(ctx, id)
	if err != nil {
		return zero, err
	}

	if _, err := s.engagementBase.UpdateMany(ctx, bson.M{"audiences.audienceId": id}, &basesvc.UpdateData{
		Pull: map[string]interface{}{
			"audiences": bson.M{"audienceId": id},
		},
	}, nil); err != nil {
		return zero, err
	}

	return deleted, nil
}
