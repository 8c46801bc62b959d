package deliverysvc

import (
	"context"
	"errors"
	"fmt"
	"sort"

	basesvc "engage_api/internal/api/base/service"
	models "engage_api/internal/api/delivery/models"
	"engage_api/internal/common"
	"engage_api/internal/logger"
	"engage_api/internal/platform"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignAssignment gán một delivery job vào một campaign/ad set cụ thể
type CampaignAssignment struct {
	DeliveryJobID primitive.ObjectID
	Campaign      models.GenericCampaign
}

// ListCandidateMappings liệt kê toàn bộ campaign/ad set khả dụng trên một
// delivery platform để người dùng chọn gán delivery job. Check connection
// trước khi liệt kê; platform không khả dụng sẽ báo lỗi upstream.
func (s *DeliveryJobService) ListCandidateMappings(ctx context.Context, destinationID primitive.ObjectID) ([]models.GenericCampaign, error) {
	p, err := s.platformBase.FindOneById(ctx, destinationID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy delivery platform '%s'", destinationID.Hex()))
		}
		return nil, err
	}

	client, err := platform.GetClient(p.Type)
	if err != nil {
		return nil, err
	}

	auth := platform.AuthConfig(p.AuthDetails)
	if err := client.CheckConnection(ctx, auth); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("deliveryPlatformId", destinationID.Hex()).Error("Check connection thất bại khi liệt kê campaign")
		return nil, common.ErrUpstreamUnavailable
	}

	campaigns, err := client.GetCampaigns(ctx, auth)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.GenericCampaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		adSets, err := client.GetCampaignAdSets(ctx, auth, campaign.ID)
		if err != nil {
			return nil, err
		}
		if len(adSets) == 0 {
			candidates = append(candidates, models.GenericCampaign{
				CampaignID: campaign.ID,
				Name:       campaign.Name,
			})
			continue
		}
		for _, adSet := range adSets {
			candidates = append(candidates, models.GenericCampaign{
				CampaignID: campaign.ID,
				AdSetID:    adSet.ID,
				Name:       campaign.Name,
				AdSetName:  adSet.Name,
			})
		}
	}
	return candidates, nil
}

// campaignGroup gom các campaign gán cho cùng một delivery job
type campaignGroup struct {
	JobID     primitive.ObjectID
	Campaigns []models.GenericCampaign
}

// groupAssignments nhóm assignment theo job id: các nhóm sắp theo job id để kết quả
// ổn định giữa các lần gọi, thứ tự campaign trong từng nhóm giữ như đầu vào.
func groupAssignments(assignments []CampaignAssignment) []campaignGroup {
	sorted := make([]CampaignAssignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DeliveryJobID.Hex() < sorted[j].DeliveryJobID.Hex()
	})

	var groups []campaignGroup
	for i := 0; i < len(sorted); {
		jobID := sorted[i].DeliveryJobID
		var campaigns []models.GenericCampaign
		for i < len(sorted) && sorted[i].DeliveryJobID == jobID {
			campaigns = append(campaigns, sorted[i].Campaign)
			i++
		}
		groups = append(groups, campaignGroup{JobID: jobID, Campaigns: campaigns})
	}
	return groups
}

// stampCampaigns gắn job id và createTime của job sở hữu vào từng mapping
// trước khi ghi xuống DB
func stampCampaigns(campaigns []models.GenericCampaign, jobID primitive.ObjectID, createTime int64) []models.GenericCampaign {
	stamped := make([]models.GenericCampaign, len(campaigns))
	for i, campaign := range campaigns {
		campaign.DeliveryJobID = jobID
		campaign.CreateTime = createTime
		stamped[i] = campaign
	}
	return stamped
}

// ReplaceCampaigns thay toàn bộ campaign mapping của các delivery job thuộc bộ ba
// (engagement, audience, destination). Mapping cũ bị xóa trước, sau đó từng nhóm
// assignment được ghi theo thứ tự job id, mỗi mapping mang kèm job id và createTime
// của job sở hữu. Nếu một assignment trỏ tới job không thuộc engagement thì dừng
// tại đó, các nhóm đã ghi trước đó giữ nguyên.
// Gọi lại với cùng đầu vào cho cùng kết quả.
func (s *DeliveryJobService) ReplaceCampaigns(ctx context.Context, engagementID, audienceID, destinationID primitive.ObjectID, assignments []CampaignAssignment) (int64, error) {
	engagement, err := s.engagementBase.FindOneById(ctx, engagementID)
	if err != nil {
		return 0, err
	}
	if !engagement.HasDestination(audienceID, destinationID) {
		return 0, common.PreconditionWithMessage("Destination chưa được gắn vào audience trong engagement")
	}

	tripleFilter := bson.M{
		"engagementId":       engagementID,
		"audienceId":         audienceID,
		"deliveryPlatformId": destinationID,
	}
	jobs, err := s.Find(ctx, tripleFilter, nil)
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		return 0, common.NotFoundWithMessage("Không tìm thấy delivery job nào để gán campaign")
	}

	// Xóa mapping cũ trên toàn bộ job của bộ ba trước khi ghi mapping mới
	if _, err := s.UpdateMany(ctx, tripleFilter, &basesvc.UpdateData{
		Set: map[string]interface{}{"genericCampaigns": []models.GenericCampaign{}},
	}, nil); err != nil {
		return 0, err
	}

	knownJobs := make(map[primitive.ObjectID]models.DeliveryJob, len(jobs))
	for _, job := range jobs {
		knownJobs[job.ID] = job
	}

	var updated int64
	for _, group := range groupAssignments(assignments) {
		job, known := knownJobs[group.JobID]
		if !known {
			job, err = s.FindOneById(ctx, group.JobID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return updated, common.NotFoundWithMessage(fmt.Sprintf("Không tìm thấy delivery job '%s'", group.JobID.Hex()))
				}
				return updated, err
			}
		}
		if job.EngagementID == nil || *job.EngagementID != engagementID {
			return updated, common.PreconditionWithMessage(fmt.Sprintf("Delivery job '%s' không thuộc engagement, dừng gán campaign", group.JobID.Hex()))
		}

		if _, err := s.UpdateById(ctx, group.JobID, &basesvc.UpdateData{
			Set: map[string]interface{}{"genericCampaigns": stampCampaigns(group.Campaigns, job.ID, job.CreateTime)},
		}); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}
