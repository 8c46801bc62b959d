// Package deliverysvc - Test nhóm và stamp campaign assignment trước khi ghi DB.
package deliverysvc

import (
	"testing"

	models "engage_api/internal/api/delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGroupAssignments_NhomTheoJob(t *testing.T) {
	jobA := primitive.NewObjectID()
	jobB := primitive.NewObjectID()

	assignments := []CampaignAssignment{
		{DeliveryJobID: jobA, Campaign: models.GenericCampaign{CampaignID: "c1"}},
		{DeliveryJobID: jobB, Campaign: models.GenericCampaign{CampaignID: "c2"}},
		{DeliveryJobID: jobA, Campaign: models.GenericCampaign{CampaignID: "c3"}},
	}

	groups := groupAssignments(assignments)
	if len(groups) != 2 {
		t.Fatalf("2 job phải cho 2 nhóm, nhận được %d", len(groups))
	}

	var groupA *campaignGroup
	for i := range groups {
		if groups[i].JobID == jobA {
			groupA = &groups[i]
		}
	}
	if groupA == nil {
		t.Fatal("Không tìm thấy nhóm của job A")
	}
	if len(groupA.Campaigns) != 2 {
		t.Fatalf("Job A có 2 assignment, nhận được %d", len(groupA.Campaigns))
	}
	// Thứ tự campaign trong nhóm phải giữ như đầu vào
	if groupA.Campaigns[0].CampaignID != "c1" || groupA.Campaigns[1].CampaignID != "c3" {
		t.Errorf("Thứ tự campaign trong nhóm bị đảo: %s, %s",
			groupA.Campaigns[0].CampaignID, groupA.Campaigns[1].CampaignID)
	}
}

func TestGroupAssignments_OnDinhGiuaCacLanGoi(t *testing.T) {
	jobA := primitive.NewObjectID()
	jobB := primitive.NewObjectID()

	assignments := []CampaignAssignment{
		{DeliveryJobID: jobB, Campaign: models.GenericCampaign{CampaignID: "c1"}},
		{DeliveryJobID: jobA, Campaign: models.GenericCampaign{CampaignID: "c2"}},
		{DeliveryJobID: jobB, Campaign: models.GenericCampaign{CampaignID: "c3"}},
	}

	first := groupAssignments(assignments)
	second := groupAssignments(assignments)

	if len(first) != len(second) {
		t.Fatalf("Hai lần gọi cho số nhóm khác nhau: %d != %d", len(first), len(second))
	}
	for i := range first {
		if first[i].JobID != second[i].JobID {
			t.Errorf("Thứ tự nhóm không ổn định tại vị trí %d: %s != %s",
				i, first[i].JobID.Hex(), second[i].JobID.Hex())
		}
		if len(first[i].Campaigns) != len(second[i].Campaigns) {
			t.Errorf("Số campaign trong nhóm %d khác nhau giữa hai lần gọi", i)
		}
	}

	// Các nhóm phải sắp theo job id để kết quả ghi DB không phụ thuộc thứ tự đầu vào
	for i := 1; i < len(first); i++ {
		if first[i-1].JobID.Hex() >= first[i].JobID.Hex() {
			t.Errorf("Nhóm không sắp theo job id: %s đứng trước %s",
				first[i-1].JobID.Hex(), first[i].JobID.Hex())
		}
	}
}

func TestStampCampaigns(t *testing.T) {
	jobID := primitive.NewObjectID()
	campaigns := []models.GenericCampaign{
		{CampaignID: "c1", AdSetID: "a1"},
		{CampaignID: "c2"},
	}

	stamped := stampCampaigns(campaigns, jobID, 1700000000000)
	if len(stamped) != 2 {
		t.Fatalf("Số campaign sau stamp phải giữ nguyên, nhận được %d", len(stamped))
	}
	for _, campaign := range stamped {
		if campaign.DeliveryJobID != jobID {
			t.Errorf("Campaign %s phải mang id của job sở hữu", campaign.CampaignID)
		}
		if campaign.CreateTime != 1700000000000 {
			t.Errorf("Campaign %s phải mang createTime của job sở hữu, nhận được %d",
				campaign.CampaignID, campaign.CreateTime)
		}
	}

	// Slice đầu vào không được bị sửa tại chỗ
	if campaigns[0].DeliveryJobID != primitive.NilObjectID || campaigns[0].CreateTime != 0 {
		t.Error("stampCampaigns sửa slice đầu vào thay vì trả về bản sao")
	}
}
