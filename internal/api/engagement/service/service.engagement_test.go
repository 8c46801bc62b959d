// Package engagementsvc - Test chuẩn hóa danh sách audience ref khi attach.
package engagementsvc

import (
	"testing"

	models "engage_api/internal/api/engagement/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewAudienceRefs_BoQuaAudienceDaGan(t *testing.T) {
	attached := primitive.NewObjectID()
	fresh := primitive.NewObjectID()
	engagement := models.Engagement{
		Audiences: []models.AudienceRef{{AudienceID: attached}},
	}

	refs := newAudienceRefs(engagement, []models.AudienceRef{
		{AudienceID: attached},
		{AudienceID: fresh},
	})

	if len(refs) != 1 {
		t.Fatalf("Audience đã gắn phải bị bỏ qua, nhận được %d ref", len(refs))
	}
	if refs[0].AudienceID != fresh {
		t.Errorf("Ref còn lại phải là audience mới, nhận được %s", refs[0].AudienceID.Hex())
	}
}

func TestNewAudienceRefs_GoiLaiKhongDoi(t *testing.T) {
	audienceID := primitive.NewObjectID()
	engagement := models.Engagement{}

	input := []models.AudienceRef{{AudienceID: audienceID}}
	first := newAudienceRefs(engagement, input)
	if len(first) != 1 {
		t.Fatalf("Lần gắn đầu phải cho 1 ref mới, nhận được %d", len(first))
	}

	// Sau khi engagement đã chứa ref, gọi lại với cùng đầu vào phải là no-op
	engagement.Audiences = append(engagement.Audiences, first...)
	second := newAudienceRefs(engagement, input)
	if len(second) != 0 {
		t.Errorf("Gọi lại với cùng danh sách phải không thêm ref nào, nhận được %d", len(second))
	}
}

func TestNewAudienceRefs_KemDestination(t *testing.T) {
	audienceID := primitive.NewObjectID()
	destinationID := primitive.NewObjectID()
	engagement := models.Engagement{}

	refs := newAudienceRefs(engagement, []models.AudienceRef{
		{
			AudienceID: audienceID,
			Destinations: []models.DestinationRef{
				{DestinationID: destinationID, DeliveryPlatformConfig: map[string]interface{}{"adAccountId": "cu"}},
				{DestinationID: destinationID, DeliveryPlatformConfig: map[string]interface{}{"adAccountId": "moi"}},
			},
		},
	})

	if len(refs) != 1 {
		t.Fatalf("Phải có đúng 1 ref mới, nhận được %d", len(refs))
	}
	destinations := refs[0].Destinations
	if len(destinations) != 1 {
		t.Fatalf("Destination trùng id phải được gộp, nhận được %d", len(destinations))
	}
	if destinations[0].DeliveryPlatformConfig["adAccountId"] != "moi" {
		t.Error("Destination trùng id thì config của bản sau phải thắng")
	}
}

func TestNewAudienceRefs_ChuanHoaDestinationNil(t *testing.T) {
	engagement := models.Engagement{}
	refs := newAudienceRefs(engagement, []models.AudienceRef{
		{AudienceID: primitive.NewObjectID()},
	})

	if len(refs) != 1 {
		t.Fatalf("Phải có đúng 1 ref mới, nhận được %d", len(refs))
	}
	if refs[0].Destinations == nil {
		t.Error("Destinations nil phải được chuẩn hóa thành slice rỗng trước khi ghi DB")
	}
}

func TestNewAudienceRefs_TrungAudienceTrongDauVao(t *testing.T) {
	audienceID := primitive.NewObjectID()
	engagement := models.Engagement{}

	refs := newAudienceRefs(engagement, []models.AudienceRef{
		{AudienceID: audienceID},
		{AudienceID: audienceID},
	})
	if len(refs) != 1 {
		t.Errorf("Audience trùng trong cùng đầu vào chỉ được gắn một lần, nhận được %d ref", len(refs))
	}
}
