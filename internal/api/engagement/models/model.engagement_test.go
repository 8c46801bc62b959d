// Package models - Test tổng hợp trạng thái engagement từ latestDelivery.
package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func destRef(status string) DestinationRef {
	return DestinationRef{
		DestinationID:  primitive.NewObjectID(),
		LatestDelivery: &LatestDelivery{Status: status},
	}
}

func TestWeightedStatus_EmptyEngagement(t *testing.T) {
	e := &Engagement{}
	if got := e.WeightedStatus(); got != EngagementStatusNotDelivered {
		t.Errorf("Engagement rỗng phải là NOT_DELIVERED, nhận được %s", got)
	}
}

func TestWeightedStatus_DeliveringThangMoiTrangThaiKhac(t *testing.T) {
	e := &Engagement{
		Audiences: []AudienceRef{
			{AudienceID: primitive.NewObjectID(), Destinations: []DestinationRef{
				destRef("SUCCEEDED"),
				destRef("DELIVERING"),
				destRef("FAILED"),
			}},
		},
	}
	if got := e.WeightedStatus(); got != EngagementStatusDelivering {
		t.Errorf("Có destination DELIVERING thì engagement phải DELIVERING, nhận được %s", got)
	}
}

func TestWeightedStatus_KhongPhuThuocThuTu(t *testing.T) {
	// Cùng một tập trạng thái, hai thứ tự khác nhau phải cho cùng kết quả
	forward := &Engagement{
		Audiences: []AudienceRef{
			{AudienceID: primitive.NewObjectID(), Destinations: []DestinationRef{
				destRef("FAILED"),
				destRef("DELIVERED"),
			}},
		},
	}
	backward := &Engagement{
		Audiences: []AudienceRef{
			{AudienceID: primitive.NewObjectID(), Destinations: []DestinationRef{
				destRef("DELIVERED"),
				destRef("FAILED"),
			}},
		},
	}
	if forward.WeightedStatus() != backward.WeightedStatus() {
		t.Errorf("WeightedStatus phụ thuộc thứ tự destination: %s != %s",
			forward.WeightedStatus(), backward.WeightedStatus())
	}
	if got := forward.WeightedStatus(); got != EngagementStatusDelivered {
		t.Errorf("DELIVERED + FAILED phải tổng hợp thành DELIVERED, nhận được %s", got)
	}
}

func TestWeightedStatus_ChuaCoKetQuaNao(t *testing.T) {
	// Destination chưa có latestDelivery không được tính
	e := &Engagement{
		Audiences: []AudienceRef{
			{AudienceID: primitive.NewObjectID(), Destinations: []DestinationRef{
				{DestinationID: primitive.NewObjectID()},
				destRef("FAILED"),
			}},
		},
	}
	if got := e.WeightedStatus(); got != EngagementStatusNotDelivered {
		t.Errorf("Chưa có job thành công nào thì phải NOT_DELIVERED, nhận được %s", got)
	}
}

func TestFindAudienceRef(t *testing.T) {
	attached := primitive.NewObjectID()
	e := &Engagement{
		Audiences: []AudienceRef{
			{AudienceID: attached},
		},
	}
	if ref := e.FindAudienceRef(attached); ref == nil {
		t.Error("FindAudienceRef không tìm thấy audience đã gắn")
	}
	if ref := e.FindAudienceRef(primitive.NewObjectID()); ref != nil {
		t.Error("FindAudienceRef trả về ref cho audience chưa gắn")
	}
}

func TestHasDestination(t *testing.T) {
	audienceID := primitive.NewObjectID()
	destinationID := primitive.NewObjectID()
	e := &Engagement{
		Audiences: []AudienceRef{
			{AudienceID: audienceID, Destinations: []DestinationRef{
				{DestinationID: destinationID},
			}},
		},
	}
	if !e.HasDestination(audienceID, destinationID) {
		t.Error("HasDestination phải true khi destination đã gắn vào audience")
	}
	if e.HasDestination(audienceID, primitive.NewObjectID()) {
		t.Error("HasDestination phải false khi destination chưa gắn")
	}
	if e.HasDestination(primitive.NewObjectID(), destinationID) {
		t.Error("HasDestination phải false khi audience chưa gắn vào engagement")
	}
}
