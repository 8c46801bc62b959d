// Package metricssvc - Test điều kiện lọc delivery job của rollup.
package metricssvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRollupJobMatch_KhongCoDestination(t *testing.T) {
	engagementID := primitive.NewObjectID()

	match := rollupJobMatch(engagementID, nil)
	if match["engagementId"] != engagementID {
		t.Error("Match phải lọc theo engagementId")
	}
	if _, ok := match["deliveryPlatformId"]; ok {
		t.Error("Không truyền destination thì không được lọc theo deliveryPlatformId")
	}
}

func TestRollupJobMatch_LocTheoDestination(t *testing.T) {
	engagementID := primitive.NewObjectID()
	destA := primitive.NewObjectID()
	destB := primitive.NewObjectID()

	match := rollupJobMatch(engagementID, []primitive.ObjectID{destA, destB})

	platformFilter, ok := match["deliveryPlatformId"].(bson.M)
	if !ok {
		t.Fatal("Truyền destinationIds thì match phải có điều kiện deliveryPlatformId")
	}
	ids, ok := platformFilter["$in"].([]primitive.ObjectID)
	if !ok {
		t.Fatal("Điều kiện deliveryPlatformId phải là $in trên danh sách ObjectID")
	}
	if len(ids) != 2 || ids[0] != destA || ids[1] != destB {
		t.Errorf("Danh sách destination trong $in không khớp đầu vào: %v", ids)
	}
	if match["engagementId"] != engagementID {
		t.Error("Lọc theo destination không được làm mất điều kiện engagementId")
	}
}
