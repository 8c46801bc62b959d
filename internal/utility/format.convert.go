package utility

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// P2Int64 parse chuỗi thành int64, trả về 0 nếu không hợp lệ
// @params - chuỗi cần parse
// @returns - giá trị int64
func P2Int64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// String2ObjectID chuyển đổi chuỗi thành ObjectID
// @params - chuỗi cần chuyển đổi
// @returns - ObjectID
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// ObjectID2String chuyển đổi ObjectID thành chuỗi
// @params - ObjectID cần chuyển đổi
// @returns - chuỗi ObjectID
func ObjectID2String(id primitive.ObjectID) string {
	stringObjectID := id.Hex()
	return stringObjectID
}

// StringArray2ObjectIDArray chuyển đổi mảng chuỗi thành mảng ObjectID
// @params - mảng chuỗi cần chuyển đổi
// @returns - mảng ObjectID
func StringArray2ObjectIDArray(ids []string) []primitive.ObjectID {
	var objectIDs []primitive.ObjectID
	for _, id := range ids {
		objectIDs = append(objectIDs, String2ObjectID(id))
	}
	return objectIDs
}

// ObjectIDArray2StringArray chuyển đổi mảng ObjectID thành mảng chuỗi
// @params - mảng ObjectID cần chuyển đổi
// @returns - mảng chuỗi hex
func ObjectIDArray2StringArray(ids []primitive.ObjectID) []string {
	var strs []string
	for _, id := range ids {
		strs = append(strs, id.Hex())
	}
	return strs
}
