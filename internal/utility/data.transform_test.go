// Package utility - Test parse tag transform và convert giá trị DTO → Model.
package utility

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseTransformTag(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		wantType string
		optional bool
		required bool
		def      string
		mapTo    string
	}{
		{name: "chỉ có type", tag: "str_objectid", wantType: "str_objectid"},
		{name: "type + optional", tag: "str_objectid_ptr,optional", wantType: "str_objectid_ptr", optional: true},
		{name: "type + required", tag: "str_objectid,required", wantType: "str_objectid", required: true},
		{name: "string + default", tag: "string,default=UNKNOWN", wantType: "string", def: "UNKNOWN"},
		{name: "map sang field khác", tag: "str_objectid,map=SourceAudienceID", wantType: "str_objectid", mapTo: "SourceAudienceID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ParseTransformTag(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, config.Type)
			assert.Equal(t, tt.optional, config.Optional)
			assert.Equal(t, tt.required, config.Required)
			assert.Equal(t, tt.def, config.Default)
			assert.Equal(t, tt.mapTo, config.MapTo)
		})
	}
}

func TestParseTransformTag_FormatMacDinh(t *testing.T) {
	config, err := ParseTransformTag("str_time")
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02T15:04:05", config.Format, "str_time không có format phải dùng format mặc định")

	config, err = ParseTransformTag("str_time,format=2006-01-02")
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02", config.Format)
}

func TestTransformFieldValue_ObjectID(t *testing.T) {
	config, err := ParseTransformTag("str_objectid")
	require.NoError(t, err)

	id := primitive.NewObjectID()
	got, err := TransformFieldValue(id.Hex(), config, reflect.TypeOf(primitive.ObjectID{}))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	// Hex không hợp lệ phải trả về lỗi
	_, err = TransformFieldValue("not-a-hex", config, reflect.TypeOf(primitive.ObjectID{}))
	assert.Error(t, err, "hex không hợp lệ phải lỗi")
}

func TestTransformFieldValue_ObjectIDPtr(t *testing.T) {
	config, err := ParseTransformTag("str_objectid_ptr,optional")
	require.NoError(t, err)

	// String rỗng với optional → nil, không lỗi
	got, err := TransformFieldValue("", config, reflect.TypeOf(&primitive.ObjectID{}))
	require.NoError(t, err)
	assert.Nil(t, got)

	id := primitive.NewObjectID()
	got, err = TransformFieldValue(id.Hex(), config, reflect.TypeOf(&primitive.ObjectID{}))
	require.NoError(t, err)
	ptr, ok := got.(*primitive.ObjectID)
	require.True(t, ok, "kết quả phải là *primitive.ObjectID, nhận được %T", got)
	assert.Equal(t, id, *ptr)
}

func TestTransformFieldValue_RequiredThieuGiaTri(t *testing.T) {
	config, err := ParseTransformTag("str_objectid,required")
	require.NoError(t, err)

	_, err = TransformFieldValue(nil, config, reflect.TypeOf(primitive.ObjectID{}))
	assert.Error(t, err, "field required thiếu giá trị phải lỗi")

	_, err = TransformFieldValue("", config, reflect.TypeOf(primitive.ObjectID{}))
	assert.Error(t, err, "field required giá trị rỗng phải lỗi")
}

func TestTransformFieldValue_DefaultChoStringRong(t *testing.T) {
	config, err := ParseTransformTag("string,default=UNKNOWN")
	require.NoError(t, err)

	got, err := TransformFieldValue("", config, reflect.TypeOf(""))
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", got, "string rỗng phải được thay bằng default")

	got, err = TransformFieldValue("FAILED", config, reflect.TypeOf(""))
	require.NoError(t, err)
	assert.Equal(t, "FAILED", got, "giá trị có sẵn không được ghi đè bởi default")
}

func TestTransformFieldValue_Int64VaBool(t *testing.T) {
	int64Config, err := ParseTransformTag("str_int64")
	require.NoError(t, err)

	got, err := TransformFieldValue("12345", int64Config, reflect.TypeOf(int64(0)))
	require.NoError(t, err)
	assert.Equal(t, int64(12345), got)

	// JSON number decode thành float64
	got, err = TransformFieldValue(float64(99), int64Config, reflect.TypeOf(int64(0)))
	require.NoError(t, err)
	assert.Equal(t, int64(99), got)

	boolConfig, err := ParseTransformTag("str_bool")
	require.NoError(t, err)

	got, err = TransformFieldValue("true", boolConfig, reflect.TypeOf(false))
	require.NoError(t, err)
	assert.Equal(t, true, got)
}
