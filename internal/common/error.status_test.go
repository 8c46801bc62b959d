// Package common - Test phân loại lỗi MongoDB và so khớp error qua errors.Is.
package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError_NoDocuments(t *testing.T) {
	err := ConvertMongoError(mongo.ErrNoDocuments)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("mongo.ErrNoDocuments phải convert thành ErrNotFound, nhận được %v", err)
	}
}

func TestConvertMongoError_GiuNguyenLoiDaPhanLoai(t *testing.T) {
	// Lỗi nghiệp vụ đã được phân loại không được downgrade thành lỗi DB chung
	original := NotFoundWithMessage("Không tìm thấy audience 'x'")
	converted := ConvertMongoError(original)
	if !errors.Is(converted, ErrNotFound) {
		t.Errorf("Lỗi đã phân loại bị downgrade: %v", converted)
	}
	if converted != original {
		t.Error("Lỗi đã phân loại phải được giữ nguyên, không wrap lại")
	}
}

func TestConvertMongoError_LoiKhongXacDinh(t *testing.T) {
	err := ConvertMongoError(fmt.Errorf("socket abruptly closed"))
	var typedErr *Error
	if !errors.As(err, &typedErr) {
		t.Fatalf("Lỗi không xác định phải được wrap thành *Error, nhận được %T", err)
	}
	if typedErr.Code.Code != ErrCodeDatabase.Code {
		t.Errorf("Lỗi không xác định phải mang code database chung, nhận được %s", typedErr.Code.Code)
	}
}

func TestConvertMongoError_Nil(t *testing.T) {
	if err := ConvertMongoError(nil); err != nil {
		t.Errorf("nil phải trả về nil, nhận được %v", err)
	}
}

func TestErrorIs_SoKhopTheoCode(t *testing.T) {
	customNotFound := NotFoundWithMessage("Không tìm thấy delivery job 'abc'")
	if !errors.Is(customNotFound, ErrNotFound) {
		t.Error("NotFoundWithMessage phải so khớp được với ErrNotFound qua errors.Is")
	}
	if errors.Is(customNotFound, ErrPreconditionFailed) {
		t.Error("NotFound không được so khớp với lỗi precondition")
	}
}

func TestPreconditionWithMessage(t *testing.T) {
	err := PreconditionWithMessage("Destination chưa được gắn vào audience trong engagement")
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Error("PreconditionWithMessage phải so khớp với ErrPreconditionFailed")
	}
	var typedErr *Error
	if !errors.As(err, &typedErr) {
		t.Fatal("PreconditionWithMessage phải trả về *Error")
	}
	if typedErr.StatusCode != StatusPreconditionFailed {
		t.Errorf("Precondition phải mang HTTP 412, nhận được %d", typedErr.StatusCode)
	}
}
