// Package global - Test các custom validator đăng ký trong InitValidator.
package global

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type jobStatusInput struct {
	Status string `validate:"required,job_status"`
}

type platformTypeInput struct {
	Type string `validate:"required,platform_type"`
}

type objectIDInput struct {
	ID string `validate:"omitempty,object_id"`
}

func TestValidateJobStatus(t *testing.T) {
	InitValidator()

	for _, status := range []string{"PENDING", "DELIVERING", "DELIVERED", "SUCCEEDED", "FAILED", "ERROR", "delivering"} {
		if err := Validate.Struct(&jobStatusInput{Status: status}); err != nil {
			t.Errorf("Status '%s' phải hợp lệ, nhận được lỗi: %v", status, err)
		}
	}

	for _, status := range []string{"DONE", "CANCELLED", "X"} {
		if err := Validate.Struct(&jobStatusInput{Status: status}); err == nil {
			t.Errorf("Status '%s' không thuộc state machine, phải bị từ chối", status)
		}
	}
}

func TestValidatePlatformType(t *testing.T) {
	InitValidator()

	for _, platformType := range []string{"facebook", "sfmc", "Facebook", "SFMC"} {
		if err := Validate.Struct(&platformTypeInput{Type: platformType}); err != nil {
			t.Errorf("Platform type '%s' phải hợp lệ, nhận được lỗi: %v", platformType, err)
		}
	}

	if err := Validate.Struct(&platformTypeInput{Type: "tiktok"}); err == nil {
		t.Error("Platform type 'tiktok' chưa được hỗ trợ, phải bị từ chối")
	}
}

func TestValidateObjectIDHex(t *testing.T) {
	InitValidator()

	if err := Validate.Struct(&objectIDInput{ID: primitive.NewObjectID().Hex()}); err != nil {
		t.Errorf("ObjectID hex hợp lệ phải pass, nhận được lỗi: %v", err)
	}
	if err := Validate.Struct(&objectIDInput{ID: ""}); err != nil {
		t.Errorf("Chuỗi rỗng với omitempty phải pass, nhận được lỗi: %v", err)
	}
	if err := Validate.Struct(&objectIDInput{ID: "zzz"}); err == nil {
		t.Error("Chuỗi không phải hex 24 ký tự phải bị từ chối")
	}
}
