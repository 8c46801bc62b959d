// Package models - Test phân loại trạng thái của delivery job.
package models

import "testing"

func TestIsTerminalJobStatus(t *testing.T) {
	terminal := []string{JobStatusDelivered, JobStatusSucceeded, JobStatusFailed, JobStatusError}
	for _, status := range terminal {
		if !IsTerminalJobStatus(status) {
			t.Errorf("%s phải là trạng thái kết thúc", status)
		}
	}

	nonTerminal := []string{JobStatusPending, JobStatusDelivering, "", "UNKNOWN"}
	for _, status := range nonTerminal {
		if IsTerminalJobStatus(status) {
			t.Errorf("%s không được là trạng thái kết thúc", status)
		}
	}
}

func TestIsSuccessfulJobStatus(t *testing.T) {
	if !IsSuccessfulJobStatus(JobStatusDelivered) {
		t.Error("DELIVERED phải được tính là đẩy thành công")
	}
	if !IsSuccessfulJobStatus(JobStatusSucceeded) {
		t.Error("SUCCEEDED phải được tính là đẩy thành công")
	}
	// FAILED/ERROR là kết thúc nhưng không thành công, không dùng được làm seed lookalike
	if IsSuccessfulJobStatus(JobStatusFailed) {
		t.Error("FAILED không được tính là đẩy thành công")
	}
	if IsSuccessfulJobStatus(JobStatusError) {
		t.Error("ERROR không được tính là đẩy thành công")
	}
	if IsSuccessfulJobStatus(JobStatusDelivering) {
		t.Error("DELIVERING chưa kết thúc, không được tính là đẩy thành công")
	}
}

func TestValidJobStatuses_DayDu(t *testing.T) {
	statuses := ValidJobStatuses()
	if len(statuses) != 6 {
		t.Fatalf("State machine có 6 trạng thái, nhận được %d: %v", len(statuses), statuses)
	}
	for _, status := range statuses {
		if !IsTerminalJobStatus(status) && status != JobStatusPending && status != JobStatusDelivering {
			t.Errorf("Trạng thái %s không thuộc nhóm kết thúc lẫn nhóm đang chạy", status)
		}
	}
}
