// Package platform chứa các client kết nối tới ad platform (Facebook, SFMC).
// Mỗi platform type có một client đăng ký trong registry, được tra cứu theo
// trường type của delivery platform.
package platform

import (
	"context"
	"fmt"

	"engage_api/internal/common"
	"engage_api/internal/registry"
)

// Các platform type được hỗ trợ
const (
	TypeFacebook = "facebook"
	TypeSfmc     = "sfmc"
)

// AuthConfig là cấu hình xác thực lưu trên delivery platform (key-value).
// Mỗi platform type yêu cầu một bộ key riêng (xem từng client).
type AuthConfig map[string]string

// Campaign đại diện cho một campaign trên ad platform
type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// AdSet đại diện cho một ad set / nhóm quảng cáo thuộc campaign
type AdSet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CampaignID string `json:"campaignId"`
}

// Client là interface chung cho các ad platform client.
// CheckConnection xác thực cấu hình với upstream; GetCampaigns và
// GetCampaignAdSets liệt kê campaign/ad set cho việc gán delivery job.
type Client interface {
	Type() string
	CheckConnection(ctx context.Context, auth AuthConfig) error
	GetCampaigns(ctx context.Context, auth AuthConfig) ([]Campaign, error)
	GetCampaignAdSets(ctx context.Context, auth AuthConfig, campaignID string) ([]AdSet, error)
}

// Clients là registry toàn cục chứa các platform client, key theo platform type.
// Được nạp khi khởi động server (xem cmd/server).
var Clients = registry.NewRegistry[Client]()

// GetClient tra cứu client theo platform type.
func GetClient(platformType string) (Client, error) {
	client, ok := Clients.Get(platformType)
	if !ok {
		return nil, common.NewError(
			common.ErrCodeUpstream,
			fmt.Sprintf("Platform type '%s' không được hỗ trợ", platformType),
			common.StatusBadRequest,
			nil,
		)
	}
	return client, nil
}

// requireAuthKeys kiểm tra auth config có đủ các key bắt buộc không.
func requireAuthKeys(auth AuthConfig, keys ...string) error {
	for _, key := range keys {
		if auth[key] == "" {
			return common.NewError(
				common.ErrCodeUpstreamData,
				fmt.Sprintf("Auth config thiếu trường bắt buộc '%s'", key),
				common.StatusBadRequest,
				nil,
			)
		}
	}
	return nil
}
