// Package platform - Test tính tất định của campaign listing và validate auth config.
package platform

import (
	"context"
	"testing"
	"time"
)

func TestSeededCount_TatDinhVaTrongKhoang(t *testing.T) {
	for _, seed := range []string{"act_123", "act_456", "fb_cmp_x_1", ""} {
		first := seededCount(seed, 2, 4)
		second := seededCount(seed, 2, 4)
		if first != second {
			t.Errorf("seededCount('%s') không tất định: %d != %d", seed, first, second)
		}
		if first < 2 || first > 4 {
			t.Errorf("seededCount('%s') = %d nằm ngoài [2, 4]", seed, first)
		}
	}
}

func TestFacebookGetCampaigns_TatDinh(t *testing.T) {
	client := NewFacebookClient("v19.0", 5*time.Second)
	auth := AuthConfig{"adAccountId": "123456"}

	first, err := client.GetCampaigns(context.Background(), auth)
	if err != nil {
		t.Fatalf("GetCampaigns trả về lỗi: %v", err)
	}
	second, err := client.GetCampaigns(context.Background(), auth)
	if err != nil {
		t.Fatalf("GetCampaigns lần hai trả về lỗi: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("Cùng ad account phải cho cùng danh sách campaign: %d != %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Campaign %d khác nhau giữa hai lần gọi: %s != %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestFacebookGetCampaigns_ThieuAdAccountId(t *testing.T) {
	client := NewFacebookClient("v19.0", 5*time.Second)
	if _, err := client.GetCampaigns(context.Background(), AuthConfig{}); err == nil {
		t.Error("Thiếu adAccountId phải trả về lỗi")
	}
}

func TestFacebookGetCampaignAdSets(t *testing.T) {
	client := NewFacebookClient("v19.0", 5*time.Second)

	adSets, err := client.GetCampaignAdSets(context.Background(), AuthConfig{}, "fb_cmp_1")
	if err != nil {
		t.Fatalf("GetCampaignAdSets trả về lỗi: %v", err)
	}
	if len(adSets) < 1 || len(adSets) > 3 {
		t.Errorf("Số ad set phải nằm trong [1, 3], nhận được %d", len(adSets))
	}
	for _, adSet := range adSets {
		if adSet.CampaignID != "fb_cmp_1" {
			t.Errorf("Ad set %s không thuộc campaign fb_cmp_1", adSet.ID)
		}
	}

	if _, err := client.GetCampaignAdSets(context.Background(), AuthConfig{}, ""); err == nil {
		t.Error("campaignID rỗng phải trả về lỗi")
	}
}

func TestFacebookCheckConnection_ThieuAuthKeys(t *testing.T) {
	client := NewFacebookClient("v19.0", 5*time.Second)
	if err := client.CheckConnection(context.Background(), AuthConfig{"accessToken": "x"}); err == nil {
		t.Error("Thiếu adAccountId phải trả về lỗi trước khi gọi Graph API")
	}
	if err := client.CheckConnection(context.Background(), AuthConfig{"adAccountId": "123"}); err == nil {
		t.Error("Thiếu accessToken phải trả về lỗi trước khi gọi Graph API")
	}
}

func TestClientRegistry(t *testing.T) {
	clients := []Client{
		NewFacebookClient("v19.0", 5*time.Second),
		NewSfmcClient(5 * time.Second),
	}
	for _, c := range clients {
		_, _ = Clients.Register(c.Type(), c)
	}

	fb, err := GetClient(TypeFacebook)
	if err != nil {
		t.Fatalf("GetClient(facebook) trả về lỗi: %v", err)
	}
	if fb.Type() != TypeFacebook {
		t.Errorf("Client type sai: %s", fb.Type())
	}

	if _, err := GetClient("tiktok"); err == nil {
		t.Error("Platform type chưa đăng ký phải trả về lỗi")
	}
}
