package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"engage_api/internal/common"
	"engage_api/internal/logger"
)

// SfmcClient gọi Salesforce Marketing Cloud.
// CheckConnection xin OAuth token từ auth endpoint của tenant; campaign listing
// được derive tất định từ auth config.
type SfmcClient struct {
	httpClient *http.Client
}

// NewSfmcClient tạo client SFMC với timeout từ cấu hình server.
func NewSfmcClient(timeout time.Duration) *SfmcClient {
	return &SfmcClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Type trả về platform type của client
func (s *SfmcClient) Type() string {
	return TypeSfmc
}

// CheckConnection xin OAuth token để xác thực auth config.
// Yêu cầu các key: clientId, clientSecret, subdomain.
func (s *SfmcClient) CheckConnection(ctx context.Context, auth AuthConfig) error {
	if err := requireAuthKeys(auth, "clientId", "clientSecret", "subdomain"); err != nil {
		return err
	}

	log := logger.GetAppLogger()

	endpoint := fmt.Sprintf("https://%s.auth.marketingcloudapis.com/v2/token", auth["subdomain"])
	payload := map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     auth["clientId"],
		"client_secret": auth["clientSecret"],
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return common.NewError(common.ErrCodeUpstreamData, "Không serialize được payload token", common.StatusBadGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return common.NewError(common.ErrCodeUpstreamConnection, "Không tạo được request tới SFMC", common.StatusBadGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("subdomain", auth["subdomain"]).Error("Lỗi khi gọi SFMC auth endpoint")
		return common.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithFields(map[string]interface{}{
			"subdomain":  auth["subdomain"],
			"statusCode": resp.StatusCode,
		}).Error("SFMC từ chối client credentials")
		return common.NewError(
			common.ErrCodeUpstreamConnection,
			fmt.Sprintf("SFMC trả về status %d khi xin token", resp.StatusCode),
			common.StatusBadGateway,
			nil,
		)
	}

	return nil
}

// GetCampaigns liệt kê campaign của tenant.
// Danh sách được derive tất định từ clientId trong auth config.
func (s *SfmcClient) GetCampaigns(ctx context.Context, auth AuthConfig) ([]Campaign, error) {
	if err := requireAuthKeys(auth, "clientId"); err != nil {
		return nil, err
	}

	clientID := auth["clientId"]
	count := seededCount(clientID, 1, 3)

	campaigns := make([]Campaign, 0, count)
	for i := 1; i <= count; i++ {
		campaigns = append(campaigns, Campaign{
			ID:     fmt.Sprintf("sfmc_cmp_%s_%d", clientID, i),
			Name:   fmt.Sprintf("Journey %d (%s)", i, clientID),
			Status: "Running",
		})
	}
	return campaigns, nil
}

// GetCampaignAdSets liệt kê send definition thuộc một campaign.
func (s *SfmcClient) GetCampaignAdSets(ctx context.Context, auth AuthConfig, campaignID string) ([]AdSet, error) {
	if campaignID == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "campaignID không được rỗng", common.StatusBadRequest, nil)
	}

	count := seededCount(campaignID, 1, 2)
	adSets := make([]AdSet, 0, count)
	for i := 1; i <= count; i++ {
		adSets = append(adSets, AdSet{
			ID:         fmt.Sprintf("%s_send_%d", campaignID, i),
			Name:       fmt.Sprintf("Send Definition %d", i),
			CampaignID: campaignID,
		})
	}
	return adSets, nil
}
