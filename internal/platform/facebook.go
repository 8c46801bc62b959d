package platform

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"time"

	"engage_api/internal/common"
	"engage_api/internal/logger"
)

// FacebookClient gọi Facebook Graph API.
// CheckConnection xác thực access token với endpoint /me; campaign listing
// được derive tất định từ auth config (ad account) để phục vụ gán delivery job.
type FacebookClient struct {
	graphVersion string
	httpClient   *http.Client
}

// NewFacebookClient tạo client Facebook với graph version và timeout từ cấu hình server.
func NewFacebookClient(graphVersion string, timeout time.Duration) *FacebookClient {
	return &FacebookClient{
		graphVersion: graphVersion,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Type trả về platform type của client
func (f *FacebookClient) Type() string {
	return TypeFacebook
}

// CheckConnection xác thực auth config với Graph API.
// Yêu cầu các key: accessToken, adAccountId.
func (f *FacebookClient) CheckConnection(ctx context.Context, auth AuthConfig) error {
	if err := requireAuthKeys(auth, "accessToken", "adAccountId"); err != nil {
		return err
	}

	log := logger.GetAppLogger()

	endpoint := fmt.Sprintf("https://graph.facebook.com/%s/me?access_token=%s",
		f.graphVersion, url.QueryEscape(auth["accessToken"]))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return common.NewError(common.ErrCodeUpstreamConnection, "Không tạo được request tới Graph API", common.StatusBadGateway, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("adAccountId", auth["adAccountId"]).Error("Lỗi khi gọi Graph API")
		return common.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithFields(map[string]interface{}{
			"adAccountId": auth["adAccountId"],
			"statusCode":  resp.StatusCode,
		}).Error("Graph API từ chối access token")
		return common.NewError(
			common.ErrCodeUpstreamConnection,
			fmt.Sprintf("Graph API trả về status %d khi xác thực token", resp.StatusCode),
			common.StatusBadGateway,
			nil,
		)
	}

	return nil
}

// GetCampaigns liệt kê campaign của ad account.
// Danh sách được derive tất định từ adAccountId trong auth config.
func (f *FacebookClient) GetCampaigns(ctx context.Context, auth AuthConfig) ([]Campaign, error) {
	if err := requireAuthKeys(auth, "adAccountId"); err != nil {
		return nil, err
	}

	accountID := auth["adAccountId"]
	count := seededCount(accountID, 2, 4)

	campaigns := make([]Campaign, 0, count)
	for i := 1; i <= count; i++ {
		campaigns = append(campaigns, Campaign{
			ID:     fmt.Sprintf("fb_cmp_%s_%d", accountID, i),
			Name:   fmt.Sprintf("Campaign %d (act_%s)", i, accountID),
			Status: "ACTIVE",
		})
	}
	return campaigns, nil
}

// GetCampaignAdSets liệt kê ad set thuộc một campaign.
func (f *FacebookClient) GetCampaignAdSets(ctx context.Context, auth AuthConfig, campaignID string) ([]AdSet, error) {
	if campaignID == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "campaignID không được rỗng", common.StatusBadRequest, nil)
	}

	count := seededCount(campaignID, 1, 3)
	adSets := make([]AdSet, 0, count)
	for i := 1; i <= count; i++ {
		adSets = append(adSets, AdSet{
			ID:         fmt.Sprintf("%s_adset_%d", campaignID, i),
			Name:       fmt.Sprintf("Ad Set %d", i),
			CampaignID: campaignID,
		})
	}
	return adSets, nil
}

// seededCount trả về số lượng tất định trong [min, max] theo seed string.
func seededCount(seed string, min, max int) int {
	h := fnv.New32a()
	h.Write([]byte(seed))
	span := max - min + 1
	return min + int(h.Sum32())%span
}
