package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"engage_api_tests/utils"

	"github.com/stretchr/testify/assert"
)

// waitForHealth chờ server sẵn sàng qua endpoint /health, hết số lần thử thì
// skip toàn bộ test (suite chạy được cả khi không có server local).
func waitForHealth(baseURL string, retries int, delay time.Duration, t *testing.T) {
	healthURL := strings.TrimSuffix(baseURL, "/api/v1") + "/health"
	for i := 0; i < retries; i++ {
		resp, err := http.Get(healthURL)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(delay)
	}
	t.Skipf("⚠️ Server không sẵn sàng tại %s, bỏ qua API test", healthURL)
}

// parseEnvelope parse response envelope {code, message, data, status}
func parseEnvelope(t *testing.T, body []byte) map[string]interface{} {
	var result map[string]interface{}
	err := json.Unmarshal(body, &result)
	assert.NoError(t, err, "Phải parse được JSON response")
	return result
}

// dataObject lấy data trong envelope dưới dạng object
func dataObject(result map[string]interface{}) map[string]interface{} {
	data, _ := result["data"].(map[string]interface{})
	return data
}

// dataArray lấy data trong envelope dưới dạng mảng
func dataArray(result map[string]interface{}) []interface{} {
	data, _ := result["data"].([]interface{})
	return data
}

// TestEngagementDeliveryFlow kiểm tra luồng nghiệp vụ stateful xuyên module:
// engagement gắn audience/destination, delivery job, campaign mapping,
// performance metrics và lookalike audience.
func TestEngagementDeliveryFlow(t *testing.T) {
	baseURL := "http://localhost:8080/api/v1"
	waitForHealth(baseURL, 10, 1*time.Second, t)

	client := utils.NewHTTPClient(baseURL, 10)
	client.SetActor("api-tests")

	var platformID, audienceID, engagementID, jobID string

	// ============================================
	// SETUP FIXTURES
	// ============================================
	t.Run("🧱 Setup - Tạo platform, audience, engagement, delivery job", func(t *testing.T) {
		// Platform: tạo rồi set status SUCCEEDED để tạo được delivery job
		payload := map[string]interface{}{
			"name": fmt.Sprintf("Test Platform %d", time.Now().UnixNano()),
			"type": "facebook",
			"authDetails": map[string]string{
				"accessToken": "test-token",
				"adAccountId": "act_test",
			},
			"isAdPlatform": true,
		}
		resp, body, err := client.POST("/delivery-platforms/insert-one", payload)
		if err != nil {
			t.Fatalf("❌ Lỗi khi tạo delivery platform: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ CREATE delivery platform thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result := parseEnvelope(t, body)
		assert.Equal(t, "success", result["status"], "Status phải là success")
		platformID, _ = dataObject(result)["id"].(string)
		fmt.Printf("✅ CREATE delivery platform thành công, ID: %s\n", platformID)

		resp, body, err = client.PUT(fmt.Sprintf("/delivery-platforms/update-by-id/%s", platformID), map[string]interface{}{
			"status": "SUCCEEDED",
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi cập nhật status platform: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ UPDATE status platform thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}

		// Audience
		resp, body, err = client.POST("/audiences/insert-one", map[string]interface{}{
			"name":   fmt.Sprintf("Test Audience %d", time.Now().UnixNano()),
			"source": "segmentation",
			"size":   1000,
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi tạo audience: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ CREATE audience thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result = parseEnvelope(t, body)
		audienceID, _ = dataObject(result)["id"].(string)
		fmt.Printf("✅ CREATE audience thành công, ID: %s\n", audienceID)

		// Engagement
		resp, body, err = client.POST("/engagements/insert-one", map[string]interface{}{
			"name":        fmt.Sprintf("Test Engagement %d", time.Now().UnixNano()),
			"description": "Engagement cho luồng delivery",
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi tạo engagement: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ CREATE engagement thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result = parseEnvelope(t, body)
		engagementID, _ = dataObject(result)["id"].(string)
		fmt.Printf("✅ CREATE engagement thành công, ID: %s\n", engagementID)

		// Gắn audience kèm destination trong một request qua audienceRefs
		resp, body, err = client.POST(fmt.Sprintf("/engagements/%s/attach-audiences", engagementID), map[string]interface{}{
			"audienceRefs": []map[string]interface{}{
				{
					"audienceId": audienceID,
					"destinations": []map[string]interface{}{
						{
							"destinationId":          platformID,
							"deliveryPlatformConfig": map[string]interface{}{"adAccountId": "act_test"},
						},
					},
				},
			},
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi attach audience ref: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ ATTACH audience ref thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result = parseEnvelope(t, body)
		assert.Equal(t, "success", result["status"], "Status phải là success")
		audiences, _ := dataObject(result)["audiences"].([]interface{})
		if assert.Len(t, audiences, 1, "Engagement phải có đúng 1 audience sau khi attach") {
			ref, _ := audiences[0].(map[string]interface{})
			destinations, _ := ref["destinations"].([]interface{})
			assert.Len(t, destinations, 1, "Audience ref phải mang theo destination truyền trong attach")
		}
		fmt.Printf("✅ ATTACH audience kèm destination thành công\n")

		// Delivery job cho bộ ba (engagement, audience, platform)
		resp, body, err = client.POST("/delivery-jobs/insert-one", map[string]interface{}{
			"audienceId":         audienceID,
			"deliveryPlatformId": platformID,
			"engagementId":       engagementID,
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi tạo delivery job: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ CREATE delivery job thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result = parseEnvelope(t, body)
		data := dataObject(result)
		jobID, _ = data["id"].(string)
		assert.Equal(t, "DELIVERING", data["status"], "Job mới tạo phải ở trạng thái DELIVERING")
		fmt.Printf("✅ CREATE delivery job thành công, ID: %s\n", jobID)
	})

	// ============================================
	// REPLACE CAMPAIGNS - GỌI LẠI KHÔNG ĐỔI KẾT QUẢ
	// ============================================
	t.Run("🔁 ReplaceCampaigns - Gọi lại với cùng đầu vào", func(t *testing.T) {
		if jobID == "" {
			t.Skip("Skipping: Chưa có delivery job ID")
		}

		payload := map[string]interface{}{
			"engagementId":  engagementID,
			"audienceId":    audienceID,
			"destinationId": platformID,
			"assignments": []map[string]interface{}{
				{"deliveryJobId": jobID, "campaignId": "cmp-1", "name": "Campaign 1"},
				{"deliveryJobId": jobID, "campaignId": "cmp-2", "adSetId": "adset-1", "name": "Campaign 2"},
			},
		}

		var updatedCounts []float64
		for lan := 1; lan <= 2; lan++ {
			resp, body, err := client.POST("/delivery-jobs/replace-campaigns", payload)
			if err != nil {
				t.Fatalf("❌ Lỗi khi replace campaigns lần %d: %v", lan, err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("❌ Replace campaigns lần %d thất bại (status: %d, body: %s)", lan, resp.StatusCode, string(body))
			}
			result := parseEnvelope(t, body)
			assert.Equal(t, "success", result["status"], "Status phải là success")
			updated, _ := dataObject(result)["updatedJobs"].(float64)
			updatedCounts = append(updatedCounts, updated)
		}
		assert.Equal(t, updatedCounts[0], updatedCounts[1], "Hai lần gọi với cùng đầu vào phải cập nhật cùng số job")
		fmt.Printf("✅ Replace campaigns idempotent, mỗi lần cập nhật %.0f job\n", updatedCounts[0])

		// Mapping cuối cùng phải đúng như đầu vào và mang id của job sở hữu
		resp, body, err := client.GET(fmt.Sprintf("/delivery-jobs/find-by-id/%s", jobID))
		if err != nil {
			t.Fatalf("❌ Lỗi khi đọc delivery job: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ READ delivery job thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result := parseEnvelope(t, body)
		campaigns, _ := dataObject(result)["genericCampaigns"].([]interface{})
		if assert.Len(t, campaigns, 2, "Gọi lại replace không được nhân đôi mapping") {
			for _, raw := range campaigns {
				campaign, _ := raw.(map[string]interface{})
				assert.Equal(t, jobID, campaign["deliveryJobId"], "Mỗi mapping phải mang id của job sở hữu")
				assert.NotZero(t, campaign["createTime"], "Mỗi mapping phải mang createTime của job sở hữu")
			}
		}
		fmt.Printf("✅ Campaign mapping mang đủ deliveryJobId và createTime\n")
	})

	// ============================================
	// BULK RECORD METRICS + ROLLUP THEO DESTINATION
	// ============================================
	t.Run("📊 PerformanceMetrics - Bulk record và rollup", func(t *testing.T) {
		if jobID == "" {
			t.Skip("Skipping: Chưa có delivery job ID")
		}

		now := time.Now().UnixMilli()
		var batch []map[string]interface{}
		for i := 0; i < 3; i++ {
			batch = append(batch, map[string]interface{}{
				"deliveryJobId":        jobID,
				"deliveryPlatformId":   platformID,
				"deliveryPlatformType": "facebook",
				"metrics":              map[string]interface{}{"impressions": 100 * (i + 1)},
				"startTime":            now - int64(i+1)*3600000,
				"endTime":              now - int64(i)*3600000,
			})
		}

		resp, body, err := client.POST("/performance-metrics/bulk-record", batch)
		if err != nil {
			t.Fatalf("❌ Lỗi khi bulk record metrics: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ Bulk record thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result := parseEnvelope(t, body)
		data := dataObject(result)
		assert.Equal(t, true, data["success"], "Cả lô phải được ghi thành công")
		assert.Equal(t, float64(3), data["insertedCount"], "Gửi 3 bản ghi thì phải insert đúng 3 document")
		fmt.Printf("✅ Bulk record 3 bản ghi metrics thành công\n")

		// Rollup theo engagement, thu hẹp theo destination
		resp, body, err = client.GET(fmt.Sprintf("/performance-metrics/rollup/%s?destinationIds=%s", engagementID, platformID))
		if err != nil {
			t.Fatalf("❌ Lỗi khi rollup metrics: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ Rollup thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result = parseEnvelope(t, body)
		assert.GreaterOrEqual(t, len(dataArray(result)), 3, "Rollup theo destination của job phải thấy đủ bản ghi vừa ghi")

		// Destination không liên quan thì rollup phải rỗng
		resp, body, err = client.GET(fmt.Sprintf("/performance-metrics/rollup/%s?destinationIds=%s", engagementID, "000000000000000000000000"))
		if err != nil {
			t.Fatalf("❌ Lỗi khi rollup metrics theo destination lạ: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ Rollup theo destination lạ thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result = parseEnvelope(t, body)
		assert.Len(t, dataArray(result), 0, "Rollup theo destination không có job phải trả mảng rỗng")
		fmt.Printf("✅ Rollup lọc đúng theo destinationIds\n")
	})

	// ============================================
	// FIND BY METADATA VỚI LIMIT
	// ============================================
	t.Run("🔎 FindByMetadata - Giới hạn số kết quả", func(t *testing.T) {
		if jobID == "" {
			t.Skip("Skipping: Chưa có delivery job ID")
		}

		resp, body, err := client.POST("/delivery-jobs/find-by-metadata", map[string]interface{}{
			"engagementId": engagementID,
			"limit":        1,
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi find by metadata: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ Find by metadata thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result := parseEnvelope(t, body)
		assert.LessOrEqual(t, len(dataArray(result)), 1, "Truyền limit=1 thì không được trả quá 1 job")
		fmt.Printf("✅ Find by metadata tôn trọng limit\n")
	})

	// ============================================
	// LOOKALIKE - GATE THEO TRẠNG THÁI JOB
	// ============================================
	t.Run("🧬 Lookalike - Chỉ tạo được khi job đã đẩy thành công", func(t *testing.T) {
		if jobID == "" {
			t.Skip("Skipping: Chưa có delivery job ID")
		}

		payload := map[string]interface{}{
			"deliveryPlatformId": platformID,
			"sourceAudienceId":   audienceID,
			"name":               fmt.Sprintf("Test Lookalike %d", time.Now().UnixNano()),
			"sizePercentage":     5,
			"country":            "VN",
			"engagementIds":      []string{engagementID},
		}

		// Job đang DELIVERING, chưa có seed job thành công
		resp, body, err := client.POST("/lookalike-audiences/insert-one", payload)
		if err != nil {
			t.Fatalf("❌ Lỗi khi tạo lookalike: %v", err)
		}
		if resp.StatusCode == http.StatusBadGateway {
			t.Skipf("⚠️ Platform upstream không khả dụng, bỏ qua test gate lookalike (body: %s)", string(body))
		}
		assert.Equal(t, http.StatusNotFound, resp.StatusCode,
			"Chưa có job thành công thì tạo lookalike phải bị chặn (body: %s)", string(body))
		fmt.Printf("✅ Lookalike bị chặn khi job chưa đẩy thành công\n")

		// Flip trạng thái job sang SUCCEEDED rồi thử lại
		resp, body, err = client.PUT(fmt.Sprintf("/delivery-jobs/%s/status", jobID), map[string]interface{}{
			"status": "SUCCEEDED",
		})
		if err != nil {
			t.Fatalf("❌ Lỗi khi cập nhật trạng thái job: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ SET status job thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}

		resp, body, err = client.POST("/lookalike-audiences/insert-one", payload)
		if err != nil {
			t.Fatalf("❌ Lỗi khi tạo lookalike lần hai: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ Job đã SUCCEEDED mà tạo lookalike vẫn thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}
		result := parseEnvelope(t, body)
		assert.Equal(t, "success", result["status"], "Status phải là success")
		lookalikeID, _ := dataObject(result)["id"].(string)
		fmt.Printf("✅ CREATE lookalike thành công sau khi job SUCCEEDED, ID: %s\n", lookalikeID)

		// Lookalike phải được gắn ngược vào engagement đã truyền
		resp, body, err = client.GET(fmt.Sprintf("/engagements/find-by-id/%s", engagementID))
		if err != nil {
			t.Fatalf("❌ Lỗi khi đọc engagement: %v", err)
		}
		if resp.StatusCode == http.StatusOK && lookalikeID != "" {
			result = parseEnvelope(t, body)
			audiences, _ := dataObject(result)["audiences"].([]interface{})
			found := false
			for _, raw := range audiences {
				ref, _ := raw.(map[string]interface{})
				if ref["audienceId"] == lookalikeID {
					found = true
				}
			}
			assert.True(t, found, "Lookalike phải được gắn vào engagement sau khi tạo")
			fmt.Printf("✅ Lookalike được gắn vào engagement\n")
		}
	})

	// ============================================
	// ATTACH DESTINATION - GHI ĐÈ CONFIG GIỮ LATEST DELIVERY
	// ============================================
	t.Run("📍 AttachDestination - Ghi đè config không mất latestDelivery", func(t *testing.T) {
		if engagementID == "" {
			t.Skip("Skipping: Chưa có engagement ID")
		}

		// Refresh để destination có cache latestDelivery từ job
		resp, body, err := client.POST(fmt.Sprintf("/engagements/%s/refresh-latest-delivery", engagementID), nil)
		if err != nil {
			t.Fatalf("❌ Lỗi khi refresh latest delivery: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ Refresh latest delivery thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}

		// Attach lại cùng destination với config mới
		resp, body, err = client.POST(
			fmt.Sprintf("/engagements/%s/audiences/%s/attach-destination", engagementID, audienceID),
			map[string]interface{}{
				"destinationId":          platformID,
				"deliveryPlatformConfig": map[string]interface{}{"adAccountId": "act_moi"},
			},
		)
		if err != nil {
			t.Fatalf("❌ Lỗi khi attach lại destination: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("❌ Attach lại destination thất bại (status: %d, body: %s)", resp.StatusCode, string(body))
		}

		result := parseEnvelope(t, body)
		audiences, _ := dataObject(result)["audiences"].([]interface{})
		for _, raw := range audiences {
			ref, _ := raw.(map[string]interface{})
			if ref["audienceId"] != audienceID {
				continue
			}
			destinations, _ := ref["destinations"].([]interface{})
			if !assert.Len(t, destinations, 1, "Attach lại cùng destination không được nhân đôi ref") {
				continue
			}
			dest, _ := destinations[0].(map[string]interface{})
			config, _ := dest["deliveryPlatformConfig"].(map[string]interface{})
			assert.Equal(t, "act_moi", config["adAccountId"], "Config mới phải ghi đè config cũ")
			assert.NotNil(t, dest["latestDelivery"], "Ghi đè config không được xóa cache latestDelivery")
		}
		fmt.Printf("✅ Attach lại destination chỉ ghi đè config, giữ latestDelivery\n")
	})

	// ============================================
	// DETACH - GỌI LẠI LÀ NO-OP
	// ============================================
	t.Run("🔌 Detach - Gỡ hai lần không báo lỗi", func(t *testing.T) {
		if engagementID == "" {
			t.Skip("Skipping: Chưa có engagement ID")
		}

		// Gỡ destination hai lần, lần hai phải là no-op
		for lan := 1; lan <= 2; lan++ {
			resp, body, err := client.POST(
				fmt.Sprintf("/engagements/%s/audiences/%s/detach-destination", engagementID, audienceID),
				map[string]interface{}{"destinationId": platformID},
			)
			if err != nil {
				t.Fatalf("❌ Lỗi khi detach destination lần %d: %v", lan, err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("❌ Detach destination lần %d thất bại (status: %d, body: %s)", lan, resp.StatusCode, string(body))
			}
			result := parseEnvelope(t, body)
			assert.Equal(t, "success", result["status"], "Detach lần %d phải thành công", lan)
		}
		fmt.Printf("✅ Detach destination hai lần đều thành công\n")

		// Gỡ audience hai lần, lần hai phải là no-op
		for lan := 1; lan <= 2; lan++ {
			resp, body, err := client.POST(
				fmt.Sprintf("/engagements/%s/detach-audiences", engagementID),
				map[string]interface{}{"audienceIds": []string{audienceID}},
			)
			if err != nil {
				t.Fatalf("❌ Lỗi khi detach audience lần %d: %v", lan, err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("❌ Detach audience lần %d thất bại (status: %d, body: %s)", lan, resp.StatusCode, string(body))
			}
			result := parseEnvelope(t, body)
			assert.Equal(t, "success", result["status"], "Detach audience lần %d phải thành công", lan)
		}

		resp, body, err := client.GET(fmt.Sprintf("/engagements/find-by-id/%s", engagementID))
		if err != nil {
			t.Fatalf("❌ Lỗi khi đọc engagement sau detach: %v", err)
		}
		if resp.StatusCode == http.StatusOK {
			result := parseEnvelope(t, body)
			audiences, _ := dataObject(result)["audiences"].([]interface{})
			for _, raw := range audiences {
				ref, _ := raw.(map[string]interface{})
				assert.NotEqual(t, audienceID, ref["audienceId"], "Audience đã detach không được còn trong engagement")
			}
		}
		fmt.Printf("✅ Detach audience hai lần đều là no-op\n")
	})
}
