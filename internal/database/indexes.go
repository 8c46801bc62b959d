// Package database - Index bổ sung cho các collection (unique, compound) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"engage_api/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateEngageIndexes tạo các index cho các collection của hệ thống engagement.
// Gọi một lần khi khởi động server (InitMode hoặc lần đầu).
func CreateEngageIndexes(ctx context.Context, db *mongo.Database) error {
	// delivery_platforms: (name, type) unique — chặn trùng tên destination trong cùng một loại platform
	platforms := db.Collection(global.MongoDB_ColNames.DeliveryPlatforms)
	if _, err := platforms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: 1},
			{Key: "type", Value: 1},
		},
		Options: options.Index().SetName("platform_name_type_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// delivery_jobs: (audienceId, deliveryPlatformId, engagementId, createTime desc) — findByMetadata + query sort
	jobs := db.Collection(global.MongoDB_ColNames.DeliveryJobs)
	if _, err := jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "audienceId", Value: 1},
			{Key: "deliveryPlatformId", Value: 1},
			{Key: "engagementId", Value: 1},
			{Key: "createTime", Value: -1},
		},
		Options: options.Index().SetName("job_triple_createtime"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// delivery_jobs: (deliveryPlatformId, audienceId, status, jobStartTime desc) — lookalike eligible-job lookup
	if _, err := jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "deliveryPlatformId", Value: 1},
			{Key: "audienceId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "jobStartTime", Value: -1},
		},
		Options: options.Index().SetName("job_platform_audience_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// delivery_jobs: (engagementId, createTime desc) sparse — rollup theo engagement
	if _, err := jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "engagementId", Value: 1},
			{Key: "createTime", Value: -1},
		},
		Options: options.Index().SetName("job_engagement_createtime").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// performance_metrics: (deliveryJobId, endTime desc) — mostRecent + rollup join
	metrics := db.Collection(global.MongoDB_ColNames.PerformanceMetrics)
	if _, err := metrics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "deliveryJobId", Value: 1},
			{Key: "endTime", Value: -1},
		},
		Options: options.Index().SetName("metric_job_endtime"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// performance_metrics: (transferredForFeedback, deliveryJobId) — pendingTransfer scan
	if _, err := metrics.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "transferredForFeedback", Value: 1},
			{Key: "deliveryJobId", Value: 1},
		},
		Options: options.Index().SetName("metric_pending_transfer"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// campaign_activity: (deliveryJobId, eventDate desc) — mostRecent activity
	activity := db.Collection(global.MongoDB_ColNames.CampaignActivity)
	if _, err := activity.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "deliveryJobId", Value: 1},
			{Key: "eventDate", Value: -1},
		},
		Options: options.Index().SetName("activity_job_eventdate"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// engagements: (audiences.audienceId) multikey — cascade-detach khi xóa audience
	engagements := db.Collection(global.MongoDB_ColNames.Engagements)
	if _, err := engagements.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "audiences.audienceId", Value: 1},
		},
		Options: options.Index().SetName("engagement_audience_ref"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// lookalike_audiences: (sourceAudienceId, deliveryPlatformId) — tra cứu lookalike theo nguồn
	lookalikes := db.Collection(global.MongoDB_ColNames.LookalikeAudiences)
	if _, err := lookalikes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "sourceAudienceId", Value: 1},
			{Key: "deliveryPlatformId", Value: 1},
		},
		Options: options.Index().SetName("lookalike_source_platform"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
