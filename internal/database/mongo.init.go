package database

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"engage_api/internal/global"
	"engage_api/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureDatabaseAndCollections đảm bảo database và các collection trong
// global.MongoDB_ColNames tồn tại. Collection chưa có sẽ được tạo mới.
func EnsureDatabaseAndCollections(client *mongo.Client) error {
	dbName := global.ServerConfig.MongoDB_DBName

	// Context tổng 30 giây cho toàn bộ quá trình duyệt collections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbList, err := client.ListDatabaseNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list databases: %w", err)
	}

	dbExists := false
	for _, name := range dbList {
		if name == dbName {
			dbExists = true
			break
		}
	}
	if !dbExists {
		logger.GetAppLogger().Infof("Database %s does not exist, will create automatically by creating collections", dbName)
	}

	// Lấy danh sách collection cần có từ struct tên collection
	db := client.Database(dbName)
	collections := []string{}
	v := reflect.ValueOf(global.MongoDB_ColNames)
	for i := 0; i < v.NumField(); i++ {
		collections = append(collections, v.Field(i).String())
	}

	collList, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, collectionName := range collections {
		exists := false
		for _, existingColl := range collList {
			if existingColl == collectionName {
				exists = true
				break
			}
		}
		if !exists {
			logger.GetAppLogger().Infof("Collection %s chưa tồn tại, tạo mới.", collectionName)
			if err := db.CreateCollection(ctx, collectionName); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
			}
		}
	}

	logger.GetAppLogger().Infof("Database and collections are ensured in database: %s", dbName)
	return nil
}

// parseIndexTag tách tag index thành danh sách cấu hình key:value.
// Ví dụ: `index:"single:1"` → [{single: 1}], `index:"single:-1;unique"` → [{single: -1}, {unique: ""}]
func parseIndexTag(tag string) []map[string]string {
	parts := strings.Split(tag, ";")
	result := []map[string]string{}

	for _, part := range parts {
		subParts := strings.Split(part, ",")
		entry := map[string]string{}
		for _, subPart := range subParts {
			kv := strings.SplitN(subPart, ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}

	return result
}

// parseIndexOrder đọc thứ tự sắp xếp từ value của config ("1" hoặc "-1")
func parseIndexOrder(value string) int {
	if value == "-1" {
		return -1
	}
	return 1
}

// CreateIndexes đọc tag `index` trên model struct và tạo các index tương ứng
// trên collection. Hỗ trợ single (có thứ tự 1/-1), unique và text.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	log := logger.GetAppLogger()

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}

		bsonField := field.Tag.Get("bson")
		if bsonField == "" || bsonField == "-" {
			continue
		}
		// Bỏ các option của bson tag (omitempty...)
		bsonField = strings.Split(bsonField, ",")[0]

		for _, config := range parseIndexTag(tag) {
			if orderValue, ok := config["single"]; ok {
				keys := bson.D{{Key: bsonField, Value: parseIndexOrder(orderValue)}}
				indexName := bsonField + "_single"
				opts := options.Index().SetName(indexName)

				if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    keys,
					Options: opts,
				}); err != nil && !isIndexExistsError(err) {
					return fmt.Errorf("không thể tạo index %s: %w", indexName, err)
				}
			}

			if _, ok := config["unique"]; ok {
				keys := bson.D{{Key: bsonField, Value: 1}}
				indexName := bsonField + "_unique"
				opts := options.Index().SetName(indexName).SetUnique(true)
				if _, hasSparse := config["sparse"]; hasSparse {
					opts = opts.SetSparse(true)
				}

				if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    keys,
					Options: opts,
				}); err != nil && !isIndexExistsError(err) {
					return fmt.Errorf("không thể tạo index %s: %w", indexName, err)
				}
			}

			if _, ok := config["text"]; ok {
				keys := bson.D{{Key: bsonField, Value: "text"}}
				indexName := bsonField + "_text"
				opts := options.Index().SetName(indexName)

				if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    keys,
					Options: opts,
				}); err != nil && !isIndexExistsError(err) {
					return fmt.Errorf("không thể tạo index %s: %w", indexName, err)
				}
			}
		}
	}

	log.Debugf("Đã xử lý index cho collection: %s", collection.Name())
	return nil
}
