package webhooksvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"buyza_commerce/internal/api/webhook/models"
	"buyza_commerce/internal/common"
	"buyza_commerce/internal/global"
)

// WebhookLogService persists the webhook audit trail in Mongo. When no
// Mongo session is configured the service is a no-op; the bot works
// without the audit log.
type WebhookLogService struct {
	collection *mongo.Collection
}

// NewWebhookLogService builds the service over the configured session.
func NewWebhookLogService() *WebhookLogService {
	if global.MongoDB_Session == nil {
		return &WebhookLogService{}
	}
	col := global.MongoDB_Session.
		Database(global.ServerConfig.MongoDB_DBName).
		Collection(global.MongoDB_ColNames.WebhookLogs)
	return &WebhookLogService{collection: col}
}

// Enabled reports whether the audit log is writing anywhere.
func (s *WebhookLogService) Enabled() bool {
	return s.collection != nil
}

// CreateWebhookLog inserts the audit record and returns it with its id.
func (s *WebhookLogService) CreateWebhookLog(ctx context.Context, log models.WebhookLog) (*models.WebhookLog, error) {
	if s.collection == nil {
		return nil, nil
	}

	now := time.Now().UnixMilli()
	log.CreatedAt = now
	log.UpdatedAt = now

	result, err := s.collection.InsertOne(ctx, log)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		log.ID = id
	}
	return &log, nil
}

// UpdateProcessedStatus marks the audit record processed (or failed).
func (s *WebhookLogService) UpdateProcessedStatus(ctx context.Context, logID primitive.ObjectID, processed bool, errorMsg string) error {
	if s.collection == nil {
		return nil
	}

	now := time.Now().UnixMilli()
	set := bson.M{
		"processed":    processed,
		"processError": errorMsg,
		"updatedAt":    now,
	}
	if processed {
		set["processedAt"] = now
	}

	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": logID}, bson.M{"$set": set})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
