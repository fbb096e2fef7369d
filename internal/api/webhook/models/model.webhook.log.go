// Package models holds the persisted shapes of the webhook domain.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebhookLog is the audit record of every received webhook, kept for
// debugging delivery issues with Meta.
type WebhookLog struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Source      string `json:"source" bson:"source"`
	SenderID    string `json:"senderId,omitempty" bson:"senderId,omitempty"`
	MessageID   string `json:"messageId,omitempty" bson:"messageId,omitempty"`
	MessageType string `json:"messageType,omitempty" bson:"messageType,omitempty"`

	RequestHeaders map[string]string `json:"requestHeaders,omitempty" bson:"requestHeaders,omitempty"`
	RawBody        string            `json:"rawBody,omitempty" bson:"rawBody,omitempty"`

	Processed    bool   `json:"processed" bson:"processed"`
	ProcessError string `json:"processError,omitempty" bson:"processError,omitempty"`
	ProcessedAt  int64  `json:"processedAt,omitempty" bson:"processedAt,omitempty"`

	IPAddress string `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`

	ReceivedAt int64 `json:"receivedAt" bson:"receivedAt"`
	CreatedAt  int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64 `json:"updatedAt" bson:"updatedAt"`
}
