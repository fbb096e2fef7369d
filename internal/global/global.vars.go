package global

import (
	"buyza_commerce/config"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// Global variables shared across the application. They are assigned once
// during startup (cmd/server/init.go) and treated as read-only afterwards.
var (
	// Validate is the shared validator instance
	Validate *validator.Validate

	// ServerConfig is the loaded server configuration
	ServerConfig *config.Configuration

	// MongoDB_Session is the MongoDB client for the webhook audit log.
	// Nil when no Mongo URI is configured; the audit log is then disabled.
	MongoDB_Session *mongo.Client
)

// MongoDB_CollectionName holds the collection names used by the audit log
type MongoDB_CollectionName struct {
	WebhookLogs string
}

// MongoDB_ColNames holds the configured collection names
var MongoDB_ColNames = MongoDB_CollectionName{
	WebhookLogs: "webhook_logs",
}

// InitValidator initializes the shared validator
func InitValidator() {
	Validate = validator.New()
}
