package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings the application needs to run.
// Secrets are loaded once here and injected into the components that need
// them; nothing reads the environment at request time.
type Configuration struct {
	Address string `env:"ADDRESS" envDefault:":8080"` // Listen address

	// WhatsApp Cloud API
	VerifyToken      string `env:"WHATSAPP_VERIFY_TOKEN,required"` // Token for the webhook verification handshake
	AppSecret        string `env:"WHATSAPP_APP_SECRET,required"`   // Shared secret for X-Hub-Signature-256
	AccessToken      string `env:"WHATSAPP_ACCESS_TOKEN,required"` // Bearer token for the Graph API
	PhoneNumberID    string `env:"WHATSAPP_PHONE_NUMBER_ID,required"`
	GraphAPIBaseURL  string `env:"GRAPH_API_BASE_URL" envDefault:"https://graph.facebook.com/v19.0"`
	SignatureCheck   bool   `env:"WHATSAPP_SIGNATURE_CHECK" envDefault:"true"` // Toggle for local dev only
	SendMaxRetries   int    `env:"SEND_MAX_RETRIES" envDefault:"3"`
	SendTimeoutSecs  int    `env:"SEND_TIMEOUT_SECONDS" envDefault:"10"`

	// Google Sheets ledger
	SpreadsheetID           string `env:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	GoogleCredentialsBase64 string `env:"GOOGLE_CREDENTIALS_BASE64"` // base64 service-account JSON; empty falls back to the in-memory store

	// MongoDB webhook audit log (optional; empty URI disables the audit log)
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI"`
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"buyza"`

	// Rate limiting
	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"` // seconds
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
}

// getEnvPath returns the env file path for the current environment,
// walking up from the working directory until a config/env folder is found.
func getEnvPath() string {
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		fmt.Printf("Cannot determine working directory: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", environment))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads configuration from the env file and process environment.
// The file is optional: containerized deployments pass everything through
// the process environment.
func NewConfig() *Configuration {
	if envPath := getEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Logger may not be initialized yet here.
			fmt.Printf("No env file loaded from %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Failed to parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
