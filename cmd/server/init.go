package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"buyza_commerce/config"
	flowsvc "buyza_commerce/internal/api/flow/service"
	ledgersvc "buyza_commerce/internal/api/ledger/service"
	"buyza_commerce/internal/api/ledger/store"
	messagingsvc "buyza_commerce/internal/api/messaging/service"
	"buyza_commerce/internal/database"
	"buyza_commerce/internal/global"
)

// InitGlobal initializes the global variables used across the application.
func InitGlobal() {
	initValidator()
	initConfig()
	initDatabase_MongoDB()
}

// initValidator initializes the shared validator.
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig loads the server configuration.
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB connects the optional webhook audit log database.
// A missing URI or a failed connection disables the audit log; the bot
// keeps running on the ledger alone.
func initDatabase_MongoDB() {
	if global.ServerConfig.MongoDB_ConnectionURI == "" {
		logrus.Info("MongoDB not configured, webhook audit log disabled")
		return
	}

	session, err := database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.WithError(err).Warn("Failed to connect MongoDB, webhook audit log disabled")
		return
	}
	global.MongoDB_Session = session
	logrus.Info("Connected to MongoDB")
}

// InitServices wires the ledger, the outbound gateway, and the flow
// engine, and makes sure the ledger sheets exist.
func InitServices(ctx context.Context) (*flowsvc.FlowService, error) {
	cfg := global.ServerConfig

	sheetStore, err := initStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ledger := ledgersvc.NewLedgerService(sheetStore)
	if err := ledger.EnsureSheets(ctx); err != nil {
		return nil, fmt.Errorf("ensure ledger sheets: %w", err)
	}

	messenger := messagingsvc.NewWhatsAppService(
		cfg.GraphAPIBaseURL,
		cfg.PhoneNumberID,
		cfg.AccessToken,
		cfg.SendMaxRetries,
		cfg.SendTimeoutSecs,
	)

	return flowsvc.NewFlowService(ledger, messenger), nil
}

// initStore selects the ledger backend: Google Sheets when credentials
// are configured, the in-memory store otherwise (local development).
func initStore(ctx context.Context, cfg *config.Configuration) (store.SheetStore, error) {
	if cfg.GoogleCredentialsBase64 != "" && cfg.SpreadsheetID != "" {
		sheetStore, err := store.NewGoogleSheetStore(ctx, cfg.GoogleCredentialsBase64, cfg.SpreadsheetID)
		if err != nil {
			return nil, fmt.Errorf("create google sheet store: %w", err)
		}
		logrus.Info("Using Google Sheets ledger store")
		return sheetStore, nil
	}

	logrus.Warn("Google Sheets not configured, using in-memory ledger store (data is lost on restart)")
	return store.NewMemoryStore(), nil
}
