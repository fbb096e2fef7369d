package main

import (
	"context"
	"fmt"

	"buyza_commerce/internal/database"
	"buyza_commerce/internal/global"
	"buyza_commerce/internal/logger"
)

// initLogger initializes the logging system for the whole application.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

func main() {
	initLogger()

	InitGlobal()

	log := logger.GetAppLogger()

	flow, err := InitServices(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	if global.MongoDB_Session != nil {
		defer database.CloseInstance(global.MongoDB_Session)
	}

	app := InitFiberApp(flow)

	address := global.ServerConfig.Address
	log.WithField("address", address).Info("Starting Fiber server")
	if err := app.Listen(address); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}
