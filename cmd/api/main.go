package main

import (
	"context"
	_ "managrr/docs"
	"managrr/internal/adapter/http/routes"
	"managrr/internal/config"
	"managrr/internal/logging"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

// @title           Estimates Sandbox API
// @version         1.0
// @description     Local stand-in for the contract estimates backend.

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	closer, err := logging.Setup(cfg.LogLevel, "")
	if err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}
	defer closer.Close()

	if err := routes.Run(context.Background(), cfg); err != nil {
		log.Fatalf("%v", err)
	}
}
