package main

import (
	"log"

	"github.com/joshuakessell/club-ops-deploy-sub001/logger"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/config"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/server"
)

// @title Check-In Kiosk Agent API
// @version 1.0
// @description Local render API for the lane check-in kiosk agent

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel)

	srv, err := server.NewServer(&cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Service exited with error: %v", err)
	}
}
