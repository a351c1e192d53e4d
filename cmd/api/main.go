package main

import (
	"os"

	"github.com/peiyu/classmeet/internal/pkg/logger"
	"github.com/peiyu/classmeet/internal/server"
)

// @title ClassMeet API
// @version 1.0
// @description API for sharing class schedules and finding common free time with friends

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
