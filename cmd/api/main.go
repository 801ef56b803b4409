package main

import (
	"flag"
	"os"

	"github.com/unipem/lms/internal/pkg/logger"
	"github.com/unipem/lms/internal/server"
)

// @title LMS UNIPEM API
// @version 1.0
// @description Learning Management System of Universitas Insan Pembangunan Indonesia

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name user_session
// @description Session cookie set by POST /login

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
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
