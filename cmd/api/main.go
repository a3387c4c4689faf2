package main

import (
	"os"

	"github.com/pioneer/admissions/internal/pkg/logger"
	"github.com/pioneer/admissions/internal/server"
)

// @title Pioneer Admissions API
// @version 1.0
// @description Admission applications, admit cards and school content for Pioneer Institute of Learning

// @contact.name Admissions Office
// @contact.email pioneerinstitute2008@gmail.com

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token, with or without the "Bearer " prefix

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
