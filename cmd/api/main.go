package main

import (
	"github.com/classtrack/roster/internal/pkg/logger"
	"github.com/classtrack/roster/internal/server"
)

// @title ClassTrack Roster API
// @version 1.0
// @description REST API for managing academic sections and their enrolled students.

// @contact.name ClassTrack Team

// @BasePath /api/v1

// @schemes http
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server terminated with error")
	}
}
