package main

import (
	"context"

	"location-base/internal/app"
	"location-base/internal/config"
	"location-base/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

//	@title			Location Base API
//	@version		1.0
//	@description	Captures device positions, lists them back and stores the dark-mode preference.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(config.LogLevel, config.LogPretty)

	if config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.New(context.Background(), config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize application")
	}
	defer application.Close()

	r := app.NewRouter(application)

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
