package main

import (
	"github.com/lumen-learning/lumen_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title Lumen Learning API
// @version 1.0
// @description Learning progress and gamification service
// @BasePath /
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.SqlService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.JWTService{},
		&services.AuthService{},
		&services.MediaService{},
		&services.RateLimitService{},
		&services.MonitoringService{},
		&services.AchievementService{},
		&services.ProgressService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
