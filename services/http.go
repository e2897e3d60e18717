package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	docs "github.com/lumen-learning/lumen_api/docs"
	"github.com/lumen-learning/lumen_api/services/handlers"
	"github.com/lumen-learning/lumen_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc        *AuthService
	jwtSvc         *JWTService
	progressSvc    *ProgressService
	achievementSvc *AchievementService
	mediaSvc       *MediaService
	monitoringSvc  *MonitoringService
	rateLimitSvc   *RateLimitService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	docs.SwaggerInfo.BasePath = ""

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressSvc)
	achievementHandler := handlers.NewAchievementHandler(svc.achievementSvc)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.achievementSvc, svc.jwtSvc)
	mediaHandler := handlers.NewMediaHandler(svc.mediaSvc)

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	auth := v1.Group("/auth")
	auth.Post("/register", svc.rateLimitSvc.Middleware("register"), authHandler.Register)
	auth.Post("/login", svc.rateLimitSvc.Middleware("login"), authHandler.Login)

	v1.Get("/leaderboard", leaderboardHandler.GetLeaderboard)

	authed := v1.Group("", svc.authSvc.RequiredAuth())

	progress := authed.Group("/progress/:courseId")
	progress.Post("/events", svc.rateLimitSvc.Middleware("topic_event"), progressHandler.RecordTopicEvent)
	progress.Get("/", progressHandler.GetMastery)
	progress.Get("/recommendations", progressHandler.GetRecommendations)
	progress.Get("/journey", progressHandler.GetJourney)

	authed.Post("/activity", svc.rateLimitSvc.Middleware("activity"), achievementHandler.TouchDailyActivity)
	authed.Get("/achievements", achievementHandler.GetAchievements)

	rewards := authed.Group("/rewards")
	rewards.Post("/coins", achievementHandler.AwardCoins)
	rewards.Post("/xp", achievementHandler.GrantXP)
	authed.Post("/badges", achievementHandler.AwardBadge)

	admin := v1.Group("/admin", svc.authSvc.RequiredAuth(), svc.authSvc.RequireRole(shared.RoleAdmin))
	admin.Post("/badges/icons", mediaHandler.UploadBadgeIcon)

	svc.server = app

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

// handleError maps domain errors to their HTTP shape. Internals are logged
// but never leak to the client.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.Error().Err(appErr.Err).Str("path", c.Path()).Msg("Request failed")
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	return shared.ResponseInternalError(c)
}
