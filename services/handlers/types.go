package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/lumen-learning/lumen_api/dto"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

type JWTServiceInterface interface {
	ExtractTokenFromHeader(authHeader string) (string, error)
	VerifyJWTToken(token string) (string, error)
}

type ProgressServiceInterface interface {
	RecordTopicEvent(userID, courseID string, req dto.TopicEventRequest) (*dto.RecordTopicEventResponse, error)
	GetMastery(userID, courseID string) (*dto.MasteryRecordResponse, error)
	GetRecommendations(userID, courseID string) (*dto.RecommendationsResponse, error)
	GetJourney(userID, courseID string) (*dto.JourneyResponse, error)
}

type AchievementServiceInterface interface {
	TouchDailyActivity(userID string) (*dto.StreakResponse, error)
	AwardCoins(userID string, req dto.AwardCoinsRequest) (*dto.AchievementResponse, error)
	GrantXP(userID string, req dto.GrantXPRequest) (*dto.AchievementResponse, error)
	AwardBadge(userID string, req dto.AwardBadgeRequest) (*dto.AchievementResponse, error)
	GetAchievements(userID string) (*dto.AchievementResponse, error)
	GetLeaderboard(userID string) (*dto.LeaderboardResponse, error)
}

type MediaServiceInterface interface {
	UploadBadgeIcon(file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	BadgeIconURL(objectName string) (string, error)
}
