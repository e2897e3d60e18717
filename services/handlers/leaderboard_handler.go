package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lumen-learning/lumen_api/shared"
)

type LeaderboardHandler struct {
	achievementSvc AchievementServiceInterface
	jwtSvc         JWTServiceInterface
}

func NewLeaderboardHandler(achievementSvc AchievementServiceInterface, jwtSvc JWTServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{
		achievementSvc: achievementSvc,
		jwtSvc:         jwtSvc,
	}
}

// @Summary Get all-time XP leaderboard
// @Description Get the top users by XP; with a valid token the caller's own placement is included
// @Tags leaderboard
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	// Auth is optional here: anonymous callers get the top list only.
	var userID string
	if authHeader := c.Get("Authorization"); authHeader != "" {
		if token, err := h.jwtSvc.ExtractTokenFromHeader(authHeader); err == nil {
			if uid, err := h.jwtSvc.VerifyJWTToken(token); err == nil {
				userID = uid
			}
		}
	}

	leaderboard, err := h.achievementSvc.GetLeaderboard(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", leaderboard)
}
