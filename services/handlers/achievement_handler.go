package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/lumen-learning/lumen_api/dto"
	"github.com/lumen-learning/lumen_api/shared"
)

type AchievementHandler struct {
	achievementSvc AchievementServiceInterface
}

func NewAchievementHandler(achievementSvc AchievementServiceInterface) *AchievementHandler {
	return &AchievementHandler{
		achievementSvc: achievementSvc,
	}
}

// @Summary Record daily activity
// @Description Count today towards the user's streak and pay the streak reward once per day
// @Tags achievements
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.StreakResponse}
// @Router /api/v1/activity [post]
func (h *AchievementHandler) TouchDailyActivity(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.achievementSvc.TouchDailyActivity(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Activity recorded", resp)
}

// @Summary Get achievements
// @Description Get the user's XP, level, coins, streak and badges
// @Tags achievements
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.AchievementResponse}
// @Router /api/v1/achievements [get]
func (h *AchievementHandler) GetAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.achievementSvc.GetAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Award or deduct coins
// @Description Apply a coin transaction against the user's balance
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param coinRequest body dto.AwardCoinsRequest true "Amount and reason"
// @Success 200 {object} shared.Response{data=dto.AchievementResponse}
// @Router /api/v1/rewards/coins [post]
func (h *AchievementHandler) AwardCoins(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.AwardCoinsRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	resp, err := h.achievementSvc.AwardCoins(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Coins updated", resp)
}

// @Summary Grant XP
// @Description Add experience points and rederive the user's level
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param xpRequest body dto.GrantXPRequest true "XP amount"
// @Success 200 {object} shared.Response{data=dto.AchievementResponse}
// @Router /api/v1/rewards/xp [post]
func (h *AchievementHandler) GrantXP(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.GrantXPRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	resp, err := h.achievementSvc.GrantXP(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "XP granted", resp)
}

// @Summary Award a badge
// @Description Grant a badge and its attached coin/XP reward; duplicates are rejected
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param badgeRequest body dto.AwardBadgeRequest true "Badge details"
// @Success 200 {object} shared.Response{data=dto.AchievementResponse}
// @Router /api/v1/badges [post]
func (h *AchievementHandler) AwardBadge(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.AwardBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	resp, err := h.achievementSvc.AwardBadge(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Badge awarded", resp)
}
