package dto

import (
	"time"

	"github.com/lumen-learning/lumen_api/engine"
	"github.com/lumen-learning/lumen_api/model"
)

// Reward requests

type AwardCoinsRequest struct {
	Amount int    `json:"amount" example:"20"`
	Reason string `json:"reason" validate:"required" example:"Course milestone"`
}

func (r AwardCoinsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GrantXPRequest struct {
	Amount int `json:"amount" validate:"gte=0" example:"50"`
}

func (r GrantXPRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AwardBadgeRequest struct {
	Name        string `json:"name" validate:"required" example:"Week Warrior"`
	Description string `json:"description" example:"Kept a 7-day streak"`
	Icon        string `json:"icon" example:"badges/week-warrior.png"`
	Category    string `json:"category" validate:"required,oneof=milestone streak performance social" example:"streak"`
}

func (r AwardBadgeRequest) Validate() error {
	return GetValidator().Struct(r)
}

// Reward responses

type StreakResponse struct {
	Current        int        `json:"current"`
	Longest        int        `json:"longest"`
	LastActiveDate *time.Time `json:"last_active_date"`
	// Reward granted for this touch; absent on the same-day no-op.
	RewardCoins  int    `json:"reward_coins,omitempty"`
	RewardXP     int    `json:"reward_xp,omitempty"`
	RewardReason string `json:"reward_reason,omitempty"`
}

type CoinTransactionResponse struct {
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type BadgeResponse struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	IconURL     string    `json:"icon_url,omitempty"`
	Category    string    `json:"category"`
	EarnedAt    time.Time `json:"earned_at"`
}

type AchievementResponse struct {
	UserID         string                    `json:"user_id"`
	XP             int                       `json:"xp"`
	Level          int                       `json:"level"`
	XPToNextLevel  int                       `json:"xp_to_next_level"`
	Coins          int                       `json:"coins"`
	CoinsHistory   []CoinTransactionResponse `json:"coins_history"`
	StreakCurrent  int                       `json:"streak_current"`
	StreakLongest  int                       `json:"streak_longest"`
	LastActiveDate *time.Time                `json:"last_active_date"`
	Badges         []BadgeResponse           `json:"badges"`
}

func MapAchievement(a *model.UserAchievement) *AchievementResponse {
	history := make([]CoinTransactionResponse, len(a.CoinsHistory))
	for i, tx := range a.CoinsHistory {
		history[i] = CoinTransactionResponse{
			Amount:    tx.Amount,
			Reason:    tx.Reason,
			Timestamp: tx.Timestamp,
		}
	}

	badges := make([]BadgeResponse, len(a.Badges))
	for i, b := range a.Badges {
		badges[i] = BadgeResponse{
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
			Category:    b.Category,
			EarnedAt:    b.EarnedAt,
		}
	}

	return &AchievementResponse{
		UserID:         a.UserID,
		XP:             a.XP,
		Level:          a.Level,
		XPToNextLevel:  engine.XPToNextLevel(a.XP),
		Coins:          a.Coins,
		CoinsHistory:   history,
		StreakCurrent:  a.StreakCurrent,
		StreakLongest:  a.StreakLongest,
		LastActiveDate: a.LastActiveDate,
		Badges:         badges,
	}
}

// Leaderboard

type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
	Rank     int    `json:"rank"`
}

type LeaderboardResponse struct {
	TopUsers    []LeaderboardEntry `json:"top_users"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
}

// Media

type MediaUploadResponse struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
}
