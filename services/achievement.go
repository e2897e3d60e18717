package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lumen-learning/lumen_api/dto"
	"github.com/lumen-learning/lumen_api/engine"
	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

// AchievementService owns the mutable reward state: coins, XP, streaks and
// badges. All arithmetic lives in the engine package; this layer loads the
// record, applies the engine and persists the result.
type AchievementService struct {
	appContext.DefaultService

	sqlSvc        *SqlService
	redisSvc      *RedisService
	mediaSvc      *MediaService
	monitoringSvc *MonitoringService
}

const ACHIEVEMENT_SVC = "achievement_svc"

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 60 * time.Second
	leaderboardSize     = 10
)

func (svc AchievementService) Id() string {
	return ACHIEVEMENT_SVC
}

func (svc *AchievementService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AchievementService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// TouchDailyActivity counts today towards the user's streak and pays the
// streak reward for a freshly counted day. Repeat calls on the same day
// return the current state without paying twice.
func (svc *AchievementService) TouchDailyActivity(userID string) (*dto.StreakResponse, error) {
	achievement, err := svc.sqlSvc.GetOrCreateAchievement(userID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	now := time.Now()
	previous := achievement.StreakCurrent
	current, counted := engine.TouchDailyActivity(achievement, now)

	resp := &dto.StreakResponse{
		Current:        current,
		Longest:        achievement.StreakLongest,
		LastActiveDate: achievement.LastActiveDate,
	}

	if !counted {
		return resp, nil
	}

	if current == 1 && previous > 1 {
		svc.monitoringSvc.RecordStreakReset()
	}

	if reward := engine.RewardForStreak(current); reward != nil {
		engine.AwardCoins(achievement, reward.Coins, reward.Reason, now)
		if _, err := engine.GrantXP(achievement, reward.XP); err != nil {
			return nil, err
		}
		svc.monitoringSvc.RecordCoinsAwarded(reward.Coins)
		svc.monitoringSvc.RecordXPGranted(reward.XP)
		resp.RewardCoins = reward.Coins
		resp.RewardXP = reward.XP
		resp.RewardReason = reward.Reason

		svc.invalidateLeaderboard()
	}

	if err := svc.sqlSvc.SaveAchievement(achievement); err != nil {
		return nil, shared.NewStorageError(err)
	}

	log.Infof("Daily activity counted for %s: streak %d -> %d", userID, previous, current)
	return resp, nil
}

// AwardCoins credits (or, for a negative amount, deducts) coins and records
// the transaction against the reason.
func (svc *AchievementService) AwardCoins(userID string, req dto.AwardCoinsRequest) (*dto.AchievementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid coin request")
	}

	achievement, err := svc.sqlSvc.GetOrCreateAchievement(userID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	balance := engine.AwardCoins(achievement, req.Amount, req.Reason, time.Now())
	if balance < 0 {
		return nil, shared.NewBadRequestError(
			fmt.Errorf("balance would be %d", balance), "Insufficient coin balance")
	}

	if err := svc.sqlSvc.SaveAchievement(achievement); err != nil {
		return nil, shared.NewStorageError(err)
	}

	svc.monitoringSvc.RecordCoinsAwarded(req.Amount)
	return svc.mapAchievement(achievement), nil
}

// GrantXP adds experience and rederives the level.
func (svc *AchievementService) GrantXP(userID string, req dto.GrantXPRequest) (*dto.AchievementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid XP request")
	}

	achievement, err := svc.sqlSvc.GetOrCreateAchievement(userID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	if _, err := engine.GrantXP(achievement, req.Amount); err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.SaveAchievement(achievement); err != nil {
		return nil, shared.NewStorageError(err)
	}

	svc.monitoringSvc.RecordXPGranted(req.Amount)
	svc.invalidateLeaderboard()
	return svc.mapAchievement(achievement), nil
}

// AwardBadge grants a badge and pays the attached coin/XP reward. A badge
// the user already holds is rejected without touching the ledger.
func (svc *AchievementService) AwardBadge(userID string, req dto.AwardBadgeRequest) (*dto.AchievementResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid badge request")
	}

	achievement, err := svc.sqlSvc.GetOrCreateAchievement(userID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	badge := model.Badge{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Category:    req.Category,
	}
	if err := svc.grantBadge(achievement, badge, time.Now()); err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.SaveAchievement(achievement); err != nil {
		return nil, shared.NewStorageError(err)
	}

	svc.invalidateLeaderboard()
	return svc.mapAchievement(achievement), nil
}

// AwardBadgeIfNew grants a badge on an already-loaded record, skipping
// silently when the user holds it. The caller is responsible for saving.
func (svc *AchievementService) AwardBadgeIfNew(achievement *model.UserAchievement, badge model.Badge, now time.Time) (bool, error) {
	if achievement.HasBadge(badge.Name) {
		return false, nil
	}
	if err := svc.grantBadge(achievement, badge, now); err != nil {
		return false, err
	}
	return true, nil
}

func (svc *AchievementService) grantBadge(achievement *model.UserAchievement, badge model.Badge, now time.Time) error {
	if err := engine.AwardBadge(achievement, badge, now); err != nil {
		return err
	}

	coins, xp, reason := engine.BadgeReward(badge.Name)
	engine.AwardCoins(achievement, coins, reason, now)
	if _, err := engine.GrantXP(achievement, xp); err != nil {
		return err
	}

	svc.monitoringSvc.RecordBadgeAwarded(badge.Category)
	svc.monitoringSvc.RecordCoinsAwarded(coins)
	svc.monitoringSvc.RecordXPGranted(xp)

	log.Infof("Badge awarded: %s (%s)", badge.Name, badge.Category)
	return nil
}

// GetAchievements returns the user's full reward state. Users without prior
// activity get the zero-state record rather than a 404.
func (svc *AchievementService) GetAchievements(userID string) (*dto.AchievementResponse, error) {
	achievement, err := svc.sqlSvc.GetOrCreateAchievement(userID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}
	return svc.mapAchievement(achievement), nil
}

func (svc *AchievementService) mapAchievement(achievement *model.UserAchievement) *dto.AchievementResponse {
	resp := dto.MapAchievement(achievement)
	for i := range resp.Badges {
		if resp.Badges[i].Icon == "" {
			continue
		}
		url, err := svc.mediaSvc.BadgeIconURL(resp.Badges[i].Icon)
		if err != nil {
			log.WithError(err).Warnf("Failed to presign icon %s", resp.Badges[i].Icon)
			continue
		}
		resp.Badges[i].IconURL = url
	}
	return resp
}

// GetLeaderboard returns the all-time XP top list plus the caller's own
// placement. The top list is cached for a minute; the caller row is always
// fresh.
func (svc *AchievementService) GetLeaderboard(userID string) (*dto.LeaderboardResponse, error) {
	top, err := svc.topEntries()
	if err != nil {
		return nil, err
	}

	resp := &dto.LeaderboardResponse{TopUsers: top}

	for i := range top {
		if top[i].UserID == userID {
			resp.CurrentUser = &top[i]
			return resp, nil
		}
	}

	achievement, err := svc.sqlSvc.GetAchievement(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, shared.NewStorageError(err)
	}

	rank, err := svc.sqlSvc.GetAchievementRank(userID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	username := ""
	if user, err := svc.sqlSvc.GetUserByID(userID); err == nil {
		username = user.Username
	}

	resp.CurrentUser = &dto.LeaderboardEntry{
		UserID:   userID,
		Username: username,
		XP:       achievement.XP,
		Level:    achievement.Level,
		Rank:     rank,
	}
	return resp, nil
}

func (svc *AchievementService) topEntries() ([]dto.LeaderboardEntry, error) {
	ctx := context.Background()

	var cached []dto.LeaderboardEntry
	found, err := svc.redisSvc.GetJSON(ctx, leaderboardCacheKey, &cached)
	if err != nil {
		log.WithError(err).Warn("Leaderboard cache read failed")
	} else if found {
		return cached, nil
	}

	achievements, err := svc.sqlSvc.GetTopAchievements(leaderboardSize)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	ids := make([]string, len(achievements))
	for i, a := range achievements {
		ids[i] = a.UserID
	}
	users, err := svc.sqlSvc.GetUsersByIDs(ids)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	entries := make([]dto.LeaderboardEntry, len(achievements))
	for i, a := range achievements {
		entries[i] = dto.LeaderboardEntry{
			UserID:   a.UserID,
			Username: users[a.UserID].Username,
			XP:       a.XP,
			Level:    a.Level,
			Rank:     i + 1,
		}
	}

	if err := svc.redisSvc.SetJSON(ctx, leaderboardCacheKey, entries, leaderboardCacheTTL); err != nil {
		log.WithError(err).Warn("Leaderboard cache write failed")
	}
	return entries, nil
}

func (svc *AchievementService) invalidateLeaderboard() {
	if err := svc.redisSvc.Delete(context.Background(), leaderboardCacheKey); err != nil {
		log.WithError(err).Warn("Leaderboard cache invalidation failed")
	}
}
