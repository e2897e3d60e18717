package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

func TestAwardBadge(t *testing.T) {
	a := &model.UserAchievement{}
	now := time.Now()

	err := AwardBadge(a, model.Badge{
		Name:        "First Steps",
		Description: "Completed a first topic attempt",
		Icon:        "badges/first-steps.png",
		Category:    shared.BadgeCategoryMilestone,
	}, now)
	require.NoError(t, err)

	require.Len(t, a.Badges, 1)
	assert.Equal(t, now, a.Badges[0].EarnedAt)
}

func TestAwardBadgeDuplicateRejected(t *testing.T) {
	a := &model.UserAchievement{}
	now := time.Now()

	badge := model.Badge{Name: "Week Warrior", Category: shared.BadgeCategoryStreak}
	require.NoError(t, AwardBadge(a, badge, now))

	err := AwardBadge(a, badge, now.Add(time.Hour))
	require.Error(t, err)
	assert.True(t, shared.IsValidationError(err))
	// The rejected award must not mutate the set.
	assert.Len(t, a.Badges, 1)
	assert.Equal(t, now, a.Badges[0].EarnedAt)
}

func TestAwardBadgeValidation(t *testing.T) {
	a := &model.UserAchievement{}
	now := time.Now()

	err := AwardBadge(a, model.Badge{Category: shared.BadgeCategoryMilestone}, now)
	require.Error(t, err)
	assert.True(t, shared.IsValidationError(err))

	err = AwardBadge(a, model.Badge{Name: "Oddball", Category: "legendary"}, now)
	require.Error(t, err)
	assert.True(t, shared.IsValidationError(err))

	assert.Empty(t, a.Badges)
}

func TestBadgeReward(t *testing.T) {
	coins, xp, reason := BadgeReward("First Steps")
	assert.Equal(t, shared.BadgeRewardCoins, coins)
	assert.Equal(t, shared.BadgeRewardXP, xp)
	assert.Equal(t, "Earned badge: First Steps", reason)
}
