package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

func day(n int) time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestStreakFirstActivity(t *testing.T) {
	a := &model.UserAchievement{}

	current, counted := TouchDailyActivity(a, day(0))
	assert.Equal(t, 1, current)
	assert.True(t, counted)
	assert.Equal(t, 1, a.StreakLongest)
	assert.NotNil(t, a.LastActiveDate)
}

func TestStreakSameDayIdempotent(t *testing.T) {
	a := &model.UserAchievement{}

	TouchDailyActivity(a, day(0))
	// Later the same day, different wall clock.
	current, counted := TouchDailyActivity(a, day(0).Add(8*time.Hour))

	assert.Equal(t, 1, current)
	assert.False(t, counted)
	assert.Equal(t, 1, a.StreakCurrent)
}

func TestStreakContinuityAndReset(t *testing.T) {
	a := &model.UserAchievement{}

	current, _ := TouchDailyActivity(a, day(0))
	assert.Equal(t, 1, current)

	current, counted := TouchDailyActivity(a, day(1))
	assert.Equal(t, 2, current)
	assert.True(t, counted)
	assert.Equal(t, 2, a.StreakLongest)

	// Skip day 2, come back on day 3: streak resets, longest survives.
	current, counted = TouchDailyActivity(a, day(3))
	assert.Equal(t, 1, current)
	assert.True(t, counted)
	assert.Equal(t, 2, a.StreakLongest)
}

func TestStreakLongestNeverBelowCurrent(t *testing.T) {
	a := &model.UserAchievement{}

	for i := 0; i < 10; i++ {
		TouchDailyActivity(a, day(i))
		assert.GreaterOrEqual(t, a.StreakLongest, a.StreakCurrent)
	}
	assert.Equal(t, 10, a.StreakCurrent)
	assert.Equal(t, 10, a.StreakLongest)
}

func TestRewardForStreak(t *testing.T) {
	assert.Nil(t, RewardForStreak(1))

	daily := RewardForStreak(2)
	assert.Equal(t, shared.DailyLoginCoins, daily.Coins)
	assert.Equal(t, shared.DailyLoginXP, daily.XP)
	assert.Equal(t, "Daily login", daily.Reason)

	bonus := RewardForStreak(7)
	assert.Equal(t, shared.StreakBonusCoins, bonus.Coins)
	assert.Equal(t, shared.StreakBonusXP, bonus.XP)
	assert.Equal(t, "7-day streak bonus", bonus.Reason)

	assert.Equal(t, "14-day streak bonus", RewardForStreak(14).Reason)
	// Day 8 after a weekly bonus falls back to the daily grant.
	assert.Equal(t, "Daily login", RewardForStreak(8).Reason)
}
