package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 2, LevelForXP(399))
	assert.Equal(t, 3, LevelForXP(400))
	assert.Equal(t, 4, LevelForXP(900))
}

func TestXPForLevelInvertsCurve(t *testing.T) {
	for level := 1; level <= 20; level++ {
		threshold := XPForLevel(level)
		assert.Equal(t, level, LevelForXP(threshold))
		if threshold > 0 {
			assert.Equal(t, level-1, LevelForXP(threshold-1))
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, 100, XPToNextLevel(0))
	assert.Equal(t, 50, XPToNextLevel(50))
	assert.Equal(t, 300, XPToNextLevel(100))
}

func TestGrantXP(t *testing.T) {
	a := &model.UserAchievement{Level: 1}

	level, err := GrantXP(a, 150)
	require.NoError(t, err)
	assert.Equal(t, 2, level)
	assert.Equal(t, 150, a.XP)
	assert.Equal(t, 2, a.Level)

	level, err = GrantXP(a, 250)
	require.NoError(t, err)
	assert.Equal(t, 3, level)
	assert.Equal(t, 400, a.XP)
}

func TestGrantXPRejectsNegative(t *testing.T) {
	a := &model.UserAchievement{XP: 100, Level: 2}

	_, err := GrantXP(a, -10)
	require.Error(t, err)
	assert.True(t, shared.IsValidationError(err))
	assert.Equal(t, 100, a.XP)
	assert.Equal(t, 2, a.Level)
}

func TestAwardCoinsBalanceMatchesHistory(t *testing.T) {
	a := &model.UserAchievement{}
	now := time.Now()

	assert.Equal(t, 20, AwardCoins(a, 20, "Earned badge: First Steps", now))
	assert.Equal(t, 70, AwardCoins(a, 50, "7-day streak bonus", now))
	// Deductions are recorded the same way.
	assert.Equal(t, 40, AwardCoins(a, -30, "Streak freeze purchase", now))

	require.Len(t, a.CoinsHistory, 3)
	assert.Equal(t, -30, a.CoinsHistory[2].Amount)
	assert.True(t, LedgerBalanced(a))
}

func TestLedgerBalancedDetectsDrift(t *testing.T) {
	a := &model.UserAchievement{}
	AwardCoins(a, 10, "Daily login", time.Now())

	a.Coins++ // simulate a write that skipped the history
	assert.False(t, LedgerBalanced(a))
}
