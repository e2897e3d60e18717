package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

// AwardCoins appends a transaction and moves the balance in one step so the
// balance always equals the history sum. Negative amounts are deductions
// and are recorded identically. Returns the new balance.
func AwardCoins(a *model.UserAchievement, amount int, reason string, now time.Time) int {
	a.CoinsHistory = append(a.CoinsHistory, model.CoinTransaction{
		Amount:    amount,
		Reason:    reason,
		Timestamp: now,
	})
	a.Coins += amount
	a.UpdatedAt = now
	return a.Coins
}

// GrantXP adds experience and rederives the level. XP never decreases, so
// negative grants are a caller bug. Returns the new level.
func GrantXP(a *model.UserAchievement, amount int) (int, error) {
	if amount < 0 {
		return 0, shared.NewValidationError(
			fmt.Errorf("amount=%d", amount),
			"XP amount must be non-negative")
	}

	a.XP += amount
	a.Level = LevelForXP(a.XP)
	return a.Level, nil
}

// LevelForXP is the square-root leveling curve. The stored level is only a
// denormalized copy of this.
func LevelForXP(xp int) int {
	return int(math.Sqrt(float64(xp)/100)) + 1
}

// XPForLevel inverts the curve: the minimum total XP required for level.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * 100
}

// XPToNextLevel reports how much XP is missing until the next level.
func XPToNextLevel(xp int) int {
	return XPForLevel(LevelForXP(xp)+1) - xp
}

// LedgerBalanced verifies the round-trip property between balance and
// history. Used by tests and the seeder's sanity pass.
func LedgerBalanced(a *model.UserAchievement) bool {
	sum := 0
	for _, tx := range a.CoinsHistory {
		sum += tx.Amount
	}
	return sum == a.Coins
}
