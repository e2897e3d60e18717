package engine

import (
	"fmt"
	"time"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

// StreakReward is what a counted activity day earns. Nil means no reward.
type StreakReward struct {
	Coins  int
	XP     int
	Reason string
}

// TouchDailyActivity advances the streak for an activity at now. The
// returned counted flag is false for the same-day no-op so callers do not
// re-grant rewards within one calendar day.
func TouchDailyActivity(a *model.UserAchievement, now time.Time) (current int, counted bool) {
	today := dateOnly(now)

	if a.LastActiveDate != nil {
		last := dateOnly(*a.LastActiveDate)
		switch daysBetween(last, today) {
		case 0:
			return a.StreakCurrent, false
		case 1:
			a.StreakCurrent++
		default:
			// Missed day(s), or clock went backwards; either way the
			// continuity is broken.
			a.StreakCurrent = 1
		}
	} else {
		a.StreakCurrent = 1
	}

	if a.StreakCurrent > a.StreakLongest {
		a.StreakLongest = a.StreakCurrent
	}

	a.LastActiveDate = &today
	a.UpdatedAt = now
	return a.StreakCurrent, true
}

// RewardForStreak is the caller-side policy for a freshly counted day.
func RewardForStreak(current int) *StreakReward {
	switch {
	case current > 1 && current%7 == 0:
		return &StreakReward{
			Coins:  shared.StreakBonusCoins,
			XP:     shared.StreakBonusXP,
			Reason: fmt.Sprintf("%d-day streak bonus", current),
		}
	case current > 1:
		return &StreakReward{
			Coins:  shared.DailyLoginCoins,
			XP:     shared.DailyLoginXP,
			Reason: "Daily login",
		}
	default:
		return nil
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
