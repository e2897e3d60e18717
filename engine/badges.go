package engine

import (
	"fmt"
	"time"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

var badgeCategories = map[string]bool{
	shared.BadgeCategoryMilestone:   true,
	shared.BadgeCategoryStreak:      true,
	shared.BadgeCategoryPerformance: true,
	shared.BadgeCategorySocial:      true,
}

// AwardBadge adds a badge to the user's set. A name that is already present
// rejects the award without touching the set; the caller surfaces that as a
// rejected request and must not pay out the badge reward.
func AwardBadge(a *model.UserAchievement, badge model.Badge, now time.Time) error {
	if badge.Name == "" {
		return shared.NewValidationError(nil, "Badge name is required")
	}
	if !badgeCategories[badge.Category] {
		return shared.NewValidationError(
			fmt.Errorf("category=%q", badge.Category),
			"Unknown badge category")
	}

	if a.HasBadge(badge.Name) {
		return shared.NewDuplicateBadgeError(badge.Name)
	}

	badge.EarnedAt = now
	a.Badges = append(a.Badges, badge)
	a.UpdatedAt = now
	return nil
}

// BadgeReward is the payout attached to a successful award.
func BadgeReward(name string) (coins int, xp int, reason string) {
	return shared.BadgeRewardCoins, shared.BadgeRewardXP, "Earned badge: " + name
}
