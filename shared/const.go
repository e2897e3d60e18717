package shared

const (
	UserID = "user_id"

	RoleUser  = "user"
	RoleAdmin = "admin"

	BadgeCategoryMilestone   = "milestone"
	BadgeCategoryStreak      = "streak"
	BadgeCategoryPerformance = "performance"
	BadgeCategorySocial      = "social"

	ReasonWeakPerformance = "weak_performance"
	ReasonNotPracticed    = "not_practiced"
	ReasonUpcomingTest    = "upcoming_test"

	TopicStatusMastered   = "mastered"
	TopicStatusInProgress = "in-progress"
	TopicStatusNeedsWork  = "needs-work"
)

// Milestone badge names
const (
	BadgeFirstSteps     = "First Steps"
	BadgeTopicMaster    = "Topic Master"
	BadgeCourseChampion = "Course Champion"
)

// Reward policy
const (
	StreakBonusCoins = 50
	StreakBonusXP    = 100
	DailyLoginCoins  = 5
	DailyLoginXP     = 10
	BadgeRewardCoins = 20
	BadgeRewardXP    = 50
)
