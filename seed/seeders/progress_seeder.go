package seeders

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumen-learning/lumen_api/engine"
	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

// ProgressSeeder builds demo mastery records and reward state by replaying
// practice events through the engine, so the seeded data obeys the same
// invariants as live traffic.
type ProgressSeeder struct {
	db    *gorm.DB
	users *UserSeeder
}

func NewProgressSeeder(db *gorm.DB, users *UserSeeder) *ProgressSeeder {
	return &ProgressSeeder{db: db, users: users}
}

type seedEvent struct {
	Topic   string
	Correct int
	Total   int
	Seconds int
	DaysAgo int
}

var seedCourses = map[string][]seedEvent{
	"math-101": {
		{Topic: "fractions", Correct: 3, Total: 4, Seconds: 300, DaysAgo: 10},
		{Topic: "fractions", Correct: 9, Total: 10, Seconds: 450, DaysAgo: 2},
		{Topic: "decimals", Correct: 2, Total: 8, Seconds: 500, DaysAgo: 1},
		{Topic: "geometry", Correct: 10, Total: 10, Seconds: 600, DaysAgo: 1},
	},
	"physics-201": {
		{Topic: "kinematics", Correct: 7, Total: 10, Seconds: 700, DaysAgo: 9},
		{Topic: "dynamics", Correct: 4, Total: 10, Seconds: 550, DaysAgo: 3},
	},
}

// SeedProgress replays the demo events for each non-admin user and pays a
// few rewards so the leaderboard has spread.
func (s *ProgressSeeder) SeedProgress() error {
	now := time.Now()

	bonus := 0
	for _, su := range seedUsers {
		if su.Role == shared.RoleAdmin {
			continue
		}
		userID, err := s.users.UserID(su.Username)
		if err != nil {
			return err
		}

		if err := s.seedMastery(userID, now); err != nil {
			return err
		}
		if err := s.seedRewards(userID, bonus*75, now); err != nil {
			return err
		}
		bonus++
	}
	return nil
}

func (s *ProgressSeeder) seedMastery(userID string, now time.Time) error {
	for courseID, events := range seedCourses {
		var existing model.MasteryRecord
		err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
		if err == nil {
			log.Printf("Mastery record %s/%s already exists, skipping", userID, courseID)
			continue
		}

		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		record := model.MasteryRecord{
			ID:       id.String(),
			UserID:   userID,
			CourseID: courseID,
			Topics:   model.TopicMap{},
		}

		for _, ev := range events {
			at := now.AddDate(0, 0, -ev.DaysAgo)
			err := engine.RecordTopicEvent(&record, ev.Topic, engine.TopicEvent{
				CorrectAnswers:   ev.Correct,
				TotalQuestions:   ev.Total,
				TimeSpentSeconds: ev.Seconds,
			}, at)
			if err != nil {
				return err
			}
		}

		if err := s.db.Create(&record).Error; err != nil {
			return err
		}
		log.Printf("Seeded mastery %s for user %s (%d topics, avg %d)",
			courseID, userID, len(record.Topics), record.AverageScore)
	}
	return nil
}

func (s *ProgressSeeder) seedRewards(userID string, extraXP int, now time.Time) error {
	var existing model.UserAchievement
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		log.Printf("Achievement record for %s already exists, skipping", userID)
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	achievement := model.UserAchievement{
		ID:     id.String(),
		UserID: userID,
		Level:  1,
	}

	engine.TouchDailyActivity(&achievement, now)
	engine.AwardCoins(&achievement, shared.DailyLoginCoins, "Daily login", now)
	if _, err := engine.GrantXP(&achievement, shared.DailyLoginXP+extraXP); err != nil {
		return err
	}

	badge := model.Badge{
		Name:        shared.BadgeFirstSteps,
		Description: "Completed your first practice session",
		Category:    shared.BadgeCategoryMilestone,
	}
	if err := engine.AwardBadge(&achievement, badge, now); err != nil {
		return err
	}
	coins, xp, reason := engine.BadgeReward(badge.Name)
	engine.AwardCoins(&achievement, coins, reason, now)
	if _, err := engine.GrantXP(&achievement, xp); err != nil {
		return err
	}

	if !engine.LedgerBalanced(&achievement) {
		return fmt.Errorf("seeded ledger for %s does not balance", userID)
	}

	if err := s.db.Create(&achievement).Error; err != nil {
		return err
	}
	log.Printf("Seeded achievements for user %s (xp=%d coins=%d)", userID, achievement.XP, achievement.Coins)
	return nil
}
