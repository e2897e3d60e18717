package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/lumen-learning/lumen_api/model"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.migrate(); err != nil {
		return err
	}

	userSeeder := NewUserSeeder(s.db)
	if err := userSeeder.SeedUsers(); err != nil {
		log.Printf("User seeding failed: %v", err)
		return err
	}

	progressSeeder := NewProgressSeeder(s.db, userSeeder)
	if err := progressSeeder.SeedProgress(); err != nil {
		log.Printf("Progress seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedUsersOnly seeds only the demo accounts
func (s *MainSeeder) SeedUsersOnly() error {
	if err := s.migrate(); err != nil {
		return err
	}
	return NewUserSeeder(s.db).SeedUsers()
}

// SeedProgressOnly seeds mastery and reward state for existing users
func (s *MainSeeder) SeedProgressOnly() error {
	if err := s.migrate(); err != nil {
		return err
	}
	userSeeder := NewUserSeeder(s.db)
	return NewProgressSeeder(s.db, userSeeder).SeedProgress()
}

func (s *MainSeeder) migrate() error {
	return s.db.AutoMigrate(
		&model.User{},
		&model.MasteryRecord{},
		&model.UserAchievement{},
	)
}
