package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

// UserSeeder creates the demo accounts the other seeders hang data off.
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

type seedUser struct {
	Email    string
	Username string
	Password string
	Role     string
}

var seedUsers = []seedUser{
	{Email: "admin@lumen.dev", Username: "admin", Password: "Admin123!", Role: shared.RoleAdmin},
	{Email: "alice@lumen.dev", Username: "alice", Password: "Learner123!", Role: shared.RoleUser},
	{Email: "bob@lumen.dev", Username: "bob", Password: "Learner123!", Role: shared.RoleUser},
	{Email: "carol@lumen.dev", Username: "carol", Password: "Learner123!", Role: shared.RoleUser},
}

// SeedUsers inserts the demo users, skipping any that already exist.
func (s *UserSeeder) SeedUsers() error {
	for _, su := range seedUsers {
		var existing model.User
		if err := s.db.Where("username = ?", su.Username).First(&existing).Error; err == nil {
			log.Printf("User %s already exists, skipping", su.Username)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}

		user := model.User{
			ID:        id.String(),
			Email:     su.Email,
			Username:  su.Username,
			Password:  string(hashed),
			Role:      su.Role,
			LastLogin: time.Now(),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Created user %s (%s)", user.Username, user.Role)
	}
	return nil
}

// UserID looks up a seeded user's id by username.
func (s *UserSeeder) UserID(username string) (string, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return "", err
	}
	return user.ID, nil
}
