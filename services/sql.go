package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lumen-learning/lumen_api/model"
)

// SqlService owns the database connection and every query the engine's
// callers need. The engine itself never touches it.
type SqlService struct {
	context.DefaultService
	db *gorm.DB

	driver   string
	database string
}

const SQL_SVC = "sql_svc"

func (ds SqlService) Id() string {
	return SQL_SVC
}

func (ds SqlService) Db() *gorm.DB {
	return ds.db
}

func (ds *SqlService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = "sqlite"
	}

	switch ds.driver {
	case "postgres":
		ds.database = os.Getenv("DATABASE_URL")
		if ds.database == "" {
			host := envOr("DB_HOST", "localhost")
			port := envOr("DB_PORT", "5432")
			user := envOr("DB_USER", "postgres")
			password := envOr("DB_PASSWORD", "postgres")
			dbname := envOr("DB_NAME", "lumen")
			ds.database = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				host, port, user, password, dbname)
		}
	default:
		ds.database = envOr("DB_DATABASE", "lumen.db")
	}

	return ds.DefaultService.Configure(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Start opens the connection and migrates any tables that changed since
// last runtime.
func (ds *SqlService) Start() (err error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}

	switch ds.driver {
	case "postgres":
		ds.db, err = gorm.Open(postgres.Open(ds.database), cfg)
	default:
		ds.db, err = gorm.Open(sqlite.Open(ds.database), cfg)
	}
	if err != nil {
		return err
	}

	models := []interface{}{
		&model.User{},
		&model.MasteryRecord{},
		&model.UserAchievement{},
	}

	if err := ds.db.AutoMigrate(models...); err != nil {
		log.WithError(err).Error("Failed to migrate database")
		return err
	}

	log.WithField("driver", ds.driver).Info("Database connected and migrated")
	return nil
}

func (ds *SqlService) Shutdown() {
}

// HandleError classifies a gorm error for logging and wraps it without
// masking the sentinel, so callers can still errors.Is against gorm.
func (ds *SqlService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== USER METHODS ====================

func (ds *SqlService) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *SqlService) GetUserByID(id string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *SqlService) GetUserByEmailOrUsername(emailOrUsername string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *SqlService) GetUsersByIDs(ids []string) (map[string]model.User, error) {
	var users []model.User
	if err := ds.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, ds.HandleError(err)
	}

	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (ds *SqlService) UpdateUserLastLogin(userID string) error {
	if err := ds.db.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== MASTERY METHODS ====================

func (ds *SqlService) GetMasteryRecord(userID, courseID string) (*model.MasteryRecord, error) {
	var rec model.MasteryRecord
	if err := ds.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&rec).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &rec, nil
}

// GetOrCreateMasteryRecord backs the lazy creation on first event for a
// user+course pair.
func (ds *SqlService) GetOrCreateMasteryRecord(userID, courseID string) (*model.MasteryRecord, error) {
	rec, err := ds.GetMasteryRecord(userID, courseID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, _ := uuid.NewV7()
	rec = &model.MasteryRecord{
		ID:        id.String(),
		UserID:    userID,
		CourseID:  courseID,
		Topics:    model.TopicMap{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := ds.db.Create(rec).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return rec, nil
}

func (ds *SqlService) SaveMasteryRecord(rec *model.MasteryRecord) error {
	if err := ds.db.Save(rec).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== ACHIEVEMENT METHODS ====================

func (ds *SqlService) GetAchievement(userID string) (*model.UserAchievement, error) {
	var a model.UserAchievement
	if err := ds.db.Where("user_id = ?", userID).First(&a).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &a, nil
}

func (ds *SqlService) GetOrCreateAchievement(userID string) (*model.UserAchievement, error) {
	a, err := ds.GetAchievement(userID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, _ := uuid.NewV7()
	a = &model.UserAchievement{
		ID:        id.String(),
		UserID:    userID,
		Level:     1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := ds.db.Create(a).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return a, nil
}

func (ds *SqlService) SaveAchievement(a *model.UserAchievement) error {
	if err := ds.db.Save(a).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) GetTopAchievements(limit int) ([]model.UserAchievement, error) {
	var rows []model.UserAchievement
	if err := ds.db.Order("xp DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return rows, nil
}

// GetAchievementRank is 1-based; ties resolve to the better rank.
func (ds *SqlService) GetAchievementRank(userID string) (int, error) {
	a, err := ds.GetAchievement(userID)
	if err != nil {
		return 0, err
	}

	var ahead int64
	if err := ds.db.Model(&model.UserAchievement{}).
		Where("xp > ?", a.XP).Count(&ahead).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return int(ahead) + 1, nil
}
