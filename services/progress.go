package services

import (
	"errors"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lumen-learning/lumen_api/dto"
	"github.com/lumen-learning/lumen_api/engine"
	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

// ProgressService records practice outcomes against per-course mastery
// records and serves the read models derived from them: recommendations
// and the learning journey.
type ProgressService struct {
	appContext.DefaultService

	sqlSvc         *SqlService
	achievementSvc *AchievementService
	monitoringSvc  *MonitoringService
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// RecordTopicEvent applies one practice outcome to the user's mastery record
// for the course, then checks milestone badges unlocked by the new state.
func (svc *ProgressService) RecordTopicEvent(userID, courseID string, req dto.TopicEventRequest) (*dto.RecordTopicEventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid topic event")
	}

	record, err := svc.sqlSvc.GetOrCreateMasteryRecord(userID, courseID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	event := engine.TopicEvent{
		CorrectAnswers:   req.CorrectAnswers,
		TotalQuestions:   req.TotalQuestions,
		TimeSpentSeconds: req.TimeSpentSeconds,
	}
	now := time.Now()
	if err := engine.RecordTopicEvent(record, req.TopicID, event, now); err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.SaveMasteryRecord(record); err != nil {
		return nil, shared.NewStorageError(err)
	}
	svc.monitoringSvc.RecordMasteryEvent()

	earned, err := svc.checkMilestones(userID, record, now)
	if err != nil {
		return nil, err
	}

	log.Infof("Topic event recorded: user=%s course=%s topic=%s", userID, courseID, req.TopicID)
	return &dto.RecordTopicEventResponse{
		Record:       dto.MapMasteryRecord(record),
		EarnedBadges: earned,
	}, nil
}

// checkMilestones awards the milestone badges the new record state unlocks.
// The achievement record is loaded once and saved once even when several
// milestones fire off the same event.
func (svc *ProgressService) checkMilestones(userID string, record *model.MasteryRecord, now time.Time) ([]string, error) {
	candidates := milestonesFor(record)
	if len(candidates) == 0 {
		return nil, nil
	}

	achievement, err := svc.sqlSvc.GetOrCreateAchievement(userID)
	if err != nil {
		return nil, shared.NewStorageError(err)
	}

	var earned []string
	for _, badge := range candidates {
		awarded, err := svc.achievementSvc.AwardBadgeIfNew(achievement, badge, now)
		if err != nil {
			return nil, err
		}
		if awarded {
			earned = append(earned, badge.Name)
		}
	}

	if len(earned) == 0 {
		return nil, nil
	}
	if err := svc.sqlSvc.SaveAchievement(achievement); err != nil {
		return nil, shared.NewStorageError(err)
	}
	return earned, nil
}

// milestonesFor returns the milestone badges the record currently qualifies
// for. Duplicates are filtered by the caller against the badge set.
func milestonesFor(record *model.MasteryRecord) []model.Badge {
	var badges []model.Badge

	attempts := 0
	mastered := false
	for _, topic := range record.Topics {
		attempts += topic.AttemptsCount
		if topic.Level == 100 {
			mastered = true
		}
	}

	if attempts >= 1 {
		badges = append(badges, model.Badge{
			Name:        shared.BadgeFirstSteps,
			Description: "Completed your first practice session",
			Category:    shared.BadgeCategoryMilestone,
		})
	}
	if mastered {
		badges = append(badges, model.Badge{
			Name:        shared.BadgeTopicMaster,
			Description: "Reached full mastery of a topic",
			Category:    shared.BadgeCategoryMilestone,
		})
	}
	if len(record.Topics) >= 3 && record.AverageScore >= 80 {
		badges = append(badges, model.Badge{
			Name:        shared.BadgeCourseChampion,
			Description: "Held a course average of 80 or better across three topics",
			Category:    shared.BadgeCategoryMilestone,
		})
	}
	return badges
}

// GetMastery returns the stored mastery record for the course. Unlike the
// event path this is read-only, so an unknown pair is a 404.
func (svc *ProgressService) GetMastery(userID, courseID string) (*dto.MasteryRecordResponse, error) {
	record, err := svc.loadRecord(userID, courseID)
	if err != nil {
		return nil, err
	}
	return dto.MapMasteryRecord(record), nil
}

// GetRecommendations builds the practice suggestions for the course from the
// current mastery record.
func (svc *ProgressService) GetRecommendations(userID, courseID string) (*dto.RecommendationsResponse, error) {
	record, err := svc.loadRecord(userID, courseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recs := engine.Recommend(record, now)
	svc.monitoringSvc.RecordRecommendations(len(recs))

	return &dto.RecommendationsResponse{
		CourseID:        courseID,
		Recommendations: recs,
		GeneratedAt:     now,
	}, nil
}

// GetJourney returns the chronological practice history view for the course.
func (svc *ProgressService) GetJourney(userID, courseID string) (*dto.JourneyResponse, error) {
	record, err := svc.loadRecord(userID, courseID)
	if err != nil {
		return nil, err
	}

	return &dto.JourneyResponse{
		CourseID: courseID,
		Journey:  engine.BuildJourney(record),
	}, nil
}

func (svc *ProgressService) loadRecord(userID, courseID string) (*model.MasteryRecord, error) {
	record, err := svc.sqlSvc.GetMasteryRecord(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "No progress recorded for this course")
		}
		return nil, shared.NewStorageError(err)
	}
	return record, nil
}
