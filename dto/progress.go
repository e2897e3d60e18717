package dto

import (
	"time"

	"github.com/lumen-learning/lumen_api/engine"
	"github.com/lumen-learning/lumen_api/model"
)

// Progress requests

type TopicEventRequest struct {
	TopicID          string `json:"topic_id" validate:"required" example:"fractions"`
	CorrectAnswers   int    `json:"correct_answers" validate:"gte=0" example:"3"`
	TotalQuestions   int    `json:"total_questions" validate:"gte=0" example:"4"`
	TimeSpentSeconds int    `json:"time_spent_seconds" validate:"gte=0" example:"120"`
}

func (r TopicEventRequest) Validate() error {
	return GetValidator().Struct(r)
}

// Progress responses

type TopicMasteryResponse struct {
	Level            int       `json:"level"`
	LastPracticed    time.Time `json:"last_practiced"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	AttemptsCount    int       `json:"attempts_count"`
	CorrectAnswers   int       `json:"correct_answers"`
	TotalQuestions   int       `json:"total_questions"`
}

type MasteryRecordResponse struct {
	UserID       string                          `json:"user_id"`
	CourseID     string                          `json:"course_id"`
	Topics       map[string]TopicMasteryResponse `json:"topics"`
	AverageScore int                             `json:"average_score"`
	Strengths    []string                        `json:"strengths"`
	Weaknesses   []string                        `json:"weaknesses"`
	UpdatedAt    time.Time                       `json:"updated_at"`
}

func MapMasteryRecord(rec *model.MasteryRecord) *MasteryRecordResponse {
	topics := make(map[string]TopicMasteryResponse, len(rec.Topics))
	for id, t := range rec.Topics {
		topics[id] = TopicMasteryResponse{
			Level:            t.Level,
			LastPracticed:    t.LastPracticed,
			TimeSpentSeconds: t.TimeSpentSeconds,
			AttemptsCount:    t.AttemptsCount,
			CorrectAnswers:   t.CorrectAnswers,
			TotalQuestions:   t.TotalQuestions,
		}
	}

	return &MasteryRecordResponse{
		UserID:       rec.UserID,
		CourseID:     rec.CourseID,
		Topics:       topics,
		AverageScore: rec.AverageScore,
		Strengths:    rec.Strengths,
		Weaknesses:   rec.Weaknesses,
		UpdatedAt:    rec.UpdatedAt,
	}
}

type RecordTopicEventResponse struct {
	Record *MasteryRecordResponse `json:"record"`
	// Badges unlocked as a side effect of this event, if any.
	EarnedBadges []string `json:"earned_badges,omitempty"`
}

type RecommendationsResponse struct {
	CourseID        string                  `json:"course_id"`
	Recommendations []engine.Recommendation `json:"recommendations"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

type JourneyResponse struct {
	CourseID string         `json:"course_id"`
	Journey  engine.Journey `json:"journey"`
}
