// Package engine holds the learning-progress and gamification core. Every
// operation works on a record it is handed and returns the updated record;
// persistence and transport stay with the services layer.
package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

const (
	StrengthThreshold = 80
	WeaknessThreshold = 50
)

// TopicEvent is one quiz/practice outcome reported against a topic.
type TopicEvent struct {
	CorrectAnswers   int
	TotalQuestions   int
	TimeSpentSeconds int
}

func (ev TopicEvent) validate() error {
	if ev.CorrectAnswers < 0 || ev.TotalQuestions < 0 {
		return shared.NewValidationError(
			fmt.Errorf("correct=%d total=%d", ev.CorrectAnswers, ev.TotalQuestions),
			"Answer counts must be non-negative")
	}
	if ev.CorrectAnswers > ev.TotalQuestions {
		return shared.NewValidationError(
			fmt.Errorf("correct=%d exceeds total=%d", ev.CorrectAnswers, ev.TotalQuestions),
			"Correct answers cannot exceed total questions")
	}
	if ev.TimeSpentSeconds < 0 {
		return shared.NewValidationError(
			fmt.Errorf("time_spent=%d", ev.TimeSpentSeconds),
			"Time spent must be non-negative")
	}
	return nil
}

// RecordTopicEvent applies one event to the topic's cumulative counters and
// recomputes the record's derived fields. Malformed events fail validation
// before any mutation; nothing is clamped silently.
func RecordTopicEvent(rec *model.MasteryRecord, topicID string, ev TopicEvent, now time.Time) error {
	if topicID == "" {
		return shared.NewValidationError(nil, "Topic id is required")
	}
	if err := ev.validate(); err != nil {
		return err
	}

	topic := rec.Topic(topicID)
	topic.AttemptsCount++
	topic.CorrectAnswers += ev.CorrectAnswers
	topic.TotalQuestions += ev.TotalQuestions
	topic.TimeSpentSeconds += ev.TimeSpentSeconds
	topic.LastPracticed = now

	// Guard divide-by-zero: an all-practice event with no questions leaves
	// the level untouched.
	if topic.TotalQuestions > 0 {
		topic.Level = levelFromCounters(topic.CorrectAnswers, topic.TotalQuestions)
	}

	Recalculate(rec)
	rec.UpdatedAt = now
	return nil
}

func levelFromCounters(correct, total int) int {
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Recalculate rebuilds averageScore, strengths and weaknesses from scratch.
// A full scan over the topics keeps the derived sets drift-free; topic
// counts per course are small enough that O(topics) does not matter.
func Recalculate(rec *model.MasteryRecord) {
	rec.Strengths = model.StringList{}
	rec.Weaknesses = model.StringList{}

	if len(rec.Topics) == 0 {
		rec.AverageScore = 0
		return
	}

	sum := 0
	for _, id := range SortedTopicIDs(rec) {
		topic := rec.Topics[id]
		sum += topic.Level

		if topic.Level >= StrengthThreshold {
			rec.Strengths = append(rec.Strengths, id)
		}
		if topic.Level < WeaknessThreshold && topic.AttemptsCount > 0 {
			rec.Weaknesses = append(rec.Weaknesses, id)
		}
	}

	rec.AverageScore = int(math.Round(float64(sum) / float64(len(rec.Topics))))
}

// SortedTopicIDs gives a deterministic iteration order over the topic map.
func SortedTopicIDs(rec *model.MasteryRecord) []string {
	ids := make([]string, 0, len(rec.Topics))
	for id := range rec.Topics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
