package engine

import (
	"sort"
	"time"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

// JourneyEntry is one topic's line in the course timeline view.
type JourneyEntry struct {
	TopicID       string    `json:"topic_id"`
	Mastery       int       `json:"mastery"`
	TimeSpent     int       `json:"time_spent"`
	LastPracticed time.Time `json:"last_practiced"`
	Status        string    `json:"status"`
}

// Journey is the course-level summary returned to callers.
type Journey struct {
	Entries        []JourneyEntry `json:"entries"`
	TotalTimeSpent int            `json:"total_time_spent"`
	AverageScore   int            `json:"average_score"`
	StrengthCount  int            `json:"strength_count"`
	TopicCount     int            `json:"topic_count"`
}

// BuildJourney flattens a mastery record into the timeline view, most
// recently practiced topics first.
func BuildJourney(rec *model.MasteryRecord) Journey {
	entries := make([]JourneyEntry, 0, len(rec.Topics))
	totalTime := 0

	for _, id := range SortedTopicIDs(rec) {
		topic := rec.Topics[id]
		totalTime += topic.TimeSpentSeconds

		entries = append(entries, JourneyEntry{
			TopicID:       id,
			Mastery:       topic.Level,
			TimeSpent:     topic.TimeSpentSeconds,
			LastPracticed: topic.LastPracticed,
			Status:        statusForLevel(topic.Level),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastPracticed.After(entries[j].LastPracticed)
	})

	return Journey{
		Entries:        entries,
		TotalTimeSpent: totalTime,
		AverageScore:   rec.AverageScore,
		StrengthCount:  len(rec.Strengths),
		TopicCount:     len(rec.Topics),
	}
}

func statusForLevel(level int) string {
	switch {
	case level >= StrengthThreshold:
		return shared.TopicStatusMastered
	case level >= WeaknessThreshold:
		return shared.TopicStatusInProgress
	default:
		return shared.TopicStatusNeedsWork
	}
}
