package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

const (
	MaxRecommendations = 5
	StaleAfter         = 7 * 24 * time.Hour

	PriorityWeak  = 5
	PriorityStale = 3
)

// Recommendation is derived from a mastery record on demand; it has no
// lifecycle of its own and is never persisted.
type Recommendation struct {
	Topic    string `json:"topic"`
	Reason   string `json:"reason"`
	Priority int    `json:"priority"`
	Message  string `json:"message"`
}

// Recommend produces up to MaxRecommendations revision suggestions. A topic
// that is both weak and stale is emitted twice, once per reason; both
// signals carry information and the ranking keeps them adjacent anyway.
func Recommend(rec *model.MasteryRecord, now time.Time) []Recommendation {
	recs := make([]Recommendation, 0, len(rec.Topics))

	for _, id := range rec.Weaknesses {
		topic, ok := rec.Topics[id]
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{
			Topic:    id,
			Reason:   shared.ReasonWeakPerformance,
			Priority: PriorityWeak,
			Message:  fmt.Sprintf("Your score on %s is %d%% - review it to strengthen the basics", id, topic.Level),
		})
	}

	for _, id := range SortedTopicIDs(rec) {
		topic := rec.Topics[id]
		if topic.Level >= 100 || topic.LastPracticed.IsZero() {
			continue
		}
		if now.Sub(topic.LastPracticed) > StaleAfter {
			recs = append(recs, Recommendation{
				Topic:    id,
				Reason:   shared.ReasonNotPracticed,
				Priority: PriorityStale,
				Message:  fmt.Sprintf("You haven't practiced %s in over a week", id),
			})
		}
	}

	// shared.ReasonUpcomingTest is part of the reason vocabulary but has no
	// trigger: nothing schedules tests against topics, so no branch emits it.

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
