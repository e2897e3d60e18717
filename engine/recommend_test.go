package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

func TestRecommendWeakBeforeStale(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := newRecord()
	rec.Topics = model.TopicMap{
		"fractions": {Level: 30, AttemptsCount: 2, LastPracticed: now.Add(-time.Hour)},
		"geometry":  {Level: 70, AttemptsCount: 5, LastPracticed: now.Add(-10 * 24 * time.Hour)},
	}
	Recalculate(rec)

	recs := Recommend(rec, now)
	require.Len(t, recs, 2)

	assert.Equal(t, "fractions", recs[0].Topic)
	assert.Equal(t, shared.ReasonWeakPerformance, recs[0].Reason)
	assert.Equal(t, PriorityWeak, recs[0].Priority)

	assert.Equal(t, "geometry", recs[1].Topic)
	assert.Equal(t, shared.ReasonNotPracticed, recs[1].Reason)
	assert.Equal(t, PriorityStale, recs[1].Priority)
}

// A topic that is both weak and stale shows up twice, once per reason. The
// duplicate emission is intentional; both signals are kept.
func TestRecommendDuplicateForWeakAndStale(t *testing.T) {
	now := time.Now()
	rec := newRecord()
	rec.Topics = model.TopicMap{
		"fractions": {Level: 20, AttemptsCount: 1, LastPracticed: now.Add(-9 * 24 * time.Hour)},
	}
	Recalculate(rec)

	recs := Recommend(rec, now)
	require.Len(t, recs, 2)
	assert.Equal(t, "fractions", recs[0].Topic)
	assert.Equal(t, shared.ReasonWeakPerformance, recs[0].Reason)
	assert.Equal(t, "fractions", recs[1].Topic)
	assert.Equal(t, shared.ReasonNotPracticed, recs[1].Reason)
}

func TestRecommendTruncatesToFive(t *testing.T) {
	now := time.Now()
	rec := newRecord()
	rec.Topics = model.TopicMap{}
	for i := 0; i < 8; i++ {
		rec.Topics[fmt.Sprintf("topic-%d", i)] = &model.TopicMastery{
			Level:         10,
			AttemptsCount: 1,
			LastPracticed: now.Add(-time.Hour),
		}
	}
	Recalculate(rec)

	recs := Recommend(rec, now)
	assert.Len(t, recs, MaxRecommendations)
	for _, r := range recs {
		assert.Equal(t, shared.ReasonWeakPerformance, r.Reason)
	}
}

func TestRecommendSkipsMasteredAndUnpracticed(t *testing.T) {
	now := time.Now()
	rec := newRecord()
	rec.Topics = model.TopicMap{
		// Fully mastered topics never go stale.
		"done": {Level: 100, AttemptsCount: 4, LastPracticed: now.Add(-30 * 24 * time.Hour)},
		// Never practiced: no lastPracticed to be stale against, and no
		// attempts to count as a weakness.
		"new": {Level: 0, AttemptsCount: 0},
	}
	Recalculate(rec)

	assert.Empty(t, Recommend(rec, now))
}

func TestRecommendIsPure(t *testing.T) {
	now := time.Now()
	rec := newRecord()
	rec.Topics = model.TopicMap{
		"fractions": {Level: 20, AttemptsCount: 1, LastPracticed: now.Add(-time.Hour)},
	}
	Recalculate(rec)

	before := *rec.Topics["fractions"]
	_ = Recommend(rec, now)
	_ = Recommend(rec, now)

	assert.Equal(t, before, *rec.Topics["fractions"])
	assert.Equal(t, model.StringList{"fractions"}, rec.Weaknesses)
}

func TestRecommendStableOrderWithinPriority(t *testing.T) {
	now := time.Now()
	rec := newRecord()
	rec.Topics = model.TopicMap{
		"b-topic": {Level: 10, AttemptsCount: 1, LastPracticed: now},
		"a-topic": {Level: 20, AttemptsCount: 1, LastPracticed: now},
		"c-topic": {Level: 30, AttemptsCount: 1, LastPracticed: now},
	}
	Recalculate(rec)

	recs := Recommend(rec, now)
	require.Len(t, recs, 3)
	// Insertion order follows the recomputed weakness set, which iterates
	// topics in sorted order.
	assert.Equal(t, "a-topic", recs[0].Topic)
	assert.Equal(t, "b-topic", recs[1].Topic)
	assert.Equal(t, "c-topic", recs[2].Topic)
}
