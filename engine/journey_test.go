package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

func TestBuildJourney(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rec := newRecord()
	rec.Topics = model.TopicMap{
		"algebra":   {Level: 85, TimeSpentSeconds: 600, AttemptsCount: 3, LastPracticed: now.Add(-48 * time.Hour)},
		"geometry":  {Level: 60, TimeSpentSeconds: 300, AttemptsCount: 2, LastPracticed: now.Add(-2 * time.Hour)},
		"fractions": {Level: 20, TimeSpentSeconds: 150, AttemptsCount: 1, LastPracticed: now.Add(-24 * time.Hour)},
	}
	Recalculate(rec)

	journey := BuildJourney(rec)

	require.Len(t, journey.Entries, 3)
	// Most recently practiced first.
	assert.Equal(t, "geometry", journey.Entries[0].TopicID)
	assert.Equal(t, "fractions", journey.Entries[1].TopicID)
	assert.Equal(t, "algebra", journey.Entries[2].TopicID)

	assert.Equal(t, shared.TopicStatusInProgress, journey.Entries[0].Status)
	assert.Equal(t, shared.TopicStatusNeedsWork, journey.Entries[1].Status)
	assert.Equal(t, shared.TopicStatusMastered, journey.Entries[2].Status)

	assert.Equal(t, 1050, journey.TotalTimeSpent)
	assert.Equal(t, rec.AverageScore, journey.AverageScore)
	assert.Equal(t, 1, journey.StrengthCount)
	assert.Equal(t, 3, journey.TopicCount)
}

func TestBuildJourneyEmptyRecord(t *testing.T) {
	rec := newRecord()
	Recalculate(rec)

	journey := BuildJourney(rec)
	assert.Empty(t, journey.Entries)
	assert.Equal(t, 0, journey.TotalTimeSpent)
	assert.Equal(t, 0, journey.AverageScore)
	assert.Equal(t, 0, journey.TopicCount)
}

func TestStatusBoundaries(t *testing.T) {
	assert.Equal(t, shared.TopicStatusMastered, statusForLevel(80))
	assert.Equal(t, shared.TopicStatusInProgress, statusForLevel(79))
	assert.Equal(t, shared.TopicStatusInProgress, statusForLevel(50))
	assert.Equal(t, shared.TopicStatusNeedsWork, statusForLevel(49))
	assert.Equal(t, shared.TopicStatusNeedsWork, statusForLevel(0))
}
