package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicMapColumnRoundTrip(t *testing.T) {
	practiced := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	original := TopicMap{
		"fractions": {Level: 75, LastPracticed: practiced, AttemptsCount: 1, CorrectAnswers: 3, TotalQuestions: 4},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned TopicMap
	require.NoError(t, scanned.Scan(value))

	require.Contains(t, scanned, "fractions")
	assert.Equal(t, 75, scanned["fractions"].Level)
	assert.True(t, scanned["fractions"].LastPracticed.Equal(practiced))
}

func TestTopicMapScanEmptyStates(t *testing.T) {
	var m TopicMap
	require.NoError(t, m.Scan(nil))
	assert.NotNil(t, m, "nil column should scan to an empty usable map")

	var fromEmpty TopicMap
	require.NoError(t, fromEmpty.Scan(""))
	assert.Empty(t, fromEmpty)

	nilValue, err := TopicMap(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), nilValue)
}

func TestTopicMapScanRejectsUnsupportedType(t *testing.T) {
	var m TopicMap
	assert.Error(t, m.Scan(42))
}

func TestBadgeListColumnRoundTrip(t *testing.T) {
	earned := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	original := BadgeList{
		{Name: "First Steps", Category: "milestone", EarnedAt: earned},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned BadgeList
	require.NoError(t, scanned.Scan(value))

	require.Len(t, scanned, 1)
	assert.Equal(t, "First Steps", scanned[0].Name)
	assert.True(t, scanned[0].EarnedAt.Equal(earned))
}

func TestHasBadge(t *testing.T) {
	a := UserAchievement{Badges: BadgeList{{Name: "First Steps"}}}
	assert.True(t, a.HasBadge("First Steps"))
	assert.False(t, a.HasBadge("Topic Master"))
}
