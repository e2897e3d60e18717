package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-learning/lumen_api/model"
	"github.com/lumen-learning/lumen_api/shared"
)

func newRecord() *model.MasteryRecord {
	return &model.MasteryRecord{
		ID:       "rec-1",
		UserID:   "user-1",
		CourseID: "course-1",
		Topics:   model.TopicMap{},
	}
}

func TestRecordTopicEventFirstTouch(t *testing.T) {
	rec := newRecord()
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	err := RecordTopicEvent(rec, "algebra", TopicEvent{CorrectAnswers: 3, TotalQuestions: 4, TimeSpentSeconds: 120}, now)
	require.NoError(t, err)

	topic := rec.Topics["algebra"]
	require.NotNil(t, topic)
	assert.Equal(t, 1, topic.AttemptsCount)
	assert.Equal(t, 3, topic.CorrectAnswers)
	assert.Equal(t, 4, topic.TotalQuestions)
	assert.Equal(t, 120, topic.TimeSpentSeconds)
	assert.Equal(t, 75, topic.Level)
	assert.Equal(t, now, topic.LastPracticed)
	assert.Equal(t, 75, rec.AverageScore)
}

func TestRecordTopicEventAccumulates(t *testing.T) {
	rec := newRecord()
	now := time.Now()

	require.NoError(t, RecordTopicEvent(rec, "algebra", TopicEvent{CorrectAnswers: 3, TotalQuestions: 4}, now))
	require.NoError(t, RecordTopicEvent(rec, "algebra", TopicEvent{CorrectAnswers: 1, TotalQuestions: 6}, now.Add(time.Hour)))

	topic := rec.Topics["algebra"]
	assert.Equal(t, 2, topic.AttemptsCount)
	assert.Equal(t, 4, topic.CorrectAnswers)
	assert.Equal(t, 10, topic.TotalQuestions)
	// round(100 * 4/10)
	assert.Equal(t, 40, topic.Level)
	assert.LessOrEqual(t, topic.CorrectAnswers, topic.TotalQuestions)
}

func TestRecordTopicEventZeroQuestionsKeepsLevel(t *testing.T) {
	rec := newRecord()
	now := time.Now()

	require.NoError(t, RecordTopicEvent(rec, "algebra", TopicEvent{CorrectAnswers: 4, TotalQuestions: 5}, now))
	levelBefore := rec.Topics["algebra"].Level

	// Pure practice time with no questions answered.
	require.NoError(t, RecordTopicEvent(rec, "algebra", TopicEvent{TimeSpentSeconds: 300}, now.Add(time.Hour)))

	topic := rec.Topics["algebra"]
	assert.Equal(t, levelBefore, topic.Level)
	assert.Equal(t, 2, topic.AttemptsCount)
	assert.Equal(t, 300, topic.TimeSpentSeconds)
}

func TestRecordTopicEventValidation(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		topicID string
		ev      TopicEvent
	}{
		{"correct exceeds total", "algebra", TopicEvent{CorrectAnswers: 5, TotalQuestions: 4}},
		{"negative correct", "algebra", TopicEvent{CorrectAnswers: -1, TotalQuestions: 4}},
		{"negative total", "algebra", TopicEvent{CorrectAnswers: 0, TotalQuestions: -4}},
		{"negative time", "algebra", TopicEvent{CorrectAnswers: 1, TotalQuestions: 2, TimeSpentSeconds: -1}},
		{"missing topic", "", TopicEvent{CorrectAnswers: 1, TotalQuestions: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := newRecord()
			err := RecordTopicEvent(rec, tc.topicID, tc.ev, now)
			require.Error(t, err)
			assert.True(t, shared.IsValidationError(err))
			// Rejected events must not leave partial state behind.
			assert.Empty(t, rec.Topics)
		})
	}
}

func TestRecalculateDerivedSets(t *testing.T) {
	rec := newRecord()
	rec.Topics = model.TopicMap{
		"strong":    {Level: 85, AttemptsCount: 3},
		"weak":      {Level: 30, AttemptsCount: 2},
		"middling":  {Level: 60, AttemptsCount: 1},
		"untouched": {Level: 0, AttemptsCount: 0},
	}

	Recalculate(rec)

	assert.Equal(t, model.StringList{"strong"}, rec.Strengths)
	// Level alone is not enough: a topic with no attempts is not a weakness.
	assert.Equal(t, model.StringList{"weak"}, rec.Weaknesses)
	// round((85+30+60+0)/4)
	assert.Equal(t, 44, rec.AverageScore)
}

func TestRecalculateEmptyRecord(t *testing.T) {
	rec := newRecord()
	Recalculate(rec)

	assert.Equal(t, 0, rec.AverageScore)
	assert.Empty(t, rec.Strengths)
	assert.Empty(t, rec.Weaknesses)
}

func TestCumulativeInvariantAcrossSequence(t *testing.T) {
	rec := newRecord()
	now := time.Now()

	events := []TopicEvent{
		{CorrectAnswers: 2, TotalQuestions: 5, TimeSpentSeconds: 60},
		{CorrectAnswers: 5, TotalQuestions: 5, TimeSpentSeconds: 45},
		{CorrectAnswers: 0, TotalQuestions: 3, TimeSpentSeconds: 90},
		{CorrectAnswers: 4, TotalQuestions: 4},
	}

	for i, ev := range events {
		require.NoError(t, RecordTopicEvent(rec, "history", ev, now.Add(time.Duration(i)*time.Hour)))
		topic := rec.Topics["history"]
		assert.LessOrEqual(t, topic.CorrectAnswers, topic.TotalQuestions)
		assert.GreaterOrEqual(t, topic.Level, 0)
		assert.LessOrEqual(t, topic.Level, 100)
	}

	topic := rec.Topics["history"]
	assert.Equal(t, 4, topic.AttemptsCount)
	assert.Equal(t, 11, topic.CorrectAnswers)
	assert.Equal(t, 17, topic.TotalQuestions)
}
