// model/progress.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// TopicMastery holds the cumulative counters for one topic within a course.
// Level is always derived from the counters; it is stored for query
// convenience, never trusted over them.
type TopicMastery struct {
	Level            int       `json:"level"`
	LastPracticed    time.Time `json:"last_practiced"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	AttemptsCount    int       `json:"attempts_count"`
	CorrectAnswers   int       `json:"correct_answers"`
	TotalQuestions   int       `json:"total_questions"`
}

// TopicMap serializes the topic id -> mastery mapping as a flat JSON object
// in a single text column, preserving arbitrary topic identifiers.
type TopicMap map[string]*TopicMastery

func (m *TopicMap) Scan(src interface{}) error {
	if src == nil {
		*m = TopicMap{}
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			*m = TopicMap{}
			return nil
		}
		return sonic.Unmarshal(data, m)
	case string:
		if data == "" {
			*m = TopicMap{}
			return nil
		}
		return sonic.UnmarshalString(data, m)
	default:
		return fmt.Errorf("TopicMap: unsupported src type %T", src)
	}
}

func (m TopicMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return sonic.Marshal(m)
}

// StringList is a JSON array column for derived topic id sets.
type StringList []string

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			*l = nil
			return nil
		}
		return sonic.Unmarshal(data, l)
	case string:
		if data == "" {
			*l = nil
			return nil
		}
		return sonic.UnmarshalString(data, l)
	default:
		return fmt.Errorf("StringList: unsupported src type %T", src)
	}
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return sonic.Marshal(l)
}

// MasteryRecord is the per user+course mastery state. Created lazily on the
// first event for the pair and never deleted.
type MasteryRecord struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"not null;uniqueIndex:idx_mastery_user_course"`
	CourseID     string     `json:"course_id" gorm:"not null;uniqueIndex:idx_mastery_user_course"`
	Topics       TopicMap   `json:"topics" gorm:"type:text"`
	AverageScore int        `json:"average_score" gorm:"default:0"`
	Strengths    StringList `json:"strengths" gorm:"type:text"`
	Weaknesses   StringList `json:"weaknesses" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Topic returns the sub-record for topicID, creating it with zeroed
// counters when the topic has never been practiced.
func (r *MasteryRecord) Topic(topicID string) *TopicMastery {
	if r.Topics == nil {
		r.Topics = TopicMap{}
	}
	topic, ok := r.Topics[topicID]
	if !ok {
		topic = &TopicMastery{}
		r.Topics[topicID] = topic
	}
	return topic
}
