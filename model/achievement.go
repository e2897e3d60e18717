// model/achievement.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// CoinTransaction is one append-only entry in the coin history.
type CoinTransaction struct {
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type CoinHistory []CoinTransaction

func (h *CoinHistory) Scan(src interface{}) error {
	if src == nil {
		*h = nil
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			*h = nil
			return nil
		}
		return sonic.Unmarshal(data, h)
	case string:
		if data == "" {
			*h = nil
			return nil
		}
		return sonic.UnmarshalString(data, h)
	default:
		return fmt.Errorf("CoinHistory: unsupported src type %T", src)
	}
}

func (h CoinHistory) Value() (driver.Value, error) {
	if h == nil {
		return []byte("[]"), nil
	}
	return sonic.Marshal(h)
}

// Badge is a named achievement. Name is unique within a user's set.
type Badge struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"` // milestone, streak, performance, social
	EarnedAt    time.Time `json:"earned_at"`
}

type BadgeList []Badge

func (l *BadgeList) Scan(src interface{}) error {
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
		return fmt.Errorf("BadgeList: unsupported src type %T", src)
	}
}

func (l BadgeList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return sonic.Marshal(l)
}

// UserAchievement is the per-user reward record: streak state, coin ledger,
// XP and earned badges. One row per user, created lazily on first touch.
type UserAchievement struct {
	ID            string      `json:"id" gorm:"primaryKey"`
	UserID        string      `json:"user_id" gorm:"not null;uniqueIndex"`
	XP            int         `json:"xp" gorm:"default:0"`
	Level         int         `json:"level" gorm:"default:1"`
	Coins         int         `json:"coins" gorm:"default:0"`
	CoinsHistory  CoinHistory `json:"coins_history" gorm:"type:text"`
	StreakCurrent int         `json:"streak_current" gorm:"default:0"`
	StreakLongest int         `json:"streak_longest" gorm:"default:0"`
	// Date-only marker of the last counted activity day.
	LastActiveDate *time.Time `json:"last_active_date"`
	Badges         BadgeList  `json:"badges" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HasBadge reports whether a badge with the given name was already earned.
func (a *UserAchievement) HasBadge(name string) bool {
	for _, b := range a.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}
