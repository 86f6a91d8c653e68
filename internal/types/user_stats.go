package types

import (
  "time"
  "github.com/google/uuid"
)

// UserStats is the per-user progress ledger. Exactly one row per user.
// Calendar dates are stored as "YYYY-MM-DD" strings so day comparisons are
// plain string equality in SQL, which keeps the single-statement streak
// update portable.
type UserStats struct {
  UserID            uuid.UUID       `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
  TotalXP           int             `gorm:"not null;default:0;column:total_xp" json:"total_xp"`
  CurrentStreak     int             `gorm:"not null;default:0;column:current_streak" json:"current_streak"`
  LongestStreak     int             `gorm:"not null;default:0;column:longest_streak" json:"longest_streak"`
  LastActivityDate  *string         `gorm:"type:varchar(10);column:last_activity_date" json:"last_activity_date,omitempty"`
  GamesPlayedToday  int             `gorm:"not null;default:0;column:games_played_today" json:"games_played_today"`
  LastGameDate      *string         `gorm:"type:varchar(10);column:last_game_date" json:"last_game_date,omitempty"`
  TestsCompleted    int             `gorm:"not null;default:0;column:tests_completed" json:"tests_completed"`
  QuizzesCompleted  int             `gorm:"not null;default:0;column:quizzes_completed" json:"quizzes_completed"`
  TotalTestScore    int             `gorm:"not null;default:0;column:total_test_score" json:"total_test_score"`
  TotalQuizScore    int             `gorm:"not null;default:0;column:total_quiz_score" json:"total_quiz_score"`
  CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (UserStats) TableName() string {
  return "user_stats"
}
