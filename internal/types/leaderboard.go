package types

import (
  "github.com/google/uuid"
)

// LeaderboardEntry is a read model scanned straight out of the ranking
// queries. Fields not selected by a given board variant stay zero and are
// omitted from the JSON payload.
type LeaderboardEntry struct {
  UserID            uuid.UUID       `gorm:"column:user_id" json:"user_id"`
  TotalXP           int             `gorm:"column:total_xp" json:"total_xp"`
  CurrentStreak     int             `gorm:"column:current_streak" json:"current_streak,omitempty"`
  LongestStreak     int             `gorm:"column:longest_streak" json:"longest_streak,omitempty"`
  TestsCompleted    int             `gorm:"column:tests_completed" json:"tests_completed,omitempty"`
  QuizzesCompleted  int             `gorm:"column:quizzes_completed" json:"quizzes_completed,omitempty"`
  TotalTestScore    int             `gorm:"column:total_test_score" json:"total_test_score,omitempty"`
  TotalQuizScore    int             `gorm:"column:total_quiz_score" json:"total_quiz_score,omitempty"`
  TotalPoints       int             `gorm:"column:total_points" json:"total_points,omitempty"`
  TotalActivities   int             `gorm:"column:total_activities" json:"total_activities,omitempty"`
  Rank              int             `gorm:"column:rank" json:"rank"`
}
