package types

import (
  "time"
  "github.com/google/uuid"
)

type TestResult struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;not null;column:user_id;index:idx_test_results_user" json:"user_id"`
  ClassValue        string          `gorm:"not null;column:class_value" json:"class_value"`
  Board             string          `gorm:"not null;column:board" json:"board"`
  Subject           string          `gorm:"not null;column:subject" json:"subject"`
  Topic             *string         `gorm:"column:topic" json:"topic,omitempty"`
  TestType          string          `gorm:"not null;column:test_type" json:"test_type"`
  TotalQuestions    int             `gorm:"not null;column:total_questions" json:"total_questions"`
  CorrectAnswers    int             `gorm:"not null;column:correct_answers" json:"correct_answers"`
  Score             int             `gorm:"not null;column:score" json:"score"`
  XPEarned          int             `gorm:"not null;default:0;column:xp_earned" json:"xp_earned"`
  TimeTaken         *int            `gorm:"column:time_taken" json:"time_taken,omitempty"`
  CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (TestResult) TableName() string {
  return "test_results"
}
