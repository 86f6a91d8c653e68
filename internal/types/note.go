package types

import (
  "time"
  "github.com/google/uuid"
)

type Note struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;not null;column:user_id;index:idx_notes_user_class_board" json:"user_id"`
  ClassValue        string          `gorm:"not null;column:class_value;index:idx_notes_user_class_board" json:"class_value"`
  Board             string          `gorm:"not null;column:board;index:idx_notes_user_class_board" json:"board"`
  Subject           string          `gorm:"column:subject" json:"subject"`
  Topic             string          `gorm:"not null;column:topic" json:"topic"`
  Content           string          `gorm:"not null;column:content" json:"content"`
  CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Note) TableName() string {
  return "notes"
}
