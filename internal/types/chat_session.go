package types

import (
  "time"
  "github.com/google/uuid"
)

// ChatSession IDs are client-generated strings, not UUIDs: the frontend mints
// them before the first sync and keeps using them across saves.
type ChatSession struct {
  ID                string          `gorm:"primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;not null;column:user_id;index:idx_chat_sessions_user_class_board" json:"user_id"`
  ClassValue        string          `gorm:"not null;column:class_value;index:idx_chat_sessions_user_class_board" json:"class_value"`
  Board             string          `gorm:"not null;column:board;index:idx_chat_sessions_user_class_board" json:"board"`
  Title             string          `gorm:"not null;column:title" json:"title"`
  LastMessage       string          `gorm:"column:last_message" json:"last_message"`
  MessageCount      int             `gorm:"not null;default:0;column:message_count" json:"message_count"`
  CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ChatSession) TableName() string {
  return "chat_sessions"
}
