package types

import (
  "time"
  "github.com/google/uuid"
)

type ChatMessage struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  SessionID         string          `gorm:"not null;column:session_id;index:idx_chat_messages_session_id" json:"session_id"`
  Role              string          `gorm:"not null;column:role" json:"role"`
  Content           string          `gorm:"not null;column:content" json:"content"`
  ImageURL          *string         `gorm:"column:image_url" json:"image_url,omitempty"`
  Timestamp         time.Time       `gorm:"not null;autoCreateTime;column:timestamp" json:"timestamp"`
}

func (ChatMessage) TableName() string {
  return "chat_messages"
}
