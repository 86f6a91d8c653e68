package types

import (
  "time"
  "github.com/google/uuid"
)

// DailyGamePlay records one (user, game, day) play. The unique index is the
// dedupe key: replaying the same game on the same day inserts nothing.
type DailyGamePlay struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;not null;column:user_id;index:idx_user_game_day,unique" json:"user_id"`
  GameID            string          `gorm:"not null;column:game_id;index:idx_user_game_day,unique" json:"game_id"`
  PlayedDate        string          `gorm:"type:varchar(10);not null;column:played_date;index:idx_user_game_day,unique" json:"played_date"`
  XPEarned          int             `gorm:"not null;default:0;column:xp_earned" json:"xp_earned"`
  CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (DailyGamePlay) TableName() string {
  return "daily_game_plays"
}
