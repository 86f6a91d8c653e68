package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type Timetable struct {
  ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  UserID            uuid.UUID       `gorm:"type:uuid;not null;column:user_id;index:idx_timetables_user_class_board" json:"user_id"`
  ClassValue        string          `gorm:"not null;column:class_value;index:idx_timetables_user_class_board" json:"class_value"`
  Board             string          `gorm:"not null;column:board;index:idx_timetables_user_class_board" json:"board"`
  Name              string          `gorm:"not null;column:name" json:"name"`
  Schedule          datatypes.JSON  `gorm:"not null;column:schedule" json:"schedule"`
  CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
  UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Timetable) TableName() string {
  return "timetables"
}
