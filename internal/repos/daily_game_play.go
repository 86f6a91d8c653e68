package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type DailyGamePlayRepo interface {
  Insert(ctx context.Context, tx *gorm.DB, row *types.DailyGamePlay) (bool, error)
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, playedDate string) ([]*types.DailyGamePlay, error)
}

type dailyGamePlayRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyGamePlayRepo(db *gorm.DB, baseLog *logger.Logger) DailyGamePlayRepo {
  repoLog := baseLog.With("repo", "DailyGamePlayRepo")
  return &dailyGamePlayRepo{db: db, log: repoLog}
}

// Insert adds a play record unless the same (user, game, day) already exists.
// Returns false when the row was a duplicate, which callers use to
// short-circuit repeat plays.
func (r *dailyGamePlayRepo) Insert(ctx context.Context, tx *gorm.DB, row *types.DailyGamePlay) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return false, nil
  }
  if row.ID == uuid.Nil {
    row.ID = uuid.New()
  }

  result := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}, {Name: "game_id"}, {Name: "played_date"}},
      DoNothing: true,
    }).
    Create(row)
  if result.Error != nil {
    return false, result.Error
  }
  return result.RowsAffected > 0, nil
}

func (r *dailyGamePlayRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, playedDate string) ([]*types.DailyGamePlay, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.DailyGamePlay
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND played_date = ?", userID, playedDate).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
