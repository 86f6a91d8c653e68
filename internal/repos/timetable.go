package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type TimetableRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Timetable) (*types.Timetable, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Timetable, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, classValue, board string) ([]*types.Timetable, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.Timetable) error
  DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type timetableRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTimetableRepo(db *gorm.DB, baseLog *logger.Logger) TimetableRepo {
  repoLog := baseLog.With("repo", "TimetableRepo")
  return &timetableRepo{db: db, log: repoLog}
}

func (r *timetableRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Timetable) (*types.Timetable, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil, nil
  }
  if row.ID == uuid.Nil {
    row.ID = uuid.New()
  }

  if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
    return nil, err
  }
  return row, nil
}

func (r *timetableRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Timetable, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Timetable
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, pkgerrors.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}

func (r *timetableRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, classValue, board string) ([]*types.Timetable, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).Where("user_id = ?", userID)
  if classValue != "" {
    query = query.Where("class_value = ?", classValue)
  }
  if board != "" {
    query = query.Where("board = ?", board)
  }

  var results []*types.Timetable
  if err := query.Order("updated_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *timetableRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Timetable) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  return transaction.WithContext(ctx).Save(row).Error
}

func (r *timetableRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Timetable{}).Error
}
