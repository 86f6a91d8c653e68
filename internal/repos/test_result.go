package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type TestResultRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.TestResult) (*types.TestResult, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TestResult, error)
}

type testResultRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTestResultRepo(db *gorm.DB, baseLog *logger.Logger) TestResultRepo {
  repoLog := baseLog.With("repo", "TestResultRepo")
  return &testResultRepo{db: db, log: repoLog}
}

func (r *testResultRepo) Create(ctx context.Context, tx *gorm.DB, row *types.TestResult) (*types.TestResult, error) {
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

func (r *testResultRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TestResult, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.TestResult
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
