package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type ChatSessionRepo interface {
  ListByUserClassBoard(ctx context.Context, tx *gorm.DB, userID uuid.UUID, classValue, board string) ([]*types.ChatSession, error)
  GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.ChatSession, error)
  Upsert(ctx context.Context, tx *gorm.DB, row *types.ChatSession) error
  DeleteByUserClassBoard(ctx context.Context, tx *gorm.DB, userID uuid.UUID, classValue, board string) error
  DeleteByID(ctx context.Context, tx *gorm.DB, id string) error
}

type chatSessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChatSessionRepo(db *gorm.DB, baseLog *logger.Logger) ChatSessionRepo {
  repoLog := baseLog.With("repo", "ChatSessionRepo")
  return &chatSessionRepo{db: db, log: repoLog}
}

func (r *chatSessionRepo) ListByUserClassBoard(ctx context.Context, tx *gorm.DB, userID uuid.UUID, classValue, board string) ([]*types.ChatSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ChatSession
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND class_value = ? AND board = ?", userID, classValue, board).
    Order("updated_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *chatSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.ChatSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.ChatSession
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

// Upsert keeps the client-minted session ID stable across syncs: a resynced
// session updates title, last message and message count in place.
func (r *chatSessionRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ChatSession) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "id"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "title", "last_message", "message_count", "updated_at",
      }),
    }).
    Create(row).Error
}

func (r *chatSessionRepo) DeleteByUserClassBoard(ctx context.Context, tx *gorm.DB, userID uuid.UUID, classValue, board string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Where("user_id = ? AND class_value = ? AND board = ?", userID, classValue, board).
    Delete(&types.ChatSession{}).Error
}

func (r *chatSessionRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.ChatSession{}).Error
}
