package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type ChatMessageRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.ChatMessage) ([]*types.ChatMessage, error)
  ListBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) ([]*types.ChatMessage, error)
  DeleteBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) error
}

type chatMessageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, baseLog *logger.Logger) ChatMessageRepo {
  repoLog := baseLog.With("repo", "ChatMessageRepo")
  return &chatMessageRepo{db: db, log: repoLog}
}

func (r *chatMessageRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ChatMessage) ([]*types.ChatMessage, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.ChatMessage{}, nil
  }
  for _, row := range rows {
    if row.ID == uuid.Nil {
      row.ID = uuid.New()
    }
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *chatMessageRepo) ListBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) ([]*types.ChatMessage, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ChatMessage
  if err := transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    Order("timestamp ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *chatMessageRepo) DeleteBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    Delete(&types.ChatMessage{}).Error
}
