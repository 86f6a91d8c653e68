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

// NoteFilter narrows a user's note listing. Zero values mean "no filter".
type NoteFilter struct {
  ClassValue  string
  Board       string
  Subject     string
  Search      string
}

type NoteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, row *types.Note) (*types.Note, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Note, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter NoteFilter) ([]*types.Note, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.Note) error
  DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type noteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
  repoLog := baseLog.With("repo", "NoteRepo")
  return &noteRepo{db: db, log: repoLog}
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Note) (*types.Note, error) {
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

func (r *noteRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Note
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

func (r *noteRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter NoteFilter) ([]*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).Where("user_id = ?", userID)
  if filter.ClassValue != "" {
    query = query.Where("class_value = ?", filter.ClassValue)
  }
  if filter.Board != "" {
    query = query.Where("board = ?", filter.Board)
  }
  if filter.Subject != "" {
    query = query.Where("subject = ?", filter.Subject)
  }
  if filter.Search != "" {
    pattern := "%" + filter.Search + "%"
    query = query.Where("topic LIKE ? OR content LIKE ?", pattern, pattern)
  }

  var results []*types.Note
  if err := query.Order("updated_at DESC").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *noteRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Note) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }
  return transaction.WithContext(ctx).Save(row).Error
}

func (r *noteRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", id).
    Delete(&types.Note{}).Error
}
