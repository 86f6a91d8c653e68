package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/repos"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type NoteInput struct {
  ClassValue  string
  Board       string
  Subject     string
  Topic       string
  Content     string
}

type NoteService interface {
  ListNotes(ctx context.Context, userID uuid.UUID, filter repos.NoteFilter) ([]*types.Note, error)
  CreateNote(ctx context.Context, userID uuid.UUID, in NoteInput) (*types.Note, error)
  UpdateNote(ctx context.Context, userID uuid.UUID, id uuid.UUID, in NoteInput) (*types.Note, error)
  DeleteNote(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type noteService struct {
  db        *gorm.DB
  log       *logger.Logger
  noteRepo  repos.NoteRepo
}

func NewNoteService(db *gorm.DB, log *logger.Logger, noteRepo repos.NoteRepo) NoteService {
  serviceLog := log.With("service", "NoteService")
  return &noteService{db: db, log: serviceLog, noteRepo: noteRepo}
}

func (ns *noteService) ListNotes(ctx context.Context, userID uuid.UUID, filter repos.NoteFilter) ([]*types.Note, error) {
  return ns.noteRepo.ListByUser(ctx, nil, userID, filter)
}

func (ns *noteService) CreateNote(ctx context.Context, userID uuid.UUID, in NoteInput) (*types.Note, error) {
  if in.ClassValue == "" || in.Board == "" || in.Topic == "" || in.Content == "" {
    return nil, fmt.Errorf("%w: class, board, topic and content are required", pkgerrors.ErrInvalidArgument)
  }

  row := &types.Note{
    UserID:     userID,
    ClassValue: in.ClassValue,
    Board:      in.Board,
    Subject:    in.Subject,
    Topic:      in.Topic,
    Content:    in.Content,
  }
  return ns.noteRepo.Create(ctx, nil, row)
}

func (ns *noteService) UpdateNote(ctx context.Context, userID uuid.UUID, id uuid.UUID, in NoteInput) (*types.Note, error) {
  if in.Topic == "" || in.Content == "" {
    return nil, fmt.Errorf("%w: topic and content are required", pkgerrors.ErrInvalidArgument)
  }

  existing, gErr := ns.noteRepo.GetByID(ctx, nil, id)
  if gErr != nil {
    return nil, gErr
  }
  if existing.UserID != userID {
    return nil, pkgerrors.ErrForbidden
  }

  if in.ClassValue != "" {
    existing.ClassValue = in.ClassValue
  }
  if in.Board != "" {
    existing.Board = in.Board
  }
  existing.Subject = in.Subject
  existing.Topic = in.Topic
  existing.Content = in.Content
  if uErr := ns.noteRepo.Update(ctx, nil, existing); uErr != nil {
    return nil, uErr
  }
  return existing, nil
}

func (ns *noteService) DeleteNote(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
  existing, gErr := ns.noteRepo.GetByID(ctx, nil, id)
  if gErr != nil {
    return gErr
  }
  if existing.UserID != userID {
    return pkgerrors.ErrForbidden
  }
  return ns.noteRepo.DeleteByID(ctx, nil, id)
}
