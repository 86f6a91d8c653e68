package services

import (
  "context"
  "fmt"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/repos"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type TimetableInput struct {
  ClassValue  string
  Board       string
  Name        string
  Schedule    datatypes.JSON
}

type TimetableService interface {
  ListTimetables(ctx context.Context, userID uuid.UUID, classValue, board string) ([]*types.Timetable, error)
  CreateTimetable(ctx context.Context, userID uuid.UUID, in TimetableInput) (*types.Timetable, error)
  UpdateTimetable(ctx context.Context, userID uuid.UUID, id uuid.UUID, in TimetableInput) (*types.Timetable, error)
  DeleteTimetable(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type timetableService struct {
  db             *gorm.DB
  log            *logger.Logger
  timetableRepo  repos.TimetableRepo
}

func NewTimetableService(db *gorm.DB, log *logger.Logger, timetableRepo repos.TimetableRepo) TimetableService {
  serviceLog := log.With("service", "TimetableService")
  return &timetableService{db: db, log: serviceLog, timetableRepo: timetableRepo}
}

func (ts *timetableService) ListTimetables(ctx context.Context, userID uuid.UUID, classValue, board string) ([]*types.Timetable, error) {
  return ts.timetableRepo.ListByUser(ctx, nil, userID, classValue, board)
}

func (ts *timetableService) CreateTimetable(ctx context.Context, userID uuid.UUID, in TimetableInput) (*types.Timetable, error) {
  if in.ClassValue == "" || in.Board == "" || in.Name == "" || len(in.Schedule) == 0 {
    return nil, fmt.Errorf("%w: class, board, name and schedule are required", pkgerrors.ErrInvalidArgument)
  }

  row := &types.Timetable{
    UserID:     userID,
    ClassValue: in.ClassValue,
    Board:      in.Board,
    Name:       in.Name,
    Schedule:   in.Schedule,
  }
  return ts.timetableRepo.Create(ctx, nil, row)
}

func (ts *timetableService) UpdateTimetable(ctx context.Context, userID uuid.UUID, id uuid.UUID, in TimetableInput) (*types.Timetable, error) {
  if in.Name == "" || len(in.Schedule) == 0 {
    return nil, fmt.Errorf("%w: name and schedule are required", pkgerrors.ErrInvalidArgument)
  }

  existing, gErr := ts.timetableRepo.GetByID(ctx, nil, id)
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
  existing.Name = in.Name
  existing.Schedule = in.Schedule
  if uErr := ts.timetableRepo.Update(ctx, nil, existing); uErr != nil {
    return nil, uErr
  }
  return existing, nil
}

func (ts *timetableService) DeleteTimetable(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
  existing, gErr := ts.timetableRepo.GetByID(ctx, nil, id)
  if gErr != nil {
    return gErr
  }
  if existing.UserID != userID {
    return pkgerrors.ErrForbidden
  }
  return ts.timetableRepo.DeleteByID(ctx, nil, id)
}
