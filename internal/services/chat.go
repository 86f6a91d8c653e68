package services

import (
  "context"
  "errors"
  "fmt"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/repos"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type ChatSessionInput struct {
  ID            string
  Title         string
  LastMessage   string
  MessageCount  int
  Timestamp     time.Time
}

type ChatMessageInput struct {
  Role      string
  Content   string
  ImageURL  *string
  Timestamp time.Time
}

type ChatService interface {
  ListSessions(ctx context.Context, userID uuid.UUID, classValue, board string) ([]*types.ChatSession, error)
  SaveSessions(ctx context.Context, userID uuid.UUID, classValue, board string, sessions []ChatSessionInput) error
  DeleteSession(ctx context.Context, userID uuid.UUID, sessionID string) error
  ListMessages(ctx context.Context, userID uuid.UUID, sessionID string) ([]*types.ChatMessage, error)
  SaveMessages(ctx context.Context, userID uuid.UUID, sessionID string, messages []ChatMessageInput) error
}

type chatService struct {
  db           *gorm.DB
  log          *logger.Logger
  sessionRepo  repos.ChatSessionRepo
  messageRepo  repos.ChatMessageRepo
}

func NewChatService(db *gorm.DB, log *logger.Logger, sessionRepo repos.ChatSessionRepo, messageRepo repos.ChatMessageRepo) ChatService {
  serviceLog := log.With("service", "ChatService")
  return &chatService{db: db, log: serviceLog, sessionRepo: sessionRepo, messageRepo: messageRepo}
}

func (cs *chatService) ListSessions(ctx context.Context, userID uuid.UUID, classValue, board string) ([]*types.ChatSession, error) {
  if classValue == "" || board == "" {
    return nil, fmt.Errorf("%w: class and board are required", pkgerrors.ErrInvalidArgument)
  }
  return cs.sessionRepo.ListByUserClassBoard(ctx, nil, userID, classValue, board)
}

// SaveSessions is a replace-sync: the client owns the session list for a
// (class, board) scope, so the stored set is replaced wholesale. Sessions that
// keep their ID across syncs keep their created_at through the upsert.
func (cs *chatService) SaveSessions(ctx context.Context, userID uuid.UUID, classValue, board string, sessions []ChatSessionInput) error {
  if classValue == "" || board == "" {
    return fmt.Errorf("%w: class and board are required", pkgerrors.ErrInvalidArgument)
  }

  return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if dErr := cs.sessionRepo.DeleteByUserClassBoard(ctx, tx, userID, classValue, board); dErr != nil {
      return dErr
    }
    for _, in := range sessions {
      if in.ID == "" {
        return fmt.Errorf("%w: session id is required", pkgerrors.ErrInvalidArgument)
      }
      title := in.Title
      if title == "" {
        title = "New Chat"
      }
      createdAt := in.Timestamp
      if createdAt.IsZero() {
        createdAt = time.Now()
      }
      row := &types.ChatSession{
        ID:           in.ID,
        UserID:       userID,
        ClassValue:   classValue,
        Board:        board,
        Title:        title,
        LastMessage:  in.LastMessage,
        MessageCount: in.MessageCount,
        CreatedAt:    createdAt,
        UpdatedAt:    time.Now(),
      }
      if uErr := cs.sessionRepo.Upsert(ctx, tx, row); uErr != nil {
        return uErr
      }
    }
    return nil
  })
}

// DeleteSession removes a session and its messages. A session missing from
// the database succeeds as a no-op so the client can always drop it from its
// local list.
func (cs *chatService) DeleteSession(ctx context.Context, userID uuid.UUID, sessionID string) error {
  if sessionID == "" {
    return fmt.Errorf("%w: sessionId is required", pkgerrors.ErrInvalidArgument)
  }

  session, gErr := cs.sessionRepo.GetByID(ctx, nil, sessionID)
  if gErr != nil {
    if errors.Is(gErr, pkgerrors.ErrNotFound) {
      cs.log.Debug("Session not found for deletion", "session_id", sessionID)
      return nil
    }
    return gErr
  }
  if session.UserID != userID {
    return pkgerrors.ErrForbidden
  }

  return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if mErr := cs.messageRepo.DeleteBySessionID(ctx, tx, sessionID); mErr != nil {
      return mErr
    }
    return cs.sessionRepo.DeleteByID(ctx, tx, sessionID)
  })
}

func (cs *chatService) ListMessages(ctx context.Context, userID uuid.UUID, sessionID string) ([]*types.ChatMessage, error) {
  if sessionID == "" {
    return nil, fmt.Errorf("%w: sessionId is required", pkgerrors.ErrInvalidArgument)
  }
  session, gErr := cs.sessionRepo.GetByID(ctx, nil, sessionID)
  if gErr != nil {
    return nil, gErr
  }
  if session.UserID != userID {
    return nil, pkgerrors.ErrForbidden
  }
  return cs.messageRepo.ListBySessionID(ctx, nil, sessionID)
}

// SaveMessages replaces a session's message history with the client's copy.
func (cs *chatService) SaveMessages(ctx context.Context, userID uuid.UUID, sessionID string, messages []ChatMessageInput) error {
  if sessionID == "" {
    return fmt.Errorf("%w: sessionId is required", pkgerrors.ErrInvalidArgument)
  }
  session, gErr := cs.sessionRepo.GetByID(ctx, nil, sessionID)
  if gErr != nil {
    return gErr
  }
  if session.UserID != userID {
    return pkgerrors.ErrForbidden
  }

  rows := make([]*types.ChatMessage, 0, len(messages))
  for _, in := range messages {
    if in.Role != "user" && in.Role != "assistant" {
      return fmt.Errorf("%w: message role must be user or assistant", pkgerrors.ErrInvalidArgument)
    }
    ts := in.Timestamp
    if ts.IsZero() {
      ts = time.Now()
    }
    rows = append(rows, &types.ChatMessage{
      SessionID: sessionID,
      Role:      in.Role,
      Content:   in.Content,
      ImageURL:  in.ImageURL,
      Timestamp: ts,
    })
  }

  return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if dErr := cs.messageRepo.DeleteBySessionID(ctx, tx, sessionID); dErr != nil {
      return dErr
    }
    _, cErr := cs.messageRepo.Create(ctx, tx, rows)
    return cErr
  })
}
