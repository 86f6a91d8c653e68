package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/repos"
  "github.com/studysarthi/studysarthi-backend/internal/services"
)

type NotesHandler struct {
  noteService   services.NoteService
}

func NewNotesHandler(noteService services.NoteService) *NotesHandler {
  return &NotesHandler{noteService: noteService}
}

func (nh *NotesHandler) ListNotes(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  notes, err := nh.noteService.ListNotes(c.Request.Context(), userID, repos.NoteFilter{
    ClassValue: c.Query("class"),
    Board:      c.Query("board"),
    Subject:    c.Query("subject"),
    Search:     c.Query("search"),
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"notes": notes})
}

type noteRequest struct {
  ClassValue  string    `json:"class"`
  Board       string    `json:"board"`
  Subject     string    `json:"subject"`
  Topic       string    `json:"topic"`
  Content     string    `json:"content"`
}

func (nh *NotesHandler) CreateNote(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req noteRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }
  note, err := nh.noteService.CreateNote(c.Request.Context(), userID, services.NoteInput{
    ClassValue: req.ClassValue,
    Board:      req.Board,
    Subject:    req.Subject,
    Topic:      req.Topic,
    Content:    req.Content,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"note": note, "message": "Note created successfully"})
}

func (nh *NotesHandler) UpdateNote(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  noteID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondServiceError(c, fmt.Errorf("%w: invalid note id", pkgerrors.ErrInvalidArgument))
    return
  }
  var req noteRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }
  note, err := nh.noteService.UpdateNote(c.Request.Context(), userID, noteID, services.NoteInput{
    ClassValue: req.ClassValue,
    Board:      req.Board,
    Subject:    req.Subject,
    Topic:      req.Topic,
    Content:    req.Content,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"note": note, "message": "Note updated successfully"})
}

func (nh *NotesHandler) DeleteNote(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  noteID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondServiceError(c, fmt.Errorf("%w: invalid note id", pkgerrors.ErrInvalidArgument))
    return
  }
  if err := nh.noteService.DeleteNote(c.Request.Context(), userID, noteID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": "Note deleted successfully"})
}
