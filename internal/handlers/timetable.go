package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/services"
)

type TimetableHandler struct {
  timetableService    services.TimetableService
}

func NewTimetableHandler(timetableService services.TimetableService) *TimetableHandler {
  return &TimetableHandler{timetableService: timetableService}
}

func (th *TimetableHandler) ListTimetables(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  timetables, err := th.timetableService.ListTimetables(c.Request.Context(), userID, c.Query("class"), c.Query("board"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"timetables": timetables})
}

type timetableRequest struct {
  ClassValue  string            `json:"class"`
  Board       string            `json:"board"`
  Name        string            `json:"name"`
  Schedule    datatypes.JSON    `json:"schedule"`
}

func (th *TimetableHandler) CreateTimetable(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req timetableRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }
  timetable, err := th.timetableService.CreateTimetable(c.Request.Context(), userID, services.TimetableInput{
    ClassValue: req.ClassValue,
    Board:      req.Board,
    Name:       req.Name,
    Schedule:   req.Schedule,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"timetable": timetable, "message": "Timetable created successfully"})
}

func (th *TimetableHandler) UpdateTimetable(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  timetableID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondServiceError(c, fmt.Errorf("%w: invalid timetable id", pkgerrors.ErrInvalidArgument))
    return
  }
  var req timetableRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }
  timetable, err := th.timetableService.UpdateTimetable(c.Request.Context(), userID, timetableID, services.TimetableInput{
    ClassValue: req.ClassValue,
    Board:      req.Board,
    Name:       req.Name,
    Schedule:   req.Schedule,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"timetable": timetable, "message": "Timetable updated successfully"})
}

func (th *TimetableHandler) DeleteTimetable(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  timetableID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondServiceError(c, fmt.Errorf("%w: invalid timetable id", pkgerrors.ErrInvalidArgument))
    return
  }
  if err := th.timetableService.DeleteTimetable(c.Request.Context(), userID, timetableID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"success": true, "message": "Timetable deleted successfully"})
}
