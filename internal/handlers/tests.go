package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/studysarthi/studysarthi-backend/internal/services"
)

type TestsHandler struct {
  statsService    services.StatsService
}

func NewTestsHandler(statsService services.StatsService) *TestsHandler {
  return &TestsHandler{statsService: statsService}
}

type submitTestRequest struct {
  ClassValue      string    `json:"classValue"`
  Board           string    `json:"board"`
  Subject         string    `json:"subject"`
  Topic           *string   `json:"topic"`
  TestType        string    `json:"testType"`
  TotalQuestions  int       `json:"totalQuestions"`
  CorrectAnswers  int       `json:"correctAnswers"`
  TimeTaken       *int      `json:"timeTaken"`
}

func (th *TestsHandler) SubmitTest(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req submitTestRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }

  result, err := th.statsService.SubmitTest(c.Request.Context(), userID, services.SubmitTestInput{
    ClassValue:     req.ClassValue,
    Board:          req.Board,
    Subject:        req.Subject,
    Topic:          req.Topic,
    TestType:       req.TestType,
    TotalQuestions: req.TotalQuestions,
    CorrectAnswers: req.CorrectAnswers,
    TimeTaken:      req.TimeTaken,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "success":  true,
    "resultId": result.ResultID,
    "score":    result.Score,
    "xpEarned": result.XPEarned,
  })
}
