package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/services"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

type StatsHandler struct {
  statsService    services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
  return &StatsHandler{statsService: statsService}
}

func statsPayload(stats *types.UserStats) gin.H {
  return gin.H{
    "current_streak":     stats.CurrentStreak,
    "longest_streak":     stats.LongestStreak,
    "games_played_today": stats.GamesPlayedToday,
    "tests_completed":    stats.TestsCompleted,
    "quizzes_completed":  stats.QuizzesCompleted,
    "total_xp":           stats.TotalXP,
    "total_test_score":   stats.TotalTestScore,
    "total_quiz_score":   stats.TotalQuizScore,
  }
}

func (sh *StatsHandler) GetStats(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  stats, err := sh.statsService.GetSummary(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, statsPayload(stats))
}

type updateStatsRequest struct {
  GameID      string                  `json:"gameId"`
  TestResult  *updateStatsTestResult  `json:"testResult"`
}

type updateStatsTestResult struct {
  Type        string    `json:"type"`
  Score       int       `json:"score"`
}

// UpdateStats accepts a game play, a bare test/quiz score, or both in one
// request. At least one must be present.
func (sh *StatsHandler) UpdateStats(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req updateStatsRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
    return
  }

  if req.GameID == "" && req.TestResult == nil {
    RespondServiceError(c, fmt.Errorf("%w: gameId or testResult is required", pkgerrors.ErrInvalidArgument))
    return
  }

  resp := gin.H{"success": true}
  if req.GameID != "" {
    stats, err := sh.statsService.RecordGamePlay(c.Request.Context(), userID, req.GameID)
    if err != nil {
      RespondServiceError(c, err)
      return
    }
    resp["stats"] = statsPayload(stats)
  }
  if req.TestResult != nil {
    if err := sh.statsService.RecordScore(c.Request.Context(), userID, req.TestResult.Type, req.TestResult.Score); err != nil {
      RespondServiceError(c, err)
      return
    }
  }
  RespondOK(c, resp)
}
