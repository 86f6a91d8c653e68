package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/studysarthi/studysarthi-backend/internal/services"
)

type LeaderboardHandler struct {
  leaderboardService    services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
  return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (lh *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  result, err := lh.leaderboardService.GetLeaderboard(c.Request.Context(), userID, c.Query("type"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "leaderboard": result.Entries,
    "userRank":    result.UserRank,
    "type":        result.Board,
  })
}
