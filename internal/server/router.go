package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/studysarthi/studysarthi-backend/internal/handlers"
  "github.com/studysarthi/studysarthi-backend/internal/middleware"
)

type RouterConfig struct {
  ServiceName         string
  AuthHandler         *handlers.AuthHandler
  AuthMiddleware      *middleware.AuthMiddleware
  StatsHandler        *handlers.StatsHandler
  TestsHandler        *handlers.TestsHandler
  LeaderboardHandler  *handlers.LeaderboardHandler
  NotesHandler        *handlers.NotesHandler
  TimetableHandler    *handlers.TimetableHandler
  ChatHandler         *handlers.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware(cfg.ServiceName))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Stats
  protected.GET("/stats", cfg.StatsHandler.GetStats)
  protected.POST("/stats", cfg.StatsHandler.UpdateStats)
  // Tests
  protected.POST("/tests/submit", cfg.TestsHandler.SubmitTest)
  // Leaderboard
  protected.GET("/leaderboard", cfg.LeaderboardHandler.GetLeaderboard)
  // Notes
  protected.GET("/notes", cfg.NotesHandler.ListNotes)
  protected.POST("/notes", cfg.NotesHandler.CreateNote)
  protected.PUT("/notes/:id", cfg.NotesHandler.UpdateNote)
  protected.DELETE("/notes/:id", cfg.NotesHandler.DeleteNote)
  // Timetables
  protected.GET("/timetables", cfg.TimetableHandler.ListTimetables)
  protected.POST("/timetables", cfg.TimetableHandler.CreateTimetable)
  protected.PUT("/timetables/:id", cfg.TimetableHandler.UpdateTimetable)
  protected.DELETE("/timetables/:id", cfg.TimetableHandler.DeleteTimetable)
  // Chat
  protected.GET("/chat/sessions", cfg.ChatHandler.ListSessions)
  protected.POST("/chat/sessions", cfg.ChatHandler.SaveSessions)
  protected.DELETE("/chat/sessions/:id", cfg.ChatHandler.DeleteSession)
  protected.GET("/chat/sessions/:id/messages", cfg.ChatHandler.ListMessages)
  protected.POST("/chat/sessions/:id/messages", cfg.ChatHandler.SaveMessages)

  return router
}
