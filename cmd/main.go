package main

import (
  "context"
  "fmt"
  "os"
  "time"
  redisclient "github.com/studysarthi/studysarthi-backend/internal/clients/redis"
  "github.com/studysarthi/studysarthi-backend/internal/clock"
  "github.com/studysarthi/studysarthi-backend/internal/db"
  "github.com/studysarthi/studysarthi-backend/internal/handlers"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  "github.com/studysarthi/studysarthi-backend/internal/middleware"
  "github.com/studysarthi/studysarthi-backend/internal/observability"
  "github.com/studysarthi/studysarthi-backend/internal/repos"
  "github.com/studysarthi/studysarthi-backend/internal/server"
  "github.com/studysarthi/studysarthi-backend/internal/services"
  "github.com/studysarthi/studysarthi-backend/internal/utils"
)

const serviceName = "studysarthi-backend"

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  maxGamesPerDay := utils.GetEnvAsInt("MAX_GAMES_PER_DAY", 0, log)

  // Tracing
  ctx := context.Background()
  otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
    ServiceName: serviceName,
    Environment: logMode,
    Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
  })
  if otelShutdown != nil {
    defer func() {
      shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = otelShutdown(shutdownCtx)
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Redis (optional leaderboard cache)
  cache, err := redisclient.New(ctx, log)
  if err != nil {
    log.Warn("Redis init failed, continuing without cache", "error", err)
    cache = nil
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userStatsRepo := repos.NewUserStatsRepo(thePG, log)
  dailyGamePlayRepo := repos.NewDailyGamePlayRepo(thePG, log)
  testResultRepo := repos.NewTestResultRepo(thePG, log)
  noteRepo := repos.NewNoteRepo(thePG, log)
  timetableRepo := repos.NewTimetableRepo(thePG, log)
  chatSessionRepo := repos.NewChatSessionRepo(thePG, log)
  chatMessageRepo := repos.NewChatMessageRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  statsService := services.NewStatsService(thePG, log, userStatsRepo, dailyGamePlayRepo, testResultRepo, clock.New(), maxGamesPerDay, cache)
  leaderboardService := services.NewLeaderboardService(thePG, log, userStatsRepo, cache)
  noteService := services.NewNoteService(thePG, log, noteRepo)
  timetableService := services.NewTimetableService(thePG, log, timetableRepo)
  chatService := services.NewChatService(thePG, log, chatSessionRepo, chatMessageRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  statsHandler := handlers.NewStatsHandler(statsService)
  testsHandler := handlers.NewTestsHandler(statsService)
  leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
  notesHandler := handlers.NewNotesHandler(noteService)
  timetableHandler := handlers.NewTimetableHandler(timetableService)
  chatHandler := handlers.NewChatHandler(chatService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    ServiceName:        serviceName,
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    StatsHandler:       statsHandler,
    TestsHandler:       testsHandler,
    LeaderboardHandler: leaderboardHandler,
    NotesHandler:       notesHandler,
    TimetableHandler:   timetableHandler,
    ChatHandler:        chatHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
