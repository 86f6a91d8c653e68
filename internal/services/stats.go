package services

import (
  "context"
  "fmt"
  "math"
  "gorm.io/gorm"
  "github.com/google/uuid"
  redisclient "github.com/studysarthi/studysarthi-backend/internal/clients/redis"
  "github.com/studysarthi/studysarthi-backend/internal/clock"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/repos"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

const (
  TestTypeTest = "test"
  TestTypeQuiz = "quiz"

  // XP multipliers per graded submission. Tests pay double.
  xpMultiplierTest = 2
  xpMultiplierQuiz = 1
)

type SubmitTestInput struct {
  ClassValue      string
  Board           string
  Subject         string
  Topic           *string
  TestType        string
  TotalQuestions  int
  CorrectAnswers  int
  TimeTaken       *int
}

type SubmitTestResult struct {
  ResultID  uuid.UUID
  Score     int
  XPEarned  int
}

type StatsService interface {
  GetSummary(ctx context.Context, userID uuid.UUID) (*types.UserStats, error)
  RecordGamePlay(ctx context.Context, userID uuid.UUID, gameID string) (*types.UserStats, error)
  RecordScore(ctx context.Context, userID uuid.UUID, testType string, score int) error
  SubmitTest(ctx context.Context, userID uuid.UUID, in SubmitTestInput) (*SubmitTestResult, error)
}

type statsService struct {
  db              *gorm.DB
  log             *logger.Logger
  statsRepo       repos.UserStatsRepo
  gamePlayRepo    repos.DailyGamePlayRepo
  testResultRepo  repos.TestResultRepo
  clk             clock.Clock
  maxGamesPerDay  int
  cache           *redisclient.Cache
}

// NewStatsService builds the progress recorder. maxGamesPerDay of 0 means
// uncapped. cache may be nil.
func NewStatsService(
  db *gorm.DB,
  log *logger.Logger,
  statsRepo repos.UserStatsRepo,
  gamePlayRepo repos.DailyGamePlayRepo,
  testResultRepo repos.TestResultRepo,
  clk clock.Clock,
  maxGamesPerDay int,
  cache *redisclient.Cache,
) StatsService {
  serviceLog := log.With("service", "StatsService")
  return &statsService{
    db:             db,
    log:            serviceLog,
    statsRepo:      statsRepo,
    gamePlayRepo:   gamePlayRepo,
    testResultRepo: testResultRepo,
    clk:            clk,
    maxGamesPerDay: maxGamesPerDay,
    cache:          cache,
  }
}

// GetSummary returns the user's ledger, materializing a zeroed row on first
// read. When the stored last game day is older than today, the daily counter
// reset is written back so every reader observes the same rolled-over state.
func (ss *statsService) GetSummary(ctx context.Context, userID uuid.UUID) (*types.UserStats, error) {
  today := ss.clk.Today()

  var out *types.UserStats
  err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    stats, gErr := ss.statsRepo.GetOrCreate(ctx, tx, userID)
    if gErr != nil {
      return gErr
    }
    if stats.LastGameDate == nil || *stats.LastGameDate != today {
      if rErr := ss.statsRepo.ResetDailyGames(ctx, tx, userID, today); rErr != nil {
        return rErr
      }
      stats.GamesPlayedToday = 0
      stats.LastGameDate = &today
    }
    out = stats
    return nil
  })
  if err != nil {
    return nil, err
  }
  return out, nil
}

// RecordGamePlay applies one game play dated today. Replaying a game the user
// already played today is a no-op that returns the unchanged ledger; the
// dedupe insert runs first so nothing else in the transaction can fire twice
// for the same (user, game, day).
func (ss *statsService) RecordGamePlay(ctx context.Context, userID uuid.UUID, gameID string) (*types.UserStats, error) {
  if gameID == "" {
    return nil, fmt.Errorf("%w: gameId is required", pkgerrors.ErrInvalidArgument)
  }
  today := ss.clk.Today()
  yesterday := clock.DayBefore(today)

  var out *types.UserStats
  err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    stats, gErr := ss.statsRepo.GetOrCreate(ctx, tx, userID)
    if gErr != nil {
      return gErr
    }

    inserted, iErr := ss.gamePlayRepo.Insert(ctx, tx, &types.DailyGamePlay{
      UserID:     userID,
      GameID:     gameID,
      PlayedDate: today,
    })
    if iErr != nil {
      return iErr
    }
    if !inserted {
      out = stats
      return nil
    }

    gamesToday := 0
    if stats.LastGameDate != nil && *stats.LastGameDate == today {
      gamesToday = stats.GamesPlayedToday
    }
    if ss.maxGamesPerDay > 0 && gamesToday >= ss.maxGamesPerDay {
      return pkgerrors.ErrDailyLimitReached
    }

    if aErr := ss.statsRepo.ApplyGamePlay(ctx, tx, userID, today, yesterday); aErr != nil {
      return aErr
    }
    updated, rErr := ss.statsRepo.Get(ctx, tx, userID)
    if rErr != nil {
      return rErr
    }
    out = updated
    return nil
  })
  if err != nil {
    return nil, err
  }
  return out, nil
}

// RecordScore is the lightweight score path: it folds a raw score into the
// completion counters and score totals without grading, XP, or a result row.
func (ss *statsService) RecordScore(ctx context.Context, userID uuid.UUID, testType string, score int) error {
  if testType != TestTypeTest && testType != TestTypeQuiz {
    return fmt.Errorf("%w: testResult.type must be %q or %q", pkgerrors.ErrInvalidArgument, TestTypeTest, TestTypeQuiz)
  }
  if score < 0 {
    return fmt.Errorf("%w: testResult.score must not be negative", pkgerrors.ErrInvalidArgument)
  }

  err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, gErr := ss.statsRepo.GetOrCreate(ctx, tx, userID); gErr != nil {
      return gErr
    }
    return ss.statsRepo.ApplyScore(ctx, tx, userID, testType, score)
  })
  if err != nil {
    return err
  }
  invalidateLeaderboardCache(ctx, ss.cache)
  return nil
}

// SubmitTest grades a finished test or quiz, stores the result row, and folds
// score and XP into the ledger in one transaction.
func (ss *statsService) SubmitTest(ctx context.Context, userID uuid.UUID, in SubmitTestInput) (*SubmitTestResult, error) {
  if in.ClassValue == "" || in.Board == "" || in.Subject == "" {
    return nil, fmt.Errorf("%w: classValue, board and subject are required", pkgerrors.ErrInvalidArgument)
  }
  if in.TestType != TestTypeTest && in.TestType != TestTypeQuiz {
    return nil, fmt.Errorf("%w: testType must be %q or %q", pkgerrors.ErrInvalidArgument, TestTypeTest, TestTypeQuiz)
  }
  if in.TotalQuestions <= 0 {
    return nil, fmt.Errorf("%w: totalQuestions must be positive", pkgerrors.ErrInvalidArgument)
  }
  if in.CorrectAnswers < 0 || in.CorrectAnswers > in.TotalQuestions {
    return nil, fmt.Errorf("%w: correctAnswers must be between 0 and totalQuestions", pkgerrors.ErrInvalidArgument)
  }

  score := int(math.Round(float64(in.CorrectAnswers) / float64(in.TotalQuestions) * 100))
  if score < 0 {
    score = 0
  }
  if score > 100 {
    score = 100
  }
  multiplier := xpMultiplierQuiz
  if in.TestType == TestTypeTest {
    multiplier = xpMultiplierTest
  }
  xpEarned := score * multiplier

  row := &types.TestResult{
    UserID:         userID,
    ClassValue:     in.ClassValue,
    Board:          in.Board,
    Subject:        in.Subject,
    Topic:          in.Topic,
    TestType:       in.TestType,
    TotalQuestions: in.TotalQuestions,
    CorrectAnswers: in.CorrectAnswers,
    Score:          score,
    XPEarned:       xpEarned,
    TimeTaken:      in.TimeTaken,
  }
  err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, cErr := ss.testResultRepo.Create(ctx, tx, row); cErr != nil {
      return cErr
    }
    return ss.statsRepo.ApplySubmission(ctx, tx, userID, in.TestType, score, xpEarned)
  })
  if err != nil {
    return nil, err
  }
  invalidateLeaderboardCache(ctx, ss.cache)

  return &SubmitTestResult{
    ResultID: row.ID,
    Score:    score,
    XPEarned: xpEarned,
  }, nil
}
