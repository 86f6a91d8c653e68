package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

const (
  BoardOverall = "overall"
  BoardTests   = "tests"
  BoardQuizzes = "quizzes"
)

// streakCase computes the new current_streak from the row being updated:
// unchanged when the user already played today, +1 when the last play was
// yesterday, otherwise back to 1. Column references on the right-hand side of
// an UPDATE read the old row, so the whole streak transition is one statement
// with no read-modify-write window.
const streakCase = "CASE WHEN last_activity_date = ? THEN current_streak WHEN last_activity_date = ? THEN current_streak + 1 ELSE 1 END"

type UserStatsRepo interface {
  GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserStats, error)
  Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserStats, error)
  ApplyGamePlay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, today, yesterday string) error
  ResetDailyGames(ctx context.Context, tx *gorm.DB, userID uuid.UUID, today string) error
  ApplySubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, testType string, points, xp int) error
  ApplyScore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, testType string, points int) error
  Top(ctx context.Context, tx *gorm.DB, board string, limit int) ([]types.LeaderboardEntry, error)
  Rank(ctx context.Context, tx *gorm.DB, userID uuid.UUID, board string) (int, error)
}

type userStatsRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserStatsRepo(db *gorm.DB, baseLog *logger.Logger) UserStatsRepo {
  repoLog := baseLog.With("repo", "UserStatsRepo")
  return &userStatsRepo{db: db, log: repoLog}
}

// GetOrCreate inserts a zeroed ledger row if none exists yet, then reads it
// back. The insert-or-ignore makes concurrent first calls for the same user
// converge on a single row.
func (r *userStatsRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserStats, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  row := &types.UserStats{UserID: userID}
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}},
      DoNothing: true,
    }).
    Create(row).Error; err != nil {
    return nil, err
  }

  var result types.UserStats
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (r *userStatsRepo) Get(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserStats, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.UserStats
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, pkgerrors.ErrNotFound
    }
    return nil, err
  }
  return &result, nil
}

// ApplyGamePlay advances the streak and daily game counter for one play on
// `today`. All transitions are CASE expressions over the old row, so the
// update is race-free without row locks.
func (r *userStatsRepo) ApplyGamePlay(ctx context.Context, tx *gorm.DB, userID uuid.UUID, today, yesterday string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  updates := map[string]interface{}{
    "current_streak":     gorm.Expr(streakCase, today, yesterday),
    "longest_streak":     gorm.Expr("CASE WHEN ("+streakCase+") > longest_streak THEN "+streakCase+" ELSE longest_streak END", today, yesterday, today, yesterday),
    "games_played_today": gorm.Expr("CASE WHEN last_game_date = ? THEN games_played_today + 1 ELSE 1 END", today),
    "last_activity_date": today,
    "last_game_date":     today,
  }
  return transaction.WithContext(ctx).
    Model(&types.UserStats{}).
    Where("user_id = ?", userID).
    Updates(updates).Error
}

// ResetDailyGames persists the day rollover observed on a read path.
func (r *userStatsRepo) ResetDailyGames(ctx context.Context, tx *gorm.DB, userID uuid.UUID, today string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  return transaction.WithContext(ctx).
    Model(&types.UserStats{}).
    Where("user_id = ?", userID).
    Updates(map[string]interface{}{
      "games_played_today": 0,
      "last_game_date":     today,
    }).Error
}

// ApplySubmission accumulates a graded test or quiz into the ledger: XP plus
// the leaderboard points, and the matching completion counter. Upserts so the
// very first submission also creates the row.
func (r *userStatsRepo) ApplySubmission(ctx context.Context, tx *gorm.DB, userID uuid.UUID, testType string, points, xp int) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  row := &types.UserStats{UserID: userID, TotalXP: xp}
  assignments := map[string]interface{}{
    "total_xp": gorm.Expr("total_xp + ?", xp),
  }
  if testType == "test" {
    row.TestsCompleted = 1
    row.TotalTestScore = points
    assignments["tests_completed"] = gorm.Expr("tests_completed + 1")
    assignments["total_test_score"] = gorm.Expr("total_test_score + ?", points)
  } else {
    row.QuizzesCompleted = 1
    row.TotalQuizScore = points
    assignments["quizzes_completed"] = gorm.Expr("quizzes_completed + 1")
    assignments["total_quiz_score"] = gorm.Expr("total_quiz_score + ?", points)
  }

  return transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "user_id"}},
      DoUpdates: clause.Assignments(assignments),
    }).
    Create(row).Error
}

// ApplyScore is the legacy accumulation path: points and the completion
// counter only, no XP.
func (r *userStatsRepo) ApplyScore(ctx context.Context, tx *gorm.DB, userID uuid.UUID, testType string, points int) error {
  return r.ApplySubmission(ctx, tx, userID, testType, points, 0)
}

func (r *userStatsRepo) Top(ctx context.Context, tx *gorm.DB, board string, limit int) ([]types.LeaderboardEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var query string
  switch board {
  case BoardTests:
    query = `
      SELECT
        us.user_id,
        us.total_xp,
        us.tests_completed,
        us.total_test_score,
        ROW_NUMBER() OVER (ORDER BY us.total_test_score DESC, us.tests_completed DESC) AS rank
      FROM user_stats us
      WHERE us.tests_completed > 0
      ORDER BY us.total_test_score DESC, us.tests_completed DESC
      LIMIT ?`
  case BoardQuizzes:
    query = `
      SELECT
        us.user_id,
        us.total_xp,
        us.quizzes_completed,
        us.total_quiz_score,
        ROW_NUMBER() OVER (ORDER BY us.total_quiz_score DESC, us.quizzes_completed DESC) AS rank
      FROM user_stats us
      WHERE us.quizzes_completed > 0
      ORDER BY us.total_quiz_score DESC, us.quizzes_completed DESC
      LIMIT ?`
  default:
    query = `
      SELECT
        us.user_id,
        us.total_xp,
        us.current_streak,
        us.longest_streak,
        us.tests_completed,
        us.quizzes_completed,
        us.total_test_score,
        us.total_quiz_score,
        (us.total_test_score + us.total_quiz_score) AS total_points,
        (us.tests_completed + us.quizzes_completed) AS total_activities,
        ROW_NUMBER() OVER (ORDER BY (us.total_test_score + us.total_quiz_score) DESC) AS rank
      FROM user_stats us
      WHERE (us.total_test_score + us.total_quiz_score) > 0
      ORDER BY (us.total_test_score + us.total_quiz_score) DESC
      LIMIT ?`
  }

  var results []types.LeaderboardEntry
  if err := transaction.WithContext(ctx).
    Raw(query, limit).
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// Rank is 1 + the number of users strictly ahead of userID on the given
// board. Users with no ledger row rank as if all their scores were zero.
func (r *userStatsRepo) Rank(ctx context.Context, tx *gorm.DB, userID uuid.UUID, board string) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var query string
  var args []interface{}
  switch board {
  case BoardTests:
    query = `
      SELECT COUNT(*) + 1 AS rank
      FROM user_stats
      WHERE total_test_score > COALESCE((SELECT total_test_score FROM user_stats WHERE user_id = ?), 0)
      OR (total_test_score = COALESCE((SELECT total_test_score FROM user_stats WHERE user_id = ?), 0)
          AND tests_completed > COALESCE((SELECT tests_completed FROM user_stats WHERE user_id = ?), 0))`
    args = []interface{}{userID, userID, userID}
  case BoardQuizzes:
    query = `
      SELECT COUNT(*) + 1 AS rank
      FROM user_stats
      WHERE total_quiz_score > COALESCE((SELECT total_quiz_score FROM user_stats WHERE user_id = ?), 0)
      OR (total_quiz_score = COALESCE((SELECT total_quiz_score FROM user_stats WHERE user_id = ?), 0)
          AND quizzes_completed > COALESCE((SELECT quizzes_completed FROM user_stats WHERE user_id = ?), 0))`
    args = []interface{}{userID, userID, userID}
  default:
    query = `
      SELECT COUNT(*) + 1 AS rank
      FROM user_stats
      WHERE (total_test_score + total_quiz_score) >
            COALESCE((SELECT total_test_score + total_quiz_score FROM user_stats WHERE user_id = ?), 0)`
    args = []interface{}{userID}
  }

  var rank int
  if err := transaction.WithContext(ctx).
    Raw(query, args...).
    Scan(&rank).Error; err != nil {
    return 0, err
  }
  return rank, nil
}
