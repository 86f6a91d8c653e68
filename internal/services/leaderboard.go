package services

import (
  "context"
  "encoding/json"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  redisclient "github.com/studysarthi/studysarthi-backend/internal/clients/redis"
  "github.com/studysarthi/studysarthi-backend/internal/logger"
  "github.com/studysarthi/studysarthi-backend/internal/repos"
  "github.com/studysarthi/studysarthi-backend/internal/types"
)

const (
  leaderboardLimit    = 100
  leaderboardCacheTTL = time.Minute
)

func leaderboardCacheKey(board string) string {
  return "leaderboard:" + board
}

// invalidateLeaderboardCache drops every cached board after a score write so
// reads always reflect committed state. Safe on a nil cache.
func invalidateLeaderboardCache(ctx context.Context, cache *redisclient.Cache) {
  cache.Del(ctx,
    leaderboardCacheKey(repos.BoardOverall),
    leaderboardCacheKey(repos.BoardTests),
    leaderboardCacheKey(repos.BoardQuizzes),
  )
}

type LeaderboardResult struct {
  Entries   []types.LeaderboardEntry
  UserRank  int
  Board     string
}

type LeaderboardService interface {
  GetLeaderboard(ctx context.Context, userID uuid.UUID, board string) (*LeaderboardResult, error)
}

type leaderboardService struct {
  db         *gorm.DB
  log        *logger.Logger
  statsRepo  repos.UserStatsRepo
  cache      *redisclient.Cache
}

func NewLeaderboardService(db *gorm.DB, log *logger.Logger, statsRepo repos.UserStatsRepo, cache *redisclient.Cache) LeaderboardService {
  serviceLog := log.With("service", "LeaderboardService")
  return &leaderboardService{db: db, log: serviceLog, statsRepo: statsRepo, cache: cache}
}

// GetLeaderboard returns the top entries for the requested board plus the
// caller's own rank. The entry list is cached briefly; the rank is always
// computed live because it is per-user.
func (ls *leaderboardService) GetLeaderboard(ctx context.Context, userID uuid.UUID, board string) (*LeaderboardResult, error) {
  switch board {
  case repos.BoardTests, repos.BoardQuizzes:
  default:
    board = repos.BoardOverall
  }

  entries, err := ls.topEntries(ctx, board)
  if err != nil {
    return nil, err
  }
  rank, err := ls.statsRepo.Rank(ctx, nil, userID, board)
  if err != nil {
    return nil, err
  }
  return &LeaderboardResult{
    Entries:  entries,
    UserRank: rank,
    Board:    board,
  }, nil
}

func (ls *leaderboardService) topEntries(ctx context.Context, board string) ([]types.LeaderboardEntry, error) {
  key := leaderboardCacheKey(board)
  if payload, ok := ls.cache.Get(ctx, key); ok {
    var cached []types.LeaderboardEntry
    if err := json.Unmarshal([]byte(payload), &cached); err == nil {
      return cached, nil
    }
    ls.log.Warn("Dropping undecodable leaderboard cache entry", "key", key)
  }

  entries, err := ls.statsRepo.Top(ctx, nil, board, leaderboardLimit)
  if err != nil {
    return nil, err
  }
  if payload, mErr := json.Marshal(entries); mErr == nil {
    ls.cache.Set(ctx, key, string(payload), leaderboardCacheTTL)
  }
  return entries, nil
}
