package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
	"github.com/studysarthi/studysarthi-backend/internal/repos"
	"github.com/studysarthi/studysarthi-backend/internal/types"
)

func newStatsFixture(t *testing.T, dbName string, clk *fakeClock, maxGamesPerDay int) (StatsService, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t, dbName)
	log := newTestLogger()
	svc := NewStatsService(
		gdb,
		log,
		repos.NewUserStatsRepo(gdb, log),
		repos.NewDailyGamePlayRepo(gdb, log),
		repos.NewTestResultRepo(gdb, log),
		clk,
		maxGamesPerDay,
		nil,
	)
	return svc, gdb
}

func TestGetSummaryInitializesRow(t *testing.T) {
	clk := &fakeClock{day: "2026-08-30"}
	svc, gdb := newStatsFixture(t, "summary_init", clk, 0)
	userID := uuid.New()

	stats, err := svc.GetSummary(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if stats.TotalXP != 0 || stats.CurrentStreak != 0 || stats.GamesPlayedToday != 0 {
		t.Fatalf("expected zeroed ledger, got %+v", stats)
	}
	if stats.LastGameDate == nil || *stats.LastGameDate != "2026-08-30" {
		t.Fatalf("expected last_game_date to be stamped with today, got %v", stats.LastGameDate)
	}

	var count int64
	if err := gdb.Model(&types.UserStats{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one ledger row, got %d", count)
	}
}

func TestRecordGamePlayStreaks(t *testing.T) {
	type play struct {
		day    string
		gameID string
	}
	cases := []struct {
		name            string
		plays           []play
		wantStreak      int
		wantLongest     int
		wantGamesToday  int
	}{
		{
			name:           "first_play_starts_streak",
			plays:          []play{{"2026-08-30", "sudoku"}},
			wantStreak:     1,
			wantLongest:    1,
			wantGamesToday: 1,
		},
		{
			name:           "same_day_second_game_keeps_streak",
			plays:          []play{{"2026-08-30", "sudoku"}, {"2026-08-30", "wordle"}},
			wantStreak:     1,
			wantLongest:    1,
			wantGamesToday: 2,
		},
		{
			name:           "consecutive_day_extends_streak",
			plays:          []play{{"2026-08-29", "sudoku"}, {"2026-08-30", "sudoku"}},
			wantStreak:     2,
			wantLongest:    2,
			wantGamesToday: 1,
		},
		{
			name:           "gap_resets_streak_keeps_longest",
			plays:          []play{{"2026-08-25", "sudoku"}, {"2026-08-26", "sudoku"}, {"2026-08-30", "sudoku"}},
			wantStreak:     1,
			wantLongest:    2,
			wantGamesToday: 1,
		},
		{
			name:           "replay_same_game_same_day_is_noop",
			plays:          []play{{"2026-08-30", "sudoku"}, {"2026-08-30", "sudoku"}},
			wantStreak:     1,
			wantLongest:    1,
			wantGamesToday: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clk := &fakeClock{}
			svc, _ := newStatsFixture(t, "streaks_"+tc.name, clk, 0)
			userID := uuid.New()

			var stats *types.UserStats
			var err error
			for _, p := range tc.plays {
				clk.day = p.day
				stats, err = svc.RecordGamePlay(context.Background(), userID, p.gameID)
				if err != nil {
					t.Fatalf("RecordGamePlay(%s, %s): %v", p.day, p.gameID, err)
				}
			}
			if stats.CurrentStreak != tc.wantStreak {
				t.Errorf("current_streak=%d, want %d", stats.CurrentStreak, tc.wantStreak)
			}
			if stats.LongestStreak != tc.wantLongest {
				t.Errorf("longest_streak=%d, want %d", stats.LongestStreak, tc.wantLongest)
			}
			if stats.GamesPlayedToday != tc.wantGamesToday {
				t.Errorf("games_played_today=%d, want %d", stats.GamesPlayedToday, tc.wantGamesToday)
			}
		})
	}
}

func TestRecordGamePlayReplayLeavesSingleRow(t *testing.T) {
	clk := &fakeClock{day: "2026-08-30"}
	svc, gdb := newStatsFixture(t, "replay_rows", clk, 0)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordGamePlay(context.Background(), userID, "sudoku"); err != nil {
			t.Fatalf("RecordGamePlay #%d: %v", i+1, err)
		}
	}

	var count int64
	if err := gdb.Model(&types.DailyGamePlay{}).
		Where("user_id = ? AND game_id = ? AND played_date = ?", userID, "sudoku", "2026-08-30").
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one play record, got %d", count)
	}
}

func TestRecordGamePlayRejectsEmptyGameID(t *testing.T) {
	clk := &fakeClock{day: "2026-08-30"}
	svc, _ := newStatsFixture(t, "empty_game", clk, 0)

	_, err := svc.RecordGamePlay(context.Background(), uuid.New(), "")
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRecordGamePlayDailyCap(t *testing.T) {
	clk := &fakeClock{day: "2026-08-30"}
	svc, gdb := newStatsFixture(t, "daily_cap", clk, 2)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.RecordGamePlay(ctx, userID, "g1"); err != nil {
		t.Fatalf("play g1: %v", err)
	}
	if _, err := svc.RecordGamePlay(ctx, userID, "g2"); err != nil {
		t.Fatalf("play g2: %v", err)
	}
	if _, err := svc.RecordGamePlay(ctx, userID, "g3"); !errors.Is(err, pkgerrors.ErrDailyLimitReached) {
		t.Fatalf("expected ErrDailyLimitReached for g3, got %v", err)
	}

	// Rejected play must leave no record behind.
	var count int64
	if err := gdb.Model(&types.DailyGamePlay{}).
		Where("user_id = ? AND game_id = ?", userID, "g3").
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("capped play left %d rows", count)
	}

	// Replaying an already-counted game at the cap is still a no-op success.
	stats, err := svc.RecordGamePlay(ctx, userID, "g1")
	if err != nil {
		t.Fatalf("replay g1 at cap: %v", err)
	}
	if stats.GamesPlayedToday != 2 {
		t.Fatalf("games_played_today=%d, want 2", stats.GamesPlayedToday)
	}

	// The cap resets with the day.
	clk.day = "2026-08-31"
	if _, err := svc.RecordGamePlay(ctx, userID, "g1"); err != nil {
		t.Fatalf("play g1 next day: %v", err)
	}
}

func TestGetSummaryRollsOverDailyGames(t *testing.T) {
	clk := &fakeClock{day: "2026-08-30"}
	svc, gdb := newStatsFixture(t, "rollover", clk, 0)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.RecordGamePlay(ctx, userID, "sudoku"); err != nil {
		t.Fatalf("RecordGamePlay: %v", err)
	}

	clk.day = "2026-08-31"
	stats, err := svc.GetSummary(ctx, userID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if stats.GamesPlayedToday != 0 {
		t.Fatalf("games_played_today=%d after rollover, want 0", stats.GamesPlayedToday)
	}
	if stats.CurrentStreak != 1 {
		t.Fatalf("rollover must not touch the streak, got %d", stats.CurrentStreak)
	}

	// The reset is persisted, not just reflected in the response.
	var stored types.UserStats
	if err := gdb.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored.GamesPlayedToday != 0 || stored.LastGameDate == nil || *stored.LastGameDate != "2026-08-31" {
		t.Fatalf("rollover not persisted: %+v", stored)
	}
}

func TestRecordScore(t *testing.T) {
	clk := &fakeClock{day: "2026-08-30"}
	svc, gdb := newStatsFixture(t, "record_score", clk, 0)
	userID := uuid.New()
	ctx := context.Background()

	if err := svc.RecordScore(ctx, userID, TestTypeTest, 80); err != nil {
		t.Fatalf("RecordScore test: %v", err)
	}
	if err := svc.RecordScore(ctx, userID, TestTypeQuiz, 60); err != nil {
		t.Fatalf("RecordScore quiz: %v", err)
	}

	var stored types.UserStats
	if err := gdb.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if stored.TestsCompleted != 1 || stored.TotalTestScore != 80 {
		t.Errorf("test totals=%d/%d, want 1/80", stored.TestsCompleted, stored.TotalTestScore)
	}
	if stored.QuizzesCompleted != 1 || stored.TotalQuizScore != 60 {
		t.Errorf("quiz totals=%d/%d, want 1/60", stored.QuizzesCompleted, stored.TotalQuizScore)
	}
	if stored.TotalXP != 0 {
		t.Errorf("legacy score path must not award XP, got %d", stored.TotalXP)
	}
	if stored.CurrentStreak != 0 {
		t.Errorf("scores must not touch the streak, got %d", stored.CurrentStreak)
	}

	if err := svc.RecordScore(ctx, userID, "exam", 50); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad type, got %v", err)
	}
	if err := svc.RecordScore(ctx, userID, TestTypeTest, -5); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative score, got %v", err)
	}
}

func TestSubmitTest(t *testing.T) {
	cases := []struct {
		name       string
		testType   string
		total      int
		correct    int
		wantScore  int
		wantXP     int
	}{
		{
			name:      "quiz_pays_score_once",
			testType:  TestTypeQuiz,
			total:     10,
			correct:   8,
			wantScore: 80,
			wantXP:    80,
		},
		{
			name:      "test_pays_double",
			testType:  TestTypeTest,
			total:     10,
			correct:   8,
			wantScore: 80,
			wantXP:    160,
		},
		{
			name:      "score_rounds_to_nearest",
			testType:  TestTypeQuiz,
			total:     3,
			correct:   2,
			wantScore: 67,
			wantXP:    67,
		},
		{
			name:      "perfect_score",
			testType:  TestTypeTest,
			total:     5,
			correct:   5,
			wantScore: 100,
			wantXP:    200,
		},
		{
			name:      "zero_correct",
			testType:  TestTypeQuiz,
			total:     5,
			correct:   0,
			wantScore: 0,
			wantXP:    0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clk := &fakeClock{day: "2026-08-30"}
			svc, gdb := newStatsFixture(t, "submit_"+tc.name, clk, 0)
			userID := uuid.New()

			result, err := svc.SubmitTest(context.Background(), userID, SubmitTestInput{
				ClassValue:     "10",
				Board:          "CBSE",
				Subject:        "Maths",
				TestType:       tc.testType,
				TotalQuestions: tc.total,
				CorrectAnswers: tc.correct,
			})
			if err != nil {
				t.Fatalf("SubmitTest: %v", err)
			}
			if result.Score != tc.wantScore {
				t.Errorf("score=%d, want %d", result.Score, tc.wantScore)
			}
			if result.XPEarned != tc.wantXP {
				t.Errorf("xpEarned=%d, want %d", result.XPEarned, tc.wantXP)
			}
			if result.ResultID == uuid.Nil {
				t.Error("expected a result id")
			}

			var row types.TestResult
			if err := gdb.Where("id = ?", result.ResultID).First(&row).Error; err != nil {
				t.Fatalf("result row missing: %v", err)
			}
			if row.Score != tc.wantScore || row.XPEarned != tc.wantXP {
				t.Errorf("stored result %d/%d, want %d/%d", row.Score, row.XPEarned, tc.wantScore, tc.wantXP)
			}

			var stored types.UserStats
			if err := gdb.Where("user_id = ?", userID).First(&stored).Error; err != nil {
				t.Fatalf("ledger missing: %v", err)
			}
			if stored.TotalXP != tc.wantXP {
				t.Errorf("total_xp=%d, want %d", stored.TotalXP, tc.wantXP)
			}
			if tc.testType == TestTypeTest {
				if stored.TestsCompleted != 1 || stored.TotalTestScore != tc.wantScore {
					t.Errorf("test totals=%d/%d, want 1/%d", stored.TestsCompleted, stored.TotalTestScore, tc.wantScore)
				}
			} else {
				if stored.QuizzesCompleted != 1 || stored.TotalQuizScore != tc.wantScore {
					t.Errorf("quiz totals=%d/%d, want 1/%d", stored.QuizzesCompleted, stored.TotalQuizScore, tc.wantScore)
				}
			}
		})
	}
}

func TestSubmitTestValidation(t *testing.T) {
	clk := &fakeClock{day: "2026-08-30"}
	svc, _ := newStatsFixture(t, "submit_validation", clk, 0)
	userID := uuid.New()

	base := SubmitTestInput{
		ClassValue:     "10",
		Board:          "CBSE",
		Subject:        "Maths",
		TestType:       TestTypeTest,
		TotalQuestions: 10,
		CorrectAnswers: 5,
	}

	cases := []struct {
		name   string
		mutate func(in *SubmitTestInput)
	}{
		{
			name:   "missing_subject",
			mutate: func(in *SubmitTestInput) { in.Subject = "" },
		},
		{
			name:   "bad_test_type",
			mutate: func(in *SubmitTestInput) { in.TestType = "exam" },
		},
		{
			name:   "zero_questions",
			mutate: func(in *SubmitTestInput) { in.TotalQuestions = 0 },
		},
		{
			name:   "correct_exceeds_total",
			mutate: func(in *SubmitTestInput) { in.CorrectAnswers = 11 },
		},
		{
			name:   "negative_correct",
			mutate: func(in *SubmitTestInput) { in.CorrectAnswers = -1 },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			if _, err := svc.SubmitTest(context.Background(), userID, in); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestConcurrentSummaryCreatesSingleRow(t *testing.T) {
	clk := &fakeClock{day: "2026-08-30"}
	svc, gdb := newStatsFixture(t, "concurrent_summary", clk, 0)
	userID := uuid.New()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := svc.GetSummary(context.Background(), userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent GetSummary: %v", err)
	}

	var count int64
	if err := gdb.Model(&types.UserStats{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one ledger row, got %d", count)
	}
}
