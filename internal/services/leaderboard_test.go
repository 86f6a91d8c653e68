package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studysarthi/studysarthi-backend/internal/repos"
	"github.com/studysarthi/studysarthi-backend/internal/types"
)

func seedStats(t *testing.T, gdb *gorm.DB, rows []types.UserStats) {
	t.Helper()
	for i := range rows {
		if err := gdb.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func newLeaderboardFixture(t *testing.T, dbName string) (LeaderboardService, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t, dbName)
	log := newTestLogger()
	svc := NewLeaderboardService(gdb, log, repos.NewUserStatsRepo(gdb, log), nil)
	return svc, gdb
}

func TestLeaderboardOverall(t *testing.T) {
	svc, gdb := newLeaderboardFixture(t, "lb_overall")
	first := uuid.New()
	second := uuid.New()
	inactive := uuid.New()
	seedStats(t, gdb, []types.UserStats{
		{UserID: second, TotalXP: 100, TotalTestScore: 50, TotalQuizScore: 30, TestsCompleted: 1, QuizzesCompleted: 1},
		{UserID: first, TotalXP: 50, TotalTestScore: 90, TotalQuizScore: 40, TestsCompleted: 2},
		{UserID: inactive},
	})

	result, err := svc.GetLeaderboard(context.Background(), first, "overall")
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if result.Board != "overall" {
		t.Errorf("board=%q, want overall", result.Board)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 (inactive user filtered out)", len(result.Entries))
	}
	if result.Entries[0].UserID != first || result.Entries[0].TotalPoints != 130 || result.Entries[0].Rank != 1 {
		t.Errorf("entry[0]=%+v, want user %s with 130 points at rank 1", result.Entries[0], first)
	}
	if result.Entries[1].UserID != second || result.Entries[1].TotalPoints != 80 || result.Entries[1].Rank != 2 {
		t.Errorf("entry[1]=%+v, want user %s with 80 points at rank 2", result.Entries[1], second)
	}
	if result.UserRank != 1 {
		t.Errorf("userRank=%d, want 1", result.UserRank)
	}
}

func TestLeaderboardTestsBoard(t *testing.T) {
	svc, gdb := newLeaderboardFixture(t, "lb_tests")
	high := uuid.New()
	tied := uuid.New()
	quizOnly := uuid.New()
	seedStats(t, gdb, []types.UserStats{
		{UserID: high, TotalTestScore: 80, TestsCompleted: 3},
		{UserID: tied, TotalTestScore: 80, TestsCompleted: 1},
		{UserID: quizOnly, TotalQuizScore: 200, QuizzesCompleted: 5},
	})

	result, err := svc.GetLeaderboard(context.Background(), tied, "tests")
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 (quiz-only user excluded)", len(result.Entries))
	}
	// Equal scores break on completion count.
	if result.Entries[0].UserID != high {
		t.Errorf("entry[0]=%s, want %s (more tests completed)", result.Entries[0].UserID, high)
	}
	if result.UserRank != 2 {
		t.Errorf("userRank=%d, want 2 (loses the tie-break)", result.UserRank)
	}
}

func TestLeaderboardQuizzesBoard(t *testing.T) {
	svc, gdb := newLeaderboardFixture(t, "lb_quizzes")
	leader := uuid.New()
	trailer := uuid.New()
	seedStats(t, gdb, []types.UserStats{
		{UserID: leader, TotalQuizScore: 90, QuizzesCompleted: 2},
		{UserID: trailer, TotalQuizScore: 45, QuizzesCompleted: 1},
	})

	result, err := svc.GetLeaderboard(context.Background(), trailer, "quizzes")
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(result.Entries) != 2 || result.Entries[0].UserID != leader {
		t.Fatalf("unexpected ordering: %+v", result.Entries)
	}
	if result.UserRank != 2 {
		t.Errorf("userRank=%d, want 2", result.UserRank)
	}
}

func TestLeaderboardUnknownTypeFallsBackToOverall(t *testing.T) {
	svc, gdb := newLeaderboardFixture(t, "lb_fallback")
	user := uuid.New()
	seedStats(t, gdb, []types.UserStats{
		{UserID: user, TotalTestScore: 10, TestsCompleted: 1},
	})

	result, err := svc.GetLeaderboard(context.Background(), user, "streaks")
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if result.Board != "overall" {
		t.Errorf("board=%q, want overall fallback", result.Board)
	}
}

func TestLeaderboardRankForUserWithoutRow(t *testing.T) {
	svc, gdb := newLeaderboardFixture(t, "lb_norow")
	seedStats(t, gdb, []types.UserStats{
		{UserID: uuid.New(), TotalTestScore: 80, TestsCompleted: 1},
		{UserID: uuid.New(), TotalTestScore: 40, TestsCompleted: 1},
	})

	// A user with no ledger row ranks as if all scores were zero.
	result, err := svc.GetLeaderboard(context.Background(), uuid.New(), "overall")
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if result.UserRank != 3 {
		t.Errorf("userRank=%d, want 3", result.UserRank)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	svc, _ := newLeaderboardFixture(t, "lb_empty")

	result, err := svc.GetLeaderboard(context.Background(), uuid.New(), "overall")
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("got %d entries, want 0", len(result.Entries))
	}
	if result.UserRank != 1 {
		t.Errorf("userRank=%d, want 1 on an empty board", result.UserRank)
	}
}
