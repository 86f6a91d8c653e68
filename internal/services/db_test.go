package services

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studysarthi/studysarthi-backend/internal/logger"
	"github.com/studysarthi/studysarthi-backend/internal/types"
)

// newTestDB opens a named in-memory sqlite database and migrates the full
// schema. Each test passes a distinct name so databases never leak across
// tests; cache=shared keeps every connection in one test on the same DB.
func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection serializes concurrent transactions instead of tripping
	// sqlite's write locks.
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(
		&types.User{},
		&types.UserStats{},
		&types.DailyGamePlay{},
		&types.TestResult{},
		&types.Note{},
		&types.Timetable{},
		&types.ChatSession{},
		&types.ChatMessage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// fakeClock is a mutable test clock; tests advance it by assigning day.
type fakeClock struct {
	day string
}

func (f *fakeClock) Today() string {
	return f.day
}
