package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
	"github.com/studysarthi/studysarthi-backend/internal/repos"
	"github.com/studysarthi/studysarthi-backend/internal/types"
)

func newChatFixture(t *testing.T, dbName string) (ChatService, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t, dbName)
	log := newTestLogger()
	svc := NewChatService(gdb, log, repos.NewChatSessionRepo(gdb, log), repos.NewChatMessageRepo(gdb, log))
	return svc, gdb
}

func TestSaveSessionsReplacesScope(t *testing.T) {
	svc, _ := newChatFixture(t, "chat_replace")
	userID := uuid.New()
	ctx := context.Background()

	err := svc.SaveSessions(ctx, userID, "10", "CBSE", []ChatSessionInput{
		{ID: "s1", Title: "Algebra help", LastMessage: "thanks", MessageCount: 4},
		{ID: "s2", Title: "Physics doubts", MessageCount: 2},
	})
	if err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}

	// A resync with one session drops the other.
	err = svc.SaveSessions(ctx, userID, "10", "CBSE", []ChatSessionInput{
		{ID: "s1", Title: "Algebra help", LastMessage: "one more thing", MessageCount: 6},
	})
	if err != nil {
		t.Fatalf("SaveSessions resync: %v", err)
	}

	sessions, err := svc.ListSessions(ctx, userID, "10", "CBSE")
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	if sessions[0].ID != "s1" || sessions[0].MessageCount != 6 || sessions[0].LastMessage != "one more thing" {
		t.Fatalf("unexpected session after resync: %+v", sessions[0])
	}
}

func TestSaveSessionsScopedByClassBoard(t *testing.T) {
	svc, _ := newChatFixture(t, "chat_scope")
	userID := uuid.New()
	ctx := context.Background()

	if err := svc.SaveSessions(ctx, userID, "10", "CBSE", []ChatSessionInput{{ID: "a"}}); err != nil {
		t.Fatalf("SaveSessions 10/CBSE: %v", err)
	}
	if err := svc.SaveSessions(ctx, userID, "12", "ICSE", []ChatSessionInput{{ID: "b"}}); err != nil {
		t.Fatalf("SaveSessions 12/ICSE: %v", err)
	}

	sessions, err := svc.ListSessions(ctx, userID, "10", "CBSE")
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "a" {
		t.Fatalf("replace-sync crossed scopes: %+v", sessions)
	}
}

func TestListSessionsRequiresScope(t *testing.T) {
	svc, _ := newChatFixture(t, "chat_scope_required")

	if _, err := svc.ListSessions(context.Background(), uuid.New(), "", "CBSE"); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	svc, gdb := newChatFixture(t, "chat_delete")
	owner := uuid.New()
	other := uuid.New()
	ctx := context.Background()

	if err := svc.SaveSessions(ctx, owner, "10", "CBSE", []ChatSessionInput{{ID: "s1"}}); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}
	if err := svc.SaveMessages(ctx, owner, "s1", []ChatMessageInput{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}

	if err := svc.DeleteSession(ctx, other, "s1"); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign session, got %v", err)
	}

	if err := svc.DeleteSession(ctx, owner, "s1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	// Messages go with the session.
	var count int64
	if err := gdb.Model(&types.ChatMessage{}).Where("session_id = ?", "s1").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d orphaned messages after delete", count)
	}

	// Deleting a session that is already gone succeeds.
	if err := svc.DeleteSession(ctx, owner, "s1"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

func TestSaveMessagesReplacesHistory(t *testing.T) {
	svc, _ := newChatFixture(t, "chat_messages")
	userID := uuid.New()
	ctx := context.Background()

	if err := svc.SaveSessions(ctx, userID, "10", "CBSE", []ChatSessionInput{{ID: "s1"}}); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}
	if err := svc.SaveMessages(ctx, userID, "s1", []ChatMessageInput{
		{Role: "user", Content: "first"},
	}); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}
	if err := svc.SaveMessages(ctx, userID, "s1", []ChatMessageInput{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "second"},
	}); err != nil {
		t.Fatalf("SaveMessages resync: %v", err)
	}

	messages, err := svc.ListMessages(ctx, userID, "s1")
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}

	if err := svc.SaveMessages(ctx, userID, "s1", []ChatMessageInput{
		{Role: "system", Content: "nope"},
	}); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for bad role, got %v", err)
	}

	if _, err := svc.ListMessages(ctx, uuid.New(), "s1"); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign reader, got %v", err)
	}

	if _, err := svc.ListMessages(ctx, userID, "missing"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown session, got %v", err)
	}
}
