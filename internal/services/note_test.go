package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/studysarthi/studysarthi-backend/internal/pkg/errors"
	"github.com/studysarthi/studysarthi-backend/internal/repos"
)

func TestNoteOwnership(t *testing.T) {
	gdb := newTestDB(t, "note_ownership")
	log := newTestLogger()
	svc := NewNoteService(gdb, log, repos.NewNoteRepo(gdb, log))
	owner := uuid.New()
	other := uuid.New()
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, owner, NoteInput{
		ClassValue: "10",
		Board:      "CBSE",
		Subject:    "Maths",
		Topic:      "Quadratic equations",
		Content:    "b^2 - 4ac decides the roots",
	})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	if _, err := svc.UpdateNote(ctx, other, note.ID, NoteInput{Topic: "x", Content: "y"}); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on foreign update, got %v", err)
	}
	if err := svc.DeleteNote(ctx, other, note.ID); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on foreign delete, got %v", err)
	}
	if _, err := svc.UpdateNote(ctx, owner, uuid.New(), NoteInput{Topic: "x", Content: "y"}); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown note, got %v", err)
	}

	updated, err := svc.UpdateNote(ctx, owner, note.ID, NoteInput{Topic: "Discriminant", Content: "updated"})
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if updated.Topic != "Discriminant" || updated.Content != "updated" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := svc.DeleteNote(ctx, owner, note.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	notes, err := svc.ListNotes(ctx, owner, repos.NoteFilter{})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("got %d notes after delete, want 0", len(notes))
	}
}

func TestNoteSearchFilter(t *testing.T) {
	gdb := newTestDB(t, "note_search")
	log := newTestLogger()
	svc := NewNoteService(gdb, log, repos.NewNoteRepo(gdb, log))
	userID := uuid.New()
	ctx := context.Background()

	seed := []NoteInput{
		{ClassValue: "10", Board: "CBSE", Subject: "Maths", Topic: "Trigonometry", Content: "sin cos tan"},
		{ClassValue: "10", Board: "CBSE", Subject: "Physics", Topic: "Optics", Content: "refraction of light"},
		{ClassValue: "12", Board: "ICSE", Subject: "Maths", Topic: "Calculus", Content: "derivatives"},
	}
	for _, in := range seed {
		if _, err := svc.CreateNote(ctx, userID, in); err != nil {
			t.Fatalf("CreateNote: %v", err)
		}
	}

	cases := []struct {
		name   string
		filter repos.NoteFilter
		want   int
	}{
		{
			name:   "by_class_and_board",
			filter: repos.NoteFilter{ClassValue: "10", Board: "CBSE"},
			want:   2,
		},
		{
			name:   "by_subject",
			filter: repos.NoteFilter{Subject: "Maths"},
			want:   2,
		},
		{
			name:   "search_matches_content",
			filter: repos.NoteFilter{Search: "light"},
			want:   1,
		},
		{
			name:   "search_matches_topic",
			filter: repos.NoteFilter{Search: "Calculus"},
			want:   1,
		},
		{
			name:   "no_match",
			filter: repos.NoteFilter{Search: "chemistry"},
			want:   0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notes, err := svc.ListNotes(ctx, userID, tc.filter)
			if err != nil {
				t.Fatalf("ListNotes: %v", err)
			}
			if len(notes) != tc.want {
				t.Fatalf("got %d notes, want %d", len(notes), tc.want)
			}
		})
	}
}
