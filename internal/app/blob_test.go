package app

import (
	"errors"
	"testing"
	"time"

	"github.com/hylla/tavla/internal/domain"
)

func TestEncodeDecodeBoardRoundTrip(t *testing.T) {
	due := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	board := domain.Board{
		Lists: []domain.List{
			{ID: "l1", Title: "Backlog", Cards: []domain.Card{
				{ID: "c1", Title: "one", Description: "d", LabelIDs: []string{"lb1"},
					Status: domain.StatusThisWeek, DueDate: &due, StatusUpdatedAt: &at},
			}},
		},
		Labels:        []domain.Label{{ID: "lb1", Color: domain.ColorTeal, Text: "infra"}},
		ActiveFilters: []string{"lb1"},
		TaskStatuses:  domain.DefaultStatusCatalog(),
	}
	data, err := EncodeBoard(board)
	if err != nil {
		t.Fatalf("EncodeBoard() error = %v", err)
	}
	got, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	card, listID, ok := got.FindCard("c1")
	if !ok || listID != "l1" {
		t.Fatalf("card lost in round trip: %v %q", ok, listID)
	}
	if card.Status != domain.StatusThisWeek || card.DueDate == nil || !card.DueDate.Equal(due) {
		t.Fatalf("card fields lost: %+v", card)
	}
	if card.StatusUpdatedAt == nil || !card.StatusUpdatedAt.Equal(at) {
		t.Fatalf("status timestamp lost: %v", card.StatusUpdatedAt)
	}
	if !got.HasActiveFilter("lb1") {
		t.Fatal("active filter lost")
	}
	if len(got.TaskStatuses) != 6 {
		t.Fatalf("status catalog lost: %d", len(got.TaskStatuses))
	}
}

func TestDecodeBoardRejectsMalformedBlob(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{"lists": [`},
		{"missing lists", `{"labels": []}`},
		{"missing labels", `{"lists": []}`},
		{"lists not array", `{"lists": 5, "labels": []}`},
		{"labels not array", `{"lists": [], "labels": "x"}`},
	}
	for _, tc := range cases {
		if _, err := DecodeBoard([]byte(tc.data)); !errors.Is(err, ErrInvalidBlob) {
			t.Fatalf("%s: expected ErrInvalidBlob, got %v", tc.name, err)
		}
	}
}

func TestDecodeBoardBackfillsMissingSections(t *testing.T) {
	// A valid older blob without filters or status catalog migrates forward
	// instead of falling back to the seed.
	data := []byte(`{"lists": [{"id": "l1", "title": "A", "cards": [{"id": "c1", "title": "x", "description": ""}]}], "labels": []}`)
	got, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	if got.ActiveFilters == nil || len(got.ActiveFilters) != 0 {
		t.Fatalf("activeFilters not backfilled: %v", got.ActiveFilters)
	}
	if len(got.TaskStatuses) != 6 {
		t.Fatalf("taskStatuses not backfilled: %d", len(got.TaskStatuses))
	}
	// A card without a status gets the default.
	card, _, _ := got.FindCard("c1")
	if card.Status != domain.StatusTodo {
		t.Fatalf("card status not defaulted: %q", card.Status)
	}
}

func TestDecodeBoardKeepsPresentEmptyStatusCatalog(t *testing.T) {
	// Backfill applies only when the field is absent: a present-but-empty
	// taskStatuses array decodes as empty rather than the default catalog.
	data := []byte(`{"lists": [], "labels": [], "taskStatuses": []}`)
	got, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	if got.TaskStatuses == nil || len(got.TaskStatuses) != 0 {
		t.Fatalf("expected empty catalog, got %v", got.TaskStatuses)
	}
}

func TestDecodeBoardResetsUnknownCardStatus(t *testing.T) {
	data := []byte(`{"lists": [{"id": "l1", "title": "A", "cards": [{"id": "c1", "title": "x", "description": "", "status": "blocked"}]}], "labels": []}`)
	got, err := DecodeBoard(data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	card, _, _ := got.FindCard("c1")
	if card.Status != domain.StatusTodo {
		t.Fatalf("unknown status not reset: %q", card.Status)
	}
}
