package domain

import "testing"

func TestNewListValidation(t *testing.T) {
	list, err := NewList(" l1 ", "  Backlog ")
	if err != nil {
		t.Fatalf("NewList() error = %v", err)
	}
	if list.ID != "l1" || list.Title != "Backlog" {
		t.Fatalf("unexpected list %+v", list)
	}
	if list.Cards == nil || len(list.Cards) != 0 {
		t.Fatalf("expected empty cards, got %v", list.Cards)
	}
	if _, err := NewList("", "ok"); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := NewList("l1", "   "); err != ErrInvalidTitle {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
}

func TestNewCardDefaults(t *testing.T) {
	card, err := NewCard("c1", " Ship it ", " details ")
	if err != nil {
		t.Fatalf("NewCard() error = %v", err)
	}
	if card.Title != "Ship it" || card.Description != "details" {
		t.Fatalf("unexpected card %+v", card)
	}
	if card.Status != StatusTodo {
		t.Fatalf("expected default todo status, got %q", card.Status)
	}
	if card.DueDate != nil || card.StatusUpdatedAt != nil {
		t.Fatal("expected nil due date and status timestamp")
	}
	if _, err := NewCard("c1", "", ""); err != ErrInvalidTitle {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
}

func TestNewLabelValidation(t *testing.T) {
	label, err := NewLabel("lb1", " Urgent ", ColorRed)
	if err != nil {
		t.Fatalf("NewLabel() error = %v", err)
	}
	if label.Text != "Urgent" || label.Color != ColorRed {
		t.Fatalf("unexpected label %+v", label)
	}
	if _, err := NewLabel("lb1", "x", LabelColor("magenta")); err != ErrInvalidColor {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if _, err := NewLabel("lb1", "  ", ColorBlue); err != ErrInvalidText {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
}

func TestLabelPalette(t *testing.T) {
	palette := LabelPalette()
	if len(palette) != 12 {
		t.Fatalf("expected 12 palette colors, got %d", len(palette))
	}
	for _, c := range palette {
		if !c.IsValid() {
			t.Fatalf("palette color %q reported invalid", c)
		}
	}
}

func TestBoardLookups(t *testing.T) {
	board := SeedBoard()
	if _, ok := board.FindList("list-1"); !ok {
		t.Fatal("expected seed list to be found")
	}
	card, listID, ok := board.FindCard("card-3")
	if !ok || listID != "list-1" || card.ID != "card-3" {
		t.Fatalf("FindCard() = %v %q %v", card, listID, ok)
	}
	if _, _, ok := board.FindCard("missing"); ok {
		t.Fatal("expected missing card to not be found")
	}
	if n := board.CardCount(); n != 5 {
		t.Fatalf("CardCount() = %d, want 5", n)
	}
	if n := board.LabelUsageCount("label-tutorial"); n != 2 {
		t.Fatalf("LabelUsageCount() = %d, want 2", n)
	}
	if board.HasActiveFilter("label-tutorial") {
		t.Fatal("seed board should start with no active filters")
	}
}

func TestSeedBoardShape(t *testing.T) {
	board := SeedBoard()
	if len(board.Labels) != 4 {
		t.Fatalf("expected 4 default labels, got %d", len(board.Labels))
	}
	if len(board.TaskStatuses) != 6 {
		t.Fatalf("expected 6 statuses, got %d", len(board.TaskStatuses))
	}
	if board.ActiveFilters == nil || len(board.ActiveFilters) != 0 {
		t.Fatalf("expected empty filter set, got %v", board.ActiveFilters)
	}
	for _, label := range board.Labels {
		if !label.Color.IsValid() {
			t.Fatalf("seed label %q uses invalid color %q", label.ID, label.Color)
		}
	}
	// Card ids must be unique across the whole board.
	seen := map[string]struct{}{}
	for _, list := range board.Lists {
		for _, card := range list.Cards {
			if _, dup := seen[card.ID]; dup {
				t.Fatalf("duplicate card id %q", card.ID)
			}
			seen[card.ID] = struct{}{}
		}
	}
}
