package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hylla/tavla/internal/domain"
	"github.com/hylla/tavla/internal/engine"
)

// fakeBlobStore keeps the latest blob in memory and can be forced to fail.
type fakeBlobStore struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeBlobStore) Load(context.Context) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.data == nil {
		return nil, ErrNotFound
	}
	return f.data, nil
}

func (f *fakeBlobStore) Save(_ context.Context, data []byte) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data = data
	return nil
}

func newTestStore(t *testing.T, repo *fakeBlobStore) *Store {
	t.Helper()
	n := 0
	idGen := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	clock := func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	}
	return NewStore(repo, idGen, clock, nil)
}

func TestStoreLoadFallsBackToSeed(t *testing.T) {
	ctx := context.Background()

	// Nothing persisted yet.
	store := newTestStore(t, &fakeBlobStore{})
	board := store.LoadBoard(ctx)
	if len(board.Lists) == 0 || len(board.Labels) != 4 {
		t.Fatalf("expected seed board, got %d lists %d labels", len(board.Lists), len(board.Labels))
	}

	// Malformed blob.
	store = newTestStore(t, &fakeBlobStore{data: []byte(`{"lists": "nope"}`)})
	board = store.LoadBoard(ctx)
	if len(board.TaskStatuses) != 6 {
		t.Fatal("malformed blob did not fall back to seed")
	}

	// Load error.
	store = newTestStore(t, &fakeBlobStore{loadErr: errors.New("disk gone")})
	board = store.LoadBoard(ctx)
	if board.CardCount() == 0 {
		t.Fatal("load error did not fall back to seed")
	}
}

func TestStoreLoadUsesPersistedBoard(t *testing.T) {
	ctx := context.Background()
	saved, err := EncodeBoard(domain.Board{
		Lists:         []domain.List{{ID: "l9", Title: "Mine", Cards: []domain.Card{}}},
		Labels:        []domain.Label{},
		ActiveFilters: []string{},
		TaskStatuses:  domain.DefaultStatusCatalog(),
	})
	if err != nil {
		t.Fatalf("EncodeBoard() error = %v", err)
	}
	store := newTestStore(t, &fakeBlobStore{data: saved})
	board := store.LoadBoard(ctx)
	if len(board.Lists) != 1 || board.Lists[0].ID != "l9" {
		t.Fatalf("persisted board not used: %v", board.Lists)
	}
}

func TestStoreDispatchPersists(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBlobStore{}
	store := newTestStore(t, repo)
	store.LoadBoard(ctx)

	if err := store.AddList(ctx, "New list"); err != nil {
		t.Fatalf("AddList() error = %v", err)
	}
	if repo.saves != 1 {
		t.Fatalf("expected 1 save, got %d", repo.saves)
	}
	reloaded, err := DecodeBoard(repo.data)
	if err != nil {
		t.Fatalf("DecodeBoard() error = %v", err)
	}
	if len(reloaded.Lists) != len(store.Board().Lists) {
		t.Fatal("persisted blob does not match the aggregate")
	}
}

func TestStoreSaveFailureDoesNotRollBack(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBlobStore{saveErr: errors.New("disk full")}
	store := newTestStore(t, repo)
	store.LoadBoard(ctx)
	before := len(store.Board().Lists)

	if err := store.AddList(ctx, "Survives anyway"); err != nil {
		t.Fatalf("AddList() error = %v", err)
	}
	if len(store.Board().Lists) != before+1 {
		t.Fatal("failed save rolled back the state transition")
	}
}

func TestStoreEmptyTitlesRejectedBeforeDispatch(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBlobStore{}
	store := newTestStore(t, repo)
	store.LoadBoard(ctx)

	if err := store.AddList(ctx, "   "); err == nil {
		t.Fatal("expected error for empty list title")
	}
	if err := store.AddCard(ctx, "list-1", ""); err == nil {
		t.Fatal("expected error for empty card title")
	}
	if err := store.EditCard(ctx, "list-1", "card-1", "  ", "desc"); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if repo.saves != 0 {
		t.Fatalf("rejected input still dispatched: %d saves", repo.saves)
	}
}

func TestStoreToggleCardDone(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeBlobStore{})
	store.LoadBoard(ctx)

	store.ToggleCardDone(ctx, "card-1")
	card, _, _ := store.Board().FindCard("card-1")
	if card.Status != domain.StatusDone {
		t.Fatalf("status = %q, want done", card.Status)
	}
	if card.StatusUpdatedAt == nil {
		t.Fatal("manual change did not stamp statusUpdatedAt")
	}

	store.ToggleCardDone(ctx, "card-1")
	card, _, _ = store.Board().FindCard("card-1")
	if card.Status != domain.StatusTodo {
		t.Fatalf("status = %q, want todo", card.Status)
	}

	// Unknown cards dispatch nothing.
	saves := store.Board().CardCount()
	store.ToggleCardDone(ctx, "ghost")
	if store.Board().CardCount() != saves {
		t.Fatal("toggling a missing card changed the board")
	}
}

func TestStoreMarkListComplete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeBlobStore{})
	store.LoadBoard(ctx)

	store.ToggleCardDone(ctx, "card-2")
	store.MarkListComplete(ctx, "list-1")
	for _, card := range store.Board().Lists[0].Cards {
		if card.Status != domain.StatusDone {
			t.Fatalf("card %q not done after MarkListComplete", card.ID)
		}
	}
}

func TestStoreSetCardDueDatePrecomputesStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeBlobStore{})
	store.LoadBoard(ctx)

	due := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)
	store.SetCardDueDate(ctx, "card-1", &due)
	card, _, _ := store.Board().FindCard("card-1")
	if card.Status != domain.StatusThisWeek {
		t.Fatalf("status = %q, want this-week", card.Status)
	}

	// Done stays done when a due date is set afterwards.
	store.ToggleCardDone(ctx, "card-1")
	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	store.SetCardDueDate(ctx, "card-1", &past)
	card, _, _ = store.Board().FindCard("card-1")
	if card.Status != domain.StatusDone {
		t.Fatalf("status = %q, want sticky done", card.Status)
	}
}

func TestStoreRefreshStatuses(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeBlobStore{})
	store.LoadBoard(ctx)

	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	store.SetCardDueDate(ctx, "card-3", &past)
	store.RefreshStatuses(ctx)
	card, _, _ := store.Board().FindCard("card-3")
	if card.Status != domain.StatusMissed {
		t.Fatalf("status = %q, want missed", card.Status)
	}

	// Idempotent: a second sweep changes nothing.
	before := store.Board()
	store.RefreshStatuses(ctx)
	after, _, _ := store.Board().FindCard("card-3")
	if after.Status != domain.StatusMissed || store.Board().CardCount() != before.CardCount() {
		t.Fatal("second sweep changed the board")
	}
}

func TestStoreDragSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeBlobStore{})
	store.LoadBoard(ctx)
	if err := store.AddList(ctx, "Second"); err != nil {
		t.Fatalf("AddList() error = %v", err)
	}
	secondID := store.Board().Lists[1].ID

	store.DragStart("card-1")
	if store.Dragging() != "card-1" {
		t.Fatalf("Dragging() = %q", store.Dragging())
	}
	store.DragEnd(ctx, secondID)
	if store.Dragging() != "" {
		t.Fatal("drag still active after drop")
	}
	if _, listID, _ := store.Board().FindCard("card-1"); listID != secondID {
		t.Fatalf("card-1 in %q, want %q", listID, secondID)
	}

	// Cancelled drags dispatch nothing.
	store.DragStart("card-2")
	store.DragCancel()
	store.DragEnd(ctx, secondID)
	if _, listID, _ := store.Board().FindCard("card-2"); listID != "list-1" {
		t.Fatal("cancelled drag moved the card")
	}

	// Dropping outside any target is always a no-op.
	store.DragStart("card-2")
	store.DragEnd(ctx, "")
	if _, listID, _ := store.Board().FindCard("card-2"); listID != "list-1" {
		t.Fatal("drop outside a target moved the card")
	}
}

func TestStoreLabelFlows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, &fakeBlobStore{})
	store.LoadBoard(ctx)

	if err := store.CreateLabel(ctx, "Infra", domain.ColorCyan); err != nil {
		t.Fatalf("CreateLabel() error = %v", err)
	}
	var labelID string
	for _, label := range store.Board().Labels {
		if label.Text == "Infra" {
			labelID = label.ID
		}
	}
	if labelID == "" {
		t.Fatal("created label not found")
	}

	store.ToggleCardLabel(ctx, "list-1", "card-1", labelID)
	card, _, _ := store.Board().FindCard("card-1")
	if !card.HasLabel(labelID) {
		t.Fatal("label not attached to card")
	}

	store.ToggleFilter(ctx, labelID)
	if !store.Board().HasActiveFilter(labelID) {
		t.Fatal("filter not active")
	}
	visible := store.VisibleLists()
	if len(visible[0].Cards) != 1 || visible[0].Cards[0].ID != "card-1" {
		t.Fatalf("projection = %v", visible[0].Cards)
	}

	store.DeleteLabel(ctx, labelID)
	if store.Board().HasActiveFilter(labelID) {
		t.Fatal("deleting the label left its filter active")
	}
	card, _, _ = store.Board().FindCard("card-1")
	if card.HasLabel(labelID) {
		t.Fatal("deleting the label left the card reference")
	}

	if err := store.UpdateLabel(ctx, "label-work", "Office", domain.ColorIndigo); err != nil {
		t.Fatalf("UpdateLabel() error = %v", err)
	}
	label, _ := store.Board().FindLabel("label-work")
	if label.Text != "Office" || label.Color != domain.ColorIndigo {
		t.Fatalf("label not updated: %+v", label)
	}
}

func TestStoreDispatchNilActionIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := &fakeBlobStore{}
	store := newTestStore(t, repo)
	store.LoadBoard(ctx)
	store.Dispatch(ctx, nil)
	if repo.saves != 0 {
		t.Fatal("nil action triggered a save")
	}
	var action engine.Action
	store.Dispatch(ctx, action)
	if repo.saves != 0 {
		t.Fatal("typed nil action triggered a save")
	}
}
