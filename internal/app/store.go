package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hylla/tavla/internal/domain"
	"github.com/hylla/tavla/internal/engine"
)

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Store holds the current board aggregate and is the single entry point
// for mutating it. Every change goes board -> Reduce -> new board, then a
// fire-and-forget save; a failed save is logged and ignored, never rolled
// back. The store is not safe for concurrent use: all dispatches come from
// one synchronous actor.
type Store struct {
	repo   BoardStore
	idGen  IDGenerator
	clock  Clock
	logger *charmLog.Logger

	board      domain.Board
	dragActive string
}

// NewStore constructs a store around the persistence collaborator.
func NewStore(repo BoardStore, idGen IDGenerator, clock Clock, logger *charmLog.Logger) *Store {
	if idGen == nil {
		idGen = uuid.NewString
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = charmLog.New(io.Discard)
	}
	return &Store{
		repo:   repo,
		idGen:  idGen,
		clock:  clock,
		logger: logger,
		board:  domain.SeedBoard(),
	}
}

// LoadBoard reads the persisted aggregate. A missing, malformed, or
// incomplete blob falls back to the seeded tutorial board; that is never a
// user-facing error.
func (s *Store) LoadBoard(ctx context.Context) domain.Board {
	data, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("no persisted board, seeding default")
		} else {
			s.logger.Warn("load board failed, seeding default", "err", err)
		}
		s.board = domain.SeedBoard()
		return s.board
	}
	board, err := DecodeBoard(data)
	if err != nil {
		s.logger.Warn("persisted board unreadable, seeding default", "err", err)
		s.board = domain.SeedBoard()
		return s.board
	}
	s.board = board
	s.logger.Debug("board loaded", "lists", len(board.Lists), "cards", board.CardCount())
	return s.board
}

// Board returns the current aggregate snapshot.
func (s *Store) Board() domain.Board {
	return s.board
}

// ReplaceBoard swaps the whole aggregate and persists it. Used by the
// import command; the reducer is bypassed on purpose.
func (s *Store) ReplaceBoard(ctx context.Context, board domain.Board) {
	s.board = board
	s.persist(ctx)
}

// VisibleLists returns the filtered projection for rendering.
func (s *Store) VisibleLists() []domain.List {
	return engine.Project(s.board)
}

// Dispatch runs one action through the reducer and persists the result.
func (s *Store) Dispatch(ctx context.Context, action engine.Action) domain.Board {
	if action == nil {
		return s.board
	}
	s.board = engine.Reduce(s.board, action)
	s.persist(ctx)
	return s.board
}

// persist saves the aggregate as a side effect of a state change. Failures
// must not surface: the in-memory transition already happened.
func (s *Store) persist(ctx context.Context) {
	data, err := EncodeBoard(s.board)
	if err != nil {
		s.logger.Warn("encode board failed", "err", err)
		return
	}
	if err := s.repo.Save(ctx, data); err != nil {
		s.logger.Warn("save board failed", "err", err)
	}
}

// DragStart records the element a drag began on.
func (s *Store) DragStart(activeID string) {
	s.dragActive = activeID
}

// DragEnd resolves the drop against the current snapshot and dispatches the
// implied move. An empty overID, or a drop that resolves to nothing, leaves
// the board unchanged.
func (s *Store) DragEnd(ctx context.Context, overID string) domain.Board {
	activeID := s.dragActive
	s.dragActive = ""
	action := engine.ResolveDrag(s.board, activeID, overID)
	if action == nil {
		return s.board
	}
	return s.Dispatch(ctx, action)
}

// DragCancel clears the active drag without dispatching anything.
func (s *Store) DragCancel() {
	s.dragActive = ""
}

// Dragging reports the id of the element currently being dragged, if any.
func (s *Store) Dragging() string {
	return s.dragActive
}

// AddList validates the title at the call site and appends a new list.
func (s *Store) AddList(ctx context.Context, title string) error {
	list, err := domain.NewList(s.idGen(), title)
	if err != nil {
		return err
	}
	s.Dispatch(ctx, engine.AddList{List: list})
	return nil
}

// EditListTitle renames a list; an empty title is rejected before dispatch.
func (s *Store) EditListTitle(ctx context.Context, listID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	s.Dispatch(ctx, engine.EditListTitle{ListID: listID, Title: title})
	return nil
}

// DeleteList removes a list and every card it owns.
func (s *Store) DeleteList(ctx context.Context, listID string) {
	s.Dispatch(ctx, engine.DeleteList{ListID: listID})
}

// AddCard validates the title at the call site and appends a new card.
func (s *Store) AddCard(ctx context.Context, listID, title string) error {
	card, err := domain.NewCard(s.idGen(), title, "")
	if err != nil {
		return err
	}
	s.Dispatch(ctx, engine.AddCard{ListID: listID, Card: card})
	return nil
}

// EditCard replaces a card's title and description; empty titles never
// reach the reducer.
func (s *Store) EditCard(ctx context.Context, listID, cardID, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	s.Dispatch(ctx, engine.EditCard{
		ListID:      listID,
		CardID:      cardID,
		Title:       title,
		Description: strings.TrimSpace(description),
	})
	return nil
}

// RemoveCard deletes a card from its list.
func (s *Store) RemoveCard(ctx context.Context, listID, cardID string) {
	s.Dispatch(ctx, engine.RemoveCard{ListID: listID, CardID: cardID})
}

// ToggleCardDone flips a card between done and todo. This is the only
// gate through which manual statuses enter the board, which keeps them to
// exactly those two values.
func (s *Store) ToggleCardDone(ctx context.Context, cardID string) {
	card, _, ok := s.board.FindCard(cardID)
	if !ok {
		return
	}
	status := domain.StatusDone
	if card.Status == domain.StatusDone {
		status = domain.StatusTodo
	}
	s.Dispatch(ctx, engine.UpdateCardStatus{CardID: cardID, Status: status, At: s.clock()})
}

// MarkListComplete sets every non-done card in the list to done, one
// dispatch per card through the same queue as any user action.
func (s *Store) MarkListComplete(ctx context.Context, listID string) {
	list, ok := s.board.FindList(listID)
	if !ok {
		return
	}
	for _, card := range list.Cards {
		if card.Status == domain.StatusDone {
			continue
		}
		s.Dispatch(ctx, engine.UpdateCardStatus{CardID: card.ID, Status: domain.StatusDone, At: s.clock()})
	}
}

// SetCardDueDate sets or clears a card's due date. The status the reducer
// receives is precomputed here: a manually completed card stays done,
// anything else gets its due-date bucket.
func (s *Store) SetCardDueDate(ctx context.Context, cardID string, dueDate *time.Time) {
	card, _, ok := s.board.FindCard(cardID)
	if !ok {
		return
	}
	newStatus := domain.ComputeStatus(dueDate, card.Status, true, s.clock())
	s.Dispatch(ctx, engine.UpdateCardDueDate{CardID: cardID, DueDate: dueDate, NewStatus: newStatus})
}

// RefreshStatuses recomputes every card's status bucket and applies the
// result as one bulk action. The periodic sweep calls this; running it
// twice in a row is harmless.
func (s *Store) RefreshStatuses(ctx context.Context) {
	statuses := domain.ComputeAllStatuses(s.board, s.clock())
	s.Dispatch(ctx, engine.RefreshAllStatuses{CardStatuses: statuses})
}

// CreateLabel validates and appends a new label.
func (s *Store) CreateLabel(ctx context.Context, text string, color domain.LabelColor) error {
	label, err := domain.NewLabel(s.idGen(), text, color)
	if err != nil {
		return err
	}
	s.Dispatch(ctx, engine.AddLabel{Label: label})
	return nil
}

// UpdateLabel replaces a label's text and color.
func (s *Store) UpdateLabel(ctx context.Context, labelID, text string, color domain.LabelColor) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrInvalidText
	}
	if !color.IsValid() {
		return domain.ErrInvalidColor
	}
	s.Dispatch(ctx, engine.EditLabel{LabelID: labelID, Text: text, Color: color})
	return nil
}

// DeleteLabel removes a label with its cascades.
func (s *Store) DeleteLabel(ctx context.Context, labelID string) {
	s.Dispatch(ctx, engine.DeleteLabel{LabelID: labelID})
}

// ToggleCardLabel adds or removes one label reference on a card.
func (s *Store) ToggleCardLabel(ctx context.Context, listID, cardID, labelID string) {
	card, _, ok := s.board.FindCard(cardID)
	if !ok {
		return
	}
	if card.HasLabel(labelID) {
		s.Dispatch(ctx, engine.RemoveLabelFromCard{ListID: listID, CardID: cardID, LabelID: labelID})
		return
	}
	s.Dispatch(ctx, engine.AddLabelToCard{ListID: listID, CardID: cardID, LabelID: labelID})
}

// ToggleFilter flips one label id in the active filter set.
func (s *Store) ToggleFilter(ctx context.Context, labelID string) {
	s.Dispatch(ctx, engine.ToggleLabelFilter{LabelID: labelID})
}

// ClearFilters empties the active filter set.
func (s *Store) ClearFilters(ctx context.Context) {
	s.Dispatch(ctx, engine.ClearAllFilters{})
}
