package engine

import (
	"time"

	"github.com/hylla/tavla/internal/domain"
)

// Action is the closed set of board transitions. Every mutation of the
// aggregate passes through Reduce with one of these variants; callers
// construct payloads, the reducer mirrors them without validating.
type Action interface {
	isAction()
}

// AddList appends a list to the end of the board.
type AddList struct {
	List domain.List
}

// EditListTitle replaces a list's title only.
type EditListTitle struct {
	ListID string
	Title  string
}

// DeleteList removes a list and all cards it owns.
type DeleteList struct {
	ListID string
}

// MoveList removes the list at SourceIndex and reinserts it at
// DestinationIndex using splice semantics against the shortened sequence.
type MoveList struct {
	SourceIndex      int
	DestinationIndex int
}

// AddCard appends a card to the target list.
type AddCard struct {
	ListID string
	Card   domain.Card
}

// RemoveCard deletes a card by id within one list.
type RemoveCard struct {
	ListID string
	CardID string
}

// EditCard replaces a card's title and description, the only two editable
// base fields.
type EditCard struct {
	ListID      string
	CardID      string
	Title       string
	Description string
}

// MoveCard removes the card from the source list and inserts it into the
// destination list before OverCardID, or at the end when OverCardID is
// empty or absent.
type MoveCard struct {
	CardID       string
	SourceListID string
	DestListID   string
	OverCardID   string
}

// AddLabel appends a label to the board's label set.
type AddLabel struct {
	Label domain.Label
}

// EditLabel replaces a label's text and color.
type EditLabel struct {
	LabelID string
	Text    string
	Color   domain.LabelColor
}

// DeleteLabel removes the label and strips its id from every card and from
// the active filter set.
type DeleteLabel struct {
	LabelID string
}

// AddLabelToCard adds the label reference to the card if not already
// present; adding twice is a no-op.
type AddLabelToCard struct {
	ListID  string
	CardID  string
	LabelID string
}

// RemoveLabelFromCard drops the label reference from the card if present.
type RemoveLabelFromCard struct {
	ListID  string
	CardID  string
	LabelID string
}

// ToggleLabelFilter adds the label id to the active filter set if absent
// and removes it if present.
type ToggleLabelFilter struct {
	LabelID string
}

// ClearAllFilters empties the active filter set.
type ClearAllFilters struct{}

// UpdateCardStatus sets a card's status directly and stamps the time of the
// manual change. Callers gate the value; the reducer mirrors it.
type UpdateCardStatus struct {
	CardID string
	Status domain.StatusID
	At     time.Time
}

// UpdateCardDueDate sets the due date and overwrites the status with a
// value the caller precomputed; the reducer never derives statuses itself.
type UpdateCardDueDate struct {
	CardID    string
	DueDate   *time.Time
	NewStatus domain.StatusID
}

// RefreshAllStatuses bulk-overwrites card statuses from a precomputed map.
// Cards absent from the map are left untouched.
type RefreshAllStatuses struct {
	CardStatuses map[string]domain.StatusID
}

func (AddList) isAction()             {}
func (EditListTitle) isAction()       {}
func (DeleteList) isAction()          {}
func (MoveList) isAction()            {}
func (AddCard) isAction()             {}
func (RemoveCard) isAction()          {}
func (EditCard) isAction()            {}
func (MoveCard) isAction()            {}
func (AddLabel) isAction()            {}
func (EditLabel) isAction()           {}
func (DeleteLabel) isAction()         {}
func (AddLabelToCard) isAction()      {}
func (RemoveLabelFromCard) isAction() {}
func (ToggleLabelFilter) isAction()   {}
func (ClearAllFilters) isAction()     {}
func (UpdateCardStatus) isAction()    {}
func (UpdateCardDueDate) isAction()   {}
func (RefreshAllStatuses) isAction()  {}
