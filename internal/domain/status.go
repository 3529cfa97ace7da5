package domain

import (
	"math"
	"slices"
	"time"
)

// StatusID identifies one entry of the fixed status catalog.
type StatusID string

const (
	StatusTodo     StatusID = "todo"
	StatusDueToday StatusID = "due-today"
	StatusThisWeek StatusID = "this-week"
	StatusLater    StatusID = "later"
	StatusDone     StatusID = "done"
	StatusMissed   StatusID = "missed"
)

var validStatuses = []StatusID{
	StatusTodo, StatusDueToday, StatusThisWeek, StatusLater, StatusDone, StatusMissed,
}

// IsValid reports whether the id belongs to the fixed catalog.
func (s StatusID) IsValid() bool {
	return slices.Contains(validStatuses, s)
}

// ParseStatus maps a stored status value to a catalog id. Empty means the
// default todo; anything outside the catalog fails with ErrInvalidStatus.
func ParseStatus(raw string) (StatusID, error) {
	if raw == "" {
		return StatusTodo, nil
	}
	s := StatusID(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// StatusDefinition is one catalog entry. The catalog is seeded at board
// creation and is not user-extensible.
type StatusDefinition struct {
	ID    StatusID
	Name  string
	Color string
}

// DefaultStatusCatalog returns the fixed six-entry catalog.
func DefaultStatusCatalog() []StatusDefinition {
	return []StatusDefinition{
		{ID: StatusTodo, Name: "To Do", Color: "gray"},
		{ID: StatusDueToday, Name: "Due Today", Color: "orange"},
		{ID: StatusThisWeek, Name: "This Week", Color: "yellow"},
		{ID: StatusLater, Name: "Later", Color: "blue"},
		{ID: StatusDone, Name: "Done", Color: "green"},
		{ID: StatusMissed, Name: "Missed", Color: "red"},
	}
}

// ComputeStatus maps a due date and the card's current status to a status
// bucket. Without a due date the current status is kept (todo if unset).
// A manually completed card stays done while preserveManual is set; only an
// explicit user toggle back to todo reopens it.
func ComputeStatus(dueDate *time.Time, current StatusID, preserveManual bool, now time.Time) StatusID {
	if current == "" {
		current = StatusTodo
	}
	if dueDate == nil {
		return current
	}
	if current == StatusDone && preserveManual {
		return StatusDone
	}

	// Compare calendar days in local time, time-of-day truncated to midnight.
	due := midnight(*dueDate)
	today := midnight(now)
	daysDiff := int(math.Ceil(due.Sub(today).Hours() / 24))

	switch {
	case daysDiff < 0:
		return StatusMissed
	case daysDiff == 0:
		return StatusDueToday
	case daysDiff <= 7:
		return StatusThisWeek
	default:
		return StatusLater
	}
}

// ComputeAllStatuses computes the status bucket for every card on the board,
// keyed by card id. Manual done statuses are preserved.
func ComputeAllStatuses(b Board, now time.Time) map[string]StatusID {
	statuses := make(map[string]StatusID, b.CardCount())
	for _, list := range b.Lists {
		for _, card := range list.Cards {
			statuses[card.ID] = ComputeStatus(card.DueDate, card.Status, true, now)
		}
	}
	return statuses
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
