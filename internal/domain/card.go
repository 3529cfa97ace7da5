package domain

import (
	"strings"
	"time"
)

// Card is one board item. LabelIDs are non-owning references into the
// board's label set; an id with no matching label is simply not rendered.
type Card struct {
	ID              string
	Title           string
	Description     string
	LabelIDs        []string
	Status          StatusID
	DueDate         *time.Time
	StatusUpdatedAt *time.Time
}

// NewCard validates and constructs a card in the default todo status.
func NewCard(id, title, description string) (Card, error) {
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)
	if id == "" {
		return Card{}, ErrInvalidID
	}
	if title == "" {
		return Card{}, ErrInvalidTitle
	}
	return Card{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      StatusTodo,
	}, nil
}

// HasLabel reports whether the card references the label id.
func (c Card) HasLabel(labelID string) bool {
	for _, id := range c.LabelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}
