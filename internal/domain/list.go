package domain

import "strings"

// List is one ordered column of cards. Slice order is display and drag order.
type List struct {
	ID    string
	Title string
	Cards []Card
}

// NewList validates and constructs an empty list.
func NewList(id, title string) (List, error) {
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)
	if id == "" {
		return List{}, ErrInvalidID
	}
	if title == "" {
		return List{}, ErrInvalidTitle
	}
	return List{ID: id, Title: title, Cards: []Card{}}, nil
}

// FindCard returns the card with the given id within this list.
func (l List) FindCard(cardID string) (Card, bool) {
	for _, card := range l.Cards {
		if card.ID == cardID {
			return card, true
		}
	}
	return Card{}, false
}

// ContainsCard reports whether a card with the given id is in this list.
func (l List) ContainsCard(cardID string) bool {
	_, ok := l.FindCard(cardID)
	return ok
}
