package domain

// Board is the aggregate root: every list, card, label, active filter, and
// the status catalog live in one value. Nothing outside the board aliases
// its contents; transitions always produce a fresh Board value.
type Board struct {
	Lists         []List
	Labels        []Label
	ActiveFilters []string
	TaskStatuses  []StatusDefinition
}

// FindList returns the list with the given id.
func (b Board) FindList(listID string) (List, bool) {
	for _, list := range b.Lists {
		if list.ID == listID {
			return list, true
		}
	}
	return List{}, false
}

// FindCard searches every list for the card and reports its owning list id.
func (b Board) FindCard(cardID string) (Card, string, bool) {
	for _, list := range b.Lists {
		for _, card := range list.Cards {
			if card.ID == cardID {
				return card, list.ID, true
			}
		}
	}
	return Card{}, "", false
}

// FindLabel returns the label with the given id.
func (b Board) FindLabel(labelID string) (Label, bool) {
	for _, label := range b.Labels {
		if label.ID == labelID {
			return label, true
		}
	}
	return Label{}, false
}

// CardCount counts cards across all lists.
func (b Board) CardCount() int {
	n := 0
	for _, list := range b.Lists {
		n += len(list.Cards)
	}
	return n
}

// LabelUsageCount counts how many cards carry the label.
func (b Board) LabelUsageCount(labelID string) int {
	n := 0
	for _, list := range b.Lists {
		for _, card := range list.Cards {
			if card.HasLabel(labelID) {
				n++
			}
		}
	}
	return n
}

// HasActiveFilter reports whether the label id is part of the active filter set.
func (b Board) HasActiveFilter(labelID string) bool {
	for _, id := range b.ActiveFilters {
		if id == labelID {
			return true
		}
	}
	return false
}
