package engine

import "github.com/hylla/tavla/internal/domain"

// Project derives the filtered read-only view of the board's lists. With no
// active filters it returns the board's own list slice untouched, so
// rendering the common case allocates nothing. With filters active, a card
// survives when its label set intersects the filter set (OR semantics);
// dangling label ids simply never match.
func Project(board domain.Board) []domain.List {
	if len(board.ActiveFilters) == 0 {
		return board.Lists
	}

	active := make(map[string]struct{}, len(board.ActiveFilters))
	for _, id := range board.ActiveFilters {
		active[id] = struct{}{}
	}

	lists := make([]domain.List, len(board.Lists))
	for i, list := range board.Lists {
		cards := make([]domain.Card, 0, len(list.Cards))
		for _, card := range list.Cards {
			if cardMatchesFilters(card, active) {
				cards = append(cards, card)
			}
		}
		list.Cards = cards
		lists[i] = list
	}
	return lists
}

func cardMatchesFilters(card domain.Card, active map[string]struct{}) bool {
	for _, id := range card.LabelIDs {
		if _, ok := active[id]; ok {
			return true
		}
	}
	return false
}
