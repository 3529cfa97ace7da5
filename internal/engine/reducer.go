package engine

import "github.com/hylla/tavla/internal/domain"

// Reduce is the single transition function over the board aggregate. It is
// total: it never panics, never mutates its input, and returns the input
// unchanged for nil or unknown actions and for any referential miss.
func Reduce(board domain.Board, action Action) domain.Board {
	switch a := action.(type) {
	case AddList:
		return withLists(board, appendList(board.Lists, a.List))

	case EditListTitle:
		return withLists(board, mapLists(board.Lists, func(list domain.List) domain.List {
			if list.ID == a.ListID {
				list.Title = a.Title
			}
			return list
		}))

	case DeleteList:
		return withLists(board, filterLists(board.Lists, a.ListID))

	case MoveList:
		return reduceMoveList(board, a)

	case AddCard:
		return withLists(board, mapLists(board.Lists, func(list domain.List) domain.List {
			if list.ID == a.ListID {
				list.Cards = appendCard(list.Cards, a.Card)
			}
			return list
		}))

	case RemoveCard:
		return withLists(board, mapLists(board.Lists, func(list domain.List) domain.List {
			if list.ID == a.ListID {
				list.Cards = filterCards(list.Cards, a.CardID)
			}
			return list
		}))

	case EditCard:
		return withLists(board, mapCards(board.Lists, a.ListID, a.CardID, func(card domain.Card) domain.Card {
			card.Title = a.Title
			card.Description = a.Description
			return card
		}))

	case MoveCard:
		return reduceMoveCard(board, a)

	case AddLabel:
		labels := make([]domain.Label, 0, len(board.Labels)+1)
		labels = append(labels, board.Labels...)
		board.Labels = append(labels, a.Label)
		return board

	case EditLabel:
		labels := make([]domain.Label, len(board.Labels))
		for i, label := range board.Labels {
			if label.ID == a.LabelID {
				label.Text = a.Text
				label.Color = a.Color
			}
			labels[i] = label
		}
		board.Labels = labels
		return board

	case DeleteLabel:
		return reduceDeleteLabel(board, a)

	case AddLabelToCard:
		return withLists(board, mapCards(board.Lists, a.ListID, a.CardID, func(card domain.Card) domain.Card {
			if card.HasLabel(a.LabelID) {
				return card
			}
			ids := make([]string, 0, len(card.LabelIDs)+1)
			ids = append(ids, card.LabelIDs...)
			card.LabelIDs = append(ids, a.LabelID)
			return card
		}))

	case RemoveLabelFromCard:
		return withLists(board, mapCards(board.Lists, a.ListID, a.CardID, func(card domain.Card) domain.Card {
			card.LabelIDs = removeString(card.LabelIDs, a.LabelID)
			return card
		}))

	case ToggleLabelFilter:
		if board.HasActiveFilter(a.LabelID) {
			board.ActiveFilters = removeString(board.ActiveFilters, a.LabelID)
		} else {
			filters := make([]string, 0, len(board.ActiveFilters)+1)
			filters = append(filters, board.ActiveFilters...)
			board.ActiveFilters = append(filters, a.LabelID)
		}
		return board

	case ClearAllFilters:
		board.ActiveFilters = []string{}
		return board

	case UpdateCardStatus:
		return withLists(board, mapCardEverywhere(board.Lists, a.CardID, func(card domain.Card) domain.Card {
			at := a.At
			card.Status = a.Status
			card.StatusUpdatedAt = &at
			return card
		}))

	case UpdateCardDueDate:
		return withLists(board, mapCardEverywhere(board.Lists, a.CardID, func(card domain.Card) domain.Card {
			card.DueDate = a.DueDate
			card.Status = a.NewStatus
			return card
		}))

	case RefreshAllStatuses:
		if len(a.CardStatuses) == 0 {
			return board
		}
		return withLists(board, mapLists(board.Lists, func(list domain.List) domain.List {
			cards := make([]domain.Card, len(list.Cards))
			for i, card := range list.Cards {
				if status, ok := a.CardStatuses[card.ID]; ok {
					card.Status = status
				}
				cards[i] = card
			}
			list.Cards = cards
			return list
		}))

	default:
		// Unknown action kinds leave the board untouched.
		return board
	}
}

// reduceMoveCard removes the card from the source list first, then inserts
// it into the destination. The insertion index is looked up after the
// removal, which matters when source and destination are the same list.
func reduceMoveCard(board domain.Board, a MoveCard) domain.Board {
	if _, ok := board.FindList(a.DestListID); !ok {
		return board
	}

	var moved *domain.Card
	without := make([]domain.List, len(board.Lists))
	for i, list := range board.Lists {
		if list.ID == a.SourceListID {
			cards := make([]domain.Card, 0, len(list.Cards))
			for _, card := range list.Cards {
				if card.ID == a.CardID {
					c := card
					moved = &c
					continue
				}
				cards = append(cards, card)
			}
			list.Cards = cards
		}
		without[i] = list
	}
	if moved == nil {
		return board
	}

	for i, list := range without {
		if list.ID != a.DestListID {
			continue
		}
		index := len(list.Cards)
		if a.OverCardID != "" {
			if over := indexOfCard(list.Cards, a.OverCardID); over >= 0 {
				index = over
			}
		}
		cards := make([]domain.Card, 0, len(list.Cards)+1)
		cards = append(cards, list.Cards[:index]...)
		cards = append(cards, *moved)
		cards = append(cards, list.Cards[index:]...)
		list.Cards = cards
		without[i] = list
		break
	}
	return withLists(board, without)
}

// reduceMoveList applies splice semantics: remove at the source index, then
// insert at the destination index of the already-shortened sequence.
func reduceMoveList(board domain.Board, a MoveList) domain.Board {
	if a.SourceIndex < 0 || a.SourceIndex >= len(board.Lists) {
		return board
	}
	lists := make([]domain.List, 0, len(board.Lists))
	lists = append(lists, board.Lists...)
	moved := lists[a.SourceIndex]
	lists = append(lists[:a.SourceIndex], lists[a.SourceIndex+1:]...)

	dest := a.DestinationIndex
	if dest < 0 {
		dest = 0
	}
	if dest > len(lists) {
		dest = len(lists)
	}
	lists = append(lists, domain.List{})
	copy(lists[dest+1:], lists[dest:])
	lists[dest] = moved
	return withLists(board, lists)
}

// reduceDeleteLabel cascades: the label leaves the label set, every card's
// reference set, and the active filter set in one transition.
func reduceDeleteLabel(board domain.Board, a DeleteLabel) domain.Board {
	labels := make([]domain.Label, 0, len(board.Labels))
	for _, label := range board.Labels {
		if label.ID != a.LabelID {
			labels = append(labels, label)
		}
	}
	board.Labels = labels
	board.ActiveFilters = removeString(board.ActiveFilters, a.LabelID)
	return withLists(board, mapLists(board.Lists, func(list domain.List) domain.List {
		cards := make([]domain.Card, len(list.Cards))
		for i, card := range list.Cards {
			card.LabelIDs = removeString(card.LabelIDs, a.LabelID)
			cards[i] = card
		}
		list.Cards = cards
		return list
	}))
}

func withLists(board domain.Board, lists []domain.List) domain.Board {
	board.Lists = lists
	return board
}

func appendList(lists []domain.List, list domain.List) []domain.List {
	out := make([]domain.List, 0, len(lists)+1)
	out = append(out, lists...)
	return append(out, list)
}

func filterLists(lists []domain.List, listID string) []domain.List {
	out := make([]domain.List, 0, len(lists))
	for _, list := range lists {
		if list.ID != listID {
			out = append(out, list)
		}
	}
	return out
}

func mapLists(lists []domain.List, fn func(domain.List) domain.List) []domain.List {
	out := make([]domain.List, len(lists))
	for i, list := range lists {
		out[i] = fn(list)
	}
	return out
}

// mapCards rewrites one card addressed by list id and card id.
func mapCards(lists []domain.List, listID, cardID string, fn func(domain.Card) domain.Card) []domain.List {
	return mapLists(lists, func(list domain.List) domain.List {
		if list.ID != listID {
			return list
		}
		cards := make([]domain.Card, len(list.Cards))
		for i, card := range list.Cards {
			if card.ID == cardID {
				card = fn(card)
			}
			cards[i] = card
		}
		list.Cards = cards
		return list
	})
}

// mapCardEverywhere rewrites one card addressed by card id alone.
func mapCardEverywhere(lists []domain.List, cardID string, fn func(domain.Card) domain.Card) []domain.List {
	return mapLists(lists, func(list domain.List) domain.List {
		if !list.ContainsCard(cardID) {
			return list
		}
		cards := make([]domain.Card, len(list.Cards))
		for i, card := range list.Cards {
			if card.ID == cardID {
				card = fn(card)
			}
			cards[i] = card
		}
		list.Cards = cards
		return list
	})
}

func appendCard(cards []domain.Card, card domain.Card) []domain.Card {
	out := make([]domain.Card, 0, len(cards)+1)
	out = append(out, cards...)
	return append(out, card)
}

func filterCards(cards []domain.Card, cardID string) []domain.Card {
	out := make([]domain.Card, 0, len(cards))
	for _, card := range cards {
		if card.ID != cardID {
			out = append(out, card)
		}
	}
	return out
}

func indexOfCard(cards []domain.Card, cardID string) int {
	for i, card := range cards {
		if card.ID == cardID {
			return i
		}
	}
	return -1
}

func removeString(in []string, value string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != value {
			out = append(out, s)
		}
	}
	return out
}
