package engine

import "github.com/hylla/tavla/internal/domain"

// ResolveDrag interprets a drag-end against the current board snapshot and
// returns the move action it implies, or nil when the drop resolves to
// nothing. activeID is the element that started dragging, overID the
// element under the pointer at release; an empty overID means the drop
// landed outside any valid target.
//
// Resolution must run against the snapshot current at drag-end, not one
// captured at drag-start: a status sweep or any other action in between
// would otherwise desynchronize the indices.
func ResolveDrag(board domain.Board, activeID, overID string) Action {
	if activeID == "" || overID == "" || activeID == overID {
		return nil
	}

	// A drag that started on a list id is a list reorder.
	if _, ok := board.FindList(activeID); ok {
		return resolveListMove(board, activeID, overID)
	}

	// Otherwise search every list's cards; a drag-start on an element that
	// has since been deleted resolves to nothing.
	sourceListID := ""
	for _, list := range board.Lists {
		if list.ContainsCard(activeID) {
			sourceListID = list.ID
			break
		}
	}
	if sourceListID == "" {
		return nil
	}

	// The drop target is a list id, or a card whose owning list becomes the
	// destination.
	destListID := ""
	overCardID := ""
	if _, ok := board.FindList(overID); ok {
		destListID = overID
	} else {
		for _, list := range board.Lists {
			if list.ContainsCard(overID) {
				destListID = list.ID
				overCardID = overID
				break
			}
		}
	}
	if destListID == "" {
		return nil
	}

	return MoveCard{
		CardID:       activeID,
		SourceListID: sourceListID,
		DestListID:   destListID,
		OverCardID:   overCardID,
	}
}

func resolveListMove(board domain.Board, activeID, overID string) Action {
	sourceIndex := -1
	destIndex := -1
	for i, list := range board.Lists {
		switch list.ID {
		case activeID:
			sourceIndex = i
		case overID:
			destIndex = i
		}
	}
	if sourceIndex < 0 || destIndex < 0 || sourceIndex == destIndex {
		return nil
	}
	return MoveList{SourceIndex: sourceIndex, DestinationIndex: destIndex}
}
