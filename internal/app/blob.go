package app

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hylla/tavla/internal/domain"
)

// The blob layer owns the wire shape of the persisted aggregate. Field
// names match the original localStorage schema so existing exports stay
// importable.

// blobBoard is the serialized aggregate.
type blobBoard struct {
	Lists         []blobList   `json:"lists"`
	Labels        []blobLabel  `json:"labels"`
	ActiveFilters []string     `json:"activeFilters"`
	TaskStatuses  []blobStatus `json:"taskStatuses"`
}

type blobList struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Cards []blobCard `json:"cards"`
}

type blobCard struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	LabelIDs        []string   `json:"labelIds,omitempty"`
	Status          string     `json:"status,omitempty"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	StatusUpdatedAt *time.Time `json:"statusUpdatedAt,omitempty"`
}

type blobLabel struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Text  string `json:"text"`
}

type blobStatus struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// EncodeBoard serializes the aggregate to its JSON wire form.
func EncodeBoard(board domain.Board) ([]byte, error) {
	blob := blobBoard{
		Lists:         make([]blobList, 0, len(board.Lists)),
		Labels:        make([]blobLabel, 0, len(board.Labels)),
		ActiveFilters: append([]string{}, board.ActiveFilters...),
		TaskStatuses:  make([]blobStatus, 0, len(board.TaskStatuses)),
	}
	for _, list := range board.Lists {
		cards := make([]blobCard, 0, len(list.Cards))
		for _, card := range list.Cards {
			cards = append(cards, blobCard{
				ID:              card.ID,
				Title:           card.Title,
				Description:     card.Description,
				LabelIDs:        append([]string(nil), card.LabelIDs...),
				Status:          string(card.Status),
				DueDate:         card.DueDate,
				StatusUpdatedAt: card.StatusUpdatedAt,
			})
		}
		blob.Lists = append(blob.Lists, blobList{ID: list.ID, Title: list.Title, Cards: cards})
	}
	for _, label := range board.Labels {
		blob.Labels = append(blob.Labels, blobLabel{ID: label.ID, Color: string(label.Color), Text: label.Text})
	}
	for _, def := range board.TaskStatuses {
		blob.TaskStatuses = append(blob.TaskStatuses, blobStatus{ID: string(def.ID), Name: def.Name, Color: def.Color})
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("encode board blob: %w", err)
	}
	return data, nil
}

// DecodeBoard deserializes a persisted aggregate. A blob that is not valid
// JSON or lacks array-typed lists/labels fails with ErrInvalidBlob, which
// callers answer with the seeded default. Absent activeFilters or
// taskStatuses are backfilled with their defaults instead: an older but
// well-formed schema migrates forward rather than resetting the board.
func DecodeBoard(data []byte) (domain.Board, error) {
	var raw struct {
		Lists         *[]blobList   `json:"lists"`
		Labels        *[]blobLabel  `json:"labels"`
		ActiveFilters *[]string     `json:"activeFilters"`
		TaskStatuses  *[]blobStatus `json:"taskStatuses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Board{}, fmt.Errorf("%w: %v", ErrInvalidBlob, err)
	}
	if raw.Lists == nil || raw.Labels == nil {
		return domain.Board{}, fmt.Errorf("%w: lists and labels must be arrays", ErrInvalidBlob)
	}

	board := domain.Board{
		Lists:  make([]domain.List, 0, len(*raw.Lists)),
		Labels: make([]domain.Label, 0, len(*raw.Labels)),
	}
	for _, list := range *raw.Lists {
		cards := make([]domain.Card, 0, len(list.Cards))
		for _, card := range list.Cards {
			status, err := domain.ParseStatus(card.Status)
			if err != nil {
				// A status outside the catalog came from an older or
				// foreign export; reset it and let the next sweep
				// re-bucket the card.
				status = domain.StatusTodo
			}
			cards = append(cards, domain.Card{
				ID:              card.ID,
				Title:           card.Title,
				Description:     card.Description,
				LabelIDs:        append([]string(nil), card.LabelIDs...),
				Status:          status,
				DueDate:         card.DueDate,
				StatusUpdatedAt: card.StatusUpdatedAt,
			})
		}
		board.Lists = append(board.Lists, domain.List{ID: list.ID, Title: list.Title, Cards: cards})
	}
	for _, label := range *raw.Labels {
		board.Labels = append(board.Labels, domain.Label{
			ID:    label.ID,
			Color: domain.LabelColor(label.Color),
			Text:  label.Text,
		})
	}

	if raw.ActiveFilters != nil {
		board.ActiveFilters = append([]string{}, *raw.ActiveFilters...)
	} else {
		board.ActiveFilters = []string{}
	}
	if raw.TaskStatuses != nil {
		board.TaskStatuses = make([]domain.StatusDefinition, 0, len(*raw.TaskStatuses))
		for _, def := range *raw.TaskStatuses {
			board.TaskStatuses = append(board.TaskStatuses, domain.StatusDefinition{
				ID:    domain.StatusID(def.ID),
				Name:  def.Name,
				Color: def.Color,
			})
		}
	} else {
		board.TaskStatuses = domain.DefaultStatusCatalog()
	}
	return board, nil
}
