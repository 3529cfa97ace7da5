package domain

// SeedBoard returns the tutorial board used when no persisted aggregate
// exists or the persisted one cannot be decoded.
func SeedBoard() Board {
	return Board{
		Lists: []List{
			{
				ID:    "list-1",
				Title: "How to Use",
				Cards: []Card{
					{
						ID:          "card-1",
						Title:       "How to add cards",
						Description: "Press the add-card key on a list to add new cards to it.",
						LabelIDs:    []string{"label-tutorial"},
						Status:      StatusTodo,
					},
					{
						ID:          "card-2",
						Title:       "How to add lists",
						Description: "Press the add-list key to add a new list to the board.",
						LabelIDs:    []string{"label-tutorial"},
						Status:      StatusTodo,
					},
					{
						ID:          "card-3",
						Title:       "How to edit a card",
						Description: "Open a card to edit its title and description.",
						Status:      StatusTodo,
					},
					{
						ID:          "card-4",
						Title:       "How to delete a card",
						Description: "Select a card and press the delete key to remove it.",
						Status:      StatusTodo,
					},
					{
						ID:          "card-5",
						Title:       "How to move cards and lists",
						Description: "Grab a card or a list, move it to another position, and drop it.",
						Status:      StatusTodo,
					},
				},
			},
		},
		Labels: []Label{
			{ID: "label-tutorial", Color: ColorBlue, Text: "Tutorial"},
			{ID: "label-work", Color: ColorPurple, Text: "Work"},
			{ID: "label-personal", Color: ColorGreen, Text: "Personal"},
			{ID: "label-urgent", Color: ColorRed, Text: "Urgent"},
		},
		ActiveFilters: []string{},
		TaskStatuses:  DefaultStatusCatalog(),
	}
}
