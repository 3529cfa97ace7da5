package tui

import "charm.land/bubbles/v2/key"

// keyMap holds every binding the board screen responds to.
type keyMap struct {
	quit         key.Binding
	toggleHelp   key.Binding
	moveLeft     key.Binding
	moveRight    key.Binding
	moveUp       key.Binding
	moveDown     key.Binding
	addCard      key.Binding
	addList      key.Binding
	cardInfo     key.Binding
	editCard     key.Binding
	editList     key.Binding
	deleteCard   key.Binding
	deleteList   key.Binding
	toggleDone   key.Binding
	completeList key.Binding
	grabCard     key.Binding
	grabList     key.Binding
	dueDate      key.Binding
	labels       key.Binding
	clearFilters key.Binding
	yank         key.Binding
	refresh      key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "card up")),
		moveDown:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "card down")),
		addCard:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		addList:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new list")),
		cardInfo:     key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i/enter", "card info")),
		editCard:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit card")),
		editList:     key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "rename list")),
		deleteCard:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete card")),
		deleteList:   key.NewBinding(key.WithKeys("D", "shift+d"), key.WithHelp("D", "delete list")),
		toggleDone:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
		completeList: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "complete list")),
		grabCard:     key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "grab card")),
		grabList:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab list")),
		dueDate:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "due date")),
		labels:       key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "labels")),
		clearFilters: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "clear filters")),
		yank:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),
		refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh statuses")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addCard, k.cardInfo, k.editCard, k.grabCard, k.labels, k.dueDate, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addCard, k.addList, k.cardInfo, k.editCard, k.editList, k.toggleDone, k.completeList, k.toggleHelp, k.quit},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown, k.grabCard, k.grabList},
		{k.deleteCard, k.deleteList, k.dueDate, k.labels, k.clearFilters, k.yank, k.refresh},
	}
}
