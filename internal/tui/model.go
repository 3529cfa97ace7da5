package tui

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/hylla/tavla/internal/app"
	"github.com/hylla/tavla/internal/domain"
)

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeAddList
	modeAddCard
	modeEditList
	modeEditCard
	modeCardInfo
	modeLabels
	modeLabelForm
	modeDuePicker
	modeConfirm
	modeGrab
)

// label sidebar tab indexes in display order.
const (
	labelTabAssign = iota
	labelTabFilter
	labelTabManage
)

// labelTabNames stores the sidebar tab labels in display order.
var labelTabNames = []string{"assign", "filter", "manage"}

// duePickerOption defines one quick-pick entry for the due date modal.
type duePickerOption struct {
	Label string
	Days  int
	Clear bool
}

// duePickerOptions stores the canonical quick-pick ordering.
var duePickerOptions = []duePickerOption{
	{Label: "Today", Days: 0},
	{Label: "Tomorrow", Days: 1},
	{Label: "Next Week", Days: 7},
	{Label: "No due date", Clear: true},
}

// confirmAction describes a pending destructive action.
type confirmAction struct {
	Kind   string
	ListID string
	CardID string
	Label  string
}

// labelDisplayColors maps palette names to terminal colors.
var labelDisplayColors = map[domain.LabelColor]color.Color{
	domain.ColorBlue:   lipgloss.Color("39"),
	domain.ColorGreen:  lipgloss.Color("78"),
	domain.ColorYellow: lipgloss.Color("220"),
	domain.ColorOrange: lipgloss.Color("208"),
	domain.ColorRed:    lipgloss.Color("203"),
	domain.ColorPurple: lipgloss.Color("135"),
	domain.ColorPink:   lipgloss.Color("212"),
	domain.ColorTeal:   lipgloss.Color("80"),
	domain.ColorCyan:   lipgloss.Color("51"),
	domain.ColorIndigo: lipgloss.Color("63"),
	domain.ColorLime:   lipgloss.Color("154"),
	domain.ColorGray:   lipgloss.Color("245"),
}

// statusDisplayColors maps catalog color names to terminal colors.
var statusDisplayColors = map[string]color.Color{
	"gray":   lipgloss.Color("245"),
	"orange": lipgloss.Color("208"),
	"yellow": lipgloss.Color("220"),
	"blue":   lipgloss.Color("39"),
	"green":  lipgloss.Color("78"),
	"red":    lipgloss.Color("203"),
}

// statusTickMsg drives the periodic due-date status sweep.
type statusTickMsg time.Time

// Model represents model data used by this package.
type Model struct {
	store *app.Store

	ready  bool
	width  int
	height int

	status string

	help help.Model
	keys keyMap

	cardFields   CardFieldConfig
	refreshEvery time.Duration

	mode           inputMode
	selectedColumn int
	selectedCard   int

	titleInput textinput.Model
	descInput  textinput.Model
	formFocus  int

	editingListID string
	editingCardID string

	cardInfoCardID string

	labelTab      int
	labelIndex    int
	labelInput    textinput.Model
	labelColorIdx int
	editingLabel  string

	duePickerIndex  int
	duePickerCardID string
	pickerBack      inputMode

	pendingConfirm confirmAction
	confirmChoice  int

	grabID     string
	grabIsList bool

	md markdownRenderer
}

// NewModel constructs a new value for this package.
func NewModel(store *app.Store, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		store:        store,
		status:       "ready",
		help:         h,
		keys:         newKeyMap(),
		cardFields:   DefaultCardFieldConfig(),
		refreshEvery: time.Hour,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.scheduleRefresh()
}

// scheduleRefresh arms the next status sweep tick.
func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusTickMsg:
		m.store.RefreshStatuses(context.Background())
		m.clampSelections()
		return m, m.scheduleRefresh()

	case tea.KeyPressMsg:
		if m.mode == modeNone {
			return m.handleNormalModeKey(msg)
		}
		return m.handleInputModeKey(msg)
	}
	return m, nil
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		if m.help.ShowAll {
			m.status = "help"
		} else {
			m.status = "ready"
		}
		return m, nil
	case msg.String() == "esc":
		if m.help.ShowAll {
			m.help.ShowAll = false
			m.status = "ready"
			return m, nil
		}
		if len(m.store.Board().ActiveFilters) > 0 {
			m.store.ClearFilters(context.Background())
			m.clampSelections()
			m.status = "filters cleared"
			return m, nil
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		m.store.RefreshStatuses(context.Background())
		m.clampSelections()
		m.status = "statuses refreshed"
		return m, nil
	case key.Matches(msg, m.keys.moveLeft):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			m.selectedCard = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		if m.selectedColumn < len(m.store.VisibleLists())-1 {
			m.selectedColumn++
			m.selectedCard = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		cards := m.currentColumnCards()
		if len(cards) > 0 && m.selectedCard < len(cards)-1 {
			m.selectedCard++
		}
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		if m.selectedCard > 0 {
			m.selectedCard--
		}
		return m, nil
	case key.Matches(msg, m.keys.addCard):
		list, ok := m.currentList()
		if !ok {
			m.status = "no list selected"
			return m, nil
		}
		m.help.ShowAll = false
		m.mode = modeAddCard
		m.editingListID = list.ID
		m.titleInput = newModalInput("", "card title (required)", "", 120)
		m.status = "new card"
		return m, m.titleInput.Focus()
	case key.Matches(msg, m.keys.addList):
		m.help.ShowAll = false
		m.mode = modeAddList
		m.titleInput = newModalInput("", "list title (required)", "", 120)
		m.status = "new list"
		return m, m.titleInput.Focus()
	case key.Matches(msg, m.keys.editList):
		list, ok := m.currentList()
		if !ok {
			m.status = "no list selected"
			return m, nil
		}
		m.help.ShowAll = false
		m.mode = modeEditList
		m.editingListID = list.ID
		m.titleInput = newModalInput("", "list title (required)", list.Title, 120)
		m.status = "rename list"
		return m, m.titleInput.Focus()
	case key.Matches(msg, m.keys.cardInfo):
		card, _, ok := m.selectedCardInColumn()
		if !ok {
			m.status = "no card selected"
			return m, nil
		}
		m.help.ShowAll = false
		m.mode = modeCardInfo
		m.cardInfoCardID = card.ID
		m.status = "card info"
		return m, nil
	case key.Matches(msg, m.keys.editCard):
		card, listID, ok := m.selectedCardInColumn()
		if !ok {
			m.status = "no card selected"
			return m, nil
		}
		m.help.ShowAll = false
		m.mode = modeEditCard
		m.editingListID = listID
		m.editingCardID = card.ID
		m.titleInput = newModalInput("", "card title (required)", card.Title, 120)
		m.descInput = newModalInput("", "markdown description", card.Description, 2000)
		m.formFocus = 0
		m.descInput.Blur()
		m.status = "edit card"
		return m, m.titleInput.Focus()
	case key.Matches(msg, m.keys.deleteCard):
		card, listID, ok := m.selectedCardInColumn()
		if !ok {
			m.status = "no card selected"
			return m, nil
		}
		m.mode = modeConfirm
		m.pendingConfirm = confirmAction{Kind: "delete-card", ListID: listID, CardID: card.ID, Label: card.Title}
		m.confirmChoice = 0
		return m, nil
	case key.Matches(msg, m.keys.deleteList):
		list, ok := m.currentList()
		if !ok {
			m.status = "no list selected"
			return m, nil
		}
		m.mode = modeConfirm
		m.pendingConfirm = confirmAction{Kind: "delete-list", ListID: list.ID, Label: list.Title}
		m.confirmChoice = 0
		return m, nil
	case key.Matches(msg, m.keys.toggleDone):
		card, _, ok := m.selectedCardInColumn()
		if !ok {
			m.status = "no card selected"
			return m, nil
		}
		m.store.ToggleCardDone(context.Background(), card.ID)
		m.status = fmt.Sprintf("toggled %q", truncate(card.Title, 28))
		return m, nil
	case key.Matches(msg, m.keys.completeList):
		list, ok := m.currentList()
		if !ok {
			m.status = "no list selected"
			return m, nil
		}
		m.store.MarkListComplete(context.Background(), list.ID)
		m.status = fmt.Sprintf("completed %q", truncate(list.Title, 28))
		return m, nil
	case key.Matches(msg, m.keys.grabCard):
		card, _, ok := m.selectedCardInColumn()
		if !ok {
			m.status = "no card selected"
			return m, nil
		}
		m.mode = modeGrab
		m.grabID = card.ID
		m.grabIsList = false
		m.status = "moving card • h/j/k/l move • esc drop"
		return m, nil
	case key.Matches(msg, m.keys.grabList):
		list, ok := m.currentList()
		if !ok {
			m.status = "no list selected"
			return m, nil
		}
		m.mode = modeGrab
		m.grabID = list.ID
		m.grabIsList = true
		m.status = "moving list • h/l move • esc drop"
		return m, nil
	case key.Matches(msg, m.keys.dueDate):
		card, _, ok := m.selectedCardInColumn()
		if !ok {
			m.status = "no card selected"
			return m, nil
		}
		m.mode = modeDuePicker
		m.pickerBack = modeNone
		m.duePickerCardID = card.ID
		m.duePickerIndex = 0
		m.status = "due date"
		return m, nil
	case key.Matches(msg, m.keys.labels):
		m.help.ShowAll = false
		m.mode = modeLabels
		m.labelTab = labelTabAssign
		m.labelIndex = 0
		m.status = "labels"
		return m, nil
	case key.Matches(msg, m.keys.clearFilters):
		m.store.ClearFilters(context.Background())
		m.clampSelections()
		m.status = "filters cleared"
		return m, nil
	case key.Matches(msg, m.keys.yank):
		card, _, ok := m.selectedCardInColumn()
		if !ok {
			m.status = "no card selected"
			return m, nil
		}
		if err := clipboard.WriteAll(card.Title); err != nil {
			m.status = "clipboard unavailable"
			return m, nil
		}
		m.status = fmt.Sprintf("copied %q", truncate(card.Title, 28))
		return m, nil
	default:
		return m, nil
	}
}

// handleInputModeKey handles input mode key.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeGrab:
		return m.handleGrabKey(msg)
	case modeCardInfo:
		return m.handleCardInfoKey(msg)
	case modeLabels:
		return m.handleLabelSidebarKey(msg)
	case modeLabelForm:
		return m.handleLabelFormKey(msg)
	case modeDuePicker:
		return m.handleDuePickerKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeAddList, modeAddCard, modeEditList:
		switch msg.String() {
		case "esc":
			return m.exitInputMode("cancelled"), nil
		case "enter":
			return m.submitTitleForm()
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd
	case modeEditCard:
		switch msg.String() {
		case "esc":
			return m.exitInputMode("cancelled"), nil
		case "enter":
			return m.submitEditCardForm()
		case "tab", "down", "shift+tab", "up":
			if m.formFocus == 0 {
				m.formFocus = 1
				m.titleInput.Blur()
				return m, m.descInput.Focus()
			}
			m.formFocus = 0
			m.descInput.Blur()
			return m, m.titleInput.Focus()
		}
		var cmd tea.Cmd
		if m.formFocus == 0 {
			m.titleInput, cmd = m.titleInput.Update(msg)
		} else {
			m.descInput, cmd = m.descInput.Update(msg)
		}
		return m, cmd
	default:
		m.mode = modeNone
		return m, nil
	}
}

// exitInputMode returns to the board and resets transient form state.
func (m Model) exitInputMode(status string) Model {
	m.mode = modeNone
	m.editingListID = ""
	m.editingCardID = ""
	m.cardInfoCardID = ""
	m.duePickerCardID = ""
	m.editingLabel = ""
	m.grabID = ""
	if status != "" {
		m.status = status
	}
	m.clampSelections()
	return m
}

// submitTitleForm applies the single-input modes (add list, add card, rename list).
func (m Model) submitTitleForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.status = "title required"
		return m, nil
	}
	ctx := context.Background()
	switch m.mode {
	case modeAddList:
		if err := m.store.AddList(ctx, title); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m = m.exitInputMode(fmt.Sprintf("added list %q", truncate(title, 28)))
		m.selectedColumn = max(0, len(m.store.VisibleLists())-1)
		m.selectedCard = 0
		return m, nil
	case modeAddCard:
		if err := m.store.AddCard(ctx, m.editingListID, title); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m = m.exitInputMode(fmt.Sprintf("added %q", truncate(title, 28)))
		return m, nil
	case modeEditList:
		if err := m.store.EditListTitle(ctx, m.editingListID, title); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m = m.exitInputMode("list renamed")
		return m, nil
	}
	return m, nil
}

// submitEditCardForm applies the two-field card edit.
func (m Model) submitEditCardForm() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.status = "title required"
		return m, nil
	}
	err := m.store.EditCard(context.Background(), m.editingListID, m.editingCardID, title, m.descInput.Value())
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m = m.exitInputMode(fmt.Sprintf("saved %q", truncate(title, 28)))
	return m, nil
}

// handleGrabKey moves the grabbed card or list one slot per keypress.
func (m Model) handleGrabKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc" || msg.String() == "enter" ||
		key.Matches(msg, m.keys.grabCard) || key.Matches(msg, m.keys.grabList):
		return m.exitInputMode("ready"), nil
	case key.Matches(msg, m.keys.moveLeft):
		return m.moveGrabbed(-1, 0), nil
	case key.Matches(msg, m.keys.moveRight):
		return m.moveGrabbed(1, 0), nil
	case key.Matches(msg, m.keys.moveUp):
		if !m.grabIsList {
			return m.moveGrabbed(0, -1), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		if !m.grabIsList {
			return m.moveGrabbed(0, 1), nil
		}
		return m, nil
	default:
		return m, nil
	}
}

// moveGrabbed resolves one movement into a drop target and applies it.
func (m Model) moveGrabbed(dx, dy int) Model {
	ctx := context.Background()
	lists := m.store.VisibleLists()
	if len(lists) == 0 {
		return m
	}

	if m.grabIsList {
		target := m.selectedColumn + dx
		if target < 0 || target >= len(lists) {
			return m
		}
		m.store.DragStart(m.grabID)
		m.store.DragEnd(ctx, lists[target].ID)
		m.focusList(m.grabID)
		return m
	}

	if dx != 0 {
		target := m.selectedColumn + dx
		if target < 0 || target >= len(lists) {
			return m
		}
		dest := lists[target]
		overID := dest.ID
		if slot := min(m.selectedCard, len(dest.Cards)); slot < len(dest.Cards) {
			overID = dest.Cards[slot].ID
		}
		m.store.DragStart(m.grabID)
		m.store.DragEnd(ctx, overID)
		m.focusCard(m.grabID)
		return m
	}

	col := lists[clamp(m.selectedColumn, 0, len(lists)-1)]
	idx := -1
	for i, card := range col.Cards {
		if card.ID == m.grabID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return m
	}
	var overID string
	if dy < 0 {
		if idx == 0 {
			return m
		}
		overID = col.Cards[idx-1].ID
	} else {
		if idx >= len(col.Cards)-1 {
			return m
		}
		if idx+2 < len(col.Cards) {
			overID = col.Cards[idx+2].ID
		} else {
			overID = col.ID
		}
	}
	m.store.DragStart(m.grabID)
	m.store.DragEnd(ctx, overID)
	m.focusCard(m.grabID)
	return m
}

// handleCardInfoKey handles card info key.
func (m Model) handleCardInfoKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc" || key.Matches(msg, m.keys.cardInfo) || key.Matches(msg, m.keys.quit):
		return m.exitInputMode("ready"), nil
	case key.Matches(msg, m.keys.toggleDone):
		m.store.ToggleCardDone(context.Background(), m.cardInfoCardID)
		return m, nil
	case key.Matches(msg, m.keys.dueDate):
		m.mode = modeDuePicker
		m.pickerBack = modeCardInfo
		m.duePickerCardID = m.cardInfoCardID
		m.duePickerIndex = 0
		return m, nil
	case key.Matches(msg, m.keys.yank):
		card, _, ok := m.store.Board().FindCard(m.cardInfoCardID)
		if !ok {
			return m.exitInputMode("card gone"), nil
		}
		if err := clipboard.WriteAll(card.Title); err != nil {
			m.status = "clipboard unavailable"
			return m, nil
		}
		m.status = fmt.Sprintf("copied %q", truncate(card.Title, 28))
		return m, nil
	default:
		return m, nil
	}
}

// handleLabelSidebarKey handles label sidebar key.
func (m Model) handleLabelSidebarKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.store.Board()
	switch msg.String() {
	case "esc", "L":
		return m.exitInputMode("ready"), nil
	case "tab":
		m.labelTab = (m.labelTab + 1) % len(labelTabNames)
		m.labelIndex = clamp(m.labelIndex, 0, max(0, len(board.Labels)-1))
		return m, nil
	case "j", "down":
		if m.labelIndex < len(board.Labels)-1 {
			m.labelIndex++
		}
		return m, nil
	case "k", "up":
		if m.labelIndex > 0 {
			m.labelIndex--
		}
		return m, nil
	case "n":
		m.mode = modeLabelForm
		m.editingLabel = ""
		m.labelInput = newModalInput("", "label text (required)", "", 60)
		m.labelColorIdx = 0
		return m, m.labelInput.Focus()
	case "e", "enter", "space":
		if len(board.Labels) == 0 {
			m.status = "no labels yet • n creates one"
			return m, nil
		}
		label := board.Labels[clamp(m.labelIndex, 0, len(board.Labels)-1)]
		switch m.labelTab {
		case labelTabAssign:
			if msg.String() == "e" {
				return m, nil
			}
			card, listID, ok := m.selectedCardInColumn()
			if !ok {
				m.status = "no card selected"
				return m, nil
			}
			m.store.ToggleCardLabel(context.Background(), listID, card.ID, label.ID)
			return m, nil
		case labelTabFilter:
			if msg.String() == "e" {
				return m, nil
			}
			m.store.ToggleFilter(context.Background(), label.ID)
			m.clampSelections()
			return m, nil
		case labelTabManage:
			m.mode = modeLabelForm
			m.editingLabel = label.ID
			m.labelInput = newModalInput("", "label text (required)", label.Text, 60)
			m.labelColorIdx = paletteIndex(label.Color)
			return m, m.labelInput.Focus()
		}
		return m, nil
	case "d":
		if m.labelTab != labelTabManage || len(board.Labels) == 0 {
			return m, nil
		}
		label := board.Labels[clamp(m.labelIndex, 0, len(board.Labels)-1)]
		m.store.DeleteLabel(context.Background(), label.ID)
		m.labelIndex = clamp(m.labelIndex, 0, max(0, len(m.store.Board().Labels)-1))
		m.clampSelections()
		m.status = fmt.Sprintf("deleted label %q", truncate(label.Text, 28))
		return m, nil
	case "c":
		if m.labelTab == labelTabFilter {
			m.store.ClearFilters(context.Background())
			m.clampSelections()
			m.status = "filters cleared"
		}
		return m, nil
	default:
		return m, nil
	}
}

// handleLabelFormKey handles label form key.
func (m Model) handleLabelFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	palette := domain.LabelPalette()
	switch msg.String() {
	case "esc":
		m.mode = modeLabels
		m.editingLabel = ""
		return m, nil
	case "tab":
		m.labelColorIdx = (m.labelColorIdx + 1) % len(palette)
		return m, nil
	case "shift+tab":
		m.labelColorIdx = (m.labelColorIdx - 1 + len(palette)) % len(palette)
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.labelInput.Value())
		if text == "" {
			m.status = "label text required"
			return m, nil
		}
		chosen := palette[clamp(m.labelColorIdx, 0, len(palette)-1)]
		ctx := context.Background()
		var err error
		if m.editingLabel == "" {
			err = m.store.CreateLabel(ctx, text, chosen)
		} else {
			err = m.store.UpdateLabel(ctx, m.editingLabel, text, chosen)
		}
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.mode = modeLabels
		m.editingLabel = ""
		m.status = fmt.Sprintf("saved label %q", truncate(text, 28))
		return m, nil
	}
	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	return m, cmd
}

// handleDuePickerKey handles due picker key.
func (m Model) handleDuePickerKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = m.pickerBack
		if m.mode == modeNone {
			return m.exitInputMode("ready"), nil
		}
		return m, nil
	case "j", "down":
		if m.duePickerIndex < len(duePickerOptions)-1 {
			m.duePickerIndex++
		}
		return m, nil
	case "k", "up":
		if m.duePickerIndex > 0 {
			m.duePickerIndex--
		}
		return m, nil
	case "enter", "space":
		opt := duePickerOptions[clamp(m.duePickerIndex, 0, len(duePickerOptions)-1)]
		var due *time.Time
		if !opt.Clear {
			day := time.Now().AddDate(0, 0, opt.Days)
			midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
			due = &midnight
		}
		m.store.SetCardDueDate(context.Background(), m.duePickerCardID, due)
		back := m.pickerBack
		m.mode = back
		if back == modeNone {
			return m.exitInputMode(fmt.Sprintf("due: %s", strings.ToLower(opt.Label))), nil
		}
		m.status = fmt.Sprintf("due: %s", strings.ToLower(opt.Label))
		return m, nil
	default:
		return m, nil
	}
}

// handleConfirmKey handles confirm key.
func (m Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		return m.exitInputMode("cancelled"), nil
	case "h", "left", "l", "right", "tab":
		m.confirmChoice = 1 - m.confirmChoice
		return m, nil
	case "y":
		return m.applyConfirmedAction(), nil
	case "enter":
		if m.confirmChoice == 1 {
			return m.applyConfirmedAction(), nil
		}
		return m.exitInputMode("cancelled"), nil
	default:
		return m, nil
	}
}

// applyConfirmedAction runs the pending destructive action.
func (m Model) applyConfirmedAction() Model {
	ctx := context.Background()
	action := m.pendingConfirm
	switch action.Kind {
	case "delete-card":
		m.store.RemoveCard(ctx, action.ListID, action.CardID)
		m = m.exitInputMode(fmt.Sprintf("deleted %q", truncate(action.Label, 28)))
	case "delete-list":
		m.store.DeleteList(ctx, action.ListID)
		m = m.exitInputMode(fmt.Sprintf("deleted list %q", truncate(action.Label, 28)))
	default:
		m = m.exitInputMode("cancelled")
	}
	return m
}

// currentList returns the selected visible list.
func (m Model) currentList() (domain.List, bool) {
	lists := m.store.VisibleLists()
	if len(lists) == 0 {
		return domain.List{}, false
	}
	return lists[clamp(m.selectedColumn, 0, len(lists)-1)], true
}

// currentColumnCards returns the cards of the selected visible list.
func (m Model) currentColumnCards() []domain.Card {
	list, ok := m.currentList()
	if !ok {
		return nil
	}
	return list.Cards
}

// selectedCardInColumn returns the selected card and its owning list id.
func (m Model) selectedCardInColumn() (domain.Card, string, bool) {
	list, ok := m.currentList()
	if !ok || len(list.Cards) == 0 {
		return domain.Card{}, "", false
	}
	return list.Cards[clamp(m.selectedCard, 0, len(list.Cards)-1)], list.ID, true
}

// clampSelections keeps the cursor inside the visible board after mutations.
func (m *Model) clampSelections() {
	lists := m.store.VisibleLists()
	if len(lists) == 0 {
		m.selectedColumn = 0
		m.selectedCard = 0
		return
	}
	m.selectedColumn = clamp(m.selectedColumn, 0, len(lists)-1)
	m.selectedCard = clamp(m.selectedCard, 0, max(0, len(lists[m.selectedColumn].Cards)-1))
}

// focusCard points the cursor at the card with the given id.
func (m *Model) focusCard(cardID string) {
	for colIdx, list := range m.store.VisibleLists() {
		for cardIdx, card := range list.Cards {
			if card.ID == cardID {
				m.selectedColumn = colIdx
				m.selectedCard = cardIdx
				return
			}
		}
	}
	m.clampSelections()
}

// focusList points the cursor at the list with the given id.
func (m *Model) focusList(listID string) {
	for colIdx, list := range m.store.VisibleLists() {
		if list.ID == listID {
			m.selectedColumn = colIdx
			m.selectedCard = 0
			return
		}
	}
	m.clampSelections()
}

// modeLabel returns the header tag for the active mode.
func (m Model) modeLabel() string {
	switch m.mode {
	case modeAddList:
		return "new list"
	case modeAddCard:
		return "new card"
	case modeEditList:
		return "rename list"
	case modeEditCard:
		return "edit card"
	case modeCardInfo:
		return "card info"
	case modeLabels:
		return "labels"
	case modeLabelForm:
		return "label form"
	case modeDuePicker:
		return "due date"
	case modeConfirm:
		return "confirm"
	case modeGrab:
		if m.grabIsList {
			return "moving list"
		}
		return "moving card"
	default:
		return "board"
	}
}

// statusName resolves a status id against the board catalog.
func (m Model) statusName(id domain.StatusID) string {
	for _, def := range m.store.Board().TaskStatuses {
		if def.ID == id {
			return def.Name
		}
	}
	return string(id)
}

// statusColor resolves a status id to its terminal color.
func (m Model) statusColor(id domain.StatusID) color.Color {
	for _, def := range m.store.Board().TaskStatuses {
		if def.ID == id {
			if c, ok := statusDisplayColors[def.Color]; ok {
				return c
			}
		}
	}
	return lipgloss.Color("245")
}

// cardMeta builds the secondary line under a card title.
func (m Model) cardMeta(card domain.Card) string {
	board := m.store.Board()
	parts := make([]string, 0, 3)
	if m.cardFields.ShowLabels && len(card.LabelIDs) > 0 {
		chips := make([]string, 0, len(card.LabelIDs))
		for _, labelID := range card.LabelIDs {
			label, ok := board.FindLabel(labelID)
			if !ok {
				continue
			}
			chip := "#" + label.Text
			if c, ok := labelDisplayColors[label.Color]; ok {
				chip = lipgloss.NewStyle().Foreground(c).Render(chip)
			}
			chips = append(chips, chip)
		}
		if len(chips) > 0 {
			parts = append(parts, strings.Join(chips, " "))
		}
	}
	if m.cardFields.ShowDueDates && card.DueDate != nil {
		parts = append(parts, "due "+card.DueDate.Format("Jan 2"))
	}
	if m.cardFields.ShowStatus {
		chip := lipgloss.NewStyle().Foreground(m.statusColor(card.Status)).Render(m.statusName(card.Status))
		parts = append(parts, chip)
	}
	return strings.Join(parts, " • ")
}

// filterSummary describes the active label filters for the header.
func (m Model) filterSummary() string {
	board := m.store.Board()
	if len(board.ActiveFilters) == 0 {
		return ""
	}
	names := make([]string, 0, len(board.ActiveFilters))
	for _, labelID := range board.ActiveFilters {
		if label, ok := board.FindLabel(labelID); ok {
			names = append(names, "#"+label.Text)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("filters: %d", len(board.ActiveFilters))
	}
	return "filters: " + strings.Join(names, ",")
}

// View renders the board.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	board := m.store.Board()
	lists := m.store.VisibleLists()

	header := titleStyle.Render("tavla")
	header += statusStyle.Render("  [" + m.modeLabel() + "]")
	if summary := m.filterSummary(); summary != "" {
		header += statusStyle.Render("  " + summary)
	}
	header += statusStyle.Render(fmt.Sprintf("  %d cards", board.CardCount()))

	colWidth := m.columnWidthFor(m.width)
	colHeight := m.columnHeight()
	baseColStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(1, 2).
		MarginRight(1).
		Width(colWidth)
	selColStyle := baseColStyle.Copy().BorderForeground(accent)
	colTitle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedCardStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	grabbedCardStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(muted).Strikethrough(true)
	metaStyle := lipgloss.NewStyle().Foreground(muted)

	columnViews := make([]string, 0, len(lists))
	for colIdx, list := range lists {
		headerLine := colTitle.Render(fmt.Sprintf("%s (%d)", list.Title, len(list.Cards)))
		if m.mode == modeGrab && m.grabIsList && list.ID == m.grabID {
			headerLine = grabbedCardStyle.Render(fmt.Sprintf("◆ %s (%d)", list.Title, len(list.Cards)))
		}

		cardLines := make([]string, 0, max(1, len(list.Cards)*3))
		selectedStart := -1
		selectedEnd := -1

		if len(list.Cards) == 0 {
			cardLines = append(cardLines, emptyStyle.Render("(no cards)"))
		} else {
			for cardIdx, card := range list.Cards {
				selected := colIdx == m.selectedColumn && cardIdx == m.selectedCard
				grabbed := m.mode == modeGrab && !m.grabIsList && card.ID == m.grabID

				prefix := "   "
				switch {
				case grabbed:
					prefix = "◆  "
				case selected:
					prefix = "│  "
				}
				title := prefix + truncate(card.Title, max(1, colWidth-10))
				switch {
				case grabbed:
					title = grabbedCardStyle.Render(title)
				case card.Status == domain.StatusDone:
					title = doneStyle.Render(title)
				case selected:
					title = selectedCardStyle.Render(title)
				}

				rowStart := len(cardLines)
				cardLines = append(cardLines, title)
				if meta := m.cardMeta(card); meta != "" {
					cardLines = append(cardLines, prefix+metaStyle.Render(truncate(meta, max(1, colWidth-10))))
				}
				if cardIdx < len(list.Cards)-1 {
					cardLines = append(cardLines, "")
				}
				if selected {
					selectedStart = rowStart
					selectedEnd = len(cardLines) - 1
				}
			}
		}

		innerHeight := max(1, colHeight-4)
		cardWindowHeight := max(1, innerHeight-1)
		scrollTop := 0
		if colIdx == m.selectedColumn && selectedStart >= 0 {
			if selectedEnd >= scrollTop+cardWindowHeight {
				scrollTop = selectedEnd - cardWindowHeight + 1
			}
			if selectedStart < scrollTop {
				scrollTop = selectedStart
			}
		}
		maxScrollTop := max(0, len(cardLines)-cardWindowHeight)
		scrollTop = clamp(scrollTop, 0, maxScrollTop)
		if len(cardLines) > cardWindowHeight {
			cardLines = cardLines[scrollTop : scrollTop+cardWindowHeight]
		}

		lines := append([]string{headerLine}, cardLines...)
		content := fitLines(strings.Join(lines, "\n"), innerHeight)
		if colIdx == m.selectedColumn {
			columnViews = append(columnViews, selColStyle.Render(content))
		} else {
			columnViews = append(columnViews, baseColStyle.Render(content))
		}
	}

	body := ""
	if len(columnViews) > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
	} else {
		body = emptyStyle.Render("No lists yet. Press N to create one.")
	}

	sections := []string{header, "", body}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	if m.height > 0 {
		helpHeight := lipgloss.Height(helpLine)
		content = fitLines(content, max(0, m.height-helpHeight))
	}

	fullContent := content + "\n" + helpLine
	overlay := m.renderModeOverlay(accent, muted, dim, m.width-8)
	if m.help.ShowAll {
		overlay = m.renderHelpOverlay(accent, muted, dim, m.width-8)
	}
	if overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}

	v := tea.NewView(fullContent)
	v.AltScreen = true
	return v
}

// renderModeOverlay renders the modal for the active input mode.
func (m Model) renderModeOverlay(accent, muted, dim color.Color, maxWidth int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if maxWidth > 0 {
		boxStyle = boxStyle.Width(clamp(maxWidth, 28, 76))
	}
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	switch m.mode {
	case modeAddList, modeAddCard, modeEditList:
		lines := []string{
			headingStyle.Render(m.modeLabel()),
			m.titleInput.View(),
			hintStyle.Render("enter save • esc cancel"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeEditCard:
		titleLabel := "title"
		descLabel := "description"
		if m.formFocus == 0 {
			titleLabel = "› title"
		} else {
			descLabel = "› description"
		}
		lines := []string{
			headingStyle.Render("Edit Card"),
			hintStyle.Render(titleLabel),
			m.titleInput.View(),
			hintStyle.Render(descLabel),
			m.descInput.View(),
			hintStyle.Render("tab switch field • enter save • esc cancel"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeCardInfo:
		board := m.store.Board()
		card, _, ok := board.FindCard(m.cardInfoCardID)
		if !ok {
			return ""
		}
		due := "-"
		if card.DueDate != nil {
			due = card.DueDate.Format("Mon Jan 2 2006")
		}
		lines := []string{
			headingStyle.Render("Card Info"),
			card.Title,
			hintStyle.Render("status: " + m.statusName(card.Status) + " • due: " + due),
		}
		if len(card.LabelIDs) > 0 {
			chips := make([]string, 0, len(card.LabelIDs))
			for _, labelID := range card.LabelIDs {
				if label, ok := board.FindLabel(labelID); ok {
					chips = append(chips, "#"+label.Text)
				}
			}
			lines = append(lines, hintStyle.Render("labels: "+strings.Join(chips, ", ")))
		}
		if desc := m.md.render(card.Description, clamp(maxWidth, 28, 72)-4); desc != "" {
			lines = append(lines, "", desc)
		}
		lines = append(lines, "", hintStyle.Render("x done • t due • y copy • esc close"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeLabels:
		return m.renderLabelSidebar(boxStyle, headingStyle, hintStyle)

	case modeLabelForm:
		palette := domain.LabelPalette()
		chips := make([]string, 0, len(palette))
		for idx, c := range palette {
			chip := string(c)
			style := lipgloss.NewStyle()
			if display, ok := labelDisplayColors[c]; ok {
				style = style.Foreground(display)
			}
			if idx == m.labelColorIdx {
				chip = "[" + chip + "]"
				style = style.Bold(true)
			}
			chips = append(chips, style.Render(chip))
		}
		heading := "New Label"
		if m.editingLabel != "" {
			heading = "Edit Label"
		}
		lines := []string{
			headingStyle.Render(heading),
			m.labelInput.View(),
			strings.Join(chips, " "),
			hintStyle.Render("tab color • enter save • esc back"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeDuePicker:
		lines := []string{headingStyle.Render("Due Date")}
		for idx, opt := range duePickerOptions {
			prefix := "  "
			if idx == m.duePickerIndex {
				prefix = "│ "
			}
			lines = append(lines, prefix+opt.Label)
		}
		lines = append(lines, hintStyle.Render("enter apply • esc back"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeConfirm:
		prompt := fmt.Sprintf("Delete %q?", truncate(m.pendingConfirm.Label, 36))
		if m.pendingConfirm.Kind == "delete-list" {
			prompt = fmt.Sprintf("Delete list %q and its cards?", truncate(m.pendingConfirm.Label, 32))
		}
		cancel := "  cancel  "
		confirm := "  delete  "
		chosen := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
		if m.confirmChoice == 1 {
			confirm = chosen.Render("[ delete ]")
		} else {
			cancel = chosen.Render("[ cancel ]")
		}
		lines := []string{
			headingStyle.Render("Confirm"),
			prompt,
			cancel + "  " + confirm,
			hintStyle.Render("y delete • n/esc cancel"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))
	}
	return ""
}

// renderLabelSidebar renders the label overlay with its three tabs.
func (m Model) renderLabelSidebar(boxStyle, headingStyle, hintStyle lipgloss.Style) string {
	board := m.store.Board()
	tabs := make([]string, 0, len(labelTabNames))
	for idx, name := range labelTabNames {
		if idx == m.labelTab {
			tabs = append(tabs, headingStyle.Render("["+name+"]"))
		} else {
			tabs = append(tabs, hintStyle.Render(" "+name+" "))
		}
	}
	lines := []string{
		headingStyle.Render("Labels"),
		strings.Join(tabs, " "),
		"",
	}
	if len(board.Labels) == 0 {
		lines = append(lines, hintStyle.Render("(no labels yet)"))
	}
	selectedCard, _, hasCard := m.selectedCardInColumn()
	for idx, label := range board.Labels {
		prefix := "  "
		if idx == m.labelIndex {
			prefix = "│ "
		}
		marker := " "
		switch m.labelTab {
		case labelTabAssign:
			if hasCard && selectedCard.HasLabel(label.ID) {
				marker = "✓"
			}
		case labelTabFilter:
			if board.HasActiveFilter(label.ID) {
				marker = "✓"
			}
		case labelTabManage:
			marker = fmt.Sprintf("%d", board.LabelUsageCount(label.ID))
		}
		text := "#" + label.Text
		if c, ok := labelDisplayColors[label.Color]; ok {
			text = lipgloss.NewStyle().Foreground(c).Render(text)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", prefix, marker, text))
	}
	lines = append(lines, "")
	switch m.labelTab {
	case labelTabAssign:
		lines = append(lines, hintStyle.Render("space toggle on card • tab next • esc close"))
	case labelTabFilter:
		lines = append(lines, hintStyle.Render("space toggle filter • c clear • tab next • esc close"))
	case labelTabManage:
		lines = append(lines, hintStyle.Render("n new • enter edit • d delete • tab next • esc close"))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderHelpOverlay renders the full keybinding reference.
func (m Model) renderHelpOverlay(accent, muted, dim color.Color, maxWidth int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if maxWidth > 0 {
		style = style.Width(clamp(maxWidth, 44, 96))
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	helpBubble := m.help
	helpBubble.ShowAll = true
	helpBubble.SetWidth(clamp(maxWidth, 44, 96) - 4)

	lines := []string{
		titleStyle.Render("Keybindings"),
		helpBubble.View(m.keys),
		hintStyle.Render("? or esc to close"),
	}
	return style.Render(strings.Join(lines, "\n"))
}

// columnWidthFor computes one column's width for the current terminal.
func (m Model) columnWidthFor(boardWidth int) int {
	count := len(m.store.VisibleLists())
	if count == 0 {
		count = 1
	}
	width := boardWidth/count - 3
	return clamp(width, 20, 44)
}

// columnHeight computes the vertical space available to columns.
func (m Model) columnHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(8, m.height-6)
}

// newModalInput constructs modal input.
func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.SetValue(value)
	input.CursorEnd()
	return input
}

// paletteIndex returns the palette slot for a color, defaulting to the first.
func paletteIndex(c domain.LabelColor) int {
	for idx, candidate := range domain.LabelPalette() {
		if candidate == c {
			return idx
		}
	}
	return 0
}

// clamp returns v limited to the inclusive range.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// max returns the larger of the provided values.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// min returns the smaller of the provided values.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// fitLines pads or truncates content to exactly maxLines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers the overlay on top of the base content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate shortens s to at most max runes, ellipsizing when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
