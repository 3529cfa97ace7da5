package domain

import (
	"slices"
	"strings"
)

// LabelColor is one entry of the fixed label palette.
type LabelColor string

// The palette is fixed; labels may only use these colors.
const (
	ColorBlue   LabelColor = "blue"
	ColorGreen  LabelColor = "green"
	ColorYellow LabelColor = "yellow"
	ColorOrange LabelColor = "orange"
	ColorRed    LabelColor = "red"
	ColorPurple LabelColor = "purple"
	ColorPink   LabelColor = "pink"
	ColorTeal   LabelColor = "teal"
	ColorCyan   LabelColor = "cyan"
	ColorIndigo LabelColor = "indigo"
	ColorLime   LabelColor = "lime"
	ColorGray   LabelColor = "gray"
)

var labelPalette = []LabelColor{
	ColorBlue, ColorGreen, ColorYellow, ColorOrange, ColorRed, ColorPurple,
	ColorPink, ColorTeal, ColorCyan, ColorIndigo, ColorLime, ColorGray,
}

// LabelPalette returns the fixed palette in display order.
func LabelPalette() []LabelColor {
	return slices.Clone(labelPalette)
}

// IsValid reports whether the color is part of the palette.
func (c LabelColor) IsValid() bool {
	return slices.Contains(labelPalette, c)
}

// Label is a board-owned tag that cards reference by id.
type Label struct {
	ID    string
	Color LabelColor
	Text  string
}

// NewLabel validates and constructs a label.
func NewLabel(id, text string, color LabelColor) (Label, error) {
	id = strings.TrimSpace(id)
	text = strings.TrimSpace(text)
	if id == "" {
		return Label{}, ErrInvalidID
	}
	if text == "" {
		return Label{}, ErrInvalidText
	}
	if !color.IsValid() {
		return Label{}, ErrInvalidColor
	}
	return Label{ID: id, Color: color, Text: text}, nil
}
