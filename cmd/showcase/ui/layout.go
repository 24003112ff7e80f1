package ui

// Layout constants for grid and panel sizing
const (
	// Space between cards on a row
	CardGap = 1

	// Narrowest card that still fits a title and a link
	MinCardWidth = 24

	// Lines of description shown on a card before truncation
	CardDescriptionLines = 3

	// Lines reserved around the detail overlay
	DetailChromeHeight = 2

	// Below this the grid falls back to a single column
	MinimumTerminalWidth = 40
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	CardWidth      int
	Columns        int
}

// NewLayoutConfig fits as many cards of the preferred width per row as the
// terminal allows, widening a lone column to the full width.
func NewLayoutConfig(width, height, preferredCardWidth int) LayoutConfig {
	if preferredCardWidth < MinCardWidth {
		preferredCardWidth = MinCardWidth
	}

	cols := 1
	if width >= MinimumTerminalWidth {
		cols = (width + CardGap) / (preferredCardWidth + CardGap)
		if cols < 1 {
			cols = 1
		}
	}

	cardWidth := preferredCardWidth
	if cols == 1 || width < preferredCardWidth {
		cardWidth = width
	}
	if cardWidth < 1 {
		cardWidth = 1
	}

	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		CardWidth:      cardWidth,
		Columns:        cols,
	}
}

// RowOf returns the grid row of the card at index. A zero layout, before
// the first resize, is treated as a single column.
func (l LayoutConfig) RowOf(index int) int {
	return index / max(l.Columns, 1)
}
