package tui

// Layout constants
const (
	HorizontalPadding = 2
	HeaderHeight      = 4
	FooterHeight      = 2
	MaxContentWidth   = 96
	MinContentWidth   = 24
	CompactModeWidth  = 60
	CardChromeWidth   = 4 // border plus horizontal padding
)

// Layout is the measured geometry the views render into. It is recomputed
// from every tea.WindowSizeMsg; cards always share the search field's width.
type Layout struct {
	TerminalWidth  int
	TerminalHeight int
	SearchWidth    int
	CardWidth      int
	IsCompact      bool
}

// NewLayout computes the layout for the given terminal size
func NewLayout(width, height int) Layout {
	content := width - HorizontalPadding*2
	if content > MaxContentWidth {
		content = MaxContentWidth
	}
	if content < MinContentWidth {
		content = MinContentWidth
	}
	return Layout{
		TerminalWidth:  width,
		TerminalHeight: height,
		SearchWidth:    content,
		CardWidth:      content,
		IsCompact:      width < CompactModeWidth,
	}
}

// CardContentWidth is the text width inside a card's border
func (l Layout) CardContentWidth() int {
	return l.CardWidth - CardChromeWidth
}

// ListHeight is the number of rows available to the card list
func (l Layout) ListHeight() int {
	h := l.TerminalHeight - HeaderHeight - FooterHeight
	if h < 3 {
		return 3
	}
	return h
}
