package domain

import "fmt"

// FilterMode selects which axis of FilterState is active.
type FilterMode string

const (
	ModeSearch    FilterMode = "search"
	ModeBrowseAll FilterMode = "browse"
)

// ParseFilterMode accepts the wire names used by the HTTP API and CLI.
func ParseFilterMode(s string) (FilterMode, error) {
	switch FilterMode(s) {
	case ModeSearch:
		return ModeSearch, nil
	case ModeBrowseAll, "browse_all", "all":
		return ModeBrowseAll, nil
	}
	return "", fmt.Errorf("%w: unknown filter mode %q", ErrInvalidRequest, s)
}

// FilterState is the visible-set selector. BrowseAll ignores Query; an empty
// Category means no category is selected.
type FilterState struct {
	Query    string     `json:"query"`
	Category string     `json:"category,omitempty"`
	Mode     FilterMode `json:"mode"`
}

// NewSearchFilter returns the initial state: search mode with an empty query.
func NewSearchFilter() FilterState {
	return FilterState{Mode: ModeSearch}
}

// WithMode switches modes and resets the axis that belongs to the other mode.
// Setting the current mode again is a no-op.
func (f FilterState) WithMode(mode FilterMode) FilterState {
	if f.Mode == mode {
		return f
	}
	switch mode {
	case ModeBrowseAll:
		return FilterState{Mode: ModeBrowseAll}
	default:
		return FilterState{Mode: ModeSearch}
	}
}

// WithQuery updates the free-text axis. It has no effect on the category.
func (f FilterState) WithQuery(q string) FilterState {
	f.Query = q
	return f
}

// WithCategory updates the category axis; pass "" to clear it.
func (f FilterState) WithCategory(c string) FilterState {
	f.Category = c
	return f
}
