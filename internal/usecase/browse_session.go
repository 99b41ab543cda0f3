package usecase

import (
	"time"

	"github.com/swellfound/standards/internal/domain"
)

// BrowseSession is the state behind the card list: the fetched catalog, the
// live filter, the visible subset it last produced, the card cursor and the
// expansion state.
//
// Query edits are debounced; mode and category changes apply at once.
type BrowseSession struct {
	records []domain.Standard
	loaded  bool

	filter  domain.FilterState
	applied domain.FilterState
	visible []domain.Standard

	debouncer *Debouncer
	cards     CardList

	cursor        int
	relatedCursor int
}

// NewBrowseSession starts in search mode with an empty query and no records.
func NewBrowseSession(debounce time.Duration) *BrowseSession {
	return &BrowseSession{
		filter:    domain.NewSearchFilter(),
		applied:   domain.NewSearchFilter(),
		visible:   []domain.Standard{},
		debouncer: NewDebouncer(debounce),
	}
}

// SetRecords replaces the catalog wholesale and re-applies the current filter.
func (s *BrowseSession) SetRecords(records []domain.Standard) {
	if records == nil {
		records = []domain.Standard{}
	}
	s.records = records
	s.loaded = true
	s.recompute()
}

// Loaded reports whether a fetch has completed, successfully or not.
func (s *BrowseSession) Loaded() bool { return s.loaded }

// Records returns the full catalog.
func (s *BrowseSession) Records() []domain.Standard { return s.records }

// Visible returns the subset produced by the last applied filter.
func (s *BrowseSession) Visible() []domain.Standard { return s.visible }

// Filter returns the live filter, which may be ahead of Applied while a
// query is debouncing.
func (s *BrowseSession) Filter() domain.FilterState { return s.filter }

// Applied returns the filter the visible set reflects.
func (s *BrowseSession) Applied() domain.FilterState { return s.applied }

// Cards exposes the expansion state.
func (s *BrowseSession) Cards() *CardList { return &s.cards }

// Debounce returns the settle delay the host should wait after TypeQuery.
func (s *BrowseSession) Debounce() time.Duration { return s.debouncer.Delay() }

// Pending reports whether a query edit has not been applied yet.
func (s *BrowseSession) Pending() bool { return s.debouncer.Pending() }

// TypeQuery records a keystroke. Typing is a search: in BrowseAll mode the
// session first switches to Search, which clears the category. The returned
// token must be passed to Settle after Debounce has elapsed.
func (s *BrowseSession) TypeQuery(query string) DebounceToken {
	if s.filter.Mode != domain.ModeSearch {
		s.filter = s.filter.WithMode(domain.ModeSearch)
	}
	s.filter = s.filter.WithQuery(query)
	return s.debouncer.Touch()
}

// Settle applies the live query if tok is the newest keystroke. Stale tokens
// are ignored and report false.
func (s *BrowseSession) Settle(tok DebounceToken) bool {
	if !s.debouncer.Settle(tok) {
		return false
	}
	s.recompute()
	return true
}

// SetMode switches between Search and BrowseAll, resetting the other axis.
// Any pending query settle is dropped.
func (s *BrowseSession) SetMode(mode domain.FilterMode) {
	if s.filter.Mode == mode {
		return
	}
	s.debouncer.Cancel()
	s.filter = s.filter.WithMode(mode)
	s.recompute()
}

// ToggleMode flips between Search and BrowseAll.
func (s *BrowseSession) ToggleMode() {
	if s.filter.Mode == domain.ModeBrowseAll {
		s.SetMode(domain.ModeSearch)
		return
	}
	s.SetMode(domain.ModeBrowseAll)
}

// SelectCategory narrows BrowseAll to one tag; "" clears the selection.
// Selecting from Search mode switches to BrowseAll first.
func (s *BrowseSession) SelectCategory(category string) {
	if s.filter.Mode != domain.ModeBrowseAll {
		s.SetMode(domain.ModeBrowseAll)
	}
	s.filter = s.filter.WithCategory(category)
	s.recompute()
}

// CycleCategory steps through "no category" followed by every tag in the
// catalog.
func (s *BrowseSession) CycleCategory(delta int) {
	options := append([]string{""}, Categories(s.records)...)
	idx := 0
	for i, c := range options {
		if c == s.filter.Category {
			idx = i
			break
		}
	}
	n := len(options)
	idx = ((idx+delta)%n + n) % n
	s.SelectCategory(options[idx])
}

// HasQuery reports whether the live search query has any tokens.
func (s *BrowseSession) HasQuery() bool {
	return s.filter.Mode == domain.ModeSearch && len(Normalize(s.filter.Query)) > 0
}

// Cursor returns the index of the highlighted visible card.
func (s *BrowseSession) Cursor() int { return s.cursor }

// MoveCursor moves the highlight within the visible cards.
func (s *BrowseSession) MoveCursor(delta int) {
	s.cursor = clamp(s.cursor+delta, len(s.visible))
	s.relatedCursor = 0
}

// Current returns the highlighted card.
func (s *BrowseSession) Current() (domain.Standard, bool) {
	if s.cursor < 0 || s.cursor >= len(s.visible) {
		return domain.Standard{}, false
	}
	return s.visible[s.cursor], true
}

// ToggleCurrent expands or collapses the highlighted card.
func (s *BrowseSession) ToggleCurrent() {
	rec, ok := s.Current()
	if !ok {
		return
	}
	s.cards.Toggle(rec.ID)
	s.relatedCursor = 0
}

// RelatedCursor returns the highlighted related entry of the expanded card.
func (s *BrowseSession) RelatedCursor() int { return s.relatedCursor }

// MoveRelatedCursor moves within the related entries of the expanded card.
func (s *BrowseSession) MoveRelatedCursor(delta int) {
	rec, ok := s.expanded()
	if !ok {
		return
	}
	s.relatedCursor = clamp(s.relatedCursor+delta, len(rec.Related))
}

// ToggleCurrentRelated flips the highlighted related entry of the expanded card.
func (s *BrowseSession) ToggleCurrentRelated() bool {
	rec, ok := s.expanded()
	if !ok || s.relatedCursor >= len(rec.Related) {
		return false
	}
	return s.cards.ToggleRelated(rec, rec.Related[s.relatedCursor].ID)
}

// CurrentBuyLink returns the buy URL of the highlighted card without
// changing expansion.
func (s *BrowseSession) CurrentBuyLink() (string, bool) {
	rec, ok := s.Current()
	if !ok {
		return "", false
	}
	return s.cards.BuyLink(rec)
}

func (s *BrowseSession) expanded() (domain.Standard, bool) {
	id := s.cards.ExpandedID()
	if id == "" {
		return domain.Standard{}, false
	}
	for _, rec := range s.visible {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.Standard{}, false
}

func (s *BrowseSession) recompute() {
	s.visible = ApplyFilter(s.records, s.filter)
	s.applied = s.filter
	s.cards.Retain(s.visible)
	s.cursor = clamp(s.cursor, len(s.visible))
	if s.cards.ExpandedID() == "" {
		s.relatedCursor = 0
	}
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
