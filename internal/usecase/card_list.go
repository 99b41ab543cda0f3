package usecase

import "github.com/swellfound/standards/internal/domain"

// CardList tracks which card is expanded. Expansion is radio-style: at most
// one top-level record, and within it at most one related entry.
type CardList struct {
	expandedID        string
	expandedRelatedID string
}

// Toggle expands id, collapsing any other card, or collapses id if it is
// already expanded. Either way the nested expansion is cleared.
func (c *CardList) Toggle(id string) {
	c.expandedRelatedID = ""
	if c.expandedID == id {
		c.expandedID = ""
		return
	}
	c.expandedID = id
}

// Collapse closes the expanded card and its nested entry.
func (c *CardList) Collapse() {
	c.expandedID = ""
	c.expandedRelatedID = ""
}

// ExpandedID returns the expanded record id or "".
func (c *CardList) ExpandedID() string {
	return c.expandedID
}

// IsExpanded reports whether id is the expanded card.
func (c *CardList) IsExpanded(id string) bool {
	return id != "" && c.expandedID == id
}

// ToggleRelated flips a related entry of the expanded record. It is a no-op
// (returning false) unless rec is expanded and relatedID is one of its
// resolved related entries.
func (c *CardList) ToggleRelated(rec domain.Standard, relatedID string) bool {
	if !c.IsExpanded(rec.ID) {
		return false
	}
	found := false
	for _, r := range rec.Related {
		if r.ID == relatedID {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if c.expandedRelatedID == relatedID {
		c.expandedRelatedID = ""
	} else {
		c.expandedRelatedID = relatedID
	}
	return true
}

// ExpandedRelatedID returns the expanded related entry id or "".
func (c *CardList) ExpandedRelatedID() string {
	return c.expandedRelatedID
}

// IsRelatedExpanded reports whether relatedID is open inside the expanded card.
func (c *CardList) IsRelatedExpanded(relatedID string) bool {
	return relatedID != "" && c.expandedRelatedID == relatedID
}

// BuyLink returns the record's purchase URL. Activating the link never
// touches expansion state.
func (c *CardList) BuyLink(rec domain.Standard) (string, bool) {
	return rec.BuyURL, rec.BuyURL != ""
}

// Retain collapses the expanded card when it is no longer in visible.
func (c *CardList) Retain(visible []domain.Standard) {
	if c.expandedID == "" {
		return
	}
	for _, rec := range visible {
		if rec.ID == c.expandedID {
			return
		}
	}
	c.Collapse()
}
