package domain

import "strings"

// Standard is a single catalog record fetched from the hosted table.
// Values are replaced wholesale on refetch and never mutated in place.
type Standard struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	StandardName        string           `json:"standard"`
	TypeTags            []string         `json:"typeTags"`
	Quicktake           string           `json:"quicktake"`
	Details             string           `json:"details"`
	Price               string           `json:"price"`
	ImageURL            string           `json:"imageUrl,omitempty"`
	BuyURL              string           `json:"buyUrl,omitempty"`
	SustainabilityNotes string           `json:"sustainabilityNotes"`
	RelatedIDs          []string         `json:"relatedIds"`
	Related             []RelatedSummary `json:"related"`
}

// RelatedSummary is the embedded view of another record referenced through
// RelatedIDs. It carries no references of its own.
type RelatedSummary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	StandardName string   `json:"standard"`
	TypeTags     []string `json:"typeTags"`
	Quicktake    string   `json:"quicktake"`
	Details      string   `json:"details"`
	Price        string   `json:"price"`
	BuyURL       string   `json:"buyUrl,omitempty"`
}

// PrimaryTag returns the first type tag, which is the one displayed on cards.
func (s Standard) PrimaryTag() string {
	if len(s.TypeTags) == 0 {
		return ""
	}
	return s.TypeTags[0]
}

// HasTag reports whether the record carries the exact category label.
func (s Standard) HasTag(tag string) bool {
	for _, t := range s.TypeTags {
		if t == tag {
			return true
		}
	}
	return false
}

// SearchText is the lowercased haystack that free-text queries match against.
func (s Standard) SearchText() string {
	parts := []string{s.Title, s.Quicktake, s.Details}
	parts = append(parts, s.TypeTags...)
	parts = append(parts, s.StandardName, s.SustainabilityNotes)
	return strings.ToLower(strings.Join(parts, " "))
}

// Summary projects the record into the shape embedded by other records.
func (s Standard) Summary() RelatedSummary {
	return RelatedSummary{
		ID:           s.ID,
		Title:        s.Title,
		StandardName: s.StandardName,
		TypeTags:     s.TypeTags,
		Quicktake:    s.Quicktake,
		Details:      s.Details,
		Price:        s.Price,
		BuyURL:       s.BuyURL,
	}
}

// PrimaryTag returns the first type tag of the summary.
func (r RelatedSummary) PrimaryTag() string {
	if len(r.TypeTags) == 0 {
		return ""
	}
	return r.TypeTags[0]
}
