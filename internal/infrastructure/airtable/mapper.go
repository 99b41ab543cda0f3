package airtable

import (
	"encoding/json"

	"github.com/swellfound/standards/internal/domain"
)

// Table column names
const (
	ColumnTitle               = "Title"
	ColumnStandard            = "Standard"
	ColumnTypeText            = "Type_Text"
	ColumnQuicktake           = "Quicktake"
	ColumnDetails             = "Details"
	ColumnPrice               = "Price"
	ColumnImageURL            = "ImageURL"
	ColumnBuyURL              = "BuyURL"
	ColumnSustainabilityNotes = "SustainabilityNotes"
	ColumnRelatedStandards    = "RelatedStandards"
)

// MapRow converts a raw row into a Standard. Missing or mistyped fields fall
// back to empty values; only a row without an id is rejected.
func MapRow(row Row) (domain.Standard, bool) {
	if row.ID == "" {
		return domain.Standard{}, false
	}
	f := row.Fields
	return domain.Standard{
		ID:                  row.ID,
		Title:               stringField(f, ColumnTitle),
		StandardName:        stringField(f, ColumnStandard),
		TypeTags:            stringListField(f, ColumnTypeText),
		Quicktake:           stringField(f, ColumnQuicktake),
		Details:             stringField(f, ColumnDetails),
		Price:               stringField(f, ColumnPrice),
		ImageURL:            stringField(f, ColumnImageURL),
		BuyURL:              stringField(f, ColumnBuyURL),
		SustainabilityNotes: stringField(f, ColumnSustainabilityNotes),
		RelatedIDs:          stringListField(f, ColumnRelatedStandards),
	}, true
}

// MapRows maps a batch, skipping rows without an id.
func MapRows(rows []Row) []domain.Standard {
	records := make([]domain.Standard, 0, len(rows))
	for _, row := range rows {
		if rec, ok := MapRow(row); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ResolveRelated fills Related for every record from the same batch,
// preserving RelatedIDs order. Ids absent from the batch are dropped.
// The input slice is not modified.
func ResolveRelated(records []domain.Standard) []domain.Standard {
	byID := make(map[string]int, len(records))
	for i, rec := range records {
		if _, dup := byID[rec.ID]; !dup {
			byID[rec.ID] = i
		}
	}

	out := make([]domain.Standard, len(records))
	for i, rec := range records {
		related := make([]domain.RelatedSummary, 0, len(rec.RelatedIDs))
		for _, id := range rec.RelatedIDs {
			if j, ok := byID[id]; ok {
				related = append(related, records[j].Summary())
			}
		}
		rec.Related = related
		out[i] = rec
	}
	return out
}

func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func stringListField(fields map[string]json.RawMessage, name string) []string {
	out := []string{}
	raw, ok := fields[name]
	if !ok {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}
