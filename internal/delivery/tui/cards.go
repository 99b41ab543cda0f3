package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swellfound/standards/internal/domain"
)

const (
	untitledPlaceholder  = "Untitled"
	quicktakePlaceholder = "No quick take available."
)

func titleOrPlaceholder(title string) string {
	if strings.TrimSpace(title) == "" {
		return untitledPlaceholder
	}
	return title
}

func quicktakeOrPlaceholder(q string) string {
	if strings.TrimSpace(q) == "" {
		return quicktakePlaceholder
	}
	return q
}

// renderCard draws one record. Expanded cards add the standard, the
// markdown details, sustainability notes, the buy link and related entries.
func (m *Model) renderCard(rec domain.Standard, selected bool) string {
	width := m.layout.CardContentWidth()
	s := m.styles

	header := s.CardTitle.Render(titleOrPlaceholder(rec.Title))
	if tag := rec.PrimaryTag(); tag != "" {
		header += "  " + s.Badge.Render(tag)
	}
	if rec.Price != "" {
		gap := width - lipgloss.Width(header) - lipgloss.Width(rec.Price)
		if gap < 2 {
			gap = 2
		}
		header += strings.Repeat(" ", gap) + s.Price.Render(rec.Price)
	}

	lines := []string{header, s.Muted.Render(quicktakeOrPlaceholder(rec.Quicktake))}

	if m.session.Cards().IsExpanded(rec.ID) {
		if rec.StandardName != "" {
			lines = append(lines, "", s.Label.Render("Standard: ")+rec.StandardName)
		}
		if rec.Details != "" {
			lines = append(lines, "", m.renderMarkdown(rec.Details))
		}
		if rec.SustainabilityNotes != "" {
			lines = append(lines, s.Label.Render("Sustainability: ")+rec.SustainabilityNotes)
		}
		if rec.BuyURL != "" {
			lines = append(lines, s.Muted.Render("[b] ")+s.Link.Render(rec.BuyURL))
		}
		if len(rec.Related) > 0 {
			lines = append(lines, "", s.Label.Render("Related standards"))
			for i, rel := range rec.Related {
				lines = append(lines, m.renderRelated(rel, i == m.session.RelatedCursor())...)
			}
		}
	}

	style := s.Card
	if selected {
		style = s.CardSelected
	}
	return style.Width(m.layout.CardWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderRelated(rel domain.RelatedSummary, highlighted bool) []string {
	s := m.styles
	open := m.session.Cards().IsRelatedExpanded(rel.ID)

	marker := "▸ "
	if open {
		marker = "▾ "
	}
	if highlighted {
		marker = "› " + marker
	} else {
		marker = "  " + marker
	}
	line := marker + titleOrPlaceholder(rel.Title)
	if tag := rel.PrimaryTag(); tag != "" {
		line += " · " + tag
	}

	style := s.Related
	if open {
		style = s.RelatedOpen
	}
	out := []string{style.Render(line)}
	if !open {
		return out
	}

	indent := lipgloss.NewStyle().PaddingLeft(6)
	out = append(out, indent.Render(s.Muted.Render(quicktakeOrPlaceholder(rel.Quicktake))))
	if rel.Details != "" {
		out = append(out, indent.Render(rel.Details))
	}
	if rel.Price != "" {
		out = append(out, indent.Render(s.Price.Render(rel.Price)))
	}
	if rel.BuyURL != "" {
		out = append(out, indent.Render(s.Link.Render(rel.BuyURL)))
	}
	return out
}

func (m *Model) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// visibleWindow picks the run of cards around cursor that fits in budget
// rows. heights[i] is the rendered height of card i.
func visibleWindow(heights []int, cursor, budget int) (start, end int) {
	if len(heights) == 0 {
		return 0, 0
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(heights) {
		cursor = len(heights) - 1
	}
	start, end = cursor, cursor+1
	used := heights[cursor]
	for end < len(heights) && used+heights[end] <= budget {
		used += heights[end]
		end++
	}
	for start > 0 && used+heights[start-1] <= budget {
		start--
		used += heights[start]
	}
	return start, end
}
