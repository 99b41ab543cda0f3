package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swellfound/standards/internal/domain"
	"github.com/swellfound/standards/internal/usecase"
)

// View renders the whole screen.
func (m *Model) View() string {
	var body string
	switch {
	case m.alert.active():
		body = m.viewAlert()
	case m.wizard.IsOpen():
		body = m.viewWizard()
	case m.onboardingVisible():
		body = m.viewOnboarding()
	default:
		body = m.viewResults()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewFooter(),
	)
}

func (m *Model) onboardingVisible() bool {
	return m.showOnboarding &&
		!m.onboarding.Done() &&
		m.session.Filter().Mode == domain.ModeSearch &&
		!m.session.HasQuery()
}

func (m *Model) viewHeader() string {
	s := m.styles
	filter := m.session.Filter()

	searchTab, browseTab := s.TabActive, s.Tab
	if filter.Mode == domain.ModeBrowseAll {
		searchTab, browseTab = s.Tab, s.TabActive
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Header.Render("SwellFound Standards"),
		searchTab.Render("Search"),
		browseTab.Render("Browse all"),
	)

	second := m.search.View()
	if filter.Mode == domain.ModeBrowseAll {
		chips := []string{m.chip("All", filter.Category == "")}
		for _, c := range usecase.Categories(m.session.Records()) {
			chips = append(chips, m.chip(c, filter.Category == c))
		}
		second = lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabs, lipgloss.NewStyle().Width(m.layout.SearchWidth).Render(second), "")
}

func (m *Model) chip(label string, on bool) string {
	if on {
		return m.styles.ChipOn.Render("[" + label + "]")
	}
	return m.styles.Chip.Render(label)
}

func (m *Model) viewResults() string {
	s := m.styles
	if m.loading && !m.session.Loaded() {
		return s.Muted.Render("Loading standards…")
	}

	visible := m.session.Visible()
	if len(visible) == 0 {
		switch {
		case m.session.HasQuery() && !m.session.Pending():
			return s.Muted.Render("No results found.")
		case m.session.Filter().Mode == domain.ModeSearch:
			return s.Muted.Render("Type to search, or press tab to browse all standards.")
		default:
			return s.Muted.Render("No standards in this category yet.")
		}
	}

	cursor := -1
	if m.focus == focusList {
		cursor = m.session.Cursor()
	}
	rendered := make([]string, len(visible))
	heights := make([]int, len(visible))
	for i, rec := range visible {
		rendered[i] = m.renderCard(rec, i == cursor)
		heights[i] = lipgloss.Height(rendered[i])
	}
	start, end := visibleWindow(heights, m.session.Cursor(), m.layout.ListHeight())
	return lipgloss.JoinVertical(lipgloss.Left, rendered[start:end]...)
}

func (m *Model) viewOnboarding() string {
	s := m.styles
	remaining := m.onboarding.Remaining()
	front, _ := m.onboarding.Current()
	total := len(remaining)

	lines := []string{front, ""}
	if m.onboarding.IsLast() {
		box := "[ ]"
		if m.onboarding.DontShowAgain() {
			box = "[x]"
		}
		lines = append(lines, s.Muted.Render(box+" Don't show this again (d)"))
		lines = append(lines, s.Muted.Render("enter to start exploring"))
	} else {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("enter/→ next · %d more", total-1)))
	}

	card := s.Welcome.Width(m.layout.CardWidth - 2).Render(strings.Join(lines, "\n"))
	// Hint at the stacked cards underneath.
	var under []string
	for i := 1; i < total && i < 3; i++ {
		under = append(under, s.Muted.Render(strings.Repeat(" ", i*2)+strings.Repeat("─", m.layout.CardWidth-2-i*4)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{card}, under...)...)
}

func (m *Model) viewWizard() string {
	s := m.styles
	steps := m.wizard.Steps()
	formWidth := m.layout.CardWidth - 2

	switch m.wizard.Phase() {
	case usecase.WizardSucceeded:
		return s.Form.Width(formWidth).Render(s.Success.Render("Thank you! Your standard has been submitted."))
	case usecase.WizardSubmitting:
		return s.Form.Width(formWidth).Render(s.Muted.Render("Submitting…"))
	}

	step := m.wizard.CurrentStep()
	lines := []string{
		s.Label.Render("Submit a Standard"),
		s.Muted.Render(fmt.Sprintf("Step %d of %d", m.wizard.Step()+1, len(steps))),
		"",
		s.Label.Render(step.Label),
	}

	switch step.Kind {
	case usecase.FieldSelect:
		var opts []string
		for i, opt := range step.Options {
			if i == m.selectIdx {
				opts = append(opts, s.ChipOn.Render("‹ "+opt+" ›"))
			} else {
				opts = append(opts, s.Chip.Render(opt))
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, opts...))
	case usecase.FieldTextarea:
		lines = append(lines, m.area.View())
	default:
		lines = append(lines, m.input.View())
	}

	hint := "enter next"
	if m.wizard.IsLastStep() {
		hint = "enter submit"
	}
	if m.wizard.Step() > 0 {
		hint += " · shift+tab back"
	}
	if step.Kind == usecase.FieldTextarea {
		hint += " · alt+enter newline"
	}
	hint += " · esc cancel"
	lines = append(lines, "", s.Muted.Render(hint))

	return s.Form.Width(formWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) viewAlert() string {
	return m.styles.Alert.Width(m.layout.CardWidth - 2).Render(
		m.alert.message + "\n\n" + m.styles.Muted.Render("press any key"))
}

func (m *Model) viewFooter() string {
	var hints string
	switch {
	case m.wizard.IsOpen():
		hints = "ctrl+c quit"
	case m.focus == focusList:
		hints = "↑/↓ move · enter expand · [/] related · space open related · b copy buy link · / search"
	case m.session.Filter().Mode == domain.ModeBrowseAll:
		hints = "←/→ category · ↓ cards · tab search · ctrl+n submit · ctrl+r refresh · ctrl+c quit"
	default:
		hints = "tab browse all · ↓ cards · ctrl+n submit · ctrl+r refresh · ctrl+c quit"
	}
	if m.layout.IsCompact {
		hints = "ctrl+c quit"
	}

	out := m.styles.Footer.Render(hints)
	if m.status != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, m.styles.Footer.Render(m.status), out)
	}
	return out
}
