package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/swellfound/standards/internal/domain"
	"github.com/swellfound/standards/internal/usecase"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.Shutdown()
		return tea.Quit
	}

	// The failure alert is modal; any key closes it.
	if m.alert.active() {
		m.alert.dismiss()
		return nil
	}

	if m.wizard.IsOpen() {
		return m.handleWizardKey(msg)
	}

	switch msg.String() {
	case "ctrl+n":
		m.showOnboarding = false
		m.search.Blur()
		m.wizard.Open()
		return nil
	case "ctrl+r":
		return m.refetch()
	case "tab":
		m.session.ToggleMode()
		m.search.SetValue(m.session.Filter().Query)
		if len(m.session.Visible()) == 0 {
			m.focus = focusSearch
			m.search.Focus()
		}
		return nil
	}

	if m.showOnboarding {
		if cmd, handled := m.handleOnboardingKey(msg); handled {
			return cmd
		}
	}

	if m.focus == focusList {
		if cmd, handled := m.handleListKey(msg); handled {
			return cmd
		}
		// Anything else is typing.
		m.focus = focusSearch
		m.search.Focus()
	}
	return m.handleSearchKey(msg)
}

func (m *Model) handleOnboardingKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter", "right":
		m.onboarding.Dismiss(usecase.Click)
		return nil, true
	case "d":
		if m.onboarding.ToggleDontShowAgain() {
			return nil, true
		}
	}
	return nil, false
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	browsing := m.session.Filter().Mode == domain.ModeBrowseAll
	switch msg.String() {
	case "down", "enter":
		if len(m.session.Visible()) > 0 {
			m.focus = focusList
			m.search.Blur()
		}
		return nil
	case "left":
		if browsing {
			m.session.CycleCategory(-1)
			return nil
		}
	case "right":
		if browsing {
			m.session.CycleCategory(1)
			return nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	after := m.search.Value()
	if after == before {
		return cmd
	}

	// Typing replaces the welcome carousel with results.
	m.showOnboarding = false
	token := m.session.TypeQuery(after)
	settle := tea.Tick(m.session.Debounce(), func(time.Time) tea.Msg {
		return settleMsg{token: token}
	})
	return tea.Batch(cmd, settle)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	browsing := m.session.Filter().Mode == domain.ModeBrowseAll
	switch msg.String() {
	case "up", "k":
		if m.session.Cursor() == 0 {
			m.focus = focusSearch
			m.search.Focus()
			return nil, true
		}
		m.session.MoveCursor(-1)
	case "down", "j":
		m.session.MoveCursor(1)
	case "enter":
		m.session.ToggleCurrent()
	case "[":
		m.session.MoveRelatedCursor(-1)
	case "]":
		m.session.MoveRelatedCursor(1)
	case " ":
		m.session.ToggleCurrentRelated()
	case "b":
		m.copyBuyLink()
	case "left":
		if !browsing {
			return nil, true
		}
		m.session.CycleCategory(-1)
	case "right":
		if !browsing {
			return nil, true
		}
		m.session.CycleCategory(1)
	case "esc", "/":
		m.focus = focusSearch
		m.search.Focus()
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) copyBuyLink() {
	url, ok := m.session.CurrentBuyLink()
	if !ok {
		m.status = "No buy link for this standard"
		return
	}
	if err := clipboardWriteAll(url); err != nil {
		m.status = "Buy link: " + url
		return
	}
	m.status = fmt.Sprintf("Copied buy link to clipboard: %s", url)
}

func (m *Model) handleWizardKey(msg tea.KeyMsg) tea.Cmd {
	switch m.wizard.Phase() {
	case usecase.WizardSubmitting:
		return nil
	case usecase.WizardSucceeded:
		if msg.String() == "esc" || msg.String() == "enter" {
			m.wizard.Dismiss()
			m.focus = focusSearch
			m.search.Focus()
		}
		return nil
	}

	step := m.wizard.CurrentStep()
	switch msg.String() {
	case "esc":
		m.wizard.Dismiss()
		m.focus = focusSearch
		m.search.Focus()
		return nil
	case "shift+tab":
		m.commitStep()
		m.wizard.Previous()
		return nil
	case "enter":
		m.commitStep()
		if ticket, ok := m.wizard.Enter(); ok {
			return m.submit(ticket)
		}
		return nil
	}

	var cmd tea.Cmd
	switch step.Kind {
	case usecase.FieldSelect:
		n := len(step.Options)
		if n == 0 {
			return nil
		}
		switch msg.String() {
		case "left", "up":
			m.selectIdx = (m.selectIdx - 1 + n) % n
		case "right", "down":
			m.selectIdx = (m.selectIdx + 1) % n
		}
	case usecase.FieldTextarea:
		m.area, cmd = m.area.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return cmd
}
