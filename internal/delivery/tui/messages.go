package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/swellfound/standards/internal/domain"
	"github.com/swellfound/standards/internal/usecase"
)

// catalogLoadedMsg carries a completed catalog fetch.
type catalogLoadedMsg struct {
	records []domain.Standard
}

// prefsLoadedMsg carries the stored onboarding preference.
type prefsLoadedMsg struct {
	hideOnboarding bool
}

// prefsSavedMsg reports the outcome of persisting a preference.
type prefsSavedMsg struct {
	err error
}

// settleMsg fires when the debounce window for token has elapsed.
type settleMsg struct {
	token usecase.DebounceToken
}

// deferredMsg runs work that a state machine asked to be scheduled.
type deferredMsg struct {
	fn func()
}

// submitResultMsg carries the outcome of a record creation.
type submitResultMsg struct {
	ticket usecase.SubmitTicket
	err    error
}

// ackDoneMsg ends the success acknowledgement identified by seq.
type ackDoneMsg struct {
	seq int
}

// cmdScheduler implements usecase.Scheduler on the bubbletea loop: deferred
// functions come back as messages on a later Update.
type cmdScheduler struct {
	pending []func()
}

func (s *cmdScheduler) Defer(fn func()) {
	s.pending = append(s.pending, fn)
}

// drain turns everything deferred so far into commands.
func (s *cmdScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, fn := range s.pending {
		fn := fn
		cmds = append(cmds, func() tea.Msg { return deferredMsg{fn: fn} })
	}
	s.pending = nil
	return tea.Batch(cmds...)
}

// alertBox implements usecase.Notifier as a modal that blocks input until a
// key is pressed.
type alertBox struct {
	message string
}

func (a *alertBox) Alert(message string) {
	a.message = message
}

func (a *alertBox) active() bool { return a.message != "" }

func (a *alertBox) dismiss() { a.message = "" }
