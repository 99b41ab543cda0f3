// Package tui is the interactive terminal front end: a search field over the
// catalog card list, the welcome carousel and the submission form.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/swellfound/standards/internal/domain"
	"github.com/swellfound/standards/internal/usecase"
)

// DefaultAckDuration is how long the success acknowledgement stays up.
const DefaultAckDuration = 2 * time.Second

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// CatalogLoader supplies the catalog. Load never fails; it returns an empty
// catalog when the store is unreachable.
type CatalogLoader interface {
	Load(ctx context.Context) []domain.Standard
	Invalidate(ctx context.Context) error
}

// Submitter creates a record from the submission form.
type Submitter interface {
	Submit(ctx context.Context, fields map[string]string) error
}

// Options configures a Model.
type Options struct {
	Catalog   CatalogLoader
	Submitter Submitter
	// Prefs may be nil, in which case the carousel always shows.
	Prefs    domain.PreferenceStore
	PrefsTTL time.Duration

	Debounce        time.Duration
	AckDuration     time.Duration
	WelcomeMessages []string
	Styles          *Styles
	Logger          *zap.Logger
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusList
)

// Model is the root bubbletea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger

	catalog   CatalogLoader
	submitter Submitter
	prefs     domain.PreferenceStore
	prefsTTL  time.Duration

	session    *usecase.BrowseSession
	onboarding *usecase.Onboarding
	wizard     *usecase.SubmissionWizard
	sched      *cmdScheduler
	alert      *alertBox

	prefsLoaded    bool
	hideOnboarding bool
	showOnboarding bool

	search    textinput.Model
	input     textinput.Model
	area      textarea.Model
	selectIdx int
	focus     focusArea

	inflight    usecase.SubmitTicket
	ackDuration time.Duration
	ackSeq      int

	layout   Layout
	styles   Styles
	renderer *glamour.TermRenderer

	loading bool
	status  string
	queued  []tea.Cmd
}

// New builds the root model.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	ack := opts.AckDuration
	if ack <= 0 {
		ack = DefaultAckDuration
	}
	messages := opts.WelcomeMessages
	if messages == nil {
		messages = usecase.DefaultWelcomeMessages
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.Named("tui"),
		catalog:     opts.Catalog,
		submitter:   opts.Submitter,
		prefs:       opts.Prefs,
		prefsTTL:    opts.PrefsTTL,
		session:     usecase.NewBrowseSession(opts.Debounce),
		sched:       &cmdScheduler{},
		alert:       &alertBox{},
		ackDuration: ack,
		styles:      styles,
		loading:     opts.Catalog != nil,
	}

	m.onboarding = usecase.NewOnboarding(messages, m.sched, m.onboardingComplete)
	m.wizard = usecase.NewSubmissionWizard(usecase.WizardOptions{
		Notifier: m.alert,
		OnFocus:  m.focusStep,
	})
	if m.prefs == nil {
		m.prefsLoaded = true
		m.showOnboarding = len(messages) > 0
	}

	m.search = newTextInput("Search standards…")
	m.search.Focus()
	m.input = newTextInput("")
	m.area = newTextArea()

	m.resize(NewLayout(80, 24))
	return m
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newTextArea() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(4)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.Cursor.SetMode(cursor.CursorStatic)
	return ta
}

// Init starts the catalog fetch and the preference lookup.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog(), m.loadPrefs())
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(NewLayout(msg.Width, msg.Height))

	case catalogLoadedMsg:
		m.loading = false
		m.status = ""
		m.session.SetRecords(msg.records)
		m.logger.Debug("catalog loaded", zap.Int("records", len(msg.records)))

	case prefsLoadedMsg:
		m.prefsLoaded = true
		m.hideOnboarding = msg.hideOnboarding
		m.showOnboarding = !msg.hideOnboarding && !m.onboarding.Done() && m.search.Value() == ""

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("saving onboarding preference failed", zap.Error(msg.err))
		}

	case settleMsg:
		m.session.Settle(msg.token)

	case deferredMsg:
		msg.fn()

	case submitResultMsg:
		cmd = m.handleSubmitResult(msg)

	case ackDoneMsg:
		if msg.seq == m.ackSeq && m.wizard.Acknowledge() {
			m.focus = focusSearch
			m.search.Focus()
		}

	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}

	return m, m.flush(cmd)
}

// flush batches cmd with work queued by callbacks and deferred functions.
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(m.queued, cmd, m.sched.drain())
	m.queued = nil
	return tea.Batch(cmds...)
}

func (m *Model) resize(l Layout) {
	m.layout = l
	m.search.Width = l.SearchWidth - 4
	m.input.Width = l.SearchWidth - 8
	m.area.SetWidth(l.SearchWidth - 8)

	style := "light"
	if m.styles.Theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(l.CardContentWidth()),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		r = nil
	}
	m.renderer = r
}

func (m *Model) loadCatalog() tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	catalog, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg{records: catalog.Load(ctx)}
	}
}

func (m *Model) refetch() tea.Cmd {
	if m.catalog == nil || m.loading {
		return nil
	}
	m.loading = true
	m.status = "Refreshing…"
	catalog, ctx, logger := m.catalog, m.ctx, m.logger
	return func() tea.Msg {
		if err := catalog.Invalidate(ctx); err != nil {
			logger.Warn("catalog invalidate failed", zap.Error(err))
		}
		return catalogLoadedMsg{records: catalog.Load(ctx)}
	}
}

func (m *Model) loadPrefs() tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	prefs, ctx, logger := m.prefs, m.ctx, m.logger
	return func() tea.Msg {
		hide, err := prefs.GetBool(ctx, domain.PrefHideOnboarding)
		if err != nil && !errors.Is(err, domain.ErrPreferenceNotFound) {
			logger.Warn("reading onboarding preference failed", zap.Error(err))
		}
		return prefsLoadedMsg{hideOnboarding: err == nil && hide}
	}
}

// onboardingComplete runs on a later turn after the last welcome card goes.
func (m *Model) onboardingComplete(dontShowAgain bool) {
	m.showOnboarding = false
	if !dontShowAgain || m.prefs == nil {
		return
	}
	m.hideOnboarding = true
	prefs, ctx, ttl := m.prefs, m.ctx, m.prefsTTL
	m.queued = append(m.queued, func() tea.Msg {
		return prefsSavedMsg{err: prefs.SetBool(ctx, domain.PrefHideOnboarding, true, ttl)}
	})
}

// focusStep loads the widget for wizard step i with the draft value.
func (m *Model) focusStep(i int) {
	step := m.wizard.Steps()[i]
	value := m.wizard.Value(step.Field)

	m.input.Blur()
	m.area.Blur()
	switch step.Kind {
	case usecase.FieldTextarea:
		m.area.Placeholder = step.Placeholder
		m.area.SetValue(value)
		m.area.Focus()
	case usecase.FieldSelect:
		m.selectIdx = 0
		for j, opt := range step.Options {
			if opt == value {
				m.selectIdx = j
			}
		}
	default:
		m.input.Placeholder = step.Placeholder
		m.input.SetValue(value)
		m.input.CursorEnd()
		m.input.Focus()
	}
}

// commitStep copies the active widget into the wizard draft.
func (m *Model) commitStep() {
	step := m.wizard.CurrentStep()
	switch step.Kind {
	case usecase.FieldTextarea:
		m.wizard.SetValue(m.area.Value())
	case usecase.FieldSelect:
		if len(step.Options) > 0 {
			m.wizard.SetValue(step.Options[m.selectIdx])
		}
	default:
		m.wizard.SetValue(m.input.Value())
	}
}

func (m *Model) submit(ticket usecase.SubmitTicket) tea.Cmd {
	m.inflight = ticket
	if m.submitter == nil {
		return func() tea.Msg {
			return submitResultMsg{ticket: ticket, err: domain.ErrSubmit}
		}
	}
	submitter, ctx := m.submitter, m.ctx
	return func() tea.Msg {
		return submitResultMsg{ticket: ticket, err: submitter.Submit(ctx, ticket.Fields)}
	}
}

func (m *Model) handleSubmitResult(msg submitResultMsg) tea.Cmd {
	if !m.wizard.Resolve(msg.ticket, msg.err) {
		m.logger.Debug("discarding stale submission outcome")
		return nil
	}
	if msg.err != nil {
		m.logger.Warn("submission failed", zap.Error(msg.err))
		return nil
	}
	m.ackSeq++
	seq := m.ackSeq
	return tea.Tick(m.ackDuration, func(time.Time) tea.Msg { return ackDoneMsg{seq: seq} })
}

// Shutdown tears down in-flight work. Outcomes that arrive later are dropped.
func (m *Model) Shutdown() {
	m.wizard.Teardown()
	m.cancel()
}
