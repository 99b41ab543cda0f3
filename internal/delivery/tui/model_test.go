package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellfound/standards/internal/domain"
	"github.com/swellfound/standards/internal/usecase"
)

type fakeCatalog struct {
	records     []domain.Standard
	loads       int
	invalidated int
}

func (f *fakeCatalog) Load(ctx context.Context) []domain.Standard {
	f.loads++
	return f.records
}

func (f *fakeCatalog) Invalidate(ctx context.Context) error {
	f.invalidated++
	return nil
}

type fakeSubmitter struct {
	mu     sync.Mutex
	err    error
	fields []map[string]string
}

func (f *fakeSubmitter) Submit(ctx context.Context, fields map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = append(f.fields, fields)
	return f.err
}

type fakePrefs struct {
	values map[string]bool
}

func (f *fakePrefs) GetBool(ctx context.Context, key string) (bool, error) {
	v, ok := f.values[key]
	if !ok {
		return false, domain.ErrPreferenceNotFound
	}
	return v, nil
}

func (f *fakePrefs) SetBool(ctx context.Context, key string, value bool, ttl time.Duration) error {
	f.values[key] = value
	return nil
}

func (f *fakePrefs) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func testRecords() []domain.Standard {
	return []domain.Standard{
		{
			ID: "rec1", Title: "Cast Iron Pan", TypeTags: []string{"Tool"}, BuyURL: "https://buy/pan",
			Related: []domain.RelatedSummary{{ID: "rec3", Title: "Kite", TypeTags: []string{"Toy"}}},
		},
		{ID: "rec2", Title: "Pour Over", Quicktake: "Better coffee", TypeTags: []string{"Technique"}, Related: []domain.RelatedSummary{}},
		{ID: "rec3", Title: "", TypeTags: []string{"Toy"}, Related: []domain.RelatedSummary{}},
	}
}

type harness struct {
	m         *Model
	catalog   *fakeCatalog
	submitter *fakeSubmitter
	prefs     *fakePrefs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		catalog:   &fakeCatalog{records: testRecords()},
		submitter: &fakeSubmitter{},
		prefs:     &fakePrefs{values: map[string]bool{}},
	}
	styles := NewStyles(LightTheme())
	h.m = New(Options{
		Catalog:     h.catalog,
		Submitter:   h.submitter,
		Prefs:       h.prefs,
		PrefsTTL:    time.Hour,
		Debounce:    time.Millisecond,
		AckDuration: time.Millisecond,
		Styles:      &styles,
	})
	t.Cleanup(h.m.Shutdown)
	h.pump(h.m.Init())
	return h
}

// runCmd executes cmd the way the runtime would, flattening batches.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump runs cmd and feeds every resulting message back through Update.
func (h *harness) pump(cmd tea.Cmd) {
	queue := runCmd(cmd)
	for i := 0; len(queue) > 0 && i < 100; i++ {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		_, next := h.m.Update(msg)
		queue = append(queue, runCmd(next)...)
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.pump(cmd)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) press(k tea.KeyType) {
	h.send(tea.KeyMsg{Type: k})
}

func visibleIDs(m *Model) []string {
	out := []string{}
	for _, r := range m.session.Visible() {
		out = append(out, r.ID)
	}
	return out
}

func TestModel_InitLoadsCatalogAndShowsOnboarding(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 1, h.catalog.loads)
	assert.True(t, h.m.session.Loaded())
	assert.True(t, h.m.onboardingVisible())
	assert.Contains(t, h.m.View(), "At SwellFound")
}

func TestModel_HiddenOnboardingPreference(t *testing.T) {
	h := newHarness(t)
	h.send(prefsLoadedMsg{hideOnboarding: true})
	assert.False(t, h.m.onboardingVisible())
}

func TestModel_SearchIsDebounced(t *testing.T) {
	h := newHarness(t)

	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("coffee")})
	assert.Empty(t, h.m.session.Visible(), "results wait for the debounce")
	assert.False(t, h.m.onboardingVisible(), "typing hides the carousel")

	h.pump(cmd)
	assert.Equal(t, "coffee", h.m.session.Applied().Query)
	assert.Equal(t, []string{"rec2"}, visibleIDs(h.m))
}

func TestModel_StaleSettleIsIgnored(t *testing.T) {
	h := newHarness(t)

	_, first := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	_, second := h.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("an")})

	h.pump(first)
	assert.Equal(t, "", h.m.session.Applied().Query, "superseded token must not apply")

	h.pump(second)
	assert.Equal(t, "pan", h.m.session.Applied().Query)
	assert.Equal(t, []string{"rec1"}, visibleIDs(h.m))
}

func TestModel_NoResultsMessage(t *testing.T) {
	h := newHarness(t)
	assert.NotContains(t, h.m.View(), "No results found.")

	h.typeText("zebra")
	assert.Contains(t, h.m.View(), "No results found.")
}

func TestModel_BrowseAllAndCategories(t *testing.T) {
	h := newHarness(t)

	h.press(tea.KeyTab)
	assert.Equal(t, domain.ModeBrowseAll, h.m.session.Filter().Mode)
	assert.Len(t, h.m.session.Visible(), 3)
	assert.False(t, h.m.onboardingVisible())

	h.press(tea.KeyRight)
	assert.Equal(t, "Tool", h.m.session.Filter().Category)
	assert.Equal(t, []string{"rec1"}, visibleIDs(h.m))

	h.press(tea.KeyLeft)
	assert.Equal(t, "", h.m.session.Filter().Category)

	// Typing from browse mode switches back to search.
	h.typeText("coffee")
	assert.Equal(t, domain.ModeSearch, h.m.session.Filter().Mode)
	assert.Equal(t, []string{"rec2"}, visibleIDs(h.m))
}

func TestModel_CardExpansionIsRadio(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyTab)
	h.press(tea.KeyDown) // focus the list

	h.press(tea.KeyEnter)
	assert.Equal(t, "rec1", h.m.session.Cards().ExpandedID())
	assert.Contains(t, h.m.View(), "Related standards")

	h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, "rec3", h.m.session.Cards().ExpandedRelatedID())

	h.press(tea.KeyDown)
	h.press(tea.KeyEnter)
	assert.Equal(t, "rec2", h.m.session.Cards().ExpandedID())
	assert.Equal(t, "", h.m.session.Cards().ExpandedRelatedID())
}

func TestModel_PlaceholdersForEmptyFields(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyTab)
	h.press(tea.KeyRight)
	h.press(tea.KeyRight)
	h.press(tea.KeyRight) // Toy

	view := h.m.View()
	assert.Contains(t, view, "Untitled")
	assert.Contains(t, view, "No quick take available.")
}

func TestModel_BuyLinkCopiesWithoutToggling(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWriteAll = orig })

	h := newHarness(t)
	h.press(tea.KeyTab)
	h.press(tea.KeyDown)
	h.typeText("b")

	assert.Equal(t, "https://buy/pan", copied)
	assert.Equal(t, "", h.m.session.Cards().ExpandedID())
	assert.Contains(t, h.m.status, "Copied buy link")
}

func TestModel_RefreshRefetches(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyCtrlR)
	assert.Equal(t, 1, h.catalog.invalidated)
	assert.Equal(t, 2, h.catalog.loads)
	assert.False(t, h.m.loading)
}

func TestModel_OnboardingCompletesAndPersists(t *testing.T) {
	h := newHarness(t)
	n := len(usecase.DefaultWelcomeMessages)

	for i := 0; i < n-1; i++ {
		h.press(tea.KeyEnter)
	}
	require.True(t, h.m.onboarding.IsLast())
	h.typeText("d")
	assert.True(t, h.m.onboarding.DontShowAgain())
	assert.Equal(t, "", h.m.search.Value(), "toggle key must not reach the search field")

	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, h.m.onboarding.Completed(), "completion is deferred")

	h.pump(cmd)
	assert.True(t, h.m.onboarding.Completed())
	assert.False(t, h.m.onboardingVisible())
	assert.True(t, h.prefs.values[domain.PrefHideOnboarding])
}

func TestModel_OnboardingWithoutOptOutDoesNotPersist(t *testing.T) {
	h := newHarness(t)
	for range usecase.DefaultWelcomeMessages {
		h.press(tea.KeyEnter)
	}
	assert.True(t, h.m.onboarding.Completed())
	_, stored := h.prefs.values[domain.PrefHideOnboarding]
	assert.False(t, stored)
}

// fillWizard walks every step, typing into text fields.
func fillWizard(h *harness) {
	for !h.m.wizard.IsLastStep() {
		if h.m.wizard.CurrentStep().Kind != usecase.FieldSelect {
			h.typeText("x")
		} else {
			h.press(tea.KeyRight)
		}
		h.press(tea.KeyEnter)
	}
	h.typeText("details")
}

func TestModel_SubmissionFailureKeepsDraft(t *testing.T) {
	h := newHarness(t)
	h.submitter.err = errors.New("422")

	h.press(tea.KeyCtrlN)
	require.True(t, h.m.wizard.IsOpen())
	h.typeText("Ada")
	h.press(tea.KeyEnter)
	fillWizard(h)
	h.press(tea.KeyEnter)

	require.Len(t, h.submitter.fields, 1)
	assert.Equal(t, "Ada", h.submitter.fields[0][domain.FieldSubmitterName])
	assert.Equal(t, "Technique", h.submitter.fields[0][domain.FieldSubmitType])
	assert.Equal(t, "details", h.submitter.fields[0][domain.FieldDetails])

	assert.True(t, h.m.alert.active())
	assert.Contains(t, h.m.View(), usecase.SubmitFailedMessage)

	h.typeText("z") // any key closes the alert
	assert.False(t, h.m.alert.active())
	assert.Equal(t, usecase.WizardOpen, h.m.wizard.Phase())
	assert.True(t, h.m.wizard.IsLastStep())
	assert.Equal(t, "Ada", h.m.wizard.Value(domain.FieldSubmitterName))
	assert.Equal(t, "details", h.m.area.Value())
}

func TestModel_SubmissionSuccessAcknowledges(t *testing.T) {
	h := newHarness(t)

	h.press(tea.KeyCtrlN)
	fillWizard(h)

	_, cmd := h.m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, usecase.WizardSubmitting, h.m.wizard.Phase())

	h.press(tea.KeyEsc)
	assert.Equal(t, usecase.WizardSubmitting, h.m.wizard.Phase(), "dismiss is refused while submitting")

	h.pump(cmd)
	assert.Equal(t, usecase.WizardClosed, h.m.wizard.Phase())
	assert.False(t, h.m.alert.active())
}

func TestModel_StaleAckLeavesReopenedFormFocused(t *testing.T) {
	h := newHarness(t)

	h.press(tea.KeyCtrlN)
	fillWizard(h)
	_, submit := h.m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// Deliver the outcome but hold back the acknowledgement tick.
	var ack []tea.Msg
	for _, msg := range runCmd(submit) {
		_, next := h.m.Update(msg)
		ack = append(ack, runCmd(next)...)
	}
	require.Equal(t, usecase.WizardSucceeded, h.m.wizard.Phase())
	require.Len(t, ack, 1)

	h.press(tea.KeyEnter) // dismiss the thank-you
	h.press(tea.KeyCtrlN)
	h.typeText("Ada")
	require.True(t, h.m.wizard.IsOpen())
	require.True(t, h.m.input.Focused())

	h.send(ack[0])
	assert.Equal(t, usecase.WizardOpen, h.m.wizard.Phase())
	assert.True(t, h.m.input.Focused(), "form input keeps focus")
	assert.False(t, h.m.search.Focused())
	assert.Equal(t, "Ada", h.m.input.Value())
}

func TestModel_CtrlCTearsDownInflightSubmission(t *testing.T) {
	h := newHarness(t)
	h.submitter.err = errors.New("late failure")

	h.press(tea.KeyCtrlN)
	fillWizard(h)
	_, submit := h.m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, quit := h.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	msgs := runCmd(quit)
	require.Len(t, msgs, 1)
	assert.IsType(t, tea.QuitMsg{}, msgs[0])

	h.pump(submit)
	assert.Equal(t, usecase.WizardClosed, h.m.wizard.Phase())
	assert.False(t, h.m.alert.active(), "late outcome must not alert")
}

func TestModel_WizardNavigation(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyCtrlN)

	h.typeText("Ada")
	h.press(tea.KeyEnter)
	assert.Equal(t, 1, h.m.wizard.Step())

	h.press(tea.KeyShiftTab)
	assert.Equal(t, 0, h.m.wizard.Step())
	assert.Equal(t, "Ada", h.m.input.Value(), "previous step restores its value")

	h.press(tea.KeyEsc)
	assert.False(t, h.m.wizard.IsOpen())

	h.press(tea.KeyCtrlN)
	assert.Equal(t, "", h.m.input.Value(), "reopening starts from a fresh draft")
}

func TestModel_WindowResize(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 96, h.m.layout.CardWidth)
	assert.Equal(t, h.m.layout.SearchWidth, h.m.layout.CardWidth)
}
