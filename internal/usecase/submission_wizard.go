package usecase

import "github.com/swellfound/standards/internal/domain"

// FieldKind selects the input widget for a wizard step.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldSelect   FieldKind = "select"
	FieldTextarea FieldKind = "textarea"
)

// WizardStep is one page of the submission form; each owns one input.
type WizardStep struct {
	Field       string
	Kind        FieldKind
	Label       string
	Placeholder string
	Options     []string
}

// DefaultSubmissionSteps mirrors the table's submission columns.
var DefaultSubmissionSteps = []WizardStep{
	{Field: domain.FieldSubmitterName, Kind: FieldText, Label: "Name", Placeholder: "Enter your name"},
	{Field: domain.FieldSubmitterMail, Kind: FieldEmail, Label: "Email", Placeholder: "Enter your email"},
	{Field: domain.FieldThreeWords, Kind: FieldText, Label: "Three words", Placeholder: "Describe in three words"},
	{Field: domain.FieldTitle, Kind: FieldText, Label: "Title", Placeholder: "Enter the title"},
	{Field: domain.FieldStandard, Kind: FieldText, Label: "Standard", Placeholder: "Enter the standard"},
	{Field: domain.FieldSubmitType, Kind: FieldSelect, Label: "Type", Options: domain.Categories},
	{Field: domain.FieldQuicktake, Kind: FieldTextarea, Label: "Quicktake", Placeholder: "Give a quick take on the standard"},
	{Field: domain.FieldDetails, Kind: FieldTextarea, Label: "Details", Placeholder: "Describe the standard in detail"},
}

// WizardPhase is the coarse state of the form.
type WizardPhase int

const (
	WizardClosed WizardPhase = iota
	WizardOpen
	WizardSubmitting
	WizardSucceeded
)

func (p WizardPhase) String() string {
	switch p {
	case WizardOpen:
		return "open"
	case WizardSubmitting:
		return "submitting"
	case WizardSucceeded:
		return "succeeded"
	default:
		return "closed"
	}
}

// SubmitFailedMessage is shown when the store rejects a submission.
const SubmitFailedMessage = "There was an error submitting your standard. Please try again."

// Notifier delivers a blocking, synchronous alert to the user.
type Notifier interface {
	Alert(message string)
}

// SubmitTicket is issued when a submission starts. Its fields are a copy of
// the draft; the ticket must be handed back to Resolve.
type SubmitTicket struct {
	session uint64
	Fields  map[string]string
}

// WizardOptions wires the host callbacks.
type WizardOptions struct {
	Steps    []WizardStep
	Notifier Notifier
	// OnFocus is called with the step index each time a step becomes active.
	OnFocus func(step int)
}

// SubmissionWizard is the multi-step submission form:
// Closed → Open(step) → Submitting → Succeeded → Closed.
type SubmissionWizard struct {
	steps    []WizardStep
	notifier Notifier
	onFocus  func(int)

	phase   WizardPhase
	step    int
	draft   map[string]string
	session uint64
}

// NewSubmissionWizard creates a closed wizard.
func NewSubmissionWizard(opts WizardOptions) *SubmissionWizard {
	steps := opts.Steps
	if len(steps) == 0 {
		steps = DefaultSubmissionSteps
	}
	return &SubmissionWizard{
		steps:    steps,
		notifier: opts.Notifier,
		onFocus:  opts.OnFocus,
		draft:    make(map[string]string),
	}
}

// Phase returns the current phase.
func (w *SubmissionWizard) Phase() WizardPhase { return w.phase }

// Step returns the active step index.
func (w *SubmissionWizard) Step() int { return w.step }

// Steps returns the step definitions.
func (w *SubmissionWizard) Steps() []WizardStep { return w.steps }

// CurrentStep returns the active step definition.
func (w *SubmissionWizard) CurrentStep() WizardStep { return w.steps[w.step] }

// IsLastStep reports whether the active step is the final one.
func (w *SubmissionWizard) IsLastStep() bool { return w.step == len(w.steps)-1 }

// IsOpen reports whether the form is visible, including while submitting.
func (w *SubmissionWizard) IsOpen() bool { return w.phase != WizardClosed }

// Open shows the form at step 0 with an empty draft. Opening an already
// open form does nothing.
func (w *SubmissionWizard) Open() {
	if w.phase != WizardClosed {
		return
	}
	w.reset()
	w.phase = WizardOpen
	w.focus()
}

// Dismiss closes the form and discards the draft. It is refused while a
// submission is in flight.
func (w *SubmissionWizard) Dismiss() bool {
	switch w.phase {
	case WizardOpen, WizardSucceeded:
		w.phase = WizardClosed
		w.reset()
		return true
	}
	return false
}

// Value returns the draft value of a field.
func (w *SubmissionWizard) Value(field string) string { return w.draft[field] }

// SetValue updates the active step's input. Ignored unless Open.
func (w *SubmissionWizard) SetValue(value string) {
	if w.phase != WizardOpen {
		return
	}
	w.draft[w.steps[w.step].Field] = value
}

// Next advances one step; it does nothing on the last step.
func (w *SubmissionWizard) Next() bool {
	if w.phase != WizardOpen || w.IsLastStep() {
		return false
	}
	w.step++
	w.focus()
	return true
}

// Previous goes back one step; it does nothing on the first step.
func (w *SubmissionWizard) Previous() bool {
	if w.phase != WizardOpen || w.step == 0 {
		return false
	}
	w.step--
	w.focus()
	return true
}

// Enter advances on intermediate steps and submits on the last one.
func (w *SubmissionWizard) Enter() (SubmitTicket, bool) {
	if w.phase != WizardOpen {
		return SubmitTicket{}, false
	}
	if !w.IsLastStep() {
		w.Next()
		return SubmitTicket{}, false
	}
	return w.Submit()
}

// Submit moves the last step into Submitting and returns the ticket for the
// request. A second call while a submission is pending is a no-op.
func (w *SubmissionWizard) Submit() (SubmitTicket, bool) {
	if w.phase != WizardOpen || !w.IsLastStep() {
		return SubmitTicket{}, false
	}
	w.phase = WizardSubmitting
	fields := make(map[string]string, len(w.steps))
	for _, s := range w.steps {
		fields[s.Field] = w.draft[s.Field]
	}
	return SubmitTicket{session: w.session, Fields: fields}, true
}

// Resolve applies the outcome of the request behind ticket. Outcomes for a
// torn-down session, or arriving when nothing is in flight, are discarded
// and report false. On failure the form returns to the last step with the
// draft intact and the notifier is alerted before Resolve returns.
func (w *SubmissionWizard) Resolve(ticket SubmitTicket, err error) bool {
	if ticket.session != w.session || w.phase != WizardSubmitting {
		return false
	}
	if err != nil {
		w.phase = WizardOpen
		w.step = len(w.steps) - 1
		if w.notifier != nil {
			w.notifier.Alert(SubmitFailedMessage)
		}
		w.focus()
		return true
	}
	w.phase = WizardSucceeded
	w.draft = make(map[string]string)
	w.step = 0
	return true
}

// Acknowledge ends the success state and closes the form. It reports
// whether the form was in the success state.
func (w *SubmissionWizard) Acknowledge() bool {
	if w.phase != WizardSucceeded {
		return false
	}
	w.phase = WizardClosed
	w.reset()
	return true
}

// Teardown closes the form unconditionally and invalidates outstanding
// tickets, for use when the host UI goes away.
func (w *SubmissionWizard) Teardown() {
	w.phase = WizardClosed
	w.reset()
}

func (w *SubmissionWizard) reset() {
	w.step = 0
	w.draft = make(map[string]string)
	w.session++
}

func (w *SubmissionWizard) focus() {
	if w.onFocus != nil {
		w.onFocus(w.step)
	}
}
