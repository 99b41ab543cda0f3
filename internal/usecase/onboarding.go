package usecase

// DefaultWelcomeMessages is the introductory sequence shown before the first
// search.
var DefaultWelcomeMessages = []string{
	"At SwellFound, we believe life gets better when we raise our standards. We're creating a future where making good choices is simple, and quality is clear. We're just getting started, but we wanted to begin by sharing some of our Standards for living well.",
	"For now, we're focusing on three categories: TOOLS that last generations, TECHNIQUES that become second nature, TOYS that make life richer.",
	"A standard might be a perfectly designed tool that lasts decades, a morning ritual that centers your day, or a technique that makes everyday moments better. Each one is chosen because it creates lasting value.",
	"Begin your search. Looking to brew better coffee? Want to organize your kitchen beautifully? Ready to master bread making? Each standard comes from years of real experience. Ready to explore?",
}

// Swipe thresholds for dismissing the front card.
const (
	DismissOffsetThreshold   = -50.0
	DismissVelocityThreshold = -500.0
)

// Scheduler runs fn on a later turn of the host's event loop, never inline.
type Scheduler interface {
	Defer(fn func())
}

// Gesture describes how the user tried to dismiss the front card.
type Gesture struct {
	Click     bool
	OffsetX   float64
	VelocityX float64
}

// Click is the gesture for an explicit click or key press.
var Click = Gesture{Click: true}

// Passes reports whether the gesture is strong enough to dismiss a card.
func (g Gesture) Passes() bool {
	return g.Click || g.OffsetX < DismissOffsetThreshold || g.VelocityX < DismissVelocityThreshold
}

// Onboarding is the dismissible stack of welcome cards. When the last card
// is dismissed, onComplete is scheduled exactly once with the final
// don't-show-again choice.
type Onboarding struct {
	remaining     []string
	dontShowAgain bool
	scheduled     bool
	completed     bool

	scheduler  Scheduler
	onComplete func(dontShowAgain bool)
}

// NewOnboarding creates a carousel over messages. An empty message list is
// already exhausted and schedules completion on the first Dismiss.
func NewOnboarding(messages []string, scheduler Scheduler, onComplete func(dontShowAgain bool)) *Onboarding {
	remaining := make([]string, len(messages))
	copy(remaining, messages)
	return &Onboarding{
		remaining:  remaining,
		scheduler:  scheduler,
		onComplete: onComplete,
	}
}

// Current returns the front message.
func (o *Onboarding) Current() (string, bool) {
	if len(o.remaining) == 0 {
		return "", false
	}
	return o.remaining[0], true
}

// Remaining returns the messages still stacked, front first.
func (o *Onboarding) Remaining() []string { return o.remaining }

// IsLast reports whether the front message is the final one.
func (o *Onboarding) IsLast() bool { return len(o.remaining) == 1 }

// Done reports whether every message has been dismissed.
func (o *Onboarding) Done() bool { return len(o.remaining) == 0 }

// Completed reports whether onComplete has run.
func (o *Onboarding) Completed() bool { return o.completed }

// DontShowAgain returns the current toggle value.
func (o *Onboarding) DontShowAgain() bool { return o.dontShowAgain }

// ToggleDontShowAgain flips the preference. The toggle only exists on the
// final card; elsewhere it is ignored and reports false.
func (o *Onboarding) ToggleDontShowAgain() bool {
	if !o.IsLast() {
		return false
	}
	o.dontShowAgain = !o.dontShowAgain
	return true
}

// Dismiss removes the front message if the gesture passes the threshold.
// Emptying the stack hands completion to the scheduler.
func (o *Onboarding) Dismiss(g Gesture) bool {
	if !g.Passes() {
		return false
	}
	if len(o.remaining) > 0 {
		o.remaining = o.remaining[1:]
	}
	if len(o.remaining) == 0 {
		o.scheduleCompletion()
	}
	return true
}

func (o *Onboarding) scheduleCompletion() {
	if o.scheduled {
		return
	}
	o.scheduled = true
	flag := o.dontShowAgain
	o.scheduler.Defer(func() {
		if o.completed {
			return
		}
		o.completed = true
		if o.onComplete != nil {
			o.onComplete(flag)
		}
	})
}
