package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queueScheduler holds deferred work until the test drains it.
type queueScheduler struct {
	queue []func()
}

func (q *queueScheduler) Defer(fn func()) { q.queue = append(q.queue, fn) }

func (q *queueScheduler) drain() {
	for len(q.queue) > 0 {
		fn := q.queue[0]
		q.queue = q.queue[1:]
		fn()
	}
}

type completion struct {
	calls []bool
}

func (c *completion) record(flag bool) { c.calls = append(c.calls, flag) }

func TestGesture_Passes(t *testing.T) {
	testCases := []struct {
		name string
		g    Gesture
		want bool
	}{
		{name: "click", g: Click, want: true},
		{name: "long drag left", g: Gesture{OffsetX: -51}, want: true},
		{name: "drag at threshold", g: Gesture{OffsetX: -50}, want: false},
		{name: "fast flick left", g: Gesture{VelocityX: -501}, want: true},
		{name: "slow short drag", g: Gesture{OffsetX: -10, VelocityX: -100}, want: false},
		{name: "drag right", g: Gesture{OffsetX: 200, VelocityX: 900}, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.g.Passes())
		})
	}
}

func TestOnboarding_CompletesOnceWithFlag(t *testing.T) {
	sched := &queueScheduler{}
	done := &completion{}
	o := NewOnboarding([]string{"m1", "m2", "m3"}, sched, done.record)

	front, ok := o.Current()
	require.True(t, ok)
	assert.Equal(t, "m1", front)

	assert.False(t, o.ToggleDontShowAgain(), "toggle is only offered on the last card")
	assert.True(t, o.Dismiss(Click))
	assert.True(t, o.Dismiss(Click))
	assert.True(t, o.IsLast())

	assert.True(t, o.ToggleDontShowAgain())
	assert.True(t, o.DontShowAgain())

	assert.True(t, o.Dismiss(Click))
	assert.True(t, o.Done())
	assert.Empty(t, done.calls, "completion must not run inline")

	sched.drain()
	assert.Equal(t, []bool{true}, done.calls)
	assert.True(t, o.Completed())

	// Further dismissals never re-fire completion.
	o.Dismiss(Click)
	sched.drain()
	assert.Equal(t, []bool{true}, done.calls)
}

func TestOnboarding_WeakGestureKeepsCard(t *testing.T) {
	sched := &queueScheduler{}
	o := NewOnboarding([]string{"m1"}, sched, nil)

	assert.False(t, o.Dismiss(Gesture{OffsetX: -20}))
	assert.Len(t, o.Remaining(), 1)
	assert.Empty(t, sched.queue)
}

func TestOnboarding_DefaultFlagIsFalse(t *testing.T) {
	sched := &queueScheduler{}
	done := &completion{}
	o := NewOnboarding(DefaultWelcomeMessages, sched, done.record)

	for !o.Done() {
		o.Dismiss(Gesture{VelocityX: -800})
	}
	sched.drain()
	assert.Equal(t, []bool{false}, done.calls)
}

func TestOnboarding_DoesNotAliasMessages(t *testing.T) {
	msgs := []string{"a", "b"}
	o := NewOnboarding(msgs, &queueScheduler{}, nil)
	o.Dismiss(Click)
	assert.Equal(t, []string{"a", "b"}, msgs)
}
