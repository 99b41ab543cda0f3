package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer(t *testing.T) {
	t.Run("uses default delay when zero", func(t *testing.T) {
		assert.Equal(t, DefaultDebounce, NewDebouncer(0).Delay())
	})

	t.Run("only the latest token settles", func(t *testing.T) {
		d := NewDebouncer(DefaultDebounce)
		first := d.Touch()
		second := d.Touch()

		assert.True(t, d.Pending())
		assert.False(t, d.Settle(first))
		assert.True(t, d.Settle(second))
		assert.False(t, d.Pending())
	})

	t.Run("a token settles once", func(t *testing.T) {
		d := NewDebouncer(DefaultDebounce)
		tok := d.Touch()
		assert.True(t, d.Settle(tok))
		assert.False(t, d.Settle(tok))
	})

	t.Run("cancel drops the pending settle", func(t *testing.T) {
		d := NewDebouncer(DefaultDebounce)
		tok := d.Touch()
		d.Cancel()
		assert.False(t, d.Pending())
		assert.False(t, d.Settle(tok))
	})
}
