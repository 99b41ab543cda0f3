package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellfound/standards/internal/domain"
)

func TestSubmissionService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("trims and forwards fields", func(t *testing.T) {
		store := &MockRecordStore{}
		svc := NewSubmissionService(store, nil)

		err := svc.Submit(ctx, map[string]string{
			domain.FieldTitle:      "  Chemex ",
			domain.FieldSubmitType: "Tool",
			domain.FieldDetails:    "",
		})
		require.NoError(t, err)
		require.Len(t, store.created, 1)
		assert.Equal(t, "Chemex", store.created[0][domain.FieldTitle])
		assert.Contains(t, store.created[0], domain.FieldDetails)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		store := &MockRecordStore{}
		svc := NewSubmissionService(store, nil)

		err := svc.Submit(ctx, map[string]string{"Status": "Live"})
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		assert.Empty(t, store.created)
	})

	t.Run("rejects empty submissions", func(t *testing.T) {
		svc := NewSubmissionService(&MockRecordStore{}, nil)
		assert.ErrorIs(t, svc.Submit(ctx, nil), domain.ErrInvalidRequest)
	})

	t.Run("store failures wrap ErrSubmit", func(t *testing.T) {
		store := &MockRecordStore{createError: errors.New("timeout")}
		svc := NewSubmissionService(store, nil)

		err := svc.Submit(ctx, map[string]string{domain.FieldTitle: "x"})
		assert.ErrorIs(t, err, domain.ErrSubmit)
	})
}
