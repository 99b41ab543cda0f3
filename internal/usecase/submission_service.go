package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/swellfound/standards/internal/domain"
)

// SubmissionService writes user-proposed standards to the record store.
type SubmissionService struct {
	store  domain.RecordStore
	logger *zap.Logger
}

// NewSubmissionService creates a submission service.
func NewSubmissionService(store domain.RecordStore, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{store: store, logger: logger.Named("submission")}
}

// Submit validates field names and creates one record. Values are trimmed;
// empty values are still sent.
func (s *SubmissionService) Submit(ctx context.Context, fields map[string]string) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields", domain.ErrInvalidRequest)
	}
	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		if !domain.IsSubmissionField(name) {
			return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidRequest, name)
		}
		clean[name] = strings.TrimSpace(value)
	}

	if err := s.store.CreateRecord(ctx, clean); err != nil {
		s.logger.Warn("submission rejected", zap.Error(err))
		if !errors.Is(err, domain.ErrSubmit) {
			err = fmt.Errorf("%w: %w", domain.ErrSubmit, err)
		}
		return err
	}
	s.logger.Info("submission created", zap.String("title", clean[domain.FieldTitle]))
	return nil
}
