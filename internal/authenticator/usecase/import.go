package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goerror"
	"github.com/shandysiswandi/authmigrate/internal/pkg/migration"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ImportMigrationInput struct {
	URI string `validate:"required"`
}

type ImportMigrationOutput struct {
	Batch    entity.Batch
	Failures []entity.AccountFailure
	// Summary is a sentence describing the failures, empty when none.
	Summary string
}

// ImportMigration decodes an export link and makes its accounts the new
// session. A failed import leaves the previous session untouched.
func (s *Usecase) ImportMigration(ctx context.Context, in ImportMigrationInput) (*ImportMigrationOutput, error) {
	ctx, span := s.startSpan(ctx, "ImportMigration")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if limit := s.maxURILength(); len(in.URI) > limit {
		return nil, goerror.NewInvalidInput(nil, "uri", "URI must be at most "+strconv.Itoa(limit)+" characters")
	}

	payload, err := migration.Unpack(in.URI)
	if err != nil {
		slog.WarnContext(ctx, "failed to unpack migration link", "error", err)
		return nil, goerror.NewInvalidFormatCause(err, "Invalid migration link")
	}

	decoded, err := migration.Decode(payload)
	if err != nil {
		slog.WarnContext(ctx, "failed to decode migration payload", "error", err, "size", len(payload))
		return nil, goerror.NewBusinessCause(err, "Migration data is corrupted", goerror.CodeInvalidInput)
	}

	batch, failures, err := BuildBatch(decoded, s.cfg.GetBool("authenticator.strict_import"))
	if err != nil {
		s.recordRejected(ctx, failures)
		slog.WarnContext(ctx, "migration rejected in strict mode", "error", err, "order", failures[0].Order)
		return nil, goerror.NewBusinessCause(err, entity.FailureSummary(failures), goerror.CodeInvalidInput)
	}

	for _, f := range failures {
		slog.WarnContext(ctx, "skipped migration account", "order", f.Order, "error", f.Err)
	}
	s.recordRejected(ctx, failures)

	if s.importCounter != nil {
		s.importCounter.Add(ctx, int64(len(batch.Accounts)))
	}

	stored := batch
	stored.Accounts = slices.Clone(batch.Accounts)

	s.mu.Lock()
	s.session = &stored
	s.generation++
	s.mu.Unlock()

	slog.InfoContext(ctx, "migration imported",
		"accounts", len(batch.Accounts),
		"skipped", len(failures),
		"batch_index", batch.BatchIndex,
		"batch_size", batch.BatchSize,
	)

	return &ImportMigrationOutput{
		Batch:    batch,
		Failures: failures,
		Summary:  entity.FailureSummary(failures),
	}, nil
}

func (s *Usecase) recordRejected(ctx context.Context, failures []entity.AccountFailure) {
	if s.rejectedCounter == nil {
		return
	}

	for _, f := range failures {
		s.rejectedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", failureReason(f.Err))))
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, entity.ErrEmptySecret):
		return "empty_secret"
	case errors.Is(err, entity.ErrInvalidDigitCount):
		return "invalid_digits"
	case errors.Is(err, entity.ErrInvalidOTPType):
		return "invalid_type"
	default:
		return "other"
	}
}
