package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goerror"
)

type GenerateCodeInput struct {
	Order int `validate:"gte=0"`
}

// GenerateCode computes the current code of one account.
func (s *Usecase) GenerateCode(ctx context.Context, in GenerateCodeInput) (*entity.CodeObservation, error) {
	ctx, span := s.startSpan(ctx, "GenerateCode")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	_, batch := s.snapshot()
	if batch == nil {
		return nil, goerror.NewBusinessCause(entity.ErrNoSession, "No migration has been imported", goerror.CodeNotFound)
	}

	acc, found := lo.Find(batch.Accounts, func(a entity.Account) bool { return a.Order() == in.Order })
	if !found {
		return nil, goerror.NewBusinessCause(entity.ErrAccountNotFound, "Account not found", goerror.CodeNotFound)
	}

	obs := generateCode(s.otp, acc, s.clock.Now(), s.period())
	if obs.Err != nil {
		return nil, s.codeError(ctx, acc, obs.Err)
	}

	return &obs, nil
}

func (s *Usecase) codeError(ctx context.Context, acc entity.Account, err error) error {
	if errors.Is(err, entity.ErrUnsupportedAlgorithm) {
		return goerror.NewBusinessCause(err, "Account uses an unsupported algorithm "+acc.Algorithm().String(), goerror.CodeInvalidInput)
	}

	slog.ErrorContext(ctx, "failed to generate code", "order", acc.Order(), "error", err)
	return goerror.NewServer(err)
}
