package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goerror"
)

type NextCodeInput struct {
	Order int `validate:"gte=0"`
}

// NextCode advances the counter of an HOTP account and returns the code for
// the new counter. The update and the computation happen under the session
// write lock so no reader sees a code for a stale counter.
func (s *Usecase) NextCode(ctx context.Context, in NextCodeInput) (*entity.CodeObservation, error) {
	ctx, span := s.startSpan(ctx, "NextCode")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, goerror.NewBusinessCause(entity.ErrNoSession, "No migration has been imported", goerror.CodeNotFound)
	}

	_, idx, found := lo.FindIndexOf(s.session.Accounts, func(a entity.Account) bool { return a.Order() == in.Order })
	if !found {
		return nil, goerror.NewBusinessCause(entity.ErrAccountNotFound, "Account not found", goerror.CodeNotFound)
	}

	acc := s.session.Accounts[idx]
	counter, ok := acc.Counter()
	if !ok {
		return nil, goerror.NewBusinessCause(entity.ErrCounterNotSupported, "Only HOTP accounts have a counter", goerror.CodeConflict)
	}

	next, err := acc.WithCounter(counter + 1)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	obs := generateCode(s.otp, next, s.clock.Now(), s.period())
	if obs.Err != nil {
		return nil, s.codeError(ctx, next, obs.Err)
	}

	s.session.Accounts[idx] = next
	slog.InfoContext(ctx, "hotp counter advanced", "order", next.Order(), "counter", counter+1)

	return &obs, nil
}
