package usecase

import (
	"context"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goerror"
)

func (s *Usecase) ListAccounts(ctx context.Context) (*entity.Batch, error) {
	_, span := s.startSpan(ctx, "ListAccounts")
	defer span.End()

	_, batch := s.snapshot()
	if batch == nil {
		return nil, goerror.NewBusinessCause(entity.ErrNoSession, "No migration has been imported", goerror.CodeNotFound)
	}

	return batch, nil
}
