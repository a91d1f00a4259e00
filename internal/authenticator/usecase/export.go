package usecase

import (
	"context"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goerror"
	"github.com/shandysiswandi/authmigrate/internal/pkg/migration"
)

// ExportMigration renders the session back into an export link. Advanced
// HOTP counters are carried; accounts skipped at import are not.
func (s *Usecase) ExportMigration(ctx context.Context) (string, error) {
	_, span := s.startSpan(ctx, "ExportMigration")
	defer span.End()

	_, batch := s.snapshot()
	if batch == nil {
		return "", goerror.NewBusinessCause(entity.ErrNoSession, "No migration has been imported", goerror.CodeNotFound)
	}

	return migration.FormatURI(migration.Encode(toPayload(batch))), nil
}
