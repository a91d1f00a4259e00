package inbound

import (
	"context"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/authenticator/usecase"
)

type ucStream interface {
	StreamCodes(ctx context.Context) (<-chan []entity.CodeObservation, error)
}

type uc interface {
	ucStream

	ImportMigration(ctx context.Context, in usecase.ImportMigrationInput) (*usecase.ImportMigrationOutput, error)
	ListAccounts(ctx context.Context) (*entity.Batch, error)
	GenerateCode(ctx context.Context, in usecase.GenerateCodeInput) (*entity.CodeObservation, error)
	NextCode(ctx context.Context, in usecase.NextCodeInput) (*entity.CodeObservation, error)
	ExportMigration(ctx context.Context) (string, error)
}
