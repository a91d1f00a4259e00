package usecase

import (
	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/migration"
)

// BuildBatch turns a decoded payload into accounts.
//
// A record that fails validation is reported in the returned failures and
// skipped, and the rest of the batch still builds. With strict set the
// first failure aborts the whole batch instead.
func BuildBatch(p *migration.Payload, strict bool) (entity.Batch, []entity.AccountFailure, error) {
	batch := entity.Batch{
		Accounts:   make([]entity.Account, 0, len(p.Accounts)),
		Version:    p.Version,
		BatchSize:  p.BatchSize,
		BatchIndex: p.BatchIndex,
		BatchID:    p.BatchID,
	}

	var failures []entity.AccountFailure
	for i, raw := range p.Accounts {
		acc, err := buildAccount(raw, i)
		if err == nil {
			batch.Accounts = append(batch.Accounts, acc)
			continue
		}

		failure := entity.AccountFailure{Order: i, Label: raw.Name, Issuer: raw.Issuer, Err: err}
		if strict {
			return entity.Batch{}, []entity.AccountFailure{failure}, err
		}
		failures = append(failures, failure)
	}

	return batch, failures, nil
}

func buildAccount(raw migration.RawAccount, order int) (entity.Account, error) {
	if len(raw.Secret) == 0 {
		return entity.Account{}, entity.ErrEmptySecret
	}

	digits, err := entity.ParseDigits(raw.Digits)
	if err != nil {
		return entity.Account{}, err
	}

	typ, err := entity.ParseOTPType(raw.Type)
	if err != nil {
		return entity.Account{}, err
	}

	// TOTP records may carry a stale counter; NewAccount drops it.
	var counter uint64
	if raw.HasCounter {
		counter = raw.Counter
	}

	return entity.NewAccount(entity.AccountParams{
		Secret:    raw.Secret,
		Label:     raw.Name,
		Issuer:    raw.Issuer,
		Algorithm: entity.ParseAlgorithm(raw.Algorithm),
		Digits:    digits,
		Type:      typ,
		Counter:   counter,
		Order:     order,
	})
}

// toPayload is the inverse of BuildBatch for the accounts that built.
func toPayload(batch *entity.Batch) *migration.Payload {
	p := &migration.Payload{
		Accounts:   make([]migration.RawAccount, 0, len(batch.Accounts)),
		Version:    batch.Version,
		BatchSize:  batch.BatchSize,
		BatchIndex: batch.BatchIndex,
		BatchID:    batch.BatchID,
	}

	for _, acc := range batch.Accounts {
		counter, isHOTP := acc.Counter()
		p.Accounts = append(p.Accounts, migration.RawAccount{
			Secret:     acc.Secret(),
			Name:       acc.Label(),
			Issuer:     acc.Issuer(),
			Algorithm:  acc.Algorithm().Raw(),
			Digits:     acc.Digits().Raw(),
			Type:       acc.Type().Raw(),
			Counter:    counter,
			HasCounter: isHOTP,
		})
	}

	return p
}
