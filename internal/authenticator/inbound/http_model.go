package inbound

import (
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
)

type ImportRequest struct {
	URI string `json:"uri"`
}

type BatchResponse struct {
	Version    int64 `json:"version"`
	BatchSize  int64 `json:"batch_size"`
	BatchIndex int64 `json:"batch_index"`
	BatchID    int64 `json:"batch_id"`
}

type AccountResponse struct {
	Order     int     `json:"order"`
	Name      string  `json:"name"`
	Label     string  `json:"label"`
	Issuer    string  `json:"issuer,omitempty"`
	Type      string  `json:"type"`
	Algorithm string  `json:"algorithm"`
	Digits    int     `json:"digits"`
	Counter   *uint64 `json:"counter,omitempty"`
}

type FailureResponse struct {
	Order  int    `json:"order"`
	Label  string `json:"label,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Reason string `json:"reason"`
}

type ImportResponse struct {
	Batch    BatchResponse     `json:"batch"`
	Accounts []AccountResponse `json:"accounts"`
	Failures []FailureResponse `json:"failures"`

	summary string
}

func (r ImportResponse) Message() string {
	if r.summary != "" {
		return r.summary
	}
	return "Migration has been imported"
}

type AccountsResponse struct {
	Batch    BatchResponse     `json:"batch"`
	Accounts []AccountResponse `json:"accounts"`
}

func (r AccountsResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Accounts)}
}

type CodeResponse struct {
	Order            int       `json:"order"`
	Name             string    `json:"name"`
	Code             string    `json:"code,omitempty"`
	Counter          uint64    `json:"counter"`
	SecondsRemaining int       `json:"seconds_remaining"`
	GeneratedAt      time.Time `json:"generated_at"`
	Error            string    `json:"error,omitempty"`
}

type CodesEvent struct {
	Codes []CodeResponse `json:"codes"`
}

type ExportResponse struct {
	URI string `json:"uri"`
}

func (ExportResponse) Message() string {
	return "Migration has been exported"
}

// ErrorResponse is written when a stream is refused before it starts.
type ErrorResponse struct {
	Message string `json:"message"`
}

func toBatchResponse(b entity.Batch) BatchResponse {
	return BatchResponse{
		Version:    b.Version,
		BatchSize:  b.BatchSize,
		BatchIndex: b.BatchIndex,
		BatchID:    b.BatchID,
	}
}

func toAccountResponse(acc entity.Account, _ int) AccountResponse {
	resp := AccountResponse{
		Order:     acc.Order(),
		Name:      acc.DisplayName(),
		Label:     acc.Label(),
		Issuer:    acc.Issuer(),
		Type:      acc.Type().String(),
		Algorithm: acc.Algorithm().String(),
		Digits:    int(acc.Digits()),
	}
	if counter, ok := acc.Counter(); ok {
		resp.Counter = &counter
	}
	return resp
}

func toFailureResponse(f entity.AccountFailure, _ int) FailureResponse {
	return FailureResponse{
		Order:  f.Order,
		Label:  f.Label,
		Issuer: f.Issuer,
		Reason: f.Err.Error(),
	}
}

func toCodeResponse(obs entity.CodeObservation, _ int) CodeResponse {
	resp := CodeResponse{
		Order:            obs.Account.Order(),
		Name:             obs.Account.DisplayName(),
		Code:             obs.Code,
		Counter:          obs.Counter,
		SecondsRemaining: obs.SecondsRemaining,
		GeneratedAt:      obs.At.UTC(),
	}
	if obs.Err != nil {
		resp.Error = obs.Err.Error()
	}
	return resp
}

func toAccountsResponse(b entity.Batch) AccountsResponse {
	return AccountsResponse{
		Batch:    toBatchResponse(b),
		Accounts: lo.Map(b.Accounts, toAccountResponse),
	}
}
