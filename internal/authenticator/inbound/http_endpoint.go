package inbound

import (
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authmigrate/internal/authenticator/usecase"
	"github.com/shandysiswandi/authmigrate/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc        uc
	heartbeat time.Duration
}

// ImportMigration decodes an otpauth-migration link and replaces the session.
// @Summary Import migration
// @Description Decodes an otpauth-migration export link. Broken accounts are skipped and listed in failures.
// @Tags Authenticator
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Export link"
// @Success 200 {object} router.successResponse{data=ImportResponse} "Imported accounts"
// @Failure 400 {object} router.errorResponse "Invalid migration link"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/authenticator/import [post]
func (h *HTTPEndpoint) ImportMigration(r *router.Request) (any, error) {
	var req ImportRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.ImportMigration(r.Context(), usecase.ImportMigrationInput{URI: req.URI})
	if err != nil {
		return nil, err
	}

	return ImportResponse{
		Batch:    toBatchResponse(out.Batch),
		Accounts: lo.Map(out.Batch.Accounts, toAccountResponse),
		Failures: lo.Map(out.Failures, toFailureResponse),
		summary:  out.Summary,
	}, nil
}

// ListAccounts returns the accounts of the current session.
// @Summary List accounts
// @Tags Authenticator
// @Produce json
// @Success 200 {object} router.successResponse{data=AccountsResponse} "Account list"
// @Failure 404 {object} router.errorResponse "No migration imported"
// @Router /api/v1/authenticator/accounts [get]
func (h *HTTPEndpoint) ListAccounts(r *router.Request) (any, error) {
	batch, err := h.uc.ListAccounts(r.Context())
	if err != nil {
		return nil, err
	}

	return toAccountsResponse(*batch), nil
}

// GenerateCode returns the current code of one account.
// @Summary Generate code
// @Tags Authenticator
// @Produce json
// @Param order path int true "Account order"
// @Success 200 {object} router.successResponse{data=CodeResponse} "Current code"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 422 {object} router.errorResponse "Unsupported algorithm"
// @Router /api/v1/authenticator/accounts/{order}/code [get]
func (h *HTTPEndpoint) GenerateCode(r *router.Request) (any, error) {
	order, err := r.GetParamInt("order")
	if err != nil {
		return nil, err
	}

	obs, err := h.uc.GenerateCode(r.Context(), usecase.GenerateCodeInput{Order: order})
	if err != nil {
		return nil, err
	}

	return toCodeResponse(*obs, 0), nil
}

// NextCode advances an HOTP counter and returns the new code.
// @Summary Next HOTP code
// @Tags Authenticator
// @Produce json
// @Param order path int true "Account order"
// @Success 200 {object} router.successResponse{data=CodeResponse} "Code for the advanced counter"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 409 {object} router.errorResponse "Not an HOTP account"
// @Router /api/v1/authenticator/accounts/{order}/next [post]
func (h *HTTPEndpoint) NextCode(r *router.Request) (any, error) {
	order, err := r.GetParamInt("order")
	if err != nil {
		return nil, err
	}

	obs, err := h.uc.NextCode(r.Context(), usecase.NextCodeInput{Order: order})
	if err != nil {
		return nil, err
	}

	return toCodeResponse(*obs, 0), nil
}

// ExportMigration renders the session as an otpauth-migration link.
// @Summary Export migration
// @Tags Authenticator
// @Produce json
// @Success 200 {object} router.successResponse{data=ExportResponse} "Export link"
// @Failure 404 {object} router.errorResponse "No migration imported"
// @Router /api/v1/authenticator/export [get]
func (h *HTTPEndpoint) ExportMigration(r *router.Request) (any, error) {
	uri, err := h.uc.ExportMigration(r.Context())
	if err != nil {
		return nil, err
	}

	return ExportResponse{URI: uri}, nil
}
