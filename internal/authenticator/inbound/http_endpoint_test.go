package inbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/authenticator/usecase"
	"github.com/shandysiswandi/authmigrate/internal/pkg/config"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goerror"
	"github.com/shandysiswandi/authmigrate/internal/pkg/instrument"
	"github.com/shandysiswandi/authmigrate/internal/pkg/router"
	"github.com/shandysiswandi/authmigrate/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	importFn   func(ctx context.Context, in usecase.ImportMigrationInput) (*usecase.ImportMigrationOutput, error)
	listFn     func(ctx context.Context) (*entity.Batch, error)
	generateFn func(ctx context.Context, in usecase.GenerateCodeInput) (*entity.CodeObservation, error)
	nextFn     func(ctx context.Context, in usecase.NextCodeInput) (*entity.CodeObservation, error)
	exportFn   func(ctx context.Context) (string, error)
	streamFn   func(ctx context.Context) (<-chan []entity.CodeObservation, error)
}

func (f *fakeUsecase) ImportMigration(ctx context.Context, in usecase.ImportMigrationInput) (*usecase.ImportMigrationOutput, error) {
	return f.importFn(ctx, in)
}

func (f *fakeUsecase) ListAccounts(ctx context.Context) (*entity.Batch, error) {
	return f.listFn(ctx)
}

func (f *fakeUsecase) GenerateCode(ctx context.Context, in usecase.GenerateCodeInput) (*entity.CodeObservation, error) {
	return f.generateFn(ctx, in)
}

func (f *fakeUsecase) NextCode(ctx context.Context, in usecase.NextCodeInput) (*entity.CodeObservation, error) {
	return f.nextFn(ctx, in)
}

func (f *fakeUsecase) ExportMigration(ctx context.Context) (string, error) {
	return f.exportFn(ctx)
}

func (f *fakeUsecase) StreamCodes(ctx context.Context) (<-chan []entity.CodeObservation, error) {
	return f.streamFn(ctx)
}

func newTestRouter(t *testing.T, uc uc) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID(), Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, uc, time.Hour)
	return r
}

func testAccounts(t *testing.T) []entity.Account {
	t.Helper()

	hotp, err := entity.NewAccount(entity.AccountParams{
		Secret: []byte("secret"), Label: "alice", Issuer: "Example",
		Algorithm: entity.AlgorithmSHA1, Digits: entity.DigitsSix, Type: entity.OTPTypeHOTP, Counter: 3,
	})
	require.NoError(t, err)

	totp, err := entity.NewAccount(entity.AccountParams{
		Secret: []byte("secret"), Label: "bob",
		Algorithm: entity.ParseAlgorithm(4), Digits: entity.DigitsEight, Type: entity.OTPTypeTOTP, Order: 2,
	})
	require.NoError(t, err)

	return []entity.Account{hotp, totp}
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHTTPEndpoint_ImportMigration(t *testing.T) {
	accounts := testAccounts(t)

	t.Run("OK", func(t *testing.T) {
		var got usecase.ImportMigrationInput
		r := newTestRouter(t, &fakeUsecase{
			importFn: func(_ context.Context, in usecase.ImportMigrationInput) (*usecase.ImportMigrationOutput, error) {
				got = in
				return &usecase.ImportMigrationOutput{
					Batch: entity.Batch{Accounts: accounts, Version: 1, BatchSize: 1, BatchID: -1},
					Failures: []entity.AccountFailure{
						{Order: 1, Label: "carol", Err: entity.ErrEmptySecret},
					},
					Summary: "One account could not be read: carol: authenticator: secret is empty",
				}, nil
			},
		})

		rec := do(r, http.MethodPost, "/api/v1/authenticator/import", `{"uri":"otpauth-migration://offline?data=CgA"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "otpauth-migration://offline?data=CgA", got.URI)
		assert.JSONEq(t, `{
			"message": "One account could not be read: carol: authenticator: secret is empty",
			"data": {
				"batch": {"version": 1, "batch_size": 1, "batch_index": 0, "batch_id": -1},
				"accounts": [
					{"order": 0, "name": "Example:alice", "label": "alice", "issuer": "Example", "type": "HOTP", "algorithm": "SHA1", "digits": 6, "counter": 3},
					{"order": 2, "name": "bob", "label": "bob", "type": "TOTP", "algorithm": "Unknown(4)", "digits": 8}
				],
				"failures": [{"order": 1, "label": "carol", "reason": "authenticator: secret is empty"}]
			}
		}`, rec.Body.String())
	})

	t.Run("NoFailures", func(t *testing.T) {
		r := newTestRouter(t, &fakeUsecase{
			importFn: func(context.Context, usecase.ImportMigrationInput) (*usecase.ImportMigrationOutput, error) {
				return &usecase.ImportMigrationOutput{}, nil
			},
		})

		rec := do(r, http.MethodPost, "/api/v1/authenticator/import", `{"uri":"x"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"message": "Migration has been imported",
			"data": {"batch": {"version": 0, "batch_size": 0, "batch_index": 0, "batch_id": 0}, "accounts": [], "failures": []}
		}`, rec.Body.String())
	})

	t.Run("BadBody", func(t *testing.T) {
		r := newTestRouter(t, &fakeUsecase{})

		rec := do(r, http.MethodPost, "/api/v1/authenticator/import", `{"link":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
	})

	t.Run("UsecaseError", func(t *testing.T) {
		r := newTestRouter(t, &fakeUsecase{
			importFn: func(context.Context, usecase.ImportMigrationInput) (*usecase.ImportMigrationOutput, error) {
				return nil, goerror.NewInvalidFormat("Invalid migration link")
			},
		})

		rec := do(r, http.MethodPost, "/api/v1/authenticator/import", `{"uri":"otpauth-migration://online"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid migration link"}`, rec.Body.String())
	})
}

func TestHTTPEndpoint_ListAccounts(t *testing.T) {
	accounts := testAccounts(t)

	r := newTestRouter(t, &fakeUsecase{
		listFn: func(context.Context) (*entity.Batch, error) {
			return &entity.Batch{Accounts: accounts}, nil
		},
	})

	rec := do(r, http.MethodGet, "/api/v1/authenticator/accounts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"meta":{"total":2}`)
	assert.Contains(t, rec.Body.String(), `"name":"Example:alice"`)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestHTTPEndpoint_Codes(t *testing.T) {
	accounts := testAccounts(t)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	var gotGenerate usecase.GenerateCodeInput
	var gotNext usecase.NextCodeInput
	r := newTestRouter(t, &fakeUsecase{
		generateFn: func(_ context.Context, in usecase.GenerateCodeInput) (*entity.CodeObservation, error) {
			gotGenerate = in
			if in.Order == 9 {
				return nil, goerror.NewBusinessCause(entity.ErrAccountNotFound, "Account not found", goerror.CodeNotFound)
			}
			return &entity.CodeObservation{Account: accounts[0], Code: "755224", Counter: 3, At: at}, nil
		},
		nextFn: func(_ context.Context, in usecase.NextCodeInput) (*entity.CodeObservation, error) {
			gotNext = in
			return &entity.CodeObservation{Account: accounts[0], Code: "287082", Counter: 4, At: at}, nil
		},
	})

	rec := do(r, http.MethodGet, "/api/v1/authenticator/accounts/0/code", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, gotGenerate.Order)
	assert.JSONEq(t, `{
		"message": "request has been successfully",
		"data": {"order": 0, "name": "Example:alice", "code": "755224", "counter": 3, "seconds_remaining": 0, "generated_at": "2024-05-01T10:00:00Z"}
	}`, rec.Body.String())

	rec = do(r, http.MethodPost, "/api/v1/authenticator/accounts/5/next", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotNext.Order)
	assert.Contains(t, rec.Body.String(), `"code":"287082"`)

	rec = do(r, http.MethodGet, "/api/v1/authenticator/accounts/9/code", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Account not found"}`, rec.Body.String())

	rec = do(r, http.MethodGet, "/api/v1/authenticator/accounts/abc/code", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPEndpoint_ExportMigration(t *testing.T) {
	r := newTestRouter(t, &fakeUsecase{
		exportFn: func(context.Context) (string, error) {
			return "otpauth-migration://offline?data=CgA%3D", nil
		},
	})

	rec := do(r, http.MethodGet, "/api/v1/authenticator/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Migration has been exported","data":{"uri":"otpauth-migration://offline?data=CgA%3D"}}`, rec.Body.String())
}
