package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want int
	}{
		{name: "InvalidFormat", code: CodeInvalidFormat, want: http.StatusBadRequest},
		{name: "InvalidInput", code: CodeInvalidInput, want: http.StatusUnprocessableEntity},
		{name: "NotFound", code: CodeNotFound, want: http.StatusNotFound},
		{name: "Conflict", code: CodeConflict, want: http.StatusConflict},
		{name: "Unavailable", code: CodeUnavailable, want: http.StatusServiceUnavailable},
		{name: "Timeout", code: CodeTimeout, want: http.StatusRequestTimeout},
		{name: "Internal", code: CodeInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBusiness("x", tt.code)

			var ge *Error
			require.True(t, errors.As(err, &ge))
			assert.Equal(t, tt.want, ge.StatusCode())
		})
	}
}

func TestNewBusinessCause(t *testing.T) {
	cause := errors.New("authenticator: account not found")
	err := NewBusinessCause(cause, "Account not found", CodeNotFound)

	assert.ErrorIs(t, err, cause)

	var ge *Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "Account not found", ge.Msg())
	assert.Equal(t, TypeBusiness, ge.Type())
	assert.Equal(t, cause.Error(), ge.Error())
}

func TestNewInvalidFormatCause(t *testing.T) {
	cause := errors.New("migration: invalid base64")
	err := NewInvalidFormatCause(cause, "Invalid migration uri")

	assert.ErrorIs(t, err, cause)

	var ge *Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, CodeInvalidFormat, ge.Code())
	assert.Equal(t, TypeValidation, ge.Type())
	assert.Equal(t, http.StatusBadRequest, ge.StatusCode())
}

func TestNewInvalidInput(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		err := NewInvalidInput(nil, "uri", "uri is too long")

		var ge *Error
		require.True(t, errors.As(err, &ge))
		assert.Equal(t, map[string]string{"uri": "uri is too long"}, ge.Fields())
		assert.Equal(t, CodeInvalidInput, ge.Code())
	})

	t.Run("OddPairs", func(t *testing.T) {
		err := NewInvalidInput(nil, "uri")

		var ge *Error
		require.True(t, errors.As(err, &ge))
		assert.Equal(t, CodeInvalidFormat, ge.Code())
	})
}

func TestError_DefaultMessages(t *testing.T) {
	assert.Equal(t, "Validation violation", (&Error{errType: TypeValidation}).Error())
	assert.Equal(t, "Logical business not meet with requirement", (&Error{errType: TypeBusiness}).Error())
	assert.Equal(t, "Internal error", (&Error{errType: TypeServer}).Error())
	assert.Equal(t, "ERROR_CODE_UNAVAILABLE", CodeUnavailable.String())
}

func TestCode_UnknownFallsBackToInternal(t *testing.T) {
	assert.Equal(t, "ERROR_CODE_INTERNAL", Code(99).String())
	assert.Equal(t, http.StatusInternalServerError, Code(99).Status())
	assert.Equal(t, "ERROR_TYPE_UNKNOWN", Type(9).String())
}

func TestError_String(t *testing.T) {
	err := NewBusinessCause(errors.New("boom"), "Account not found", CodeNotFound)

	var ge *Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, `ERROR_TYPE_BUSINESS/ERROR_CODE_NOT_FOUND: "Account not found" (cause: boom)`, ge.String())
}
