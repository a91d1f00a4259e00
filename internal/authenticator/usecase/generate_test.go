package usecase

import (
	"testing"
	"time"

	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAccount(t *testing.T, p entity.AccountParams) entity.Account {
	t.Helper()

	if p.Secret == nil {
		p.Secret = rfcSecret
	}
	acc, err := entity.NewAccount(p)
	require.NoError(t, err)
	return acc
}

func TestGenerateCode(t *testing.T) {
	gen := otp.NewGenerator(otp.DefaultPeriod)

	t.Run("TOTP", func(t *testing.T) {
		acc := mustAccount(t, entity.AccountParams{
			Algorithm: entity.AlgorithmSHA1, Digits: entity.DigitsEight, Type: entity.OTPTypeTOTP,
		})

		now := time.Unix(59, 0)
		obs := generateCode(gen, acc, now, 30)
		require.NoError(t, obs.Err)
		assert.Equal(t, "94287082", obs.Code)
		assert.Equal(t, uint64(1), obs.Counter)
		assert.Equal(t, 1, obs.SecondsRemaining)
		assert.Equal(t, now, obs.At)
		assert.Equal(t, acc, obs.Account)
	})

	t.Run("HOTP", func(t *testing.T) {
		acc := mustAccount(t, entity.AccountParams{
			Algorithm: entity.AlgorithmSHA1, Digits: entity.DigitsSix, Type: entity.OTPTypeHOTP, Counter: 1,
		})

		obs := generateCode(gen, acc, time.Unix(59, 0), 30)
		require.NoError(t, obs.Err)
		assert.Equal(t, "287082", obs.Code)
		assert.Equal(t, uint64(1), obs.Counter)
		assert.Zero(t, obs.SecondsRemaining)
	})

	t.Run("SHA256", func(t *testing.T) {
		acc := mustAccount(t, entity.AccountParams{
			Secret:    []byte("12345678901234567890123456789012"),
			Algorithm: entity.AlgorithmSHA256, Digits: entity.DigitsEight, Type: entity.OTPTypeTOTP,
		})

		obs := generateCode(gen, acc, time.Unix(59, 0), 30)
		require.NoError(t, obs.Err)
		assert.Equal(t, "46119246", obs.Code)
	})

	t.Run("UnknownAlgorithmFailsClosed", func(t *testing.T) {
		acc := mustAccount(t, entity.AccountParams{
			Algorithm: entity.ParseAlgorithm(4), Digits: entity.DigitsSix, Type: entity.OTPTypeTOTP,
		})

		obs := generateCode(gen, acc, time.Unix(59, 0), 30)
		assert.ErrorIs(t, obs.Err, entity.ErrUnsupportedAlgorithm)
		assert.Empty(t, obs.Code)
	})

	t.Run("BeforeEpoch", func(t *testing.T) {
		acc := mustAccount(t, entity.AccountParams{
			Algorithm: entity.AlgorithmSHA1, Digits: entity.DigitsSix, Type: entity.OTPTypeTOTP,
		})

		obs := generateCode(gen, acc, time.Unix(-1, 0), 30)
		assert.ErrorIs(t, obs.Err, otp.ErrInvalidTime)
	})

	t.Run("Idempotent", func(t *testing.T) {
		acc := mustAccount(t, entity.AccountParams{
			Algorithm: entity.AlgorithmSHA512, Digits: entity.DigitsSix, Type: entity.OTPTypeTOTP,
		})

		now := time.Unix(1_234_567_890, 0)
		assert.Equal(t, generateCode(gen, acc, now, 30), generateCode(gen, acc, now, 30))
	})
}
