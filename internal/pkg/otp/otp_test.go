package otp

import (
	"testing"

	"github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rfcSecret = []byte("12345678901234567890")

func TestGenerator_HOTP_RFC4226(t *testing.T) {
	// RFC 4226 Appendix D.
	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}

	g := NewGenerator(0)
	for counter, code := range want {
		got, err := g.HOTP(rfcSecret, uint64(counter), Options{
			Algorithm: otp.AlgorithmSHA1,
			Digits:    otp.DigitsSix,
		})

		require.NoError(t, err)
		assert.Equal(t, code, got, "counter %d", counter)
	}
}

func TestGenerator_TOTP_RFC6238(t *testing.T) {
	// RFC 6238 Appendix B. Each algorithm uses a key of its own digest size.
	sha256Secret := []byte("12345678901234567890123456789012")
	sha512Secret := []byte("1234567890123456789012345678901234567890123456789012345678901234")

	tests := []struct {
		name   string
		secret []byte
		alg    otp.Algorithm
		unix   int64
		want   string
	}{
		{"sha1 59", rfcSecret, otp.AlgorithmSHA1, 59, "94287082"},
		{"sha256 59", sha256Secret, otp.AlgorithmSHA256, 59, "46119246"},
		{"sha512 59", sha512Secret, otp.AlgorithmSHA512, 59, "90693936"},
		{"sha1 1111111109", rfcSecret, otp.AlgorithmSHA1, 1111111109, "07081804"},
		{"sha1 1234567890", rfcSecret, otp.AlgorithmSHA1, 1234567890, "89005924"},
		{"sha1 2000000000", rfcSecret, otp.AlgorithmSHA1, 2000000000, "69279037"},
		{"sha256 20000000000", sha256Secret, otp.AlgorithmSHA256, 20000000000, "77737706"},
		{"sha512 20000000000", sha512Secret, otp.AlgorithmSHA512, 20000000000, "47863826"},
	}

	g := NewGenerator(30)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.TOTP(tt.secret, tt.unix, Options{
				Algorithm: tt.alg,
				Digits:    otp.DigitsEight,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestGenerator_TOTP_Window(t *testing.T) {
	g := NewGenerator(0)
	opts := Options{Algorithm: otp.AlgorithmSHA1, Digits: otp.DigitsSix}

	first, err := g.TOTP(rfcSecret, 60, opts)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), first.Counter)
	assert.Equal(t, uint(30), first.SecondsRemaining)

	again, err := g.TOTP(rfcSecret, 89, opts)
	require.NoError(t, err)
	assert.Equal(t, first.Value, again.Value)
	assert.Equal(t, uint64(2), again.Counter)
	assert.Equal(t, uint(1), again.SecondsRemaining)

	next, err := g.TOTP(rfcSecret, 90, opts)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), next.Counter)
}

func TestGenerator_TOTP_Idempotent(t *testing.T) {
	g := NewGenerator(0)
	opts := Options{Algorithm: otp.AlgorithmSHA256, Digits: otp.DigitsSix}

	a, err := g.TOTP(rfcSecret, 1700000000, opts)
	require.NoError(t, err)
	b, err := g.TOTP(rfcSecret, 1700000000, opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerator_TOTP_CustomPeriod(t *testing.T) {
	g := NewGenerator(0)

	got, err := g.TOTP(rfcSecret, 125, Options{Algorithm: otp.AlgorithmSHA1, Digits: otp.DigitsSix, Period: 60})

	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Counter)
	assert.Equal(t, uint(55), got.SecondsRemaining)
}

func TestGenerator_Errors(t *testing.T) {
	g := NewGenerator(0)

	_, err := g.HOTP(nil, 0, Options{Algorithm: otp.AlgorithmSHA1, Digits: otp.DigitsSix})
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = g.HOTP(rfcSecret, 0, Options{Algorithm: otp.AlgorithmMD5, Digits: otp.DigitsSix})
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = g.HOTP(rfcSecret, 0, Options{Algorithm: otp.AlgorithmSHA1, Digits: otp.Digits(7)})
	assert.ErrorIs(t, err, ErrInvalidDigits)

	_, err = g.TOTP(rfcSecret, -1, Options{Algorithm: otp.AlgorithmSHA1, Digits: otp.DigitsSix})
	assert.ErrorIs(t, err, ErrInvalidTime)
}
