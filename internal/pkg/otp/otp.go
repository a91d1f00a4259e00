package otp

import (
	"encoding/base32"
	"errors"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// DefaultPeriod is the TOTP window length used when none is configured.
const DefaultPeriod uint = 30

var (
	// ErrUnsupportedAlgorithm is returned for hash algorithms other than SHA1, SHA256 and SHA512.
	ErrUnsupportedAlgorithm = errors.New("otp: unsupported algorithm")
	// ErrInvalidDigits is returned when the code length is not 6 or 8.
	ErrInvalidDigits = errors.New("otp: digits must be 6 or 8")
	// ErrEmptySecret is returned when the shared secret has no bytes.
	ErrEmptySecret = errors.New("otp: secret is empty")
	// ErrInvalidTime is returned for instants before the Unix epoch.
	ErrInvalidTime = errors.New("otp: time is before the unix epoch")
)

var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Options selects the hash function, code length and TOTP period.
type Options struct {
	Algorithm otp.Algorithm
	Digits    otp.Digits
	// Period is the TOTP window in seconds. Zero means DefaultPeriod.
	Period uint
}

// Code is a TOTP result together with the window it belongs to.
type Code struct {
	Value            string
	Counter          uint64
	SecondsRemaining uint
}

// OTP defines the contract for code generation.
type OTP interface {
	// HOTP computes the counter-based code.
	HOTP(secret []byte, counter uint64, opts Options) (string, error)
	// TOTP computes the time-based code for unixSeconds.
	TOTP(secret []byte, unixSeconds int64, opts Options) (Code, error)
}

// Generator implements OTP. It is stateless and safe for concurrent use.
type Generator struct {
	period uint
}

// NewGenerator constructs a Generator. A zero period falls back to DefaultPeriod.
func NewGenerator(period uint) *Generator {
	if period == 0 {
		period = DefaultPeriod
	}

	return &Generator{period: period}
}

// HOTP computes the RFC 4226 code for counter.
func (g *Generator) HOTP(secret []byte, counter uint64, opts Options) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	switch opts.Algorithm {
	case otp.AlgorithmSHA1, otp.AlgorithmSHA256, otp.AlgorithmSHA512:
	default:
		return "", ErrUnsupportedAlgorithm
	}

	if opts.Digits != otp.DigitsSix && opts.Digits != otp.DigitsEight {
		return "", ErrInvalidDigits
	}

	return hotp.GenerateCodeCustom(secretEncoding.EncodeToString(secret), counter, hotp.ValidateOpts{
		Digits:    opts.Digits,
		Algorithm: opts.Algorithm,
	})
}

// TOTP computes the RFC 6238 code for unixSeconds. The counter is
// floor(unixSeconds / period) and SecondsRemaining counts down to the next
// window, so it is always in [1, period].
func (g *Generator) TOTP(secret []byte, unixSeconds int64, opts Options) (Code, error) {
	if unixSeconds < 0 {
		return Code{}, ErrInvalidTime
	}

	period := opts.Period
	if period == 0 {
		period = g.period
	}

	counter, remaining := Window(unixSeconds, period)

	value, err := g.HOTP(secret, counter, opts)
	if err != nil {
		return Code{}, err
	}

	return Code{
		Value:            value,
		Counter:          counter,
		SecondsRemaining: remaining,
	}, nil
}

// Window returns the TOTP counter for unixSeconds and the seconds left
// before it changes. unixSeconds must not be negative.
func Window(unixSeconds int64, period uint) (counter uint64, remaining uint) {
	if period == 0 {
		period = DefaultPeriod
	}

	t := uint64(unixSeconds)
	p := uint64(period)

	return t / p, uint(p - t%p)
}
