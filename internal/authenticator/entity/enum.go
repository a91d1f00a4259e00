package entity

import (
	"fmt"
	"strconv"
)

// Algorithm is the hash function an account uses. Values outside the
// known constants are the unknown variant: they are kept verbatim so the
// caller can report them, and code generation refuses them.
type Algorithm uint64

const (
	// AlgorithmSHA1 is HMAC-SHA1, the default of most authenticator apps.
	AlgorithmSHA1 Algorithm = 1
	// AlgorithmSHA256 is HMAC-SHA256.
	AlgorithmSHA256 Algorithm = 2
	// AlgorithmSHA512 is HMAC-SHA512.
	AlgorithmSHA512 Algorithm = 3
)

// ParseAlgorithm maps the wire enum to an Algorithm. It never fails.
func ParseAlgorithm(raw uint64) Algorithm {
	return Algorithm(raw)
}

// IsUnknown reports whether a is outside the supported hash functions.
func (a Algorithm) IsUnknown() bool {
	switch a {
	case AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA512:
		return false
	default:
		return true
	}
}

// Raw returns the wire value.
func (a Algorithm) Raw() uint64 {
	return uint64(a)
}

// String returns the hash name, or Unknown(n) for an unsupported value.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmSHA1:
		return "SHA1"
	case AlgorithmSHA256:
		return "SHA256"
	case AlgorithmSHA512:
		return "SHA512"
	default:
		return "Unknown(" + strconv.FormatUint(uint64(a), 10) + ")"
	}
}

// Digits is the length of generated codes.
type Digits int

const (
	// DigitsSix is the wire value 1.
	DigitsSix Digits = 6
	// DigitsEight is the wire value 2.
	DigitsEight Digits = 8
)

// ParseDigits maps the wire enum (1 or 2) to a code length.
func ParseDigits(raw uint64) (Digits, error) {
	switch raw {
	case 1:
		return DigitsSix, nil
	case 2:
		return DigitsEight, nil
	default:
		return 0, fmt.Errorf("%w: enum value %d", ErrInvalidDigitCount, raw)
	}
}

// Raw returns the wire value.
func (d Digits) Raw() uint64 {
	switch d {
	case DigitsSix:
		return 1
	case DigitsEight:
		return 2
	default:
		return 0
	}
}

func (d Digits) valid() bool {
	return d == DigitsSix || d == DigitsEight
}

// OTPType tells whether codes depend on a counter or on time.
type OTPType int

const (
	// OTPTypeHOTP is counter based.
	OTPTypeHOTP OTPType = 1
	// OTPTypeTOTP is time based.
	OTPTypeTOTP OTPType = 2
)

// ParseOTPType maps the wire enum to an OTPType.
func ParseOTPType(raw uint64) (OTPType, error) {
	switch raw {
	case 1:
		return OTPTypeHOTP, nil
	case 2:
		return OTPTypeTOTP, nil
	default:
		return 0, fmt.Errorf("%w: enum value %d", ErrInvalidOTPType, raw)
	}
}

// Raw returns the wire value.
func (t OTPType) Raw() uint64 {
	return uint64(t)
}

// String returns HOTP, TOTP or Unknown.
func (t OTPType) String() string {
	switch t {
	case OTPTypeHOTP:
		return "HOTP"
	case OTPTypeTOTP:
		return "TOTP"
	default:
		return "Unknown"
	}
}

func (t OTPType) valid() bool {
	return t == OTPTypeHOTP || t == OTPTypeTOTP
}
