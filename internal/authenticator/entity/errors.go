package entity

import "errors"

var (
	ErrEmptySecret          = errors.New("authenticator: secret is empty")
	ErrInvalidDigitCount    = errors.New("authenticator: invalid digit count")
	ErrInvalidOTPType       = errors.New("authenticator: invalid otp type")
	ErrUnsupportedAlgorithm = errors.New("authenticator: unsupported algorithm")
	ErrCounterNotSupported  = errors.New("authenticator: counter is only defined for hotp accounts")
	ErrAccountNotFound      = errors.New("authenticator: account not found")
	ErrNoSession            = errors.New("authenticator: no migration has been imported")
)
