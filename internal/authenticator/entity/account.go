package entity

import "fmt"

// AccountParams carries the already-mapped fields of an account.
type AccountParams struct {
	Secret    []byte
	Label     string
	Issuer    string
	Algorithm Algorithm
	Digits    Digits
	Type      OTPType
	Counter   uint64
	Order     int
}

// Account is one OTP account of a migration batch.
//
// It is immutable: accessors return copies and the only way to change the
// HOTP counter is WithCounter, which returns a new value.
type Account struct {
	secret    []byte
	label     string
	issuer    string
	algorithm Algorithm
	digits    Digits
	kind      OTPType
	counter   uint64
	order     int
}

// NewAccount validates p and builds an Account. The counter is dropped for
// TOTP accounts.
func NewAccount(p AccountParams) (Account, error) {
	if len(p.Secret) == 0 {
		return Account{}, ErrEmptySecret
	}

	if !p.Digits.valid() {
		return Account{}, fmt.Errorf("%w: %d", ErrInvalidDigitCount, p.Digits)
	}

	if !p.Type.valid() {
		return Account{}, fmt.Errorf("%w: %d", ErrInvalidOTPType, p.Type)
	}

	acc := Account{
		secret:    append([]byte(nil), p.Secret...),
		label:     p.Label,
		issuer:    p.Issuer,
		algorithm: p.Algorithm,
		digits:    p.Digits,
		kind:      p.Type,
		order:     p.Order,
	}
	if p.Type == OTPTypeHOTP {
		acc.counter = p.Counter
	}

	return acc, nil
}

func (a Account) Secret() []byte {
	return append([]byte(nil), a.secret...)
}

func (a Account) Label() string {
	return a.label
}

func (a Account) Issuer() string {
	return a.issuer
}

func (a Account) Algorithm() Algorithm {
	return a.algorithm
}

func (a Account) Digits() Digits {
	return a.digits
}

func (a Account) Type() OTPType {
	return a.kind
}

// Counter returns the HOTP counter. ok is false for TOTP accounts.
func (a Account) Counter() (counter uint64, ok bool) {
	if a.kind != OTPTypeHOTP {
		return 0, false
	}
	return a.counter, true
}

// Order is the position of the account within its originating batch.
func (a Account) Order() int {
	return a.order
}

// DisplayName renders "issuer:label", or just the label without an issuer.
func (a Account) DisplayName() string {
	if a.issuer == "" {
		return a.label
	}
	return a.issuer + ":" + a.label
}

// WithCounter returns a copy of a with its HOTP counter set to counter.
func (a Account) WithCounter(counter uint64) (Account, error) {
	if a.kind != OTPTypeHOTP {
		return Account{}, ErrCounterNotSupported
	}

	next := a
	next.secret = append([]byte(nil), a.secret...)
	next.counter = counter
	return next, nil
}
