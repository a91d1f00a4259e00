package usecase

import (
	"fmt"
	"time"

	libOTP "github.com/pquerna/otp"
	"github.com/shandysiswandi/authmigrate/internal/authenticator/entity"
	"github.com/shandysiswandi/authmigrate/internal/pkg/otp"
)

// generateCode computes the code of acc at now. It has no side effects and
// may run concurrently for different accounts.
func generateCode(gen otp.OTP, acc entity.Account, now time.Time, period uint) entity.CodeObservation {
	obs := entity.CodeObservation{Account: acc, At: now}

	opts, err := otpOptions(acc, period)
	if err != nil {
		obs.Err = err
		return obs
	}

	if counter, ok := acc.Counter(); ok {
		code, err := gen.HOTP(acc.Secret(), counter, opts)
		if err != nil {
			obs.Err = err
			return obs
		}
		obs.Code = code
		obs.Counter = counter
		return obs
	}

	code, err := gen.TOTP(acc.Secret(), now.Unix(), opts)
	if err != nil {
		obs.Err = err
		return obs
	}
	obs.Code = code.Value
	obs.Counter = code.Counter
	obs.SecondsRemaining = int(code.SecondsRemaining)
	return obs
}

// otpOptions maps the account enums to generator options. An Unknown
// algorithm fails with entity.ErrUnsupportedAlgorithm.
func otpOptions(acc entity.Account, period uint) (otp.Options, error) {
	opts := otp.Options{Period: period}

	switch acc.Algorithm() {
	case entity.AlgorithmSHA1:
		opts.Algorithm = libOTP.AlgorithmSHA1
	case entity.AlgorithmSHA256:
		opts.Algorithm = libOTP.AlgorithmSHA256
	case entity.AlgorithmSHA512:
		opts.Algorithm = libOTP.AlgorithmSHA512
	default:
		return otp.Options{}, fmt.Errorf("%w: %s", entity.ErrUnsupportedAlgorithm, acc.Algorithm())
	}

	switch acc.Digits() {
	case entity.DigitsSix:
		opts.Digits = libOTP.DigitsSix
	case entity.DigitsEight:
		opts.Digits = libOTP.DigitsEight
	default:
		return otp.Options{}, fmt.Errorf("%w: %d", entity.ErrInvalidDigitCount, acc.Digits())
	}

	return opts, nil
}
