package entity

import (
	"strconv"
	"strings"
	"time"
)

// Batch is the result of decoding one migration export. Metadata fields
// are informational only and never affect code generation.
type Batch struct {
	Accounts   []Account
	Version    int64
	BatchSize  int64
	BatchIndex int64
	BatchID    int64
}

// AccountFailure reports an account record that could not be built.
type AccountFailure struct {
	Order  int
	Label  string
	Issuer string
	Err    error
}

func (f AccountFailure) String() string {
	name := f.Label
	if f.Issuer != "" {
		name = f.Issuer + ":" + f.Label
	}
	if name == "" {
		return f.Err.Error()
	}
	return name + ": " + f.Err.Error()
}

// FailureSummary renders failures as one user-facing sentence, or "" when
// there are none.
func FailureSummary(failures []AccountFailure) string {
	switch len(failures) {
	case 0:
		return ""
	case 1:
		return "One account could not be read: " + failures[0].String()
	}

	parts := make([]string, 0, len(failures))
	for _, f := range failures {
		parts = append(parts, f.String())
	}
	return strconv.Itoa(len(failures)) + " accounts could not be read: " + strings.Join(parts, ", ")
}

// CodeObservation is a code computed for one account at one instant.
//
// SecondsRemaining is zero for HOTP accounts. Err is set instead of Code
// when generation failed, e.g. for an unsupported algorithm.
type CodeObservation struct {
	Account          Account
	Code             string
	Counter          uint64
	SecondsRemaining int
	At               time.Time
	Err              error
}
