package migration

import (
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// Batch message field numbers.
const (
	fieldPayloadAccount    protowire.Number = 1
	fieldPayloadVersion    protowire.Number = 2
	fieldPayloadBatchSize  protowire.Number = 3
	fieldPayloadBatchIndex protowire.Number = 4
	fieldPayloadBatchID    protowire.Number = 5
)

// Account sub-message field numbers.
const (
	fieldAccountSecret    protowire.Number = 1
	fieldAccountName      protowire.Number = 2
	fieldAccountIssuer    protowire.Number = 3
	fieldAccountAlgorithm protowire.Number = 4
	fieldAccountDigits    protowire.Number = 5
	fieldAccountType      protowire.Number = 6
	fieldAccountCounter   protowire.Number = 7
)

// RawAccount holds the primitive fields of one account sub-message,
// before any enum mapping or validation.
type RawAccount struct {
	Secret     []byte
	Name       string
	Issuer     string
	Algorithm  uint64
	Digits     uint64
	Type       uint64
	Counter    uint64
	HasCounter bool
}

// Payload is a decoded migration batch message.
type Payload struct {
	Accounts   []RawAccount
	Version    int64
	BatchSize  int64
	BatchIndex int64
	BatchID    int64
}

// Decode parses a migration payload.
//
// Any structural error aborts the whole decode: there is no partial
// message to salvage. Unknown fields, and known fields carrying an
// unexpected wire type, are skipped.
func Decode(payload []byte) (*Payload, error) {
	r := newReader(payload)
	out := &Payload{}

	for !r.done() {
		num, typ, err := r.tag()
		if err != nil {
			return nil, err
		}

		switch {
		case num == fieldPayloadAccount && typ == protowire.BytesType:
			msg, err := r.bytes()
			if err != nil {
				return nil, err
			}
			acc, err := decodeAccount(msg)
			if err != nil {
				return nil, err
			}
			out.Accounts = append(out.Accounts, acc)

		case isPayloadInt(num) && typ == protowire.VarintType:
			v, err := r.varint()
			if err != nil {
				return nil, err
			}
			out.setInt(num, int64(v))

		default:
			if err := r.skip(typ); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func isPayloadInt(num protowire.Number) bool {
	switch num {
	case fieldPayloadVersion, fieldPayloadBatchSize, fieldPayloadBatchIndex, fieldPayloadBatchID:
		return true
	default:
		return false
	}
}

func (p *Payload) setInt(num protowire.Number, v int64) {
	switch num {
	case fieldPayloadVersion:
		p.Version = v
	case fieldPayloadBatchSize:
		p.BatchSize = v
	case fieldPayloadBatchIndex:
		p.BatchIndex = v
	case fieldPayloadBatchID:
		p.BatchID = v
	}
}

func decodeAccount(msg []byte) (RawAccount, error) {
	r := newReader(msg)
	acc := RawAccount{}

	for !r.done() {
		num, typ, err := r.tag()
		if err != nil {
			return RawAccount{}, err
		}

		switch {
		case isAccountBytes(num) && typ == protowire.BytesType:
			v, err := r.bytes()
			if err != nil {
				return RawAccount{}, err
			}
			acc.setBytes(num, v)

		case isAccountInt(num) && typ == protowire.VarintType:
			v, err := r.varint()
			if err != nil {
				return RawAccount{}, err
			}
			acc.setInt(num, v)

		default:
			if err := r.skip(typ); err != nil {
				return RawAccount{}, err
			}
		}
	}

	return acc, nil
}

func isAccountBytes(num protowire.Number) bool {
	return num == fieldAccountSecret || num == fieldAccountName || num == fieldAccountIssuer
}

func isAccountInt(num protowire.Number) bool {
	switch num {
	case fieldAccountAlgorithm, fieldAccountDigits, fieldAccountType, fieldAccountCounter:
		return true
	default:
		return false
	}
}

func (a *RawAccount) setBytes(num protowire.Number, v []byte) {
	switch num {
	case fieldAccountSecret:
		a.Secret = append([]byte(nil), v...)
	case fieldAccountName:
		a.Name = strings.ToValidUTF8(string(v), "\uFFFD")
	case fieldAccountIssuer:
		a.Issuer = strings.ToValidUTF8(string(v), "\uFFFD")
	}
}

func (a *RawAccount) setInt(num protowire.Number, v uint64) {
	switch num {
	case fieldAccountAlgorithm:
		a.Algorithm = v
	case fieldAccountDigits:
		a.Digits = v
	case fieldAccountType:
		a.Type = v
	case fieldAccountCounter:
		a.Counter = v
		a.HasCounter = true
	}
}
