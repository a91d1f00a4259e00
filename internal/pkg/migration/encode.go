package migration

import "google.golang.org/protobuf/encoding/protowire"

// Encode serialises p in the wire format Decode reads. Zero-valued scalar
// fields are omitted, except the counter, which is written whenever
// HasCounter is set.
func Encode(p *Payload) []byte {
	if p == nil {
		return nil
	}

	var b []byte
	for _, acc := range p.Accounts {
		b = protowire.AppendTag(b, fieldPayloadAccount, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeAccount(acc))
	}

	b = appendInt(b, fieldPayloadVersion, uint64(p.Version))
	b = appendInt(b, fieldPayloadBatchSize, uint64(p.BatchSize))
	b = appendInt(b, fieldPayloadBatchIndex, uint64(p.BatchIndex))
	b = appendInt(b, fieldPayloadBatchID, uint64(p.BatchID))

	return b
}

func encodeAccount(acc RawAccount) []byte {
	var b []byte
	if len(acc.Secret) > 0 {
		b = protowire.AppendTag(b, fieldAccountSecret, protowire.BytesType)
		b = protowire.AppendBytes(b, acc.Secret)
	}
	if acc.Name != "" {
		b = protowire.AppendTag(b, fieldAccountName, protowire.BytesType)
		b = protowire.AppendString(b, acc.Name)
	}
	if acc.Issuer != "" {
		b = protowire.AppendTag(b, fieldAccountIssuer, protowire.BytesType)
		b = protowire.AppendString(b, acc.Issuer)
	}

	b = appendInt(b, fieldAccountAlgorithm, acc.Algorithm)
	b = appendInt(b, fieldAccountDigits, acc.Digits)
	b = appendInt(b, fieldAccountType, acc.Type)

	if acc.HasCounter {
		b = protowire.AppendTag(b, fieldAccountCounter, protowire.VarintType)
		b = protowire.AppendVarint(b, acc.Counter)
	}

	return b
}

func appendInt(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}
