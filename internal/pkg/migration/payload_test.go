package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func samplePayload() *Payload {
	return &Payload{
		Accounts: []RawAccount{
			{
				Secret:    []byte("12345678901234567890"),
				Name:      "alice@example.com",
				Issuer:    "Example",
				Algorithm: 1,
				Digits:    1,
				Type:      2,
			},
			{
				Secret:     []byte{0xde, 0xad, 0xbe, 0xef},
				Name:       "bob",
				Algorithm:  3,
				Digits:     2,
				Type:       1,
				Counter:    42,
				HasCounter: true,
			},
		},
		Version:    1,
		BatchSize:  2,
		BatchIndex: 1,
		BatchID:    -1320413478,
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	want := samplePayload()

	got, err := Decode(Encode(want))

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecode_UnpackRoundTrip(t *testing.T) {
	want := samplePayload()

	raw, err := Unpack(FormatURI(Encode(want)))
	require.NoError(t, err)

	got, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode(nil)

	require.NoError(t, err)
	assert.Empty(t, got.Accounts)
	assert.Zero(t, got.Version)
}

func TestDecode_SkipsUnknownFields(t *testing.T) {
	var acc []byte
	acc = protowire.AppendTag(acc, fieldAccountSecret, protowire.BytesType)
	acc = protowire.AppendBytes(acc, []byte("secret"))
	acc = protowire.AppendTag(acc, 42, protowire.Fixed32Type)
	acc = protowire.AppendFixed32(acc, 0xcafebabe)
	acc = protowire.AppendTag(acc, fieldAccountType, protowire.VarintType)
	acc = protowire.AppendVarint(acc, 2)
	acc = protowire.AppendTag(acc, 43, protowire.BytesType)
	acc = protowire.AppendBytes(acc, []byte("future"))
	// known field number with an unexpected wire type is treated as unknown
	acc = protowire.AppendTag(acc, fieldAccountName, protowire.Fixed64Type)
	acc = protowire.AppendFixed64(acc, 7)

	var b []byte
	b = protowire.AppendTag(b, 99, protowire.VarintType)
	b = protowire.AppendVarint(b, 1<<40)
	b = protowire.AppendTag(b, fieldPayloadAccount, protowire.BytesType)
	b = protowire.AppendBytes(b, acc)
	b = protowire.AppendTag(b, 100, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 1)
	b = protowire.AppendTag(b, fieldPayloadVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	got, err := Decode(b)

	require.NoError(t, err)
	require.Len(t, got.Accounts, 1)
	assert.Equal(t, []byte("secret"), got.Accounts[0].Secret)
	assert.Equal(t, uint64(2), got.Accounts[0].Type)
	assert.Empty(t, got.Accounts[0].Name)
	assert.Equal(t, int64(1), got.Version)
}

func TestDecode_LastScalarWins(t *testing.T) {
	var acc []byte
	acc = protowire.AppendTag(acc, fieldAccountDigits, protowire.VarintType)
	acc = protowire.AppendVarint(acc, 1)
	acc = protowire.AppendTag(acc, fieldAccountDigits, protowire.VarintType)
	acc = protowire.AppendVarint(acc, 2)

	var b []byte
	b = protowire.AppendTag(b, fieldPayloadAccount, protowire.BytesType)
	b = protowire.AppendBytes(b, acc)

	got, err := Decode(b)

	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Accounts[0].Digits)
}

func TestDecode_CounterPresence(t *testing.T) {
	var acc []byte
	acc = protowire.AppendTag(acc, fieldAccountCounter, protowire.VarintType)
	acc = protowire.AppendVarint(acc, 0)

	var b []byte
	b = protowire.AppendTag(b, fieldPayloadAccount, protowire.BytesType)
	b = protowire.AppendBytes(b, acc)
	b = protowire.AppendTag(b, fieldPayloadAccount, protowire.BytesType)
	b = protowire.AppendBytes(b, nil)

	got, err := Decode(b)

	require.NoError(t, err)
	require.Len(t, got.Accounts, 2)
	assert.True(t, got.Accounts[0].HasCounter)
	assert.False(t, got.Accounts[1].HasCounter)
}

func TestDecode_InvalidUTF8IsReplaced(t *testing.T) {
	var acc []byte
	acc = protowire.AppendTag(acc, fieldAccountName, protowire.BytesType)
	acc = protowire.AppendBytes(acc, []byte{'a', 0xff, 'b'})

	var b []byte
	b = protowire.AppendTag(b, fieldPayloadAccount, protowire.BytesType)
	b = protowire.AppendBytes(b, acc)

	got, err := Decode(b)

	require.NoError(t, err)
	assert.Equal(t, "a\uFFFDb", got.Accounts[0].Name)
}

func TestDecode_Errors(t *testing.T) {
	valid := Encode(samplePayload())

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{
			name:    "truncated mid-field",
			input:   valid[:len(valid)/2],
			wantErr: ErrTruncatedMessage,
		},
		{
			name:    "length prefix beyond buffer",
			input:   []byte{0x0a, 0x05, 0x01, 0x02},
			wantErr: ErrTruncatedMessage,
		},
		{
			name:    "tag without value",
			input:   []byte{0x10},
			wantErr: ErrTruncatedMessage,
		},
		{
			name:    "unterminated varint",
			input:   []byte{0x10, 0x80, 0x80},
			wantErr: ErrTruncatedMessage,
		},
		{
			name:    "truncated fixed32",
			input:   []byte{0x35, 0x01, 0x02},
			wantErr: ErrTruncatedMessage,
		},
		{
			name:    "truncated fixed64",
			input:   []byte{0x31, 0x01, 0x02, 0x03},
			wantErr: ErrTruncatedMessage,
		},
		{
			name:    "truncated inside account",
			input:   []byte{0x0a, 0x02, 0x0a, 0x05},
			wantErr: ErrTruncatedMessage,
		},
		{
			name:    "varint longer than ten bytes",
			input:   []byte{0x10, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
			wantErr: ErrVarintOverflow,
		},
		{
			name:    "tenth varint byte exceeds 64 bits",
			input:   []byte{0x10, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02},
			wantErr: ErrVarintOverflow,
		},
		{
			name:    "field number zero",
			input:   []byte{0x00, 0x01},
			wantErr: ErrMalformedMessage,
		},
		{
			name:    "group wire type",
			input:   []byte{0x0b},
			wantErr: ErrMalformedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestDecode_MaxVarint(t *testing.T) {
	b := protowire.AppendTag(nil, fieldPayloadBatchID, protowire.VarintType)
	b = protowire.AppendVarint(b, ^uint64(0))

	got, err := Decode(b)

	require.NoError(t, err)
	assert.Equal(t, int64(-1), got.BatchID)
}
