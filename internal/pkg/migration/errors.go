package migration

import "errors"

var (
	// ErrURIFormat indicates the export URI has a wrong scheme/host or lacks a usable data parameter.
	ErrURIFormat = errors.New("migration: malformed export uri")

	// ErrBase64 indicates the data parameter is not valid base64.
	ErrBase64 = errors.New("migration: invalid base64 payload")

	// ErrTruncatedMessage indicates a read past the end of the payload.
	ErrTruncatedMessage = errors.New("migration: truncated message")

	// ErrVarintOverflow indicates a varint longer than 10 bytes or wider than 64 bits.
	ErrVarintOverflow = errors.New("migration: varint overflow")

	// ErrMalformedMessage indicates an invalid field number or an unsupported wire type.
	ErrMalformedMessage = errors.New("migration: malformed message")
)
