// Package otp generates one-time passwords from raw shared secrets.
//
// HOTP follows RFC 4226 (HMAC over a big-endian counter, dynamic
// truncation, modulo 10^digits) and TOTP follows RFC 6238 (the counter is
// the number of elapsed periods since the Unix epoch). Secrets are raw
// bytes as carried by migration exports, not base32 text.
package otp
