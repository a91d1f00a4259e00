// Package migration unpacks and decodes authenticator migration exports.
//
// An export is a URI of the form
//
//	otpauth-migration://offline?data=<percent-encoded base64 blob>
//
// where the blob is a length-delimited binary message (protobuf wire
// format) describing one batch of OTP accounts. Unpack extracts the blob,
// Decode parses it into raw primitive fields, and Encode/FormatURI do the
// reverse.
package migration
