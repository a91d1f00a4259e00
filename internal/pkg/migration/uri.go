package migration

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

const (
	// Scheme is the URI scheme of authenticator migration exports.
	Scheme = "otpauth-migration"
	// Host is the only host used by migration exports.
	Host = "offline"
	// DataParam is the query parameter carrying the payload.
	DataParam = "data"
)

var alphabetNormalizer = strings.NewReplacer("+", "-", "/", "_")

// Unpack extracts the binary payload from an export URI.
//
// The data parameter is percent-decoded with path semantics, so a literal
// "+" survives as part of the base64 text. Both the standard and URL-safe
// alphabets are accepted and missing "=" padding is tolerated.
func Unpack(uri string) ([]byte, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrURIFormat, err)
	}

	if !strings.EqualFold(u.Scheme, Scheme) {
		return nil, fmt.Errorf("%w: unexpected scheme %q", ErrURIFormat, u.Scheme)
	}

	if !strings.EqualFold(u.Host, Host) {
		return nil, fmt.Errorf("%w: unexpected host %q", ErrURIFormat, u.Host)
	}

	data, err := dataParam(u.RawQuery)
	if err != nil {
		return nil, err
	}

	text := alphabetNormalizer.Replace(strings.TrimRight(data, "="))
	payload, err := base64.RawURLEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBase64, err)
	}

	return payload, nil
}

func dataParam(rawQuery string) (string, error) {
	var (
		value string
		found bool
	)

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrURIFormat, err)
		}
		if key != DataParam {
			continue
		}

		if found {
			return "", fmt.Errorf("%w: duplicate %q parameter", ErrURIFormat, DataParam)
		}

		value, err = url.PathUnescape(rawValue)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrURIFormat, err)
		}
		found = true
	}

	if !found || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: missing %q parameter", ErrURIFormat, DataParam)
	}

	return value, nil
}

// FormatURI renders payload as an export URI that Unpack accepts.
func FormatURI(payload []byte) string {
	data := base64.StdEncoding.EncodeToString(payload)
	return Scheme + "://" + Host + "?" + DataParam + "=" + url.QueryEscape(data)
}
