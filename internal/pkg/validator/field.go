package validator

import (
	"strings"
	"unicode"
)

// fieldKey turns a Go field name into the snake_case key used in error maps.
// Initialisms stay together: AccountID becomes account_id, URIList uri_list.
func fieldKey(name string) string {
	runes := []rune(name)

	var b strings.Builder
	b.Grow(len(name) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			endsInitialism := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || endsInitialism {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
