package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey trims whitespace, drops a leading byte-order mark and puts
// the text in Unicode NFC, so "CONVÊNIO" typed with a combining accent
// matches the precomposed form. Case and accents are preserved.
func NormalizeKey(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return norm.NFC.String(strings.TrimSpace(s))
}
