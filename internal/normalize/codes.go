package normalize

import "strings"

// procedureSeparator splits a procedure entry into code and description.
const procedureSeparator = " - "

// ProcedureCode extracts the code from a "code - description" entry: the
// text before the first separator, trimmed. An entry without a separator
// is taken whole.
func ProcedureCode(entry string) string {
	code, _, _ := strings.Cut(entry, procedureSeparator)
	return strings.TrimSpace(code)
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
