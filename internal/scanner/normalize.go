package scanner

import (
	"strings"
	"unicode"
)

// Normalize reduces a dataset-pair identifier line to a comparable form:
// control and other non-printable runes are dropped and whitespace runs
// collapse to single spaces. SAS listings carry form feeds and carriage
// controls across page breaks, so two renderings of the same pair must
// normalize identically.
func Normalize(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || !unicode.IsPrint(r)
	})
	return strings.Join(fields, " ")
}
