package otp

import (
	"fmt"
	"strings"
)

// DefaultGroupSeparator separates the two halves of a displayed code.
const DefaultGroupSeparator = " "

// FormatCode renders code as six zero-padded digits grouped in threes,
// e.g. FormatCode(12, " ") == "000 012". An empty sep disables grouping.
func FormatCode(code uint32, sep string) string {
	digits := fmt.Sprintf("%0*d", Digits, code%modulus)
	if sep == "" {
		return digits
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(d)
	}
	return b.String()
}
