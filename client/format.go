package client

import (
	"fmt"
	"strings"
)

// FormatPrice renders a price with two decimal places and thousands
// separators, e.g. 12345.6 -> "12,345.60".
func FormatPrice(price float64) string {
	s := fmt.Sprintf("%.2f", price)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + b.String() + fracPart
}
