package view

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCurrency renders an amount in the Brazilian convention:
// FormatCurrency(1234.56) == "R$ 1.234,56".
func FormatCurrency(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("R$ %s%s,%s", sign, b.String(), frac)
}

// CleanCurrency parses a Brazilian monetary string back to a float:
// CleanCurrency("R$ 1.234,56") == 1234.56. Plain numeric strings pass
// through strconv.
func CleanCurrency(value string) (float64, error) {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "R$") {
		v = strings.TrimSpace(strings.TrimPrefix(v, "R$"))
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency value %q", value)
	}
	return f, nil
}
