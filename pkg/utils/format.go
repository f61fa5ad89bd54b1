// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
)

// FormatRupiah formats an amount as Indonesian rupiah with dot thousand
// separators, e.g. Rp1.234.567. IDX prices are whole-rupiah amounts.
func FormatRupiah(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	formatted := groupThousands(fmt.Sprintf("%.0f", amount))

	result := "Rp" + formatted
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dot separators every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var sb strings.Builder
	lead := n % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// FormatPercent formats a percentage with an explicit sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatVolume formats a volume figure in compact form (K/M/B).
func FormatVolume(volume float64) string {
	abs := volume
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", volume/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", volume/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", volume/1e3)
	default:
		return fmt.Sprintf("%.0f", volume)
	}
}
