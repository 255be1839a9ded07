package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAbbreviatedCount normalizes counters the backend abbreviates for
// display, e.g. "1.2K" or "3M". Empty input counts as zero.
func ParseAbbreviatedCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	multiplier := 0
	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = 1_000
	case 'M', 'm':
		multiplier = 1_000_000
	}

	if multiplier == 0 {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid count %q: %w", s, err)
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", s, err)
	}
	return int(math.Round(f * float64(multiplier))), nil
}

// FormatNumber renders a counter in abbreviated form for summary output.
func FormatNumber(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}
