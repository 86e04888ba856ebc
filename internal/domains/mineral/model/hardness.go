package model

import (
	"math"
	"strconv"
	"strings"
)

// Hardness values are free text on the Mohs scale. Two extraction policies
// exist and they disagree on inputs such as "~5" or "5 6":
// SortHardness cleans the text first, StatsHardness does not.

// SortHardness derives the value used to order minerals by hardness.
// Ranges sort by their lower bound ("5-6" → 5). Any failure yields 0.
func SortHardness(hardness string) float64 {
	clean := strings.TrimSpace(hardness)
	if clean == "" {
		return 0
	}

	clean = strings.ReplaceAll(clean, ",", ".")
	clean = keepHardnessRunes(clean)

	if strings.Contains(clean, "-") {
		parts := splitDropTrailing(clean, "-")
		if len(parts) == 2 {
			low := parseFloatOrZero(parts[0])
			high := parseFloatOrZero(parts[1])
			if high < low {
				return high
			}
			return low
		}
	}

	if strings.Contains(clean, " ") {
		parts := splitDropTrailing(clean, " ")
		if len(parts) > 0 {
			return parseFloatOrZero(parts[0])
		}
	}

	return parseFloatOrZero(clean)
}

// StatsHardness is the simpler extraction used for collection statistics:
// the text before the first hyphen, decimal comma replaced, nothing else.
func StatsHardness(hardness string) float64 {
	head, _, _ := strings.Cut(hardness, "-")
	return parseFloatOrZero(strings.ReplaceAll(head, ",", "."))
}

// keepHardnessRunes drops everything except digits, dots, hyphens and
// whitespace.
func keepHardnessRunes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\f', r == '\v':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitDropTrailing splits on sep and drops trailing empty parts, so
// "5-" yields ["5"] and "-" yields [].
func splitDropTrailing(s, sep string) []string {
	parts := strings.Split(s, sep)
	if len(parts) == 1 {
		return parts
	}
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return parts[:end]
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
