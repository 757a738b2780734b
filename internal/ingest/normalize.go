package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParsePartNumbers splits a raw part-number string into ordered candidates.
// A bracketed stringified list ("['A1', 'A2']") is split on commas with
// quoting stripped; anything else is a single candidate. Empty input yields
// no candidates.
func ParsePartNumbers(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		content := s[1 : len(s)-1]
		var parts []string
		for _, p := range strings.Split(content, ",") {
			clean := strings.Trim(strings.TrimSpace(p), `'"`)
			if clean != "" {
				parts = append(parts, clean)
			}
		}
		return parts
	}
	return []string{s}
}

// ParsePrice converts a locale-formatted price string into an integer amount.
// Currency symbols, thousands separators, and whitespace are stripped; any
// other character is an error so garbage prices drop the observation instead
// of recording a bogus amount.
func ParsePrice(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("empty price")
	}
	var digits strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '$' || r == '.' || r == ',' || r == ' ' || r == '\u00a0':
			// currency symbol or separator
		default:
			return 0, fmt.Errorf("unexpected character %q in price %q", r, raw)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("no digits in price %q", raw)
	}
	value, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return value, nil
}
