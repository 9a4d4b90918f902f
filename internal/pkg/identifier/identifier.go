// Package identifier formats and parses asset identifiers (AST-YYYY-NNNN).
package identifier

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	Prefix      = "AST"
	MaxSequence = 9999
)

var (
	pattern = regexp.MustCompile(`^AST-\d{4}-\d{4}$`)

	ErrInvalid           = errors.New("asset identifier must match AST-YYYY-NNNN")
	ErrSequenceExhausted = errors.New("asset identifier sequence exhausted")
)

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Format renders year and seq as an identifier. Sequences that do not fit in
// four digits are rejected instead of being widened.
func Format(year int, seq int64) (string, error) {
	if seq < 1 {
		return "", fmt.Errorf("sequence %d: must be positive", seq)
	}
	if seq > MaxSequence {
		return "", fmt.Errorf("sequence %d: %w", seq, ErrSequenceExhausted)
	}
	if year < 1000 || year > 9999 {
		return "", fmt.Errorf("year %d: out of range", year)
	}
	return fmt.Sprintf("%s-%04d-%04d", Prefix, year, seq), nil
}

// Parse splits an identifier into year and sequence.
func Parse(s string) (year int, seq int64, err error) {
	if !Valid(s) {
		return 0, 0, fmt.Errorf("%q: %w", s, ErrInvalid)
	}
	year, _ = strconv.Atoi(s[4:8])
	seq, _ = strconv.ParseInt(s[9:], 10, 64)
	return year, seq, nil
}
