// Package core provides the domain types shared by the stores and the report engine.
//
// This file contains amount parsing and formatting. Amounts are whole won;
// there is no minor unit.
package core

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// Money is an amount in whole currency units (KRW).
type Money int64

var ErrInvalidAmount = errors.New("invalid amount")

// maxAmount keeps sums of many records far away from int64 overflow.
const maxAmount = 1 << 53

// ParseAmount converts user input to a positive Money value.
//
// It accepts digits with optional thousands separators (comma, dot or space),
// an optional leading currency sign and surrounding whitespace.
// Empty, zero, negative and fractional inputs are rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("150000")   -> 150000, nil
//	ParseAmount("150,000")  -> 150000, nil
//	ParseAmount("₩450,000") -> 450000, nil
//	ParseAmount("-1")       -> 0, ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₩")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ',' || r == ' ':
			// thousands separator
		case r == '.':
			// "1.000" style grouping is allowed, a decimal part is not
			rest := s[i+1:]
			if len(rest) < 3 || !allDigits(rest[:3]) {
				return 0, ErrInvalidAmount
			}
			if len(rest) > 3 && !strings.ContainsRune("., ", rune(rest[3])) {
				return 0, ErrInvalidAmount
			}
		default:
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil || v > maxAmount {
		return 0, ErrInvalidAmount
	}
	m := Money(v)
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return m, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Validate implements the only numeric rule the forms enforce: a positive value.
func (m Money) Validate() error {
	if m <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// String formats the amount as KRW, e.g. "₩970,000" or "-₩5,000".
func (m Money) String() string {
	if m < 0 {
		return "-₩" + humanize.Comma(-int64(m))
	}
	return "₩" + humanize.Comma(int64(m))
}
