package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies one calendar month. Month is 1-indexed (time.January == 1).
type MonthKey struct {
	Year  int
	Month time.Month
}

// ParseMonthKey parses a "YYYY-MM" month key.
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	year, month, ok := strings.Cut(s, "-")
	if !ok || len(year) != 4 || len(month) != 2 {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return MonthKey{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return MonthKey{Year: y, Month: time.Month(m)}, nil
}

// String returns the zero-padded "YYYY-MM" form. Lexicographic order of these
// strings is chronological order.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

// Contains reports whether d falls within the month.
func (k MonthKey) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	return d.Year() == k.Year && d.Month() == k.Month
}

// Before reports whether k is an earlier month than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Label renders the month the way the report header shows it, e.g. "2025년 06월".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%04d년 %02d월", k.Year, int(k.Month))
}
