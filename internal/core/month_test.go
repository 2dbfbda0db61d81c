package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseMonthKey(t *testing.T) {
	k, err := ParseMonthKey("2025-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Year != 2025 || k.Month != time.June {
		t.Fatalf("unexpected key: %+v", k)
	}
	if k.String() != "2025-06" {
		t.Fatalf("round trip mismatch: %s", k)
	}

	for _, bad := range []string{"", "2025", "2025-6", "2025-00", "2025-13", "25-06", "abcd-06"} {
		if _, err := ParseMonthKey(bad); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("%q expected ErrInvalidMonth, got %v", bad, err)
		}
	}
}

func TestMonthKeyContains(t *testing.T) {
	june := MonthKey{Year: 2025, Month: time.June}
	if !june.Contains(NewDate(2025, 6, 1)) || !june.Contains(NewDate(2025, 6, 30)) {
		t.Fatalf("june must contain its first and last day")
	}
	if june.Contains(NewDate(2025, 7, 1)) || june.Contains(NewDate(2024, 6, 15)) {
		t.Fatalf("june must not contain other months")
	}
	if june.Contains(Date{}) {
		t.Fatalf("zero date belongs to no month")
	}
}

func TestMonthKeyOrdering(t *testing.T) {
	a := MonthKey{Year: 2024, Month: time.December}
	b := MonthKey{Year: 2025, Month: time.January}
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("expected %s before %s", a, b)
	}
	if a.String() >= b.String() {
		t.Fatalf("string order must follow chronology")
	}
}
