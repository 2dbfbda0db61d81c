package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out Money
		ok  bool
	}{
		{"1", 1, true},
		{"150000", 150000, true},
		{"150,000", 150000, true},
		{"1.000.000", 1000000, true},
		{"₩450,000", 450000, true},
		{" 2500 ", 2500, true},
		{"12.5", 0, false},
		{"1.2345", 0, false},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := Money(1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Money(0).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[Money]string{
		0:       "₩0",
		970000:  "₩970,000",
		-150000: "-₩150,000",
	}
	for in, want := range cases {
		if got := in.String(); got != want {
			t.Fatalf("%d: expected %q, got %q", in, want, got)
		}
	}
}
