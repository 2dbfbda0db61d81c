package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-06-20", "2025-06-20", true},
		{"2025-06-20T00:00:00.000Z", "2025-06-20", true},
		{" 2025-06-20 ", "2025-06-20", true},
		{"2025-13-01", "", false},
		{"20/06/2025", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.want {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestDateJSONIsISO8601(t *testing.T) {
	e := Expense{ID: "e1", Date: NewDate(2025, 6, 20), Amount: 150000, Category: VendorCategory}
	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"date":"2025-06-20T00:00:00Z"`) {
		t.Fatalf("unexpected date encoding: %s", raw)
	}
	if strings.Contains(string(raw), "vendorId") {
		t.Fatalf("absent vendor id must be omitted: %s", raw)
	}

	// snapshots written by a browser carry milliseconds
	var back Expense
	if err := json.Unmarshal([]byte(`{"id":"e1","date":"2025-06-19T15:00:00.000Z","amount":1}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Date.Day() != 19 || back.Date.Key().String() != "2025-06" {
		t.Fatalf("unexpected date: %v", back.Date)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2025, 1, 1),
		Description: "ok",
		Amount:      100,
		Category:    "공과금",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Date: Date{Time: time.Time{}}, Amount: 1, Category: "c"}, // zero date
		{Date: NewDate(2025, 1, 1), Amount: 0, Category: "c"},
		{Date: NewDate(2025, 1, 1), Amount: -5, Category: "c"},
		{Date: NewDate(2025, 1, 1), Amount: 1, Category: "  "},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	good := Task{Title: "주간 회의 준비", Priority: PriorityMedium, Status: StatusPending}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		task Task
		want error
	}{
		{Task{Title: " ", Priority: PriorityLow, Status: StatusPending}, ErrEmptyTitle},
		{Task{Title: "a", Priority: "urgent", Status: StatusPending}, ErrInvalidPriority},
		{Task{Title: "a", Priority: PriorityLow, Status: "done"}, ErrInvalidStatus},
	}
	for i, tc := range cases {
		if err := tc.task.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestPatchApplyOnlyTouchesSuppliedFields(t *testing.T) {
	orig := Expense{
		ID:          "e1",
		Date:        NewDate(2025, 6, 20),
		Amount:      150000,
		Category:    VendorCategory,
		VendorID:    "v1",
		VendorName:  "국내 공급업체",
		Description: "원자재 구매",
	}
	got := ExpensePatch{Description: Ptr("원자재 추가 구매")}.Apply(orig)

	want := orig
	want.Description = "원자재 추가 구매"
	if got != want {
		t.Fatalf("unexpected result:\n got %+v\nwant %+v", got, want)
	}

	if (ExpensePatch{}).Apply(orig) != orig {
		t.Fatalf("empty patch must be a no-op")
	}
}
