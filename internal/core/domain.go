package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VendorCategory is the reserved expense category that links an expense to a vendor.
const VendorCategory = "거래처"

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

type (
	Priority string
	Status   string

	// Date is a calendar date. It serializes as an ISO-8601 timestamp.
	Date struct {
		time.Time
	}

	Vendor struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		ContactInfo string `json:"contactInfo,omitempty"`
	}

	Expense struct {
		ID          string `json:"id"`
		Date        Date   `json:"date"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		VendorID    string `json:"vendorId,omitempty"`
		VendorName  string `json:"vendorName,omitempty"` // cached copy of the vendor's name
		Description string `json:"description"`
	}

	Revenue struct {
		ID          string `json:"id"`
		Date        Date   `json:"date"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}

	Task struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Priority    Priority `json:"priority"`
		Status      Status   `json:"status"`
		DueDate     Date     `json:"dueDate"`
		Category    string   `json:"category"`
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
)

// NewID returns a random UUID string. It is the default ID generator of both stores.
func NewID() string {
	return uuid.NewString()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts either a bare YYYY-MM-DD date or a full RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339Nano))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Key returns the month the date falls in.
func (d Date) Key() MonthKey {
	return MonthKey{Year: d.Year(), Month: d.Month()}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("2006-01-02")
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// HasVendor reports whether the expense is linked to a vendor.
func (e Expense) HasVendor() bool {
	return e.VendorID != ""
}

// Validate checks the input a form would accept before adding an expense.
func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (r Revenue) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (v Vendor) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
