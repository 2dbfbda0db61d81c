package core

// Patches carry merge-patch updates: a nil field is left untouched, a non-nil
// field overwrites the stored value.
type (
	VendorPatch struct {
		Name        *string
		Category    *string
		ContactInfo *string
	}

	ExpensePatch struct {
		Date        *Date
		Amount      *Money
		Category    *string
		VendorID    *string
		VendorName  *string
		Description *string
	}

	RevenuePatch struct {
		Date        *Date
		Amount      *Money
		Category    *string
		Description *string
	}

	TaskPatch struct {
		Title       *string
		Description *string
		Priority    *Priority
		Status      *Status
		DueDate     *Date
		Category    *string
	}
)

// Ptr returns a pointer to v. It keeps patch literals short.
func Ptr[T any](v T) *T {
	return &v
}

func (p VendorPatch) Apply(v Vendor) Vendor {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Category != nil {
		v.Category = *p.Category
	}
	if p.ContactInfo != nil {
		v.ContactInfo = *p.ContactInfo
	}
	return v
}

func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.VendorID != nil {
		e.VendorID = *p.VendorID
	}
	if p.VendorName != nil {
		e.VendorName = *p.VendorName
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	return e
}

func (p RevenuePatch) Apply(r Revenue) Revenue {
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	return r
}

func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	return t
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p == TaskPatch{}
}
