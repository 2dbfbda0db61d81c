package log

import "bizledger/internal/core"

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldStore     = "store"
	FieldOperation = "operation"
	FieldEntity    = "entity"
	FieldEntityID  = "entity_id"
	FieldRevision  = "revision"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldMonth     = "month"
	FieldBackend   = "backend"
	FieldKey       = "key"
	FieldError     = "error"
	FieldSheetsRef = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentFinance = "finance"
	ComponentTasks   = "tasks"
	ComponentReport  = "report"
	ComponentStorage = "storage"
	ComponentBackend = "backend"
	ComponentAMQP    = "amqp"
	ComponentSheets  = "sheets"
	ComponentCharts  = "charts"
	ComponentCLI     = "cli"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithChange adds the fields describing a store mutation
func (f LogFields) WithChange(c core.Change) LogFields {
	f[FieldStore] = c.Store
	f[FieldOperation] = c.Op
	f[FieldEntity] = c.Entity
	f[FieldEntityID] = c.ID
	f[FieldRevision] = c.Revision
	return f
}

// WithMonth adds the report month
func (f LogFields) WithMonth(k core.MonthKey) LogFields {
	f[FieldMonth] = k.String()
	return f
}

// WithRevision adds the store revision
func (f LogFields) WithRevision(rev uint64) LogFields {
	f[FieldRevision] = rev
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
