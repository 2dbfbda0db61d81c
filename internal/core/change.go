package core

// Store names double as the persisted snapshot keys.
const (
	FinanceStore = "finance-storage"
	TaskStore    = "task-storage"
)

const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

const (
	EntityVendor          = "vendor"
	EntityExpense         = "expense"
	EntityRevenue         = "revenue"
	EntityExpenseCategory = "expense_category"
	EntityRevenueCategory = "revenue_category"
	EntityTask            = "task"
)

// Change describes one applied store mutation. Subscribers receive it after
// the in-memory state was replaced.
type Change struct {
	Store    string
	Op       string
	Entity   string
	ID       string // entity id, or the category name for category changes
	Revision uint64
}
