package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID                string          `json:"id"`
	ProjectID         string          `json:"project_id"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	ExpenseDate       time.Time       `json:"expense_date"`
	Amount            decimal.Decimal `json:"amount"`
	Billable          bool            `json:"billable"`
	Billed            bool            `json:"billed"`
	InvoiceID         string          `json:"invoice_id"`
	InvoiceLineItemID string          `json:"invoice_line_item_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Eligible reports whether the expense can be consumed by a new invoice.
func (e Expense) Eligible() bool {
	return e.Billable && !e.Billed
}
