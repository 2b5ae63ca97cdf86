package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "Draft"
	InvoiceStatusSent          InvoiceStatus = "Sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Partially Paid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
	InvoiceStatusOverdue       InvoiceStatus = "Overdue"
	InvoiceStatusVoid          InvoiceStatus = "Void"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusVoid:
		return true
	}
	return false
}

type InvoiceType string

const (
	InvoiceTypeStandard      InvoiceType = "standard"
	InvoiceTypeDeposit       InvoiceType = "deposit"
	InvoiceTypeChangeOrder   InvoiceType = "change_order"
	InvoiceTypeExpense       InvoiceType = "expense"
	InvoiceTypeTimeMaterials InvoiceType = "time_materials"
	InvoiceTypeComprehensive InvoiceType = "comprehensive"
)

// SourceType tells where an invoice line item came from.
type SourceType string

const (
	SourceTypeEstimate            SourceType = "estimate"
	SourceTypeEstimateLineItem    SourceType = "estimate_line_item"
	SourceTypeDeposit             SourceType = "deposit"
	SourceTypeChangeOrder         SourceType = "change_order"
	SourceTypeChangeOrderLineItem SourceType = "change_order_line_item"
	SourceTypeExpense             SourceType = "expense"
	SourceTypeExpenseMarkup       SourceType = "expense_markup"
	SourceTypeJob                 SourceType = "job"
	SourceTypeTimeEntry           SourceType = "time_entry"
	SourceTypeManual              SourceType = "manual"
	SourceTypeSection             SourceType = "section"
)

type InvoiceLineItem struct {
	ID                  string          `json:"id"`
	InvoiceID           string          `json:"invoice_id"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	Unit                string          `json:"unit"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Total               decimal.Decimal `json:"total"`
	SortOrder           int             `json:"sort_order"`
	IsSectionHeader     bool            `json:"is_section_header"`
	SectionTitle        string          `json:"section_title"`
	SourceType          SourceType      `json:"source_type"`
	SourceID            string          `json:"source_id"`
	LinkedExpenseID     string          `json:"linked_expense_id"`
	LinkedTimeEntryID   string          `json:"linked_time_entry_id"`
	LinkedChangeOrderID string          `json:"linked_change_order_id"`
}

// Invoice is a bill issued against a project.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (project_id-index): project_id
//   - line items are embedded in the invoice item
type Invoice struct {
	ID            string            `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	ProjectID     string            `json:"project_id"`
	PersonID      string            `json:"person_id"`
	Status        InvoiceStatus     `json:"status"`
	InvoiceType   InvoiceType       `json:"invoice_type"`
	IssueDate     time.Time         `json:"issue_date"`
	DueDate       time.Time         `json:"due_date"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	Notes         string            `json:"notes"`
	CreatedBy     string            `json:"created_by"`
	LineItems     []InvoiceLineItem `json:"line_items"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Balance is the amount still owed. It is negative on overpayment.
func (i Invoice) Balance() decimal.Decimal {
	return i.TotalAmount.Sub(i.AmountPaid)
}

// SumLineItems adds the totals of every non-header line.
func SumLineItems(items []InvoiceLineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		if li.IsSectionHeader {
			continue
		}
		sum = sum.Add(li.Total)
	}
	return sum
}

// StatusAfterPayment derives the status once amountPaid has been applied.
// A zero amount leaves the current status untouched.
func StatusAfterPayment(current InvoiceStatus, amountPaid, total decimal.Decimal) InvoiceStatus {
	switch {
	case amountPaid.IsPositive() && amountPaid.GreaterThanOrEqual(total):
		return InvoiceStatusPaid
	case amountPaid.IsPositive():
		return InvoiceStatusPartiallyPaid
	default:
		return current
	}
}

// StatusAfterPaymentRemoved derives the status once a payment was reversed.
func StatusAfterPaymentRemoved(amountPaid, total decimal.Decimal) InvoiceStatus {
	switch {
	case amountPaid.IsPositive() && amountPaid.GreaterThanOrEqual(total):
		return InvoiceStatusPaid
	case amountPaid.IsPositive():
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusSent
	}
}
