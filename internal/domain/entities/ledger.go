package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionInvoiceCreated        TransactionType = "Invoice Created"
	TransactionInvoiceUpdated        TransactionType = "Invoice Updated"
	TransactionInvoiceVoided         TransactionType = "Invoice Voided"
	TransactionInvoiceDeleted        TransactionType = "Invoice Deleted"
	TransactionPaymentReceived       TransactionType = "Payment Received"
	TransactionPaymentDeleted        TransactionType = "Payment Deleted"
	TransactionChangeOrderApproved   TransactionType = "Change Order Approved"
	TransactionChangeOrderUnapproved TransactionType = "Change Order Unapproved"
	TransactionCostRecorded          TransactionType = "Cost Recorded"
	TransactionBudgetAdjusted        TransactionType = "Budget Adjusted"
)

// LedgerEntry is one immutable row of the project financial log.
//
// AmountImpact is the delta applied to Field; NewActualCost and
// NewBudgetAmount snapshot the project right after the delta.
type LedgerEntry struct {
	ID              string          `json:"id"`
	ProjectID       string          `json:"project_id"`
	TransactionType TransactionType `json:"transaction_type"`
	TransactionID   string          `json:"transaction_id"`
	Field           ProjectField    `json:"field"`
	AmountImpact    decimal.Decimal `json:"amount_impact"`
	Description     string          `json:"description"`
	Actor           string          `json:"actor"`
	NewActualCost   decimal.Decimal `json:"new_actual_cost"`
	NewBudgetAmount decimal.Decimal `json:"new_budget_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}
