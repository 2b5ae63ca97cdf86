package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ChangeOrderStatus string

const (
	ChangeOrderStatusRequested ChangeOrderStatus = "Requested"
	ChangeOrderStatusPending   ChangeOrderStatus = "Pending"
	ChangeOrderStatusApproved  ChangeOrderStatus = "Approved"
	ChangeOrderStatusRejected  ChangeOrderStatus = "Rejected"
	ChangeOrderStatusCompleted ChangeOrderStatus = "Completed"
)

func (s ChangeOrderStatus) Valid() bool {
	switch s {
	case ChangeOrderStatusRequested, ChangeOrderStatusPending, ChangeOrderStatusApproved, ChangeOrderStatusRejected, ChangeOrderStatusCompleted:
		return true
	}
	return false
}

type ChangeOrderLineItem struct {
	ID                string          `json:"id"`
	Description       string          `json:"description"`
	Quantity          decimal.Decimal `json:"quantity"`
	Unit              string          `json:"unit"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Total             decimal.Decimal `json:"total"`
	SortOrder         int             `json:"sort_order"`
	Billed            bool            `json:"billed"`
	InvoiceLineItemID string          `json:"invoice_line_item_id"`
}

// ChangeOrder is an approved modification to project scope after the estimate baseline.
//
// Billed is tracked at two levels: the header carries the consuming invoice,
// each line item carries the consuming invoice line item.
type ChangeOrder struct {
	ID          string                `json:"id"`
	CONumber    string                `json:"co_number"`
	ProjectID   string                `json:"project_id"`
	Description string                `json:"description"`
	Status      ChangeOrderStatus     `json:"status"`
	CostImpact  decimal.Decimal       `json:"cost_impact"`
	Billed      bool                  `json:"billed"`
	InvoiceID   string                `json:"invoice_id"`
	LineItems   []ChangeOrderLineItem `json:"line_items"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// Billable reports whether the change order may be put on a new invoice.
func (c ChangeOrder) Billable() bool {
	return c.Status == ChangeOrderStatusApproved && !c.Billed
}
