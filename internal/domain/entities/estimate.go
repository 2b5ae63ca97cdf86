package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateStatus represents the lifecycle of an estimate.
//
//	Draft -> Sent -> {Accepted | Rejected | Expired}
//
// Only a transition into Accepted from another status runs the acceptance
// cascade (blueprint snapshot and deposit invoice).
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "Draft"
	EstimateStatusSent     EstimateStatus = "Sent"
	EstimateStatusAccepted EstimateStatus = "Accepted"
	EstimateStatusRejected EstimateStatus = "Rejected"
	EstimateStatusExpired  EstimateStatus = "Expired"
)

func (s EstimateStatus) Valid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusAccepted, EstimateStatusRejected, EstimateStatusExpired:
		return true
	}
	return false
}

// IsAcceptance reports whether moving from prev to next enters Accepted.
func IsAcceptance(prev, next EstimateStatus) bool {
	return next == EstimateStatusAccepted && prev != EstimateStatusAccepted
}

type DiscountType string

const (
	DiscountTypeNone       DiscountType = ""
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type EstimateLineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Markup      decimal.Decimal `json:"markup"`
	Total       decimal.Decimal `json:"total"`
	SortOrder   int             `json:"sort_order"`
}

// Estimate is a priced proposal for a project.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (project_id-index): project_id
//   - line items are embedded in the estimate item
type Estimate struct {
	ID                        string             `json:"id"`
	EstimateNumber            string             `json:"estimate_number"`
	ProjectID                 string             `json:"project_id"`
	PersonID                  string             `json:"person_id"`
	Status                    EstimateStatus     `json:"status"`
	SubtotalAmount            decimal.Decimal    `json:"subtotal_amount"`
	DiscountType              DiscountType       `json:"discount_type"`
	DiscountValue             decimal.Decimal    `json:"discount_value"`
	TotalAmount               decimal.Decimal    `json:"total_amount"`
	DepositRequired           bool               `json:"deposit_required"`
	DepositAmount             decimal.Decimal    `json:"deposit_amount"`
	DepositPercentage         decimal.Decimal    `json:"deposit_percentage"`
	IsConvertedToBOV          bool               `json:"is_converted_to_bov"`
	IsInitialInvoiceGenerated bool               `json:"is_initial_invoice_generated"`
	BlueprintOfValuesID       string             `json:"blueprint_of_values_id"`
	InitialInvoiceID          string             `json:"initial_invoice_id"`
	UpdatedBy                 string             `json:"updated_by"`
	LineItems                 []EstimateLineItem `json:"line_items"`
	CreatedAt                 time.Time          `json:"created_at"`
	UpdatedAt                 time.Time          `json:"updated_at"`
}

// LineItemsTotal sums the line item totals, before any estimate-level discount.
func (e Estimate) LineItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range e.LineItems {
		sum = sum.Add(li.Total)
	}
	return sum
}

// DepositConfigured reports whether a deposit invoice should be issued on acceptance.
func (e Estimate) DepositConfigured() bool {
	return e.DepositRequired && (e.DepositAmount.IsPositive() || e.DepositPercentage.IsPositive())
}

// DepositValue is the fixed deposit amount when set, otherwise the
// percentage of the estimate total.
func (e Estimate) DepositValue() decimal.Decimal {
	if e.DepositAmount.IsPositive() {
		return Money(e.DepositAmount)
	}
	return Percentage(e.TotalAmount, e.DepositPercentage)
}
