package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceOptions are the fields shared by every generation request.
type InvoiceOptions struct {
	DueDate time.Time `json:"due_date"`
	Notes   string    `json:"notes" validate:"max=4000"`
	Actor   string    `json:"actor"`
}

// EstimateInvoiceMode is one of EstimateDepositMode, EstimateAllItemsMode
// or EstimateSelectedItemsMode.
type EstimateInvoiceMode interface {
	validate() error
}

// EstimateDepositMode bills a single deposit line. Exactly one of
// Percentage or Amount must be set.
type EstimateDepositMode struct {
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

func (m EstimateDepositMode) validate() error {
	hasPct := !m.Percentage.IsZero()
	hasAmt := !m.Amount.IsZero()
	switch {
	case hasPct == hasAmt:
		return fmt.Errorf("%w: deposit needs exactly one of percentage or amount", ErrValidation)
	case hasPct && (m.Percentage.IsNegative() || m.Percentage.GreaterThan(hundredPercent)):
		return fmt.Errorf("%w: deposit percentage must be within (0, 100]", ErrValidation)
	case hasAmt && m.Amount.IsNegative():
		return ErrInvalidAmount
	}
	return nil
}

// EstimateAllItemsMode copies every estimate line item.
type EstimateAllItemsMode struct{}

func (EstimateAllItemsMode) validate() error { return nil }

// EstimateSelectedItemsMode copies only the listed estimate line items.
type EstimateSelectedItemsMode struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,required"`
}

func (m EstimateSelectedItemsMode) validate() error {
	return validateRequest(m)
}

var hundredPercent = decimal.NewFromInt(100)

type EstimateInvoiceRequest struct {
	ProjectID string              `json:"project_id" validate:"required"`
	Mode      EstimateInvoiceMode `json:"-"`
	InvoiceOptions
}

type ChangeOrderInvoiceRequest struct {
	ProjectID      string   `json:"project_id" validate:"required"`
	ChangeOrderIDs []string `json:"change_order_ids" validate:"required,min=1,dive,required"`
	InvoiceOptions
}

type ExpenseInvoiceRequest struct {
	ProjectID        string          `json:"project_id" validate:"required"`
	ExpenseIDs       []string        `json:"expense_ids" validate:"required,min=1,dive,required"`
	MarkupPercentage decimal.Decimal `json:"markup_percentage" validate:"gte=0,lte=1000"`
	InvoiceOptions
}

// TimeEntryInvoiceRequest bills time entries per job. With Detailed set the
// job summary becomes a section header followed by one line per entry.
type TimeEntryInvoiceRequest struct {
	ProjectID    string   `json:"project_id" validate:"required"`
	TimeEntryIDs []string `json:"time_entry_ids" validate:"required,min=1,dive,required"`
	Detailed     bool     `json:"detailed"`
	InvoiceOptions
}

type ComprehensiveInvoiceRequest struct {
	ProjectID       string   `json:"project_id" validate:"required"`
	IncludeEstimate bool     `json:"include_estimate"`
	ChangeOrderIDs  []string `json:"change_order_ids" validate:"dive,required"`
	ExpenseIDs      []string `json:"expense_ids" validate:"dive,required"`
	TimeEntryIDs    []string `json:"time_entry_ids" validate:"dive,required"`
	InvoiceOptions
}

// LineItemInput is one line of an invoice edited in place. Lines keep their
// id when ID is set. Total defaults to quantity × unit price.
type LineItemInput struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description" validate:"required,max=500"`
	Quantity            decimal.Decimal `json:"quantity"`
	Unit                string          `json:"unit"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Total               decimal.Decimal `json:"total"`
	IsSectionHeader     bool            `json:"is_section_header"`
	SectionTitle        string          `json:"section_title"`
	SourceType          string          `json:"source_type"`
	SourceID            string          `json:"source_id"`
	LinkedExpenseID     string          `json:"linked_expense_id"`
	LinkedTimeEntryID   string          `json:"linked_time_entry_id"`
	LinkedChangeOrderID string          `json:"linked_change_order_id"`
}

type ReplaceLineItemsRequest struct {
	Items []LineItemInput `json:"items" validate:"dive"`
	Actor string          `json:"actor"`
}
