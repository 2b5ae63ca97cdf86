package request

import (
	"errors"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMode = errors.New("invalid estimate invoice mode")
)

// InvoiceOptionsRequest carries the fields every generation route accepts.
type InvoiceOptionsRequest struct {
	DueDate string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Notes   string `json:"notes" binding:"max=4000"`
}

func (r InvoiceOptionsRequest) toOptions(actor string) (usecase.InvoiceOptions, error) {
	due, err := ParseDate(r.DueDate)
	if err != nil {
		return usecase.InvoiceOptions{}, err
	}
	return usecase.InvoiceOptions{DueDate: due, Notes: r.Notes, Actor: actor}, nil
}

// ParseDate accepts an empty string as the zero time.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// EstimateInvoiceRequest selects how the linked estimate is billed:
//   - deposit: one line for deposit_percentage or deposit_amount
//   - all: every estimate line item
//   - selected: only item_ids
type EstimateInvoiceRequest struct {
	Mode              string          `json:"mode" binding:"required,oneof=deposit all selected"`
	DepositPercentage decimal.Decimal `json:"deposit_percentage"`
	DepositAmount     decimal.Decimal `json:"deposit_amount"`
	ItemIDs           []string        `json:"item_ids"`
	InvoiceOptionsRequest
}

func (r EstimateInvoiceRequest) ToUseCase(projectID, actor string) (usecase.EstimateInvoiceRequest, error) {
	opts, err := r.toOptions(actor)
	if err != nil {
		return usecase.EstimateInvoiceRequest{}, err
	}
	out := usecase.EstimateInvoiceRequest{ProjectID: projectID, InvoiceOptions: opts}
	switch r.Mode {
	case "deposit":
		out.Mode = usecase.EstimateDepositMode{Percentage: r.DepositPercentage, Amount: r.DepositAmount}
	case "all":
		out.Mode = usecase.EstimateAllItemsMode{}
	case "selected":
		out.Mode = usecase.EstimateSelectedItemsMode{ItemIDs: r.ItemIDs}
	default:
		return usecase.EstimateInvoiceRequest{}, ErrInvalidMode
	}
	return out, nil
}

type ChangeOrderInvoiceRequest struct {
	ChangeOrderIDs []string `json:"change_order_ids" binding:"required,min=1,dive,required"`
	InvoiceOptionsRequest
}

func (r ChangeOrderInvoiceRequest) ToUseCase(projectID, actor string) (usecase.ChangeOrderInvoiceRequest, error) {
	opts, err := r.toOptions(actor)
	if err != nil {
		return usecase.ChangeOrderInvoiceRequest{}, err
	}
	return usecase.ChangeOrderInvoiceRequest{ProjectID: projectID, ChangeOrderIDs: r.ChangeOrderIDs, InvoiceOptions: opts}, nil
}

type ExpenseInvoiceRequest struct {
	ExpenseIDs       []string        `json:"expense_ids" binding:"required,min=1,dive,required"`
	MarkupPercentage decimal.Decimal `json:"markup_percentage"`
	InvoiceOptionsRequest
}

func (r ExpenseInvoiceRequest) ToUseCase(projectID, actor string) (usecase.ExpenseInvoiceRequest, error) {
	opts, err := r.toOptions(actor)
	if err != nil {
		return usecase.ExpenseInvoiceRequest{}, err
	}
	return usecase.ExpenseInvoiceRequest{
		ProjectID:        projectID,
		ExpenseIDs:       r.ExpenseIDs,
		MarkupPercentage: r.MarkupPercentage,
		InvoiceOptions:   opts,
	}, nil
}

type TimeEntryInvoiceRequest struct {
	TimeEntryIDs []string `json:"time_entry_ids" binding:"required,min=1,dive,required"`
	Detailed     bool     `json:"detailed"`
	InvoiceOptionsRequest
}

func (r TimeEntryInvoiceRequest) ToUseCase(projectID, actor string) (usecase.TimeEntryInvoiceRequest, error) {
	opts, err := r.toOptions(actor)
	if err != nil {
		return usecase.TimeEntryInvoiceRequest{}, err
	}
	return usecase.TimeEntryInvoiceRequest{
		ProjectID:      projectID,
		TimeEntryIDs:   r.TimeEntryIDs,
		Detailed:       r.Detailed,
		InvoiceOptions: opts,
	}, nil
}

type ComprehensiveInvoiceRequest struct {
	IncludeEstimate bool     `json:"include_estimate"`
	ChangeOrderIDs  []string `json:"change_order_ids" binding:"dive,required"`
	ExpenseIDs      []string `json:"expense_ids" binding:"dive,required"`
	TimeEntryIDs    []string `json:"time_entry_ids" binding:"dive,required"`
	InvoiceOptionsRequest
}

func (r ComprehensiveInvoiceRequest) ToUseCase(projectID, actor string) (usecase.ComprehensiveInvoiceRequest, error) {
	opts, err := r.toOptions(actor)
	if err != nil {
		return usecase.ComprehensiveInvoiceRequest{}, err
	}
	return usecase.ComprehensiveInvoiceRequest{
		ProjectID:       projectID,
		IncludeEstimate: r.IncludeEstimate,
		ChangeOrderIDs:  r.ChangeOrderIDs,
		ExpenseIDs:      r.ExpenseIDs,
		TimeEntryIDs:    r.TimeEntryIDs,
		InvoiceOptions:  opts,
	}, nil
}

type LineItemRequest struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description" binding:"required,max=500"`
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

// ReplaceLineItemsRequest replaces every line of an invoice. An empty list
// clears the invoice.
type ReplaceLineItemsRequest struct {
	Items []LineItemRequest `json:"items" binding:"dive"`
}

func (r ReplaceLineItemsRequest) ToUseCase(actor string) usecase.ReplaceLineItemsRequest {
	items := make([]usecase.LineItemInput, 0, len(r.Items))
	for _, li := range r.Items {
		items = append(items, usecase.LineItemInput{
			ID:                  li.ID,
			Description:         li.Description,
			Quantity:            li.Quantity,
			Unit:                li.Unit,
			UnitPrice:           li.UnitPrice,
			Total:               li.Total,
			IsSectionHeader:     li.IsSectionHeader,
			SectionTitle:        li.SectionTitle,
			SourceType:          li.SourceType,
			SourceID:            li.SourceID,
			LinkedExpenseID:     li.LinkedExpenseID,
			LinkedTimeEntryID:   li.LinkedTimeEntryID,
			LinkedChangeOrderID: li.LinkedChangeOrderID,
		})
	}
	return usecase.ReplaceLineItemsRequest{Items: items, Actor: actor}
}

// StatusRequest is shared by every status route.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r StatusRequest) InvoiceStatus() entities.InvoiceStatus {
	return entities.InvoiceStatus(strings.TrimSpace(r.Status))
}

func (r StatusRequest) EstimateStatus() entities.EstimateStatus {
	return entities.EstimateStatus(strings.TrimSpace(r.Status))
}

func (r StatusRequest) ChangeOrderStatus() entities.ChangeOrderStatus {
	return entities.ChangeOrderStatus(strings.TrimSpace(r.Status))
}
