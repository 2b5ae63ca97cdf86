package response

import (
	"time"

	"project_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type InvoiceLineItemResponse struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	Unit                string          `json:"unit"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Total               decimal.Decimal `json:"total"`
	SortOrder           int             `json:"sort_order"`
	IsSectionHeader     bool            `json:"is_section_header"`
	SectionTitle        string          `json:"section_title,omitempty"`
	SourceType          string          `json:"source_type,omitempty"`
	SourceID            string          `json:"source_id,omitempty"`
	LinkedExpenseID     string          `json:"linked_expense_id,omitempty"`
	LinkedTimeEntryID   string          `json:"linked_time_entry_id,omitempty"`
	LinkedChangeOrderID string          `json:"linked_change_order_id,omitempty"`
}

type InvoiceResponse struct {
	ID            string                    `json:"id"`
	InvoiceNumber string                    `json:"invoice_number"`
	ProjectID     string                    `json:"project_id"`
	PersonID      string                    `json:"person_id,omitempty"`
	Status        string                    `json:"status"`
	InvoiceType   string                    `json:"invoice_type"`
	IssueDate     time.Time                 `json:"issue_date"`
	DueDate       time.Time                 `json:"due_date"`
	TotalAmount   decimal.Decimal           `json:"total_amount"`
	AmountPaid    decimal.Decimal           `json:"amount_paid"`
	Balance       decimal.Decimal           `json:"balance"`
	Notes         string                    `json:"notes,omitempty"`
	CreatedBy     string                    `json:"created_by,omitempty"`
	LineItems     []InvoiceLineItemResponse `json:"line_items"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	items := make([]InvoiceLineItemResponse, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, InvoiceLineItemResponse{
			ID:                  li.ID,
			Description:         li.Description,
			Quantity:            li.Quantity,
			Unit:                li.Unit,
			UnitPrice:           li.UnitPrice,
			Total:               li.Total,
			SortOrder:           li.SortOrder,
			IsSectionHeader:     li.IsSectionHeader,
			SectionTitle:        li.SectionTitle,
			SourceType:          string(li.SourceType),
			SourceID:            li.SourceID,
			LinkedExpenseID:     li.LinkedExpenseID,
			LinkedTimeEntryID:   li.LinkedTimeEntryID,
			LinkedChangeOrderID: li.LinkedChangeOrderID,
		})
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ProjectID:     inv.ProjectID,
		PersonID:      inv.PersonID,
		Status:        string(inv.Status),
		InvoiceType:   string(inv.InvoiceType),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		TotalAmount:   inv.TotalAmount,
		AmountPaid:    inv.AmountPaid,
		Balance:       inv.Balance(),
		Notes:         inv.Notes,
		CreatedBy:     inv.CreatedBy,
		LineItems:     items,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func FromInvoices(invoices []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, FromInvoice(inv))
	}
	return out
}

// GeneratedInvoiceResponse is returned by every generation route.
type GeneratedInvoiceResponse struct {
	InvoiceID string `json:"invoice_id"`
}
