package repository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultInvoicesTableName = "invoices"

type invoiceLineItemItem struct {
	ID                  string `dynamodbav:"id"`
	Description         string `dynamodbav:"description"`
	Quantity            number `dynamodbav:"quantity"`
	Unit                string `dynamodbav:"unit,omitempty"`
	UnitPrice           number `dynamodbav:"unit_price"`
	Total               number `dynamodbav:"total"`
	SortOrder           int    `dynamodbav:"sort_order"`
	IsSectionHeader     bool   `dynamodbav:"is_section_header"`
	SectionTitle        string `dynamodbav:"section_title,omitempty"`
	SourceType          string `dynamodbav:"source_type"`
	SourceID            string `dynamodbav:"source_id,omitempty"`
	LinkedExpenseID     string `dynamodbav:"linked_expense_id,omitempty"`
	LinkedTimeEntryID   string `dynamodbav:"linked_time_entry_id,omitempty"`
	LinkedChangeOrderID string `dynamodbav:"linked_change_order_id,omitempty"`
}

type invoiceItem struct {
	ID            string                `dynamodbav:"id"`
	InvoiceNumber string                `dynamodbav:"invoice_number"`
	ProjectID     string                `dynamodbav:"project_id"`
	PersonID      string                `dynamodbav:"person_id,omitempty"`
	Status        string                `dynamodbav:"status"`
	InvoiceType   string                `dynamodbav:"invoice_type"`
	IssueDate     string                `dynamodbav:"issue_date"`
	DueDate       string                `dynamodbav:"due_date,omitempty"`
	TotalAmount   number                `dynamodbav:"total_amount"`
	AmountPaid    number                `dynamodbav:"amount_paid"`
	Notes         string                `dynamodbav:"notes,omitempty"`
	CreatedBy     string                `dynamodbav:"created_by,omitempty"`
	LineItems     []invoiceLineItemItem `dynamodbav:"line_items"`
	CreatedAt     string                `dynamodbav:"created_at"`
	UpdatedAt     string                `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)
//
// Line items are embedded in the invoice item.
type InvoiceDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb DynamoDBAPI) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toInvoiceItem(inv)); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	it, ok, err := getByID[invoiceItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) ListByProject(ctx context.Context, projectID string) ([]entities.Invoice, error) {
	its, err := queryIndex[invoiceItem](ctx, r.ddb, r.tableName, projectIDIndex, "project_id", projectID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Invoice, 0, len(its))
	for _, it := range its {
		out = append(out, fromInvoiceItem(it))
	}
	return out, nil
}

func (r *InvoiceDynamoRepository) ReplaceLineItems(ctx context.Context, id string, items []entities.InvoiceLineItem, total decimal.Decimal) (entities.Invoice, error) {
	lines, err := attributevalue.Marshal(toInvoiceLineItems(items))
	if err != nil {
		return entities.Invoice{}, err
	}
	return r.update(ctx, id, itemUpdate{
		expr: "SET #line_items = :line_items, #total_amount = :total_amount, #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":line_items":   lines,
			":total_amount": avNumber(total),
			":updated_at":   avString(nowString()),
		},
		names: map[string]string{
			"#line_items":   "line_items",
			"#total_amount": "total_amount",
			"#updated_at":   "updated_at",
		},
	})
}

func (r *InvoiceDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error) {
	return r.update(ctx, id, itemUpdate{
		expr: "SET #status = :status, #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":status":     avString(string(status)),
			":updated_at": avString(nowString()),
		},
		names: map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		},
	})
}

// AddAmountPaid uses ADD so concurrent payments never overwrite each other.
func (r *InvoiceDynamoRepository) AddAmountPaid(ctx context.Context, id string, delta decimal.Decimal) (entities.Invoice, error) {
	return r.update(ctx, id, itemUpdate{
		expr: "ADD #amount_paid :delta SET #updated_at = :updated_at",
		values: map[string]types.AttributeValue{
			":delta":      avNumber(delta),
			":updated_at": avString(nowString()),
		},
		names: map[string]string{
			"#amount_paid": "amount_paid",
			"#updated_at":  "updated_at",
		},
	})
}

func (r *InvoiceDynamoRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.ddb, r.tableName, id)
}

func (r *InvoiceDynamoRepository) update(ctx context.Context, id string, upd itemUpdate) (entities.Invoice, error) {
	it, ok, err := updateByID[invoiceItem](ctx, r.ddb, r.tableName, id, upd)
	if err != nil || !ok {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func toInvoiceLineItems(items []entities.InvoiceLineItem) []invoiceLineItemItem {
	out := make([]invoiceLineItemItem, 0, len(items))
	for _, li := range items {
		out = append(out, invoiceLineItemItem{
			ID:                  li.ID,
			Description:         li.Description,
			Quantity:            num(li.Quantity),
			Unit:                li.Unit,
			UnitPrice:           num(li.UnitPrice),
			Total:               num(li.Total),
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
	return out
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ProjectID:     inv.ProjectID,
		PersonID:      inv.PersonID,
		Status:        string(inv.Status),
		InvoiceType:   string(inv.InvoiceType),
		IssueDate:     formatTime(inv.IssueDate),
		DueDate:       formatTime(inv.DueDate),
		TotalAmount:   num(inv.TotalAmount),
		AmountPaid:    num(inv.AmountPaid),
		Notes:         inv.Notes,
		CreatedBy:     inv.CreatedBy,
		LineItems:     toInvoiceLineItems(inv.LineItems),
		CreatedAt:     formatTime(inv.CreatedAt),
		UpdatedAt:     formatTime(inv.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	lines := make([]entities.InvoiceLineItem, 0, len(it.LineItems))
	for _, li := range it.LineItems {
		lines = append(lines, entities.InvoiceLineItem{
			ID:                  li.ID,
			InvoiceID:           it.ID,
			Description:         li.Description,
			Quantity:            li.Quantity.Decimal,
			Unit:                li.Unit,
			UnitPrice:           li.UnitPrice.Decimal,
			Total:               li.Total.Decimal,
			SortOrder:           li.SortOrder,
			IsSectionHeader:     li.IsSectionHeader,
			SectionTitle:        li.SectionTitle,
			SourceType:          entities.SourceType(li.SourceType),
			SourceID:            li.SourceID,
			LinkedExpenseID:     li.LinkedExpenseID,
			LinkedTimeEntryID:   li.LinkedTimeEntryID,
			LinkedChangeOrderID: li.LinkedChangeOrderID,
		})
	}
	return entities.Invoice{
		ID:            it.ID,
		InvoiceNumber: it.InvoiceNumber,
		ProjectID:     it.ProjectID,
		PersonID:      it.PersonID,
		Status:        entities.InvoiceStatus(it.Status),
		InvoiceType:   entities.InvoiceType(it.InvoiceType),
		IssueDate:     parseTime(it.IssueDate),
		DueDate:       parseTime(it.DueDate),
		TotalAmount:   it.TotalAmount.Decimal,
		AmountPaid:    it.AmountPaid.Decimal,
		Notes:         it.Notes,
		CreatedBy:     it.CreatedBy,
		LineItems:     lines,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
