package repository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultExpensesTableName = "expenses"

type expenseItem struct {
	ID                string `dynamodbav:"id"`
	ProjectID         string `dynamodbav:"project_id"`
	Description       string `dynamodbav:"description"`
	Category          string `dynamodbav:"category,omitempty"`
	ExpenseDate       string `dynamodbav:"expense_date"`
	Amount            number `dynamodbav:"amount"`
	Billable          bool   `dynamodbav:"billable"`
	Billed            bool   `dynamodbav:"billed"`
	InvoiceID         string `dynamodbav:"invoice_id,omitempty"`
	InvoiceLineItemID string `dynamodbav:"invoice_line_item_id,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
}

// ExpenseDynamoRepository persists Expense entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)
//   - GSI: invoice_id-index (PK: invoice_id, sparse)
type ExpenseDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IExpenseRepository = (*ExpenseDynamoRepository)(nil)

func NewExpenseDynamoRepository(ddb DynamoDBAPI) *ExpenseDynamoRepository {
	return &ExpenseDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("EXPENSES_TABLE", defaultExpensesTableName),
	}
}

func (r *ExpenseDynamoRepository) Create(ctx context.Context, e entities.Expense) (entities.Expense, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toExpenseItem(e)); err != nil {
		return entities.Expense{}, err
	}
	return e, nil
}

func (r *ExpenseDynamoRepository) GetByID(ctx context.Context, id string) (entities.Expense, error) {
	it, ok, err := getByID[expenseItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Expense{}, err
	}
	return fromExpenseItem(it), nil
}

func (r *ExpenseDynamoRepository) ListByProject(ctx context.Context, projectID string) ([]entities.Expense, error) {
	return r.list(ctx, projectIDIndex, "project_id", projectID)
}

func (r *ExpenseDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Expense, error) {
	return r.list(ctx, invoiceIDIndex, "invoice_id", invoiceID)
}

func (r *ExpenseDynamoRepository) list(ctx context.Context, index, attr, value string) ([]entities.Expense, error) {
	its, err := queryIndex[expenseItem](ctx, r.ddb, r.tableName, index, attr, value)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Expense, 0, len(its))
	for _, it := range its {
		out = append(out, fromExpenseItem(it))
	}
	return out, nil
}

func (r *ExpenseDynamoRepository) MarkBilled(ctx context.Context, id string, invoiceID string, invoiceLineItemID string) (entities.Expense, error) {
	return r.update(ctx, id, markBilledUpdate(invoiceID, invoiceLineItemID))
}

func (r *ExpenseDynamoRepository) MarkUnbilled(ctx context.Context, id string) (entities.Expense, error) {
	return r.update(ctx, id, markUnbilledUpdate())
}

func (r *ExpenseDynamoRepository) update(ctx context.Context, id string, upd itemUpdate) (entities.Expense, error) {
	it, ok, err := updateByID[expenseItem](ctx, r.ddb, r.tableName, id, upd)
	if err != nil || !ok {
		return entities.Expense{}, err
	}
	return fromExpenseItem(it), nil
}

// markBilledUpdate sets the billed flag and both invoice links of a billable
// source row.
func markBilledUpdate(invoiceID, invoiceLineItemID string) itemUpdate {
	return itemUpdate{
		expr: "SET #billed = :billed, #invoice_id = :invoice_id, #ili = :ili",
		values: map[string]types.AttributeValue{
			":billed":     avBool(true),
			":invoice_id": avString(invoiceID),
			":ili":        avString(invoiceLineItemID),
		},
		names: map[string]string{
			"#billed":     "billed",
			"#invoice_id": "invoice_id",
			"#ili":        "invoice_line_item_id",
		},
	}
}

// markUnbilledUpdate removes the invoice links so the row leaves the sparse
// invoice_id index.
func markUnbilledUpdate() itemUpdate {
	return itemUpdate{
		expr: "SET #billed = :billed REMOVE #invoice_id, #ili",
		values: map[string]types.AttributeValue{
			":billed": avBool(false),
		},
		names: map[string]string{
			"#billed":     "billed",
			"#invoice_id": "invoice_id",
			"#ili":        "invoice_line_item_id",
		},
	}
}

func toExpenseItem(e entities.Expense) expenseItem {
	return expenseItem{
		ID:                e.ID,
		ProjectID:         e.ProjectID,
		Description:       e.Description,
		Category:          e.Category,
		ExpenseDate:       formatTime(e.ExpenseDate),
		Amount:            num(e.Amount),
		Billable:          e.Billable,
		Billed:            e.Billed,
		InvoiceID:         e.InvoiceID,
		InvoiceLineItemID: e.InvoiceLineItemID,
		CreatedAt:         formatTime(e.CreatedAt),
	}
}

func fromExpenseItem(it expenseItem) entities.Expense {
	return entities.Expense{
		ID:                it.ID,
		ProjectID:         it.ProjectID,
		Description:       it.Description,
		Category:          it.Category,
		ExpenseDate:       parseTime(it.ExpenseDate),
		Amount:            it.Amount.Decimal,
		Billable:          it.Billable,
		Billed:            it.Billed,
		InvoiceID:         it.InvoiceID,
		InvoiceLineItemID: it.InvoiceLineItemID,
		CreatedAt:         parseTime(it.CreatedAt),
	}
}
