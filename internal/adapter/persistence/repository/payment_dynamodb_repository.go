package repository

import (
	"context"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"
)

const defaultPaymentsTableName = "payments"

type paymentItem struct {
	ID          string `dynamodbav:"id"`
	InvoiceID   string `dynamodbav:"invoice_id"`
	ProjectID   string `dynamodbav:"project_id"`
	Amount      number `dynamodbav:"amount"`
	PaymentDate string `dynamodbav:"payment_date"`
	Method      string `dynamodbav:"method"`
	Reference   string `dynamodbav:"reference,omitempty"`
	Notes       string `dynamodbav:"notes,omitempty"`
	Actor       string `dynamodbav:"actor,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: invoice_id-index (PK: invoice_id)
//   - GSI: project_id-index (PK: project_id)
type PaymentDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoDBAPI) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toPaymentItem(p)); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	it, ok, err := getByID[paymentItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	return r.list(ctx, invoiceIDIndex, "invoice_id", invoiceID)
}

func (r *PaymentDynamoRepository) ListByProject(ctx context.Context, projectID string) ([]entities.Payment, error) {
	return r.list(ctx, projectIDIndex, "project_id", projectID)
}

func (r *PaymentDynamoRepository) list(ctx context.Context, index, attr, value string) ([]entities.Payment, error) {
	its, err := queryIndex[paymentItem](ctx, r.ddb, r.tableName, index, attr, value)
	if err != nil {
		return nil, err
	}
	items := make([]entities.Payment, 0, len(its))
	for _, it := range its {
		items = append(items, fromPaymentItem(it))
	}
	return items, nil
}

func (r *PaymentDynamoRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.ddb, r.tableName, id)
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		ProjectID:   p.ProjectID,
		Amount:      num(p.Amount),
		PaymentDate: formatTime(p.PaymentDate),
		Method:      string(p.Method),
		Reference:   p.Reference,
		Notes:       p.Notes,
		Actor:       p.Actor,
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:          it.ID,
		InvoiceID:   it.InvoiceID,
		ProjectID:   it.ProjectID,
		Amount:      it.Amount.Decimal,
		PaymentDate: parseTime(it.PaymentDate),
		Method:      entities.PaymentMethod(it.Method),
		Reference:   it.Reference,
		Notes:       it.Notes,
		Actor:       it.Actor,
		CreatedAt:   parseTime(it.CreatedAt),
	}
}
