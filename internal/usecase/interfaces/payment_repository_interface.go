package interfaces

//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/payment_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for Payment.
//
// Table requirements (DynamoDB):
//   - PK: id (string)
//   - GSI: invoice_id-index (PK: invoice_id)
//   - GSI: project_id-index (PK: project_id)
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Payment, error)
	Delete(ctx context.Context, id string) error
}
