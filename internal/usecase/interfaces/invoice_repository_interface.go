package interfaces

//go:generate mockgen -source=invoice_repository_interface.go -destination=mocks/invoice_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IInvoiceRepository abstracts persistence for Invoice and its line items.
//
// AddAmountPaid must increment amount_paid atomically and return the invoice
// after the increment. Update methods return a zero-value Invoice when the id
// does not exist.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Invoice, error)
	ReplaceLineItems(ctx context.Context, id string, items []entities.InvoiceLineItem, total decimal.Decimal) (entities.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error)
	AddAmountPaid(ctx context.Context, id string, delta decimal.Decimal) (entities.Invoice, error)
	Delete(ctx context.Context, id string) error
}
