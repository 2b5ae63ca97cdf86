package interfaces

//go:generate mockgen -source=change_order_repository_interface.go -destination=mocks/change_order_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

type IChangeOrderRepository interface {
	Create(ctx context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error)
	GetByID(ctx context.Context, id string) (entities.ChangeOrder, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.ChangeOrder, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.ChangeOrder, error)
	UpdateStatus(ctx context.Context, id string, status entities.ChangeOrderStatus) (entities.ChangeOrder, error)
	MarkBilled(ctx context.Context, id string, invoiceID string) (entities.ChangeOrder, error)
	MarkUnbilled(ctx context.Context, id string) (entities.ChangeOrder, error)
	MarkLineItemBilled(ctx context.Context, id string, lineItemID string, invoiceLineItemID string) (entities.ChangeOrder, error)
	MarkLineItemUnbilled(ctx context.Context, id string, lineItemID string) (entities.ChangeOrder, error)
}
