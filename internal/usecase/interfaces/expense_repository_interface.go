package interfaces

//go:generate mockgen -source=expense_repository_interface.go -destination=mocks/expense_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

type IExpenseRepository interface {
	Create(ctx context.Context, e entities.Expense) (entities.Expense, error)
	GetByID(ctx context.Context, id string) (entities.Expense, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Expense, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Expense, error)
	MarkBilled(ctx context.Context, id string, invoiceID string, invoiceLineItemID string) (entities.Expense, error)
	MarkUnbilled(ctx context.Context, id string) (entities.Expense, error)
}
