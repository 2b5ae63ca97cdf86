package interfaces

//go:generate mockgen -source=time_entry_repository_interface.go -destination=mocks/time_entry_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

type ITimeEntryRepository interface {
	Create(ctx context.Context, te entities.TimeEntry) (entities.TimeEntry, error)
	GetByID(ctx context.Context, id string) (entities.TimeEntry, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.TimeEntry, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.TimeEntry, error)
	MarkBilled(ctx context.Context, id string, invoiceID string, invoiceLineItemID string) (entities.TimeEntry, error)
	MarkUnbilled(ctx context.Context, id string) (entities.TimeEntry, error)
}

type IJobRepository interface {
	Create(ctx context.Context, j entities.Job) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Job, error)
}
