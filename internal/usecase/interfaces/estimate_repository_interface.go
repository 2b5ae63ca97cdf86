package interfaces

//go:generate mockgen -source=estimate_repository_interface.go -destination=mocks/estimate_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// IEstimateRepository abstracts persistence for Estimate.
//
// The two Mark* methods are one-shot markers for the acceptance cascade: they
// only write when the flag is still false and report whether they did.
type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus, actor string) (entities.Estimate, error)
	MarkConvertedToBOV(ctx context.Context, id string, blueprintID string) (bool, error)
	MarkInitialInvoiceGenerated(ctx context.Context, id string, invoiceID string) (bool, error)
}
