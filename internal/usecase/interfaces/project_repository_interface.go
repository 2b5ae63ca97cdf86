package interfaces

//go:generate mockgen -source=project_repository_interface.go -destination=mocks/project_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IProjectRepository abstracts persistence of the billing view of a project.
//
// ApplyDelta must add delta to the named aggregate atomically in the store
// (no read-modify-write) and return the project as it is after the update.
// A zero-value Project means the id does not exist.
type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	ApplyDelta(ctx context.Context, id string, field entities.ProjectField, delta decimal.Decimal) (entities.Project, error)
}
