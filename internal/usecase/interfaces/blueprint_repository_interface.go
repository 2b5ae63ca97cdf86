package interfaces

//go:generate mockgen -source=blueprint_repository_interface.go -destination=mocks/blueprint_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

type IBlueprintRepository interface {
	Create(ctx context.Context, bov entities.BlueprintOfValues) (entities.BlueprintOfValues, error)
	GetByID(ctx context.Context, id string) (entities.BlueprintOfValues, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.BlueprintOfValues, error)
}

// ISequenceRepository hands out monotonically increasing numbers per key,
// e.g. one counter per document prefix and month.
type ISequenceRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}
