package interfaces

//go:generate mockgen -source=ledger_repository_interface.go -destination=mocks/ledger_repository_interface_mock.go -package=mock_interfaces

import (
	"context"

	"project_billing/internal/domain/entities"
)

// ILedgerRepository is append-only. ListByProject returns newest first.
type ILedgerRepository interface {
	Append(ctx context.Context, entry entities.LedgerEntry) error
	ListByProject(ctx context.Context, projectID string) ([]entities.LedgerEntry, error)
}
