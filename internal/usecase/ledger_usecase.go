package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Adjustment is one delta against a project aggregate together with the
// ledger metadata describing it.
type Adjustment struct {
	ProjectID       string                   `json:"project_id" validate:"required"`
	Field           entities.ProjectField    `json:"field" validate:"required"`
	Delta           decimal.Decimal          `json:"delta"`
	TransactionType entities.TransactionType `json:"transaction_type" validate:"required"`
	TransactionID   string                   `json:"transaction_id"`
	Description     string                   `json:"description"`
	Actor           string                   `json:"actor"`
}

// ILedgerUseCase is the only writer of project aggregates.
type ILedgerUseCase interface {
	Apply(ctx context.Context, adj Adjustment) (entities.LedgerEntry, error)
	Append(ctx context.Context, entry entities.LedgerEntry) error
	Entries(ctx context.Context, projectID string) ([]entities.LedgerEntry, error)
}

type LedgerUseCase struct {
	projects interfaces.IProjectRepository
	ledger   interfaces.ILedgerRepository
	log      *zap.Logger
	now      func() time.Time
}

var _ ILedgerUseCase = (*LedgerUseCase)(nil)

func NewLedgerUseCase(projects interfaces.IProjectRepository, ledger interfaces.ILedgerRepository, log *zap.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		projects: projects,
		ledger:   ledger,
		log:      named(log, "ledger"),
		now:      time.Now,
	}
}

// Apply adds adj.Delta to the project aggregate and appends exactly one
// entry with amount_impact equal to the delta. A zero delta writes nothing.
//
// The aggregate update and the append are separate writes: when the append
// fails the aggregate has already moved, which is logged and returned as a
// persistence error.
func (u *LedgerUseCase) Apply(ctx context.Context, adj Adjustment) (entities.LedgerEntry, error) {
	adj.ProjectID = strings.TrimSpace(adj.ProjectID)
	if adj.ProjectID == "" {
		return entities.LedgerEntry{}, ErrInvalidProjectID
	}
	if !adj.Field.Valid() {
		return entities.LedgerEntry{}, fmt.Errorf("%w: unknown project field %q", ErrValidation, adj.Field)
	}
	if err := validateRequest(adj); err != nil {
		return entities.LedgerEntry{}, err
	}
	if adj.Delta.IsZero() {
		u.log.Debug("zero delta skipped",
			zap.String("project_id", adj.ProjectID),
			zap.String("transaction_type", string(adj.TransactionType)),
			zap.String("transaction_id", adj.TransactionID))
		return entities.LedgerEntry{}, nil
	}

	project, err := u.projects.ApplyDelta(ctx, adj.ProjectID, adj.Field, adj.Delta)
	if err != nil {
		u.log.Error("apply delta failed", zap.String("project_id", adj.ProjectID), zap.String("field", string(adj.Field)), zap.Error(err))
		return entities.LedgerEntry{}, persistenceError("apply project delta", err)
	}
	if project.ID == "" {
		return entities.LedgerEntry{}, ErrProjectNotFound
	}

	entry := entities.LedgerEntry{
		ID:              uuid.NewString(),
		ProjectID:       adj.ProjectID,
		TransactionType: adj.TransactionType,
		TransactionID:   adj.TransactionID,
		Field:           adj.Field,
		AmountImpact:    adj.Delta,
		Description:     adj.Description,
		Actor:           adj.Actor,
		NewActualCost:   project.ActualCost,
		NewBudgetAmount: project.BudgetAmount,
		CreatedAt:       u.now().UTC(),
	}
	if err := u.Append(ctx, entry); err != nil {
		u.log.Error("aggregate applied without ledger entry",
			zap.String("project_id", adj.ProjectID),
			zap.String("field", string(adj.Field)),
			zap.String("delta", adj.Delta.String()),
			zap.String("transaction_id", adj.TransactionID))
		return entities.LedgerEntry{}, err
	}

	u.log.Info("ledger entry appended",
		zap.String("project_id", entry.ProjectID),
		zap.String("transaction_type", string(entry.TransactionType)),
		zap.String("transaction_id", entry.TransactionID),
		zap.String("amount_impact", entry.AmountImpact.String()))
	return entry, nil
}

func (u *LedgerUseCase) Append(ctx context.Context, entry entities.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = u.now().UTC()
	}
	if err := u.ledger.Append(ctx, entry); err != nil {
		return persistenceError("append ledger entry", err)
	}
	return nil
}

func (u *LedgerUseCase) Entries(ctx context.Context, projectID string) ([]entities.LedgerEntry, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	entries, err := u.ledger.ListByProject(ctx, projectID)
	if err != nil {
		return nil, persistenceError("list ledger entries", err)
	}
	return entries, nil
}
