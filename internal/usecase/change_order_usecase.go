package usecase

import (
	"context"
	"fmt"
	"strings"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type IChangeOrderUseCase interface {
	GetByID(ctx context.Context, id string) (entities.ChangeOrder, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.ChangeOrder, error)
	UpdateStatus(ctx context.Context, id string, status entities.ChangeOrderStatus, actor string) (entities.ChangeOrder, error)
}

type ChangeOrderUseCase struct {
	repo   interfaces.IChangeOrderRepository
	ledger ILedgerUseCase
	log    *zap.Logger
}

var _ IChangeOrderUseCase = (*ChangeOrderUseCase)(nil)

func NewChangeOrderUseCase(repo interfaces.IChangeOrderRepository, ledger ILedgerUseCase, log *zap.Logger) *ChangeOrderUseCase {
	return &ChangeOrderUseCase{repo: repo, ledger: ledger, log: named(log, "change_order")}
}

func (u *ChangeOrderUseCase) GetByID(ctx context.Context, id string) (entities.ChangeOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ChangeOrder{}, ErrInvalidChangeOrderID
	}
	co, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ChangeOrder{}, persistenceError("load change order", err)
	}
	if co.ID == "" {
		return entities.ChangeOrder{}, ErrChangeOrderNotFound
	}
	return co, nil
}

func (u *ChangeOrderUseCase) ListByProject(ctx context.Context, projectID string) ([]entities.ChangeOrder, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	list, err := u.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, persistenceError("list change orders", err)
	}
	return list, nil
}

func approvedLike(s entities.ChangeOrderStatus) bool {
	return s == entities.ChangeOrderStatusApproved || s == entities.ChangeOrderStatusCompleted
}

// UpdateStatus moves the change order and keeps the project budget in step:
// entering Approved or Completed adds cost_impact, leaving both removes it.
func (u *ChangeOrderUseCase) UpdateStatus(ctx context.Context, id string, status entities.ChangeOrderStatus, actor string) (entities.ChangeOrder, error) {
	if !status.Valid() {
		return entities.ChangeOrder{}, ErrInvalidStatus
	}
	co, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ChangeOrder{}, err
	}
	if co.Status == status {
		return co, nil
	}

	wasApproved, nowApproved := approvedLike(co.Status), approvedLike(status)
	if wasApproved && !nowApproved && co.Billed {
		return entities.ChangeOrder{}, fmt.Errorf("%w: %s", ErrChangeOrderBilled, co.InvoiceID)
	}

	updated, err := u.repo.UpdateStatus(ctx, co.ID, status)
	if err != nil {
		return entities.ChangeOrder{}, persistenceError("update change order status", err)
	}
	if updated.ID == "" {
		return entities.ChangeOrder{}, ErrChangeOrderNotFound
	}

	adj := Adjustment{
		ProjectID:     co.ProjectID,
		Field:         entities.ProjectFieldBudgetAmount,
		TransactionID: co.ID,
		Actor:         actor,
	}
	switch {
	case nowApproved && !wasApproved:
		adj.Delta = co.CostImpact
		adj.TransactionType = entities.TransactionChangeOrderApproved
		adj.Description = fmt.Sprintf("Change order %s approved", coLabel(co))
	case wasApproved && !nowApproved:
		adj.Delta = co.CostImpact.Neg()
		adj.TransactionType = entities.TransactionChangeOrderUnapproved
		adj.Description = fmt.Sprintf("Change order %s set to %s", coLabel(co), status)
	default:
		return updated, nil
	}
	if _, err := u.ledger.Apply(ctx, adj); err != nil {
		return updated, err
	}

	u.log.Info("change order status updated",
		zap.String("change_order_id", co.ID),
		zap.String("from", string(co.Status)),
		zap.String("to", string(status)),
		zap.String("budget_delta", adj.Delta.String()))
	return updated, nil
}

func coLabel(co entities.ChangeOrder) string {
	if co.CONumber != "" {
		return co.CONumber
	}
	return co.ID
}
