package usecase

import (
	"context"
	"fmt"
	"strings"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FinancialSummary is computed from source records, not from the cached
// project aggregates, which are reported alongside for comparison.
type FinancialSummary struct {
	ProjectID         string          `json:"project_id"`
	EstimateTotal     decimal.Decimal `json:"estimate_total"`
	ChangeOrdersTotal decimal.Decimal `json:"change_orders_total"`
	ContractTotal     decimal.Decimal `json:"contract_total"`
	InvoicedTotal     decimal.Decimal `json:"invoiced_total"`
	PaidTotal         decimal.Decimal `json:"paid_total"`
	Outstanding       decimal.Decimal `json:"outstanding"`
	ExpensesTotal     decimal.Decimal `json:"expenses_total"`
	LaborTotal        decimal.Decimal `json:"labor_total"`
	Profit            decimal.Decimal `json:"profit"`
	MarginPercentage  decimal.Decimal `json:"margin_percentage"`
	BudgetAmount      decimal.Decimal `json:"budget_amount"`
	ActualCost        decimal.Decimal `json:"actual_cost"`
}

type FieldDrift struct {
	Field     entities.ProjectField `json:"field"`
	Cached    decimal.Decimal       `json:"cached"`
	LedgerSum decimal.Decimal       `json:"ledger_sum"`
	Drift     decimal.Decimal       `json:"drift"`
}

type Reconciliation struct {
	ProjectID  string       `json:"project_id"`
	Fields     []FieldDrift `json:"fields"`
	Consistent bool         `json:"consistent"`
}

// AdjustmentKind selects the aggregate a manual adjustment moves.
type AdjustmentKind string

const (
	AdjustmentCost   AdjustmentKind = "cost"
	AdjustmentBudget AdjustmentKind = "budget"
)

type AdjustmentRequest struct {
	Kind        AdjustmentKind  `json:"kind" validate:"required,oneof=cost budget"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=500"`
	Reference   string          `json:"reference" validate:"max=128"`
	Actor       string          `json:"actor"`
}

type IProjectFinanceUseCase interface {
	Summary(ctx context.Context, projectID string) (FinancialSummary, error)
	Reconcile(ctx context.Context, projectID string) (Reconciliation, error)
	Ledger(ctx context.Context, projectID string) ([]entities.LedgerEntry, error)
	RecordCost(ctx context.Context, projectID string, req AdjustmentRequest) (entities.LedgerEntry, error)
	AdjustBudget(ctx context.Context, projectID string, req AdjustmentRequest) (entities.LedgerEntry, error)
}

// FinanceDeps are the read sides the summary is computed from.
type FinanceDeps struct {
	Projects     interfaces.IProjectRepository
	Estimates    interfaces.IEstimateRepository
	ChangeOrders interfaces.IChangeOrderRepository
	Invoices     interfaces.IInvoiceRepository
	Payments     interfaces.IPaymentRepository
	Expenses     interfaces.IExpenseRepository
	TimeEntries  interfaces.ITimeEntryRepository
	Jobs         interfaces.IJobRepository
}

type ProjectFinanceUseCase struct {
	deps   FinanceDeps
	ledger ILedgerUseCase
	log    *zap.Logger
}

var _ IProjectFinanceUseCase = (*ProjectFinanceUseCase)(nil)

func NewProjectFinanceUseCase(deps FinanceDeps, ledger ILedgerUseCase, log *zap.Logger) *ProjectFinanceUseCase {
	return &ProjectFinanceUseCase{deps: deps, ledger: ledger, log: named(log, "finance")}
}

func (u *ProjectFinanceUseCase) project(ctx context.Context, id string) (entities.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Project{}, ErrInvalidProjectID
	}
	p, err := u.deps.Projects.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, persistenceError("load project", err)
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (u *ProjectFinanceUseCase) Summary(ctx context.Context, projectID string) (FinancialSummary, error) {
	p, err := u.project(ctx, projectID)
	if err != nil {
		return FinancialSummary{}, err
	}
	s := FinancialSummary{
		ProjectID:    p.ID,
		BudgetAmount: p.BudgetAmount,
		ActualCost:   p.ActualCost,
	}

	if p.EstimateID != "" {
		est, err := u.deps.Estimates.GetByID(ctx, p.EstimateID)
		if err != nil {
			return FinancialSummary{}, persistenceError("load estimate", err)
		}
		s.EstimateTotal = est.TotalAmount
	}

	cos, err := u.deps.ChangeOrders.ListByProject(ctx, p.ID)
	if err != nil {
		return FinancialSummary{}, persistenceError("list change orders", err)
	}
	for _, co := range cos {
		if approvedLike(co.Status) {
			s.ChangeOrdersTotal = s.ChangeOrdersTotal.Add(co.CostImpact)
		}
	}
	s.ContractTotal = s.EstimateTotal.Add(s.ChangeOrdersTotal)

	invoices, err := u.deps.Invoices.ListByProject(ctx, p.ID)
	if err != nil {
		return FinancialSummary{}, persistenceError("list invoices", err)
	}
	for _, inv := range invoices {
		if inv.Status != entities.InvoiceStatusVoid {
			s.InvoicedTotal = s.InvoicedTotal.Add(inv.TotalAmount)
		}
	}

	payments, err := u.deps.Payments.ListByProject(ctx, p.ID)
	if err != nil {
		return FinancialSummary{}, persistenceError("list payments", err)
	}
	for _, pay := range payments {
		s.PaidTotal = s.PaidTotal.Add(pay.Amount)
	}
	s.Outstanding = s.InvoicedTotal.Sub(s.PaidTotal)

	expenses, err := u.deps.Expenses.ListByProject(ctx, p.ID)
	if err != nil {
		return FinancialSummary{}, persistenceError("list expenses", err)
	}
	for _, e := range expenses {
		s.ExpensesTotal = s.ExpensesTotal.Add(e.Amount)
	}

	labor, err := u.laborTotal(ctx, p.ID)
	if err != nil {
		return FinancialSummary{}, err
	}
	s.LaborTotal = labor

	s.Profit = s.PaidTotal.Sub(s.ExpensesTotal).Sub(s.LaborTotal)
	if s.PaidTotal.IsPositive() {
		s.MarginPercentage = s.Profit.Div(s.PaidTotal).Mul(decimal.NewFromInt(100)).Round(entities.MoneyPlaces)
	}
	return s, nil
}

func (u *ProjectFinanceUseCase) laborTotal(ctx context.Context, projectID string) (decimal.Decimal, error) {
	jobs, err := u.deps.Jobs.ListByProject(ctx, projectID)
	if err != nil {
		return decimal.Zero, persistenceError("list jobs", err)
	}
	rates := make(map[string]decimal.Decimal, len(jobs))
	for _, j := range jobs {
		rates[j.ID] = j.HourlyRate
	}
	entries, err := u.deps.TimeEntries.ListByProject(ctx, projectID)
	if err != nil {
		return decimal.Zero, persistenceError("list time entries", err)
	}
	total := decimal.Zero
	for _, te := range entries {
		total = total.Add(te.Hours.Mul(rates[te.JobID]))
	}
	return entities.Money(total), nil
}

// Reconcile compares each cached aggregate with the sum of the ledger
// entries booked against it.
func (u *ProjectFinanceUseCase) Reconcile(ctx context.Context, projectID string) (Reconciliation, error) {
	p, err := u.project(ctx, projectID)
	if err != nil {
		return Reconciliation{}, err
	}
	entries, err := u.ledger.Entries(ctx, p.ID)
	if err != nil {
		return Reconciliation{}, err
	}
	sums := map[entities.ProjectField]decimal.Decimal{}
	for _, e := range entries {
		sums[e.Field] = sums[e.Field].Add(e.AmountImpact)
	}

	rec := Reconciliation{ProjectID: p.ID, Consistent: true}
	for _, f := range entities.ProjectFields {
		cached := p.Aggregate(f)
		d := FieldDrift{Field: f, Cached: cached, LedgerSum: sums[f], Drift: cached.Sub(sums[f])}
		if !d.Drift.IsZero() {
			rec.Consistent = false
			u.log.Warn("aggregate drift", zap.String("project_id", p.ID), zap.String("field", string(f)), zap.String("drift", d.Drift.String()))
		}
		rec.Fields = append(rec.Fields, d)
	}
	return rec, nil
}

func (u *ProjectFinanceUseCase) Ledger(ctx context.Context, projectID string) ([]entities.LedgerEntry, error) {
	return u.ledger.Entries(ctx, projectID)
}

func (u *ProjectFinanceUseCase) RecordCost(ctx context.Context, projectID string, req AdjustmentRequest) (entities.LedgerEntry, error) {
	req.Kind = AdjustmentCost
	return u.adjust(ctx, projectID, req, entities.ProjectFieldActualCost, entities.TransactionCostRecorded)
}

func (u *ProjectFinanceUseCase) AdjustBudget(ctx context.Context, projectID string, req AdjustmentRequest) (entities.LedgerEntry, error) {
	req.Kind = AdjustmentBudget
	return u.adjust(ctx, projectID, req, entities.ProjectFieldBudgetAmount, entities.TransactionBudgetAdjusted)
}

func (u *ProjectFinanceUseCase) adjust(ctx context.Context, projectID string, req AdjustmentRequest, field entities.ProjectField, tt entities.TransactionType) (entities.LedgerEntry, error) {
	if err := validateRequest(req); err != nil {
		return entities.LedgerEntry{}, err
	}
	if req.Amount.IsZero() {
		return entities.LedgerEntry{}, ErrInvalidAmount
	}
	p, err := u.project(ctx, projectID)
	if err != nil {
		return entities.LedgerEntry{}, err
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = fmt.Sprintf("%s %s", tt, req.Amount.StringFixed(entities.MoneyPlaces))
	}
	return u.ledger.Apply(ctx, Adjustment{
		ProjectID:       p.ID,
		Field:           field,
		Delta:           req.Amount,
		TransactionType: tt,
		TransactionID:   strings.TrimSpace(req.Reference),
		Description:     desc,
		Actor:           req.Actor,
	})
}
