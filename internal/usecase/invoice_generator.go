package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IInvoiceGenerator turns billable sources into Draft invoices and returns
// the new invoice id.
//
// Every generator runs the same three steps: build the lines, store the
// invoice and book it on the project ledger, then mark each consumed source
// billed. The last step is not transactional with the first two: when it
// fails partway the invoice id is returned together with the error.
type IInvoiceGenerator interface {
	GenerateFromEstimate(ctx context.Context, req EstimateInvoiceRequest) (string, error)
	GenerateFromChangeOrders(ctx context.Context, req ChangeOrderInvoiceRequest) (string, error)
	GenerateFromExpenses(ctx context.Context, req ExpenseInvoiceRequest) (string, error)
	GenerateFromTimeEntries(ctx context.Context, req TimeEntryInvoiceRequest) (string, error)
	GenerateComprehensiveInvoice(ctx context.Context, req ComprehensiveInvoiceRequest) (string, error)
	GenerateDeposit(ctx context.Context, estimateID, actor string) (string, error)
}

// GeneratorDeps are the stores the generator reads sources from.
type GeneratorDeps struct {
	Projects     interfaces.IProjectRepository
	Estimates    interfaces.IEstimateRepository
	ChangeOrders interfaces.IChangeOrderRepository
	Expenses     interfaces.IExpenseRepository
	TimeEntries  interfaces.ITimeEntryRepository
	Jobs         interfaces.IJobRepository
	Invoices     interfaces.IInvoiceRepository
}

type InvoiceGenerator struct {
	deps    GeneratorDeps
	tracker IBillingTracker
	ledger  ILedgerUseCase
	numbers *DocumentNumbers
	log     *zap.Logger
	now     func() time.Time
}

var _ IInvoiceGenerator = (*InvoiceGenerator)(nil)

func NewInvoiceGenerator(deps GeneratorDeps, tracker IBillingTracker, ledger ILedgerUseCase, numbers *DocumentNumbers, log *zap.Logger) *InvoiceGenerator {
	return &InvoiceGenerator{
		deps:    deps,
		tracker: tracker,
		ledger:  ledger,
		numbers: numbers,
		log:     named(log, "invoice_generator"),
		now:     time.Now,
	}
}

func (g *InvoiceGenerator) GenerateFromEstimate(ctx context.Context, req EstimateInvoiceRequest) (string, error) {
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	if err := validateRequest(req); err != nil {
		return "", err
	}
	if req.Mode == nil {
		return "", fmt.Errorf("%w: estimate invoice mode is required", ErrValidation)
	}
	if err := req.Mode.validate(); err != nil {
		return "", err
	}

	project, err := g.loadProject(ctx, req.ProjectID)
	if err != nil {
		return "", err
	}
	est, err := g.loadAcceptedEstimate(ctx, project.EstimateID)
	if err != nil {
		return "", err
	}

	var b lineBuilder
	invoiceType := entities.InvoiceTypeStandard
	switch mode := req.Mode.(type) {
	case EstimateDepositMode:
		invoiceType = entities.InvoiceTypeDeposit
		amount, label := depositLine(est, mode)
		b.addDeposit(est, amount, label)
	case EstimateAllItemsMode:
		b.addEstimateItems(est, sortedEstimateItems(est), true)
	case EstimateSelectedItemsMode:
		items := selectEstimateItems(est, mode.ItemIDs)
		if len(items) == 0 {
			return "", ErrNoBillableItems
		}
		b.addEstimateItems(est, items, false)
	default:
		return "", fmt.Errorf("%w: unsupported estimate invoice mode %T", ErrValidation, req.Mode)
	}

	return g.issue(ctx, project, invoiceType, &b, req.InvoiceOptions)
}

// GenerateDeposit issues the deposit invoice configured on an accepted
// estimate: the fixed deposit amount when set, otherwise the percentage.
func (g *InvoiceGenerator) GenerateDeposit(ctx context.Context, estimateID, actor string) (string, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return "", ErrInvalidEstimateID
	}
	est, err := g.loadAcceptedEstimate(ctx, estimateID)
	if err != nil {
		return "", err
	}
	if !est.DepositConfigured() {
		return "", fmt.Errorf("%w: estimate has no deposit configured", ErrValidation)
	}
	project, err := g.loadProject(ctx, est.ProjectID)
	if err != nil {
		return "", err
	}

	mode := EstimateDepositMode{Amount: est.DepositAmount}
	if !est.DepositAmount.IsPositive() {
		mode = EstimateDepositMode{Percentage: est.DepositPercentage}
	}
	amount, label := depositLine(est, mode)

	var b lineBuilder
	b.addDeposit(est, amount, label)
	return g.issue(ctx, project, entities.InvoiceTypeDeposit, &b, InvoiceOptions{
		Notes: "Deposit for " + estimateTitle(est),
		Actor: actor,
	})
}

func (g *InvoiceGenerator) GenerateFromChangeOrders(ctx context.Context, req ChangeOrderInvoiceRequest) (string, error) {
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	if err := validateRequest(req); err != nil {
		return "", err
	}
	project, err := g.loadProject(ctx, req.ProjectID)
	if err != nil {
		return "", err
	}
	cos, err := g.eligibleChangeOrders(ctx, project.ID, req.ChangeOrderIDs)
	if err != nil {
		return "", err
	}
	if len(cos) == 0 {
		return "", ErrNoBillableItems
	}

	var b lineBuilder
	b.addChangeOrders(cos)
	return g.issue(ctx, project, entities.InvoiceTypeChangeOrder, &b, req.InvoiceOptions)
}

func (g *InvoiceGenerator) GenerateFromExpenses(ctx context.Context, req ExpenseInvoiceRequest) (string, error) {
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	if err := validateRequest(req); err != nil {
		return "", err
	}
	project, err := g.loadProject(ctx, req.ProjectID)
	if err != nil {
		return "", err
	}
	expenses, err := g.eligibleExpenses(ctx, project.ID, req.ExpenseIDs)
	if err != nil {
		return "", err
	}
	if len(expenses) == 0 {
		return "", ErrNoBillableItems
	}

	var b lineBuilder
	b.addExpenses(expenses, req.MarkupPercentage, true)
	return g.issue(ctx, project, entities.InvoiceTypeExpense, &b, req.InvoiceOptions)
}

func (g *InvoiceGenerator) GenerateFromTimeEntries(ctx context.Context, req TimeEntryInvoiceRequest) (string, error) {
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	if err := validateRequest(req); err != nil {
		return "", err
	}
	project, err := g.loadProject(ctx, req.ProjectID)
	if err != nil {
		return "", err
	}
	groups, err := g.eligibleTimeEntries(ctx, project.ID, req.TimeEntryIDs)
	if err != nil {
		return "", err
	}
	if len(groups) == 0 {
		return "", ErrNoBillableItems
	}

	var b lineBuilder
	b.addTimeEntries(groups, req.Detailed)
	return g.issue(ctx, project, entities.InvoiceTypeTimeMaterials, &b, req.InvoiceOptions)
}

// GenerateComprehensiveInvoice combines an accepted estimate, change orders,
// expenses and time entries into one invoice with a section per source. An
// estimate that is missing or not accepted is skipped, not rejected.
func (g *InvoiceGenerator) GenerateComprehensiveInvoice(ctx context.Context, req ComprehensiveInvoiceRequest) (string, error) {
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	if err := validateRequest(req); err != nil {
		return "", err
	}
	project, err := g.loadProject(ctx, req.ProjectID)
	if err != nil {
		return "", err
	}
	log := g.log.With(zap.String("project_id", project.ID))

	var b lineBuilder

	if req.IncludeEstimate {
		est, err := g.loadAcceptedEstimate(ctx, project.EstimateID)
		switch {
		case err == nil:
			b.addEstimateItems(est, sortedEstimateItems(est), true)
		case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
			log.Info("estimate section skipped", zap.Error(err))
		default:
			return "", err
		}
	}

	if len(req.ChangeOrderIDs) > 0 {
		cos, err := g.eligibleChangeOrders(ctx, project.ID, req.ChangeOrderIDs)
		if err != nil {
			return "", err
		}
		if len(cos) > 0 {
			b.header("Change Orders", entities.SourceTypeSection, "")
			b.addChangeOrders(cos)
		}
	}

	if len(req.ExpenseIDs) > 0 {
		expenses, err := g.eligibleExpenses(ctx, project.ID, req.ExpenseIDs)
		if err != nil {
			return "", err
		}
		if len(expenses) > 0 {
			b.addExpenses(expenses, decimal.Zero, false)
		}
	}

	if len(req.TimeEntryIDs) > 0 {
		groups, err := g.eligibleTimeEntries(ctx, project.ID, req.TimeEntryIDs)
		if err != nil {
			return "", err
		}
		if len(groups) > 0 {
			b.addTimeEntries(groups, false)
		}
	}

	return g.issue(ctx, project, entities.InvoiceTypeComprehensive, &b, req.InvoiceOptions)
}

// issue stores the invoice, books it on the ledger and marks its sources.
func (g *InvoiceGenerator) issue(ctx context.Context, project entities.Project, invoiceType entities.InvoiceType, b *lineBuilder, opts InvoiceOptions) (string, error) {
	if b.billableLines() == 0 {
		return "", ErrNoBillableItems
	}

	number, err := g.numbers.Next(ctx, invoiceNumberPrefix)
	if err != nil {
		return "", err
	}

	now := g.now().UTC()
	inv := entities.Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: number,
		ProjectID:     project.ID,
		PersonID:      project.PersonID,
		Status:        entities.InvoiceStatusDraft,
		InvoiceType:   invoiceType,
		IssueDate:     now,
		DueDate:       opts.DueDate,
		TotalAmount:   b.total(),
		AmountPaid:    decimal.Zero,
		Notes:         opts.Notes,
		CreatedBy:     opts.Actor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if inv.DueDate.IsZero() {
		inv.DueDate = now.AddDate(0, 0, 30)
	}
	inv.LineItems = make([]entities.InvoiceLineItem, len(b.items))
	for i, li := range b.items {
		li.InvoiceID = inv.ID
		inv.LineItems[i] = li
	}

	log := g.log.With(
		zap.String("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("project_id", project.ID),
		zap.String("invoice_type", string(invoiceType)))

	if _, err := g.deps.Invoices.Create(ctx, inv); err != nil {
		log.Error("invoice create failed", zap.Error(err))
		return "", persistenceError("create invoice", err)
	}
	log.Info("invoice created", zap.String("total", inv.TotalAmount.String()), zap.Int("line_items", len(inv.LineItems)))

	if _, err := g.ledger.Apply(ctx, Adjustment{
		ProjectID:       project.ID,
		Field:           entities.ProjectFieldTotalInvoicedAmount,
		Delta:           inv.TotalAmount,
		TransactionType: entities.TransactionInvoiceCreated,
		TransactionID:   inv.ID,
		Description:     fmt.Sprintf("Invoice %s created", inv.InvoiceNumber),
		Actor:           opts.Actor,
	}); err != nil {
		log.Error("invoice stored but not booked on ledger", zap.Error(err))
		return inv.ID, err
	}

	if err := g.markSources(ctx, inv.ID, b, log); err != nil {
		return inv.ID, err
	}
	return inv.ID, nil
}

// markSources bills every consumed source in order and stops at the first
// failure, reporting how far it got.
func (g *InvoiceGenerator) markSources(ctx context.Context, invoiceID string, b *lineBuilder, log *zap.Logger) error {
	total := len(b.changeOrders) + len(b.links)
	done := 0
	for _, coID := range b.changeOrders {
		if err := g.tracker.MarkChangeOrderBilled(ctx, coID, invoiceID); err != nil {
			return g.partialBilling(log, done, total, "change_order", coID, err)
		}
		done++
	}
	for _, l := range b.links {
		if err := g.tracker.MarkBilled(ctx, l.ref, invoiceID, l.lineID); err != nil {
			return g.partialBilling(log, done, total, string(l.ref.Kind), l.ref.ID, err)
		}
		done++
	}
	log.Info("sources billed", zap.Int("count", done))
	return nil
}

func (g *InvoiceGenerator) partialBilling(log *zap.Logger, done, total int, kind, sourceID string, err error) error {
	log.Error("source billing stopped",
		zap.Int("billed", done),
		zap.Int("not_billed", total-done),
		zap.String("failed_kind", kind),
		zap.String("failed_source_id", sourceID),
		zap.Error(err))
	return fmt.Errorf("%w: invoice created, billed %d of %d sources, failed at %s %s: %w", ErrPersistence, done, total, kind, sourceID, err)
}

func (g *InvoiceGenerator) loadProject(ctx context.Context, id string) (entities.Project, error) {
	if strings.TrimSpace(id) == "" {
		return entities.Project{}, ErrInvalidProjectID
	}
	p, err := g.deps.Projects.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, persistenceError("load project", err)
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (g *InvoiceGenerator) loadAcceptedEstimate(ctx context.Context, estimateID string) (entities.Estimate, error) {
	if strings.TrimSpace(estimateID) == "" {
		return entities.Estimate{}, ErrNoLinkedEstimate
	}
	est, err := g.deps.Estimates.GetByID(ctx, estimateID)
	if err != nil {
		return entities.Estimate{}, persistenceError("load estimate", err)
	}
	if est.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if est.Status != entities.EstimateStatusAccepted {
		return entities.Estimate{}, fmt.Errorf("%w (status %s)", ErrEstimateNotAccepted, est.Status)
	}
	return est, nil
}

// eligibleChangeOrders keeps approved, unbilled change orders of the
// project in the order they were requested.
func (g *InvoiceGenerator) eligibleChangeOrders(ctx context.Context, projectID string, ids []string) ([]entities.ChangeOrder, error) {
	all, err := g.deps.ChangeOrders.ListByProject(ctx, projectID)
	if err != nil {
		return nil, persistenceError("list change orders", err)
	}
	byID := make(map[string]entities.ChangeOrder, len(all))
	for _, co := range all {
		if co.Billable() {
			byID[co.ID] = co
		}
	}
	var out []entities.ChangeOrder
	for _, id := range uniqueIDs(ids) {
		if co, ok := byID[id]; ok {
			out = append(out, co)
		}
	}
	return out, nil
}

func (g *InvoiceGenerator) eligibleExpenses(ctx context.Context, projectID string, ids []string) ([]entities.Expense, error) {
	all, err := g.deps.Expenses.ListByProject(ctx, projectID)
	if err != nil {
		return nil, persistenceError("list expenses", err)
	}
	byID := make(map[string]entities.Expense, len(all))
	for _, e := range all {
		if e.Eligible() {
			byID[e.ID] = e
		}
	}
	var out []entities.Expense
	for _, id := range uniqueIDs(ids) {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// eligibleTimeEntries groups billable, unbilled entries by job, keeping the
// order in which jobs first appear.
func (g *InvoiceGenerator) eligibleTimeEntries(ctx context.Context, projectID string, ids []string) ([]jobGroup, error) {
	all, err := g.deps.TimeEntries.ListByProject(ctx, projectID)
	if err != nil {
		return nil, persistenceError("list time entries", err)
	}
	byID := make(map[string]entities.TimeEntry, len(all))
	for _, te := range all {
		if te.Eligible() {
			byID[te.ID] = te
		}
	}

	var groups []jobGroup
	index := map[string]int{}
	for _, id := range uniqueIDs(ids) {
		te, ok := byID[id]
		if !ok {
			continue
		}
		i, seen := index[te.JobID]
		if !seen {
			job, err := g.deps.Jobs.GetByID(ctx, te.JobID)
			if err != nil {
				return nil, persistenceError("load job", err)
			}
			if job.ID == "" {
				return nil, fmt.Errorf("%w %s", ErrJobNotFound, te.JobID)
			}
			i = len(groups)
			index[te.JobID] = i
			groups = append(groups, jobGroup{job: job})
		}
		groups[i].entries = append(groups[i].entries, te)
	}
	return groups, nil
}

func depositLine(est entities.Estimate, mode EstimateDepositMode) (decimal.Decimal, string) {
	if mode.Amount.IsPositive() {
		return entities.Money(mode.Amount), "Deposit for " + estimateTitle(est)
	}
	return entities.Percentage(est.TotalAmount, mode.Percentage),
		fmt.Sprintf("Deposit (%s%% of %s)", mode.Percentage.String(), estimateTitle(est))
}

func sortedEstimateItems(est entities.Estimate) []entities.EstimateLineItem {
	items := append([]entities.EstimateLineItem(nil), est.LineItems...)
	sortEstimateItems(items)
	return items
}

func selectEstimateItems(est entities.Estimate, ids []string) []entities.EstimateLineItem {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[strings.TrimSpace(id)] = true
	}
	var out []entities.EstimateLineItem
	for _, it := range sortedEstimateItems(est) {
		if want[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
