package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store unavailable")

// memStore is an in-memory backing store for every repository interface.
// failOn makes the named operation return errStoreDown; failAfter lets it
// succeed n times first.
type memStore struct {
	mu           sync.Mutex
	projects     map[string]entities.Project
	estimates    map[string]entities.Estimate
	changeOrders map[string]entities.ChangeOrder
	expenses     map[string]entities.Expense
	timeEntries  map[string]entities.TimeEntry
	jobs         map[string]entities.Job
	invoices     map[string]entities.Invoice
	payments     map[string]entities.Payment
	blueprints   map[string]entities.BlueprintOfValues
	ledger       []entities.LedgerEntry
	sequences    map[string]int64
	order        map[string]int
	seq          int
	failures     map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		projects:     map[string]entities.Project{},
		estimates:    map[string]entities.Estimate{},
		changeOrders: map[string]entities.ChangeOrder{},
		expenses:     map[string]entities.Expense{},
		timeEntries:  map[string]entities.TimeEntry{},
		jobs:         map[string]entities.Job{},
		invoices:     map[string]entities.Invoice{},
		payments:     map[string]entities.Payment{},
		blueprints:   map[string]entities.BlueprintOfValues{},
		sequences:    map[string]int64{},
		order:        map[string]int{},
		failures:     map[string]int{},
	}
}

func (s *memStore) failOn(op string) { s.failAfter(op, 0) }

func (s *memStore) failAfter(op string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = n + 1
}

// check must be called with mu held.
func (s *memStore) check(op string) error {
	n, ok := s.failures[op]
	if !ok {
		return nil
	}
	if n <= 1 {
		return fmt.Errorf("%s: %w", op, errStoreDown)
	}
	s.failures[op] = n - 1
	return nil
}

func (s *memStore) track(id string) {
	if _, ok := s.order[id]; !ok {
		s.seq++
		s.order[id] = s.seq
	}
}

func sortByInsertion[T any](s *memStore, items []T, id func(T) string) []T {
	sort.SliceStable(items, func(i, j int) bool { return s.order[id(items[i])] < s.order[id(items[j])] })
	return items
}

// ---- projects

type fakeProjects struct{ *memStore }

var _ interfaces.IProjectRepository = fakeProjects{}

func (f fakeProjects) Create(_ context.Context, p entities.Project) (entities.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("projects.Create"); err != nil {
		return entities.Project{}, err
	}
	f.projects[p.ID] = p
	return p, nil
}

func (f fakeProjects) GetByID(_ context.Context, id string) (entities.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("projects.GetByID"); err != nil {
		return entities.Project{}, err
	}
	return f.projects[id], nil
}

func (f fakeProjects) ApplyDelta(_ context.Context, id string, field entities.ProjectField, delta decimal.Decimal) (entities.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("projects.ApplyDelta"); err != nil {
		return entities.Project{}, err
	}
	p, ok := f.projects[id]
	if !ok {
		return entities.Project{}, nil
	}
	switch field {
	case entities.ProjectFieldBudgetAmount:
		p.BudgetAmount = p.BudgetAmount.Add(delta)
	case entities.ProjectFieldActualCost:
		p.ActualCost = p.ActualCost.Add(delta)
	case entities.ProjectFieldTotalInvoicedAmount:
		p.TotalInvoicedAmount = p.TotalInvoicedAmount.Add(delta)
	case entities.ProjectFieldTotalPaymentsReceived:
		p.TotalPaymentsReceived = p.TotalPaymentsReceived.Add(delta)
	}
	f.projects[id] = p
	return p, nil
}

// ---- estimates

type fakeEstimates struct{ *memStore }

var _ interfaces.IEstimateRepository = fakeEstimates{}

func (f fakeEstimates) Create(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.estimates[e.ID] = e
	return e, nil
}

func (f fakeEstimates) GetByID(_ context.Context, id string) (entities.Estimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("estimates.GetByID"); err != nil {
		return entities.Estimate{}, err
	}
	return f.estimates[id], nil
}

func (f fakeEstimates) UpdateStatus(_ context.Context, id string, status entities.EstimateStatus, actor string) (entities.Estimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("estimates.UpdateStatus"); err != nil {
		return entities.Estimate{}, err
	}
	e, ok := f.estimates[id]
	if !ok {
		return entities.Estimate{}, nil
	}
	e.Status = status
	e.UpdatedBy = actor
	f.estimates[id] = e
	return e, nil
}

func (f fakeEstimates) MarkConvertedToBOV(_ context.Context, id, blueprintID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("estimates.MarkConvertedToBOV"); err != nil {
		return false, err
	}
	e, ok := f.estimates[id]
	if !ok || e.IsConvertedToBOV {
		return false, nil
	}
	e.IsConvertedToBOV = true
	e.BlueprintOfValuesID = blueprintID
	f.estimates[id] = e
	return true, nil
}

func (f fakeEstimates) MarkInitialInvoiceGenerated(_ context.Context, id, invoiceID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("estimates.MarkInitialInvoiceGenerated"); err != nil {
		return false, err
	}
	e, ok := f.estimates[id]
	if !ok || e.IsInitialInvoiceGenerated {
		return false, nil
	}
	e.IsInitialInvoiceGenerated = true
	e.InitialInvoiceID = invoiceID
	f.estimates[id] = e
	return true, nil
}

// ---- change orders

type fakeChangeOrders struct{ *memStore }

var _ interfaces.IChangeOrderRepository = fakeChangeOrders{}

func (f fakeChangeOrders) Create(_ context.Context, co entities.ChangeOrder) (entities.ChangeOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track(co.ID)
	f.changeOrders[co.ID] = co
	return co, nil
}

func (f fakeChangeOrders) GetByID(_ context.Context, id string) (entities.ChangeOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("changeOrders.GetByID"); err != nil {
		return entities.ChangeOrder{}, err
	}
	return f.changeOrders[id], nil
}

func (f fakeChangeOrders) list(match func(entities.ChangeOrder) bool) []entities.ChangeOrder {
	var out []entities.ChangeOrder
	for _, co := range f.changeOrders {
		if match(co) {
			out = append(out, co)
		}
	}
	return sortByInsertion(f.memStore, out, func(c entities.ChangeOrder) string { return c.ID })
}

func (f fakeChangeOrders) ListByProject(_ context.Context, projectID string) ([]entities.ChangeOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("changeOrders.ListByProject"); err != nil {
		return nil, err
	}
	return f.list(func(c entities.ChangeOrder) bool { return c.ProjectID == projectID }), nil
}

func (f fakeChangeOrders) ListByInvoiceID(_ context.Context, invoiceID string) ([]entities.ChangeOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("changeOrders.ListByInvoiceID"); err != nil {
		return nil, err
	}
	return f.list(func(c entities.ChangeOrder) bool { return c.InvoiceID == invoiceID }), nil
}

func (f fakeChangeOrders) mutate(op, id string, fn func(*entities.ChangeOrder)) (entities.ChangeOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(op); err != nil {
		return entities.ChangeOrder{}, err
	}
	co, ok := f.changeOrders[id]
	if !ok {
		return entities.ChangeOrder{}, nil
	}
	co.LineItems = append([]entities.ChangeOrderLineItem(nil), co.LineItems...)
	fn(&co)
	f.changeOrders[id] = co
	return co, nil
}

func (f fakeChangeOrders) UpdateStatus(_ context.Context, id string, status entities.ChangeOrderStatus) (entities.ChangeOrder, error) {
	return f.mutate("changeOrders.UpdateStatus", id, func(co *entities.ChangeOrder) { co.Status = status })
}

func (f fakeChangeOrders) MarkBilled(_ context.Context, id, invoiceID string) (entities.ChangeOrder, error) {
	return f.mutate("changeOrders.MarkBilled", id, func(co *entities.ChangeOrder) {
		co.Billed = true
		co.InvoiceID = invoiceID
	})
}

func (f fakeChangeOrders) MarkUnbilled(_ context.Context, id string) (entities.ChangeOrder, error) {
	return f.mutate("changeOrders.MarkUnbilled", id, func(co *entities.ChangeOrder) {
		co.Billed = false
		co.InvoiceID = ""
	})
}

func (f fakeChangeOrders) MarkLineItemBilled(_ context.Context, id, lineItemID, invoiceLineItemID string) (entities.ChangeOrder, error) {
	return f.mutate("changeOrders.MarkLineItemBilled", id, func(co *entities.ChangeOrder) {
		for i := range co.LineItems {
			if co.LineItems[i].ID == lineItemID {
				co.LineItems[i].Billed = true
				co.LineItems[i].InvoiceLineItemID = invoiceLineItemID
			}
		}
	})
}

func (f fakeChangeOrders) MarkLineItemUnbilled(_ context.Context, id, lineItemID string) (entities.ChangeOrder, error) {
	return f.mutate("changeOrders.MarkLineItemUnbilled", id, func(co *entities.ChangeOrder) {
		for i := range co.LineItems {
			if co.LineItems[i].ID == lineItemID {
				co.LineItems[i].Billed = false
				co.LineItems[i].InvoiceLineItemID = ""
			}
		}
	})
}

// ---- expenses

type fakeExpenses struct{ *memStore }

var _ interfaces.IExpenseRepository = fakeExpenses{}

func (f fakeExpenses) Create(_ context.Context, e entities.Expense) (entities.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track(e.ID)
	f.expenses[e.ID] = e
	return e, nil
}

func (f fakeExpenses) GetByID(_ context.Context, id string) (entities.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expenses[id], nil
}

func (f fakeExpenses) list(match func(entities.Expense) bool) []entities.Expense {
	var out []entities.Expense
	for _, e := range f.expenses {
		if match(e) {
			out = append(out, e)
		}
	}
	return sortByInsertion(f.memStore, out, func(e entities.Expense) string { return e.ID })
}

func (f fakeExpenses) ListByProject(_ context.Context, projectID string) ([]entities.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("expenses.ListByProject"); err != nil {
		return nil, err
	}
	return f.list(func(e entities.Expense) bool { return e.ProjectID == projectID }), nil
}

func (f fakeExpenses) ListByInvoiceID(_ context.Context, invoiceID string) ([]entities.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("expenses.ListByInvoiceID"); err != nil {
		return nil, err
	}
	return f.list(func(e entities.Expense) bool { return e.InvoiceID == invoiceID }), nil
}

func (f fakeExpenses) MarkBilled(_ context.Context, id, invoiceID, invoiceLineItemID string) (entities.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("expenses.MarkBilled"); err != nil {
		return entities.Expense{}, err
	}
	e, ok := f.expenses[id]
	if !ok {
		return entities.Expense{}, nil
	}
	e.Billed, e.InvoiceID, e.InvoiceLineItemID = true, invoiceID, invoiceLineItemID
	f.expenses[id] = e
	return e, nil
}

func (f fakeExpenses) MarkUnbilled(_ context.Context, id string) (entities.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("expenses.MarkUnbilled"); err != nil {
		return entities.Expense{}, err
	}
	e, ok := f.expenses[id]
	if !ok {
		return entities.Expense{}, nil
	}
	e.Billed, e.InvoiceID, e.InvoiceLineItemID = false, "", ""
	f.expenses[id] = e
	return e, nil
}

// ---- time entries and jobs

type fakeTimeEntries struct{ *memStore }

var _ interfaces.ITimeEntryRepository = fakeTimeEntries{}

func (f fakeTimeEntries) Create(_ context.Context, te entities.TimeEntry) (entities.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track(te.ID)
	f.timeEntries[te.ID] = te
	return te, nil
}

func (f fakeTimeEntries) GetByID(_ context.Context, id string) (entities.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timeEntries[id], nil
}

func (f fakeTimeEntries) list(match func(entities.TimeEntry) bool) []entities.TimeEntry {
	var out []entities.TimeEntry
	for _, te := range f.timeEntries {
		if match(te) {
			out = append(out, te)
		}
	}
	return sortByInsertion(f.memStore, out, func(t entities.TimeEntry) string { return t.ID })
}

func (f fakeTimeEntries) ListByProject(_ context.Context, projectID string) ([]entities.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(t entities.TimeEntry) bool { return t.ProjectID == projectID }), nil
}

func (f fakeTimeEntries) ListByInvoiceID(_ context.Context, invoiceID string) ([]entities.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(t entities.TimeEntry) bool { return t.InvoiceID == invoiceID }), nil
}

func (f fakeTimeEntries) MarkBilled(_ context.Context, id, invoiceID, invoiceLineItemID string) (entities.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("timeEntries.MarkBilled"); err != nil {
		return entities.TimeEntry{}, err
	}
	te, ok := f.timeEntries[id]
	if !ok {
		return entities.TimeEntry{}, nil
	}
	te.Billed, te.InvoiceID, te.InvoiceLineItemID = true, invoiceID, invoiceLineItemID
	f.timeEntries[id] = te
	return te, nil
}

func (f fakeTimeEntries) MarkUnbilled(_ context.Context, id string) (entities.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	te, ok := f.timeEntries[id]
	if !ok {
		return entities.TimeEntry{}, nil
	}
	te.Billed, te.InvoiceID, te.InvoiceLineItemID = false, "", ""
	f.timeEntries[id] = te
	return te, nil
}

type fakeJobs struct{ *memStore }

var _ interfaces.IJobRepository = fakeJobs{}

func (f fakeJobs) Create(_ context.Context, j entities.Job) (entities.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.track(j.ID)
	f.jobs[j.ID] = j
	return j, nil
}

func (f fakeJobs) GetByID(_ context.Context, id string) (entities.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id], nil
}

func (f fakeJobs) ListByProject(_ context.Context, projectID string) ([]entities.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Job
	for _, j := range f.jobs {
		if j.ProjectID == projectID {
			out = append(out, j)
		}
	}
	return sortByInsertion(f.memStore, out, func(j entities.Job) string { return j.ID }), nil
}

// ---- invoices

type fakeInvoices struct{ *memStore }

var _ interfaces.IInvoiceRepository = fakeInvoices{}

func (f fakeInvoices) Create(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("invoices.Create"); err != nil {
		return entities.Invoice{}, err
	}
	f.track(inv.ID)
	f.invoices[inv.ID] = inv
	return inv, nil
}

func (f fakeInvoices) GetByID(_ context.Context, id string) (entities.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("invoices.GetByID"); err != nil {
		return entities.Invoice{}, err
	}
	return f.invoices[id], nil
}

func (f fakeInvoices) ListByProject(_ context.Context, projectID string) ([]entities.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Invoice
	for _, inv := range f.invoices {
		if inv.ProjectID == projectID {
			out = append(out, inv)
		}
	}
	return sortByInsertion(f.memStore, out, func(i entities.Invoice) string { return i.ID }), nil
}

func (f fakeInvoices) mutate(op, id string, fn func(*entities.Invoice)) (entities.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(op); err != nil {
		return entities.Invoice{}, err
	}
	inv, ok := f.invoices[id]
	if !ok {
		return entities.Invoice{}, nil
	}
	fn(&inv)
	f.invoices[id] = inv
	return inv, nil
}

func (f fakeInvoices) ReplaceLineItems(_ context.Context, id string, items []entities.InvoiceLineItem, total decimal.Decimal) (entities.Invoice, error) {
	return f.mutate("invoices.ReplaceLineItems", id, func(inv *entities.Invoice) {
		inv.LineItems = append([]entities.InvoiceLineItem(nil), items...)
		inv.TotalAmount = total
	})
}

func (f fakeInvoices) UpdateStatus(_ context.Context, id string, status entities.InvoiceStatus) (entities.Invoice, error) {
	return f.mutate("invoices.UpdateStatus", id, func(inv *entities.Invoice) { inv.Status = status })
}

func (f fakeInvoices) AddAmountPaid(_ context.Context, id string, delta decimal.Decimal) (entities.Invoice, error) {
	return f.mutate("invoices.AddAmountPaid", id, func(inv *entities.Invoice) { inv.AmountPaid = inv.AmountPaid.Add(delta) })
}

func (f fakeInvoices) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("invoices.Delete"); err != nil {
		return err
	}
	delete(f.invoices, id)
	return nil
}

// ---- payments

type fakePayments struct{ *memStore }

var _ interfaces.IPaymentRepository = fakePayments{}

func (f fakePayments) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("payments.Create"); err != nil {
		return entities.Payment{}, err
	}
	f.track(p.ID)
	f.payments[p.ID] = p
	return p, nil
}

func (f fakePayments) GetByID(_ context.Context, id string) (entities.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payments[id], nil
}

func (f fakePayments) list(match func(entities.Payment) bool) []entities.Payment {
	var out []entities.Payment
	for _, p := range f.payments {
		if match(p) {
			out = append(out, p)
		}
	}
	return sortByInsertion(f.memStore, out, func(p entities.Payment) string { return p.ID })
}

func (f fakePayments) ListByInvoiceID(_ context.Context, invoiceID string) ([]entities.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(p entities.Payment) bool { return p.InvoiceID == invoiceID }), nil
}

func (f fakePayments) ListByProject(_ context.Context, projectID string) ([]entities.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(p entities.Payment) bool { return p.ProjectID == projectID }), nil
}

func (f fakePayments) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.payments, id)
	return nil
}

// ---- ledger, blueprints, sequences

type fakeLedger struct{ *memStore }

var _ interfaces.ILedgerRepository = fakeLedger{}

func (f fakeLedger) Append(_ context.Context, e entities.LedgerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("ledger.Append"); err != nil {
		return err
	}
	f.ledger = append(f.ledger, e)
	return nil
}

func (f fakeLedger) ListByProject(_ context.Context, projectID string) ([]entities.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.LedgerEntry
	for i := len(f.ledger) - 1; i >= 0; i-- {
		if f.ledger[i].ProjectID == projectID {
			out = append(out, f.ledger[i])
		}
	}
	return out, nil
}

type fakeBlueprints struct{ *memStore }

var _ interfaces.IBlueprintRepository = fakeBlueprints{}

func (f fakeBlueprints) Create(_ context.Context, b entities.BlueprintOfValues) (entities.BlueprintOfValues, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("blueprints.Create"); err != nil {
		return entities.BlueprintOfValues{}, err
	}
	f.track(b.ID)
	f.blueprints[b.ID] = b
	return b, nil
}

func (f fakeBlueprints) GetByID(_ context.Context, id string) (entities.BlueprintOfValues, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blueprints[id], nil
}

func (f fakeBlueprints) ListByProject(_ context.Context, projectID string) ([]entities.BlueprintOfValues, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.BlueprintOfValues
	for _, b := range f.blueprints {
		if b.ProjectID == projectID {
			out = append(out, b)
		}
	}
	return sortByInsertion(f.memStore, out, func(b entities.BlueprintOfValues) string { return b.ID }), nil
}

type fakeSequences struct{ *memStore }

var _ interfaces.ISequenceRepository = fakeSequences{}

func (f fakeSequences) Next(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("sequences.Next"); err != nil {
		return 0, err
	}
	f.sequences[key]++
	return f.sequences[key], nil
}

// ---- wiring

// engine is every use case wired over one memStore.
type engine struct {
	store      *memStore
	ledger     *LedgerUseCase
	tracker    *BillingTracker
	generator  *InvoiceGenerator
	invoices   *InvoiceUseCase
	payments   *PaymentUseCase
	blueprints *BlueprintUseCase
	estimates  *EstimateUseCase
	changes    *ChangeOrderUseCase
	finance    *ProjectFinanceUseCase
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	s := newMemStore()
	log := zap.NewNop()

	ledger := NewLedgerUseCase(fakeProjects{s}, fakeLedger{s}, log)
	tracker := NewBillingTracker(fakeChangeOrders{s}, fakeExpenses{s}, fakeTimeEntries{s}, log)
	numbers := NewDocumentNumbers(fakeSequences{s})
	gen := NewInvoiceGenerator(GeneratorDeps{
		Projects:     fakeProjects{s},
		Estimates:    fakeEstimates{s},
		ChangeOrders: fakeChangeOrders{s},
		Expenses:     fakeExpenses{s},
		TimeEntries:  fakeTimeEntries{s},
		Jobs:         fakeJobs{s},
		Invoices:     fakeInvoices{s},
	}, tracker, ledger, numbers, log)
	bov := NewBlueprintUseCase(fakeBlueprints{s}, fakeEstimates{s}, numbers, log)

	return &engine{
		store:      s,
		ledger:     ledger,
		tracker:    tracker,
		generator:  gen,
		invoices:   NewInvoiceUseCase(fakeInvoices{s}, tracker, ledger, log),
		payments:   NewPaymentUseCase(fakePayments{s}, fakeInvoices{s}, ledger, log),
		blueprints: bov,
		estimates:  NewEstimateUseCase(fakeEstimates{s}, bov, gen, log),
		changes:    NewChangeOrderUseCase(fakeChangeOrders{s}, ledger, log),
		finance: NewProjectFinanceUseCase(FinanceDeps{
			Projects:     fakeProjects{s},
			Estimates:    fakeEstimates{s},
			ChangeOrders: fakeChangeOrders{s},
			Invoices:     fakeInvoices{s},
			Payments:     fakePayments{s},
			Expenses:     fakeExpenses{s},
			TimeEntries:  fakeTimeEntries{s},
			Jobs:         fakeJobs{s},
		}, ledger, log),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Seed helpers write straight to the store.

func (e *engine) seedProject(id, estimateID string) entities.Project {
	p := entities.Project{ID: id, EstimateID: estimateID, PersonID: "person-1", Name: "Kitchen remodel"}
	e.store.projects[id] = p
	return p
}

func (e *engine) seedEstimate(est entities.Estimate) {
	e.store.estimates[est.ID] = est
}

func (e *engine) seedChangeOrder(co entities.ChangeOrder) {
	e.store.track(co.ID)
	e.store.changeOrders[co.ID] = co
}

func (e *engine) seedExpense(x entities.Expense) {
	e.store.track(x.ID)
	e.store.expenses[x.ID] = x
}

func (e *engine) seedJob(j entities.Job) {
	e.store.track(j.ID)
	e.store.jobs[j.ID] = j
}

func (e *engine) seedTimeEntry(te entities.TimeEntry) {
	e.store.track(te.ID)
	e.store.timeEntries[te.ID] = te
}

func (e *engine) project(id string) entities.Project { return e.store.projects[id] }
func (e *engine) invoice(id string) entities.Invoice { return e.store.invoices[id] }
func (e *engine) expense(id string) entities.Expense { return e.store.expenses[id] }
func (e *engine) entry(id string) entities.TimeEntry { return e.store.timeEntries[id] }
func (e *engine) co(id string) entities.ChangeOrder { return e.store.changeOrders[id] }
func (e *engine) estimate(id string) entities.Estimate { return e.store.estimates[id] }

// acceptedEstimate is a two-item estimate with a 10% discount.
func acceptedEstimate(id, projectID string) entities.Estimate {
	return entities.Estimate{
		ID:             id,
		EstimateNumber: "EST-100",
		ProjectID:      projectID,
		Status:         entities.EstimateStatusAccepted,
		SubtotalAmount: dec("5000"),
		DiscountType:   entities.DiscountTypePercentage,
		DiscountValue:  dec("10"),
		TotalAmount:    dec("4500"),
		LineItems: []entities.EstimateLineItem{
			{ID: "eli-1", Description: "Cabinets", Quantity: dec("10"), Unit: "each", UnitCost: dec("250"), Total: dec("3000"), SortOrder: 0},
			{ID: "eli-2", Description: "Labor", Quantity: dec("20"), Unit: "hour", UnitCost: dec("80"), Total: dec("2000"), SortOrder: 1},
		},
	}
}
