package sqlrepository

import (
	"context"
	"testing"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"
	"project_billing/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type billingStack struct {
	repos     interfaces.Repositories
	estimates *usecase.EstimateUseCase
	generator *usecase.InvoiceGenerator
	invoices  *usecase.InvoiceUseCase
	payments  *usecase.PaymentUseCase
	finance   *usecase.ProjectFinanceUseCase
}

func newBillingStack(t *testing.T) billingStack {
	t.Helper()
	repos := NewRepositories(newTestDB(t))
	log := zap.NewNop()

	ledger := usecase.NewLedgerUseCase(repos.Projects, repos.Ledger, log)
	tracker := usecase.NewBillingTracker(repos.ChangeOrders, repos.Expenses, repos.TimeEntries, log)
	numbers := usecase.NewDocumentNumbers(repos.Sequences)
	gen := usecase.NewInvoiceGenerator(usecase.GeneratorDeps{
		Projects:     repos.Projects,
		Estimates:    repos.Estimates,
		ChangeOrders: repos.ChangeOrders,
		Expenses:     repos.Expenses,
		TimeEntries:  repos.TimeEntries,
		Jobs:         repos.Jobs,
		Invoices:     repos.Invoices,
	}, tracker, ledger, numbers, log)
	bov := usecase.NewBlueprintUseCase(repos.Blueprints, repos.Estimates, numbers, log)

	return billingStack{
		repos:     repos,
		estimates: usecase.NewEstimateUseCase(repos.Estimates, bov, gen, log),
		generator: gen,
		invoices:  usecase.NewInvoiceUseCase(repos.Invoices, tracker, ledger, log),
		payments:  usecase.NewPaymentUseCase(repos.Payments, repos.Invoices, ledger, log),
		finance: usecase.NewProjectFinanceUseCase(usecase.FinanceDeps{
			Projects:     repos.Projects,
			Estimates:    repos.Estimates,
			ChangeOrders: repos.ChangeOrders,
			Invoices:     repos.Invoices,
			Payments:     repos.Payments,
			Expenses:     repos.Expenses,
			TimeEntries:  repos.TimeEntries,
			Jobs:         repos.Jobs,
		}, ledger, log),
	}
}

func seedProject(t *testing.T, s billingStack) {
	t.Helper()
	ctx := context.Background()

	_, err := s.repos.Projects.Create(ctx, entities.Project{ID: "p1", EstimateID: "e1", Name: "Kitchen remodel"})
	require.NoError(t, err)
	_, err = s.repos.Estimates.Create(ctx, entities.Estimate{
		ID:                "e1",
		EstimateNumber:    "EST-1",
		ProjectID:         "p1",
		Status:            entities.EstimateStatusSent,
		SubtotalAmount:    dec("10000"),
		TotalAmount:       dec("10000"),
		DepositRequired:   true,
		DepositPercentage: dec("20"),
		LineItems: []entities.EstimateLineItem{
			{ID: "el1", Description: "Demolition", Quantity: dec("1"), UnitCost: dec("4000"), Total: dec("4000"), SortOrder: 1},
			{ID: "el2", Description: "Cabinets", Quantity: dec("1"), UnitCost: dec("6000"), Total: dec("6000"), SortOrder: 2},
		},
	})
	require.NoError(t, err)
}

func TestBillingFlow_AcceptanceToPayment(t *testing.T) {
	ctx := context.Background()
	s := newBillingStack(t)
	seedProject(t, s)

	res, err := s.estimates.Accept(ctx, "e1", "alice")
	require.NoError(t, err)
	assert.True(t, res.CascadeRan)
	assert.Empty(t, res.Failures)
	require.NotEmpty(t, res.BlueprintID)
	require.NotEmpty(t, res.DepositInvoiceID)

	bov, err := s.repos.Blueprints.GetByID(ctx, res.BlueprintID)
	require.NoError(t, err)
	assert.True(t, bov.TotalAmount.Equal(dec("10000")))
	assert.Len(t, bov.Items, 2)

	inv, err := s.repos.Invoices.GetByID(ctx, res.DepositInvoiceID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceTypeDeposit, inv.InvoiceType)
	assert.True(t, inv.TotalAmount.Equal(dec("2000")), "got %s", inv.TotalAmount)
	assert.Regexp(t, `^INV\d{4}0001$`, inv.InvoiceNumber)

	again, err := s.estimates.ResumeAcceptance(ctx, "e1", "alice")
	require.NoError(t, err)
	assert.Equal(t, res.DepositInvoiceID, again.DepositInvoiceID)
	assert.Equal(t, res.BlueprintID, again.BlueprintID)
	all, err := s.repos.Invoices.ListByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.payments.RecordPayment(ctx, inv.ID, usecase.PaymentRequest{
		Amount:      dec("500"),
		PaymentDate: time.Now().UTC(),
		Method:      entities.PaymentMethodCheck,
		Actor:       "bob",
	})
	require.NoError(t, err)

	inv, err = s.repos.Invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusPartiallyPaid, inv.Status)
	assert.True(t, inv.Balance().Equal(dec("1500")))

	p, err := s.repos.Projects.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.TotalInvoicedAmount.Equal(dec("2000")))
	assert.True(t, p.TotalPaymentsReceived.Equal(dec("500")))

	rec, err := s.finance.Reconcile(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent, "%+v", rec.Fields)
}

func TestBillingFlow_ExpenseInvoiceDeleteReleasesSources(t *testing.T) {
	ctx := context.Background()
	s := newBillingStack(t)
	seedProject(t, s)

	_, err := s.repos.Expenses.Create(ctx, entities.Expense{
		ID:          "x1",
		ProjectID:   "p1",
		Description: "Tile",
		Category:    "materials",
		ExpenseDate: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Amount:      dec("200"),
		Billable:    true,
	})
	require.NoError(t, err)

	id, err := s.generator.GenerateFromExpenses(ctx, usecase.ExpenseInvoiceRequest{
		ProjectID:        "p1",
		ExpenseIDs:       []string{"x1"},
		MarkupPercentage: dec("10"),
	})
	require.NoError(t, err)

	inv, err := s.repos.Invoices.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, inv.TotalAmount.Equal(dec("220")), "got %s", inv.TotalAmount)

	x, err := s.repos.Expenses.GetByID(ctx, "x1")
	require.NoError(t, err)
	assert.True(t, x.Billed)
	assert.Equal(t, id, x.InvoiceID)

	_, err = s.generator.GenerateFromExpenses(ctx, usecase.ExpenseInvoiceRequest{ProjectID: "p1", ExpenseIDs: []string{"x1"}})
	assert.Error(t, err, "a billed expense cannot be invoiced twice")

	require.NoError(t, s.invoices.Delete(ctx, id, "alice"))

	x, err = s.repos.Expenses.GetByID(ctx, "x1")
	require.NoError(t, err)
	assert.True(t, x.Eligible())

	p, err := s.repos.Projects.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.TotalInvoicedAmount.IsZero())

	rec, err := s.finance.Reconcile(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
}
