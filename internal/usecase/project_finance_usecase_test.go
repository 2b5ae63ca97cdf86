package usecase

import (
	"context"
	"testing"

	"project_billing/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectFinanceUseCase_Summary(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	e.seedProject("p1", "est-1")
	e.seedEstimate(entities.Estimate{ID: "est-1", ProjectID: "p1", Status: entities.EstimateStatusAccepted, TotalAmount: dec("10000")})
	e.seedChangeOrder(entities.ChangeOrder{ID: "co-1", ProjectID: "p1", Status: entities.ChangeOrderStatusApproved, CostImpact: dec("500")})
	e.seedChangeOrder(entities.ChangeOrder{ID: "co-2", ProjectID: "p1", Status: entities.ChangeOrderStatusRejected, CostImpact: dec("900")})
	e.store.invoices["inv-1"] = entities.Invoice{ID: "inv-1", ProjectID: "p1", Status: entities.InvoiceStatusSent, TotalAmount: dec("4000")}
	e.store.invoices["inv-2"] = entities.Invoice{ID: "inv-2", ProjectID: "p1", Status: entities.InvoiceStatusVoid, TotalAmount: dec("700")}
	e.store.payments["pay-1"] = entities.Payment{ID: "pay-1", InvoiceID: "inv-1", ProjectID: "p1", Amount: dec("3000")}
	e.seedExpense(entities.Expense{ID: "x1", ProjectID: "p1", Amount: dec("1200")})
	e.seedJob(entities.Job{ID: "job-1", ProjectID: "p1", HourlyRate: dec("60")})
	e.seedTimeEntry(entities.TimeEntry{ID: "te-1", ProjectID: "p1", JobID: "job-1", Hours: dec("10")})

	s, err := e.finance.Summary(ctx, "p1")
	require.NoError(t, err)

	assert.True(t, dec("10000").Equal(s.EstimateTotal))
	assert.True(t, dec("500").Equal(s.ChangeOrdersTotal))
	assert.True(t, dec("10500").Equal(s.ContractTotal))
	assert.True(t, dec("4000").Equal(s.InvoicedTotal))
	assert.True(t, dec("3000").Equal(s.PaidTotal))
	assert.True(t, dec("1000").Equal(s.Outstanding))
	assert.True(t, dec("1200").Equal(s.ExpensesTotal))
	assert.True(t, dec("600").Equal(s.LaborTotal))
	assert.True(t, dec("1200").Equal(s.Profit))
	assert.True(t, dec("40").Equal(s.MarginPercentage), "margin %s", s.MarginPercentage)

	_, err = e.finance.Summary(ctx, "nope")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectFinanceUseCase_Reconcile(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	e.seedProject("p1", "")

	_, err := e.finance.RecordCost(ctx, "p1", AdjustmentRequest{Amount: dec("250"), Description: "Lumber"})
	require.NoError(t, err)
	_, err = e.finance.AdjustBudget(ctx, "p1", AdjustmentRequest{Amount: dec("5000")})
	require.NoError(t, err)

	rec, err := e.finance.Reconcile(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	require.Len(t, rec.Fields, len(entities.ProjectFields))

	// An aggregate written outside the ledger shows up as drift.
	p := e.project("p1")
	p.TotalInvoicedAmount = dec("99")
	e.store.projects["p1"] = p

	rec, err = e.finance.Reconcile(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	for _, f := range rec.Fields {
		if f.Field == entities.ProjectFieldTotalInvoicedAmount {
			assert.True(t, dec("99").Equal(f.Drift))
		} else {
			assert.True(t, f.Drift.IsZero(), "field %s", f.Field)
		}
	}

	entries, err := e.finance.Ledger(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.TransactionBudgetAdjusted, entries[0].TransactionType)
	assert.Equal(t, "Lumber", entries[1].Description)
}

func TestProjectFinanceUseCase_Adjustments(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	e.seedProject("p1", "")

	_, err := e.finance.RecordCost(ctx, "p1", AdjustmentRequest{Amount: dec("0")})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	entry, err := e.finance.AdjustBudget(ctx, "p1", AdjustmentRequest{Amount: dec("-300"), Reference: "scope-cut"})
	require.NoError(t, err)
	assert.Equal(t, "scope-cut", entry.TransactionID)
	assert.Equal(t, "Budget Adjusted -300.00", entry.Description)
	assert.True(t, dec("-300").Equal(e.project("p1").BudgetAmount))

	_, err = e.finance.RecordCost(ctx, "missing", AdjustmentRequest{Amount: dec("1")})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
