package usecase

import (
	"context"
	"testing"

	"project_billing/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, status entities.ChangeOrderStatus) *engine {
		e := newEngine(t)
		e.store.projects["p1"] = entities.Project{ID: "p1", BudgetAmount: dec("10000")}
		e.seedChangeOrder(entities.ChangeOrder{ID: "co-1", CONumber: "3", ProjectID: "p1", Status: status, CostImpact: dec("1200")})
		return e
	}

	t.Run("approval raises the budget", func(t *testing.T) {
		e := seed(t, entities.ChangeOrderStatusPending)
		co, err := e.changes.UpdateStatus(ctx, "co-1", entities.ChangeOrderStatusApproved, "pm")
		require.NoError(t, err)
		assert.Equal(t, entities.ChangeOrderStatusApproved, co.Status)
		assert.True(t, dec("11200").Equal(e.project("p1").BudgetAmount))
		require.Len(t, e.store.ledger, 1)
		assert.Equal(t, entities.TransactionChangeOrderApproved, e.store.ledger[0].TransactionType)
		assert.True(t, dec("11200").Equal(e.store.ledger[0].NewBudgetAmount))
	})

	t.Run("completing an approved order books nothing", func(t *testing.T) {
		e := seed(t, entities.ChangeOrderStatusApproved)
		_, err := e.changes.UpdateStatus(ctx, "co-1", entities.ChangeOrderStatusCompleted, "")
		require.NoError(t, err)
		assert.Empty(t, e.store.ledger)
	})

	t.Run("rejecting an approved order lowers the budget", func(t *testing.T) {
		e := seed(t, entities.ChangeOrderStatusApproved)
		_, err := e.changes.UpdateStatus(ctx, "co-1", entities.ChangeOrderStatusRejected, "")
		require.NoError(t, err)
		assert.True(t, dec("8800").Equal(e.project("p1").BudgetAmount))
		assert.Equal(t, entities.TransactionChangeOrderUnapproved, e.store.ledger[0].TransactionType)
	})

	t.Run("billed order cannot be unapproved", func(t *testing.T) {
		e := seed(t, entities.ChangeOrderStatusApproved)
		co := e.co("co-1")
		co.Billed, co.InvoiceID = true, "inv-1"
		e.store.changeOrders["co-1"] = co

		_, err := e.changes.UpdateStatus(ctx, "co-1", entities.ChangeOrderStatusRejected, "")
		assert.ErrorIs(t, err, ErrChangeOrderBilled)
		assert.Equal(t, entities.ChangeOrderStatusApproved, e.co("co-1").Status)
	})

	t.Run("unknown status and id", func(t *testing.T) {
		e := seed(t, entities.ChangeOrderStatusPending)
		_, err := e.changes.UpdateStatus(ctx, "co-1", "Done", "")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		_, err = e.changes.UpdateStatus(ctx, "co-9", entities.ChangeOrderStatusApproved, "")
		assert.ErrorIs(t, err, ErrChangeOrderNotFound)
	})
}
