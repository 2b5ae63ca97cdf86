package usecase

import (
	"context"
	"errors"
	"testing"

	"project_billing/internal/domain/entities"
	mock_interfaces "project_billing/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLedgerUseCase_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("delta and entry agree", func(t *testing.T) {
		e := newEngine(t)
		e.store.projects["p1"] = entities.Project{ID: "p1", ActualCost: dec("100"), BudgetAmount: dec("900")}

		entry, err := e.ledger.Apply(ctx, Adjustment{
			ProjectID:       " p1 ",
			Field:           entities.ProjectFieldActualCost,
			Delta:           dec("25.50"),
			TransactionType: entities.TransactionCostRecorded,
			TransactionID:   "bill-1",
			Actor:           "eve",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, entry.ID)
		assert.True(t, dec("25.50").Equal(entry.AmountImpact))
		assert.True(t, dec("125.50").Equal(entry.NewActualCost))
		assert.True(t, dec("900").Equal(entry.NewBudgetAmount))
		assert.Equal(t, entities.ProjectFieldActualCost, entry.Field)
		assert.False(t, entry.CreatedAt.IsZero())
		assert.True(t, dec("125.50").Equal(e.project("p1").ActualCost))
		require.Len(t, e.store.ledger, 1)
	})

	t.Run("zero delta writes nothing", func(t *testing.T) {
		e := newEngine(t)
		e.seedProject("p1", "")
		entry, err := e.ledger.Apply(ctx, Adjustment{
			ProjectID: "p1", Field: entities.ProjectFieldBudgetAmount, TransactionType: entities.TransactionBudgetAdjusted,
		})
		require.NoError(t, err)
		assert.Empty(t, entry.ID)
		assert.Empty(t, e.store.ledger)
	})

	t.Run("unknown field", func(t *testing.T) {
		e := newEngine(t)
		_, err := e.ledger.Apply(ctx, Adjustment{ProjectID: "p1", Field: "profit", Delta: dec("1"), TransactionType: entities.TransactionCostRecorded})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown project", func(t *testing.T) {
		e := newEngine(t)
		_, err := e.ledger.Apply(ctx, Adjustment{ProjectID: "nope", Field: entities.ProjectFieldActualCost, Delta: dec("1"), TransactionType: entities.TransactionCostRecorded})
		assert.ErrorIs(t, err, ErrProjectNotFound)
		assert.Empty(t, e.store.ledger)
	})

	t.Run("append failure after the aggregate moved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		projects := mock_interfaces.NewMockIProjectRepository(ctrl)
		ledgerRepo := mock_interfaces.NewMockILedgerRepository(ctrl)
		uc := NewLedgerUseCase(projects, ledgerRepo, nil)

		projects.EXPECT().ApplyDelta(gomock.Any(), "p1", entities.ProjectFieldActualCost, gomock.Any()).
			Return(entities.Project{ID: "p1", ActualCost: dec("5")}, nil)
		ledgerRepo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("throttled"))

		_, err := uc.Apply(ctx, Adjustment{ProjectID: "p1", Field: entities.ProjectFieldActualCost, Delta: dec("5"), TransactionType: entities.TransactionCostRecorded})
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestLedgerUseCase_Entries(t *testing.T) {
	e := newEngine(t)
	e.seedProject("p1", "")
	for _, amt := range []string{"1", "2", "3"} {
		_, err := e.ledger.Apply(context.Background(), Adjustment{
			ProjectID: "p1", Field: entities.ProjectFieldActualCost, Delta: dec(amt), TransactionType: entities.TransactionCostRecorded,
		})
		require.NoError(t, err)
	}

	entries, err := e.ledger.Entries(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, dec("3").Equal(entries[0].AmountImpact), "newest first")

	_, err = e.ledger.Entries(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidProjectID)
}
