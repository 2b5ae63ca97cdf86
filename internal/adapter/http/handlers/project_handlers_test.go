package handlers

import (
	"context"
	"net/http"
	"testing"

	"project_billing/internal/adapter/http/handlers/mocks"
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestChangeOrderHandler(t *testing.T) {
	setup := func(t *testing.T) (*mocks.MockIChangeOrderUseCase, *gin.Engine) {
		uc := mocks.NewMockIChangeOrderUseCase(gomock.NewController(t))
		h := NewChangeOrderHandler(uc)
		r := gin.New()
		r.GET("/v1/projects/:project_id/change-orders", h.ListByProject)
		r.GET("/v1/change-orders/:id", h.GetByID)
		r.PATCH("/v1/change-orders/:id/status", h.UpdateStatus)
		return uc, r
	}

	t.Run("approve", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().UpdateStatus(gomock.Any(), "co1", entities.ChangeOrderStatusApproved, "ana").
			Return(entities.ChangeOrder{ID: "co1", Status: entities.ChangeOrderStatusApproved, CostImpact: decimal.NewFromInt(1500)}, nil)

		w := perform(r, http.MethodPatch, "/v1/change-orders/co1/status", `{"status":"Approved"}`)
		expectStatus(t, w, http.StatusOK)
		if decodeBody(t, w)["cost_impact"] != "1500" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("already billed", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().UpdateStatus(gomock.Any(), "co1", entities.ChangeOrderStatusRejected, "ana").Return(entities.ChangeOrder{}, usecase.ErrChangeOrderBilled)

		w := perform(r, http.MethodPatch, "/v1/change-orders/co1/status", `{"status":"Rejected"}`)
		expectStatus(t, w, http.StatusUnprocessableEntity)
		expectCode(t, w, "CHANGE_ORDER_BILLED")
	})

	t.Run("get and list", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().GetByID(gomock.Any(), "co1").Return(entities.ChangeOrder{ID: "co1"}, nil)
		uc.EXPECT().ListByProject(gomock.Any(), "p1").Return([]entities.ChangeOrder{{ID: "co1"}}, nil)

		expectStatus(t, perform(r, http.MethodGet, "/v1/change-orders/co1", ""), http.StatusOK)
		expectStatus(t, perform(r, http.MethodGet, "/v1/projects/p1/change-orders", ""), http.StatusOK)
	})
}

func TestProjectFinanceHandler(t *testing.T) {
	setup := func(t *testing.T) (*mocks.MockIProjectFinanceUseCase, *gin.Engine) {
		uc := mocks.NewMockIProjectFinanceUseCase(gomock.NewController(t))
		h := NewProjectFinanceHandler(uc)
		r := gin.New()
		r.GET("/v1/projects/:project_id/ledger", h.Ledger)
		r.GET("/v1/projects/:project_id/financial-summary", h.Summary)
		r.GET("/v1/projects/:project_id/reconciliation", h.Reconcile)
		r.POST("/v1/projects/:project_id/adjustments", h.Adjust)
		return uc, r
	}

	t.Run("budget adjustment", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().AdjustBudget(gomock.Any(), "p1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req usecase.AdjustmentRequest) (entities.LedgerEntry, error) {
				if !req.Amount.Equal(decimal.NewFromInt(-250)) || req.Actor != "ana" {
					t.Fatalf("unexpected request %+v", req)
				}
				return entities.LedgerEntry{ID: "le-1", Field: entities.ProjectFieldBudgetAmount, AmountImpact: req.Amount}, nil
			})

		w := perform(r, http.MethodPost, "/v1/projects/p1/adjustments", `{"kind":"budget","amount":-250,"description":"scope cut"}`)
		expectStatus(t, w, http.StatusCreated)
		if decodeBody(t, w)["amount_impact"] != "-250" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("cost adjustment", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().RecordCost(gomock.Any(), "p1", gomock.Any()).Return(entities.LedgerEntry{ID: "le-2"}, nil)
		expectStatus(t, perform(r, http.MethodPost, "/v1/projects/p1/adjustments", `{"kind":"cost","amount":80}`), http.StatusCreated)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, r := setup(t)
		expectStatus(t, perform(r, http.MethodPost, "/v1/projects/p1/adjustments", `{"kind":"tax","amount":1}`), http.StatusBadRequest)
	})

	t.Run("summary of a missing project", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Summary(gomock.Any(), "px").Return(usecase.FinancialSummary{}, usecase.ErrProjectNotFound)
		w := perform(r, http.MethodGet, "/v1/projects/px/financial-summary", "")
		expectStatus(t, w, http.StatusNotFound)
		expectCode(t, w, "PROJECT_NOT_FOUND")
	})

	t.Run("reconciliation and ledger", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Reconcile(gomock.Any(), "p1").Return(usecase.Reconciliation{ProjectID: "p1", Consistent: true}, nil)
		uc.EXPECT().Ledger(gomock.Any(), "p1").Return([]entities.LedgerEntry{{ID: "le-1"}}, nil)

		w := perform(r, http.MethodGet, "/v1/projects/p1/reconciliation", "")
		expectStatus(t, w, http.StatusOK)
		if decodeBody(t, w)["consistent"] != true {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
		expectStatus(t, perform(r, http.MethodGet, "/v1/projects/p1/ledger", ""), http.StatusOK)
	})
}

func TestBlueprintHandler(t *testing.T) {
	uc := mocks.NewMockIBlueprintUseCase(gomock.NewController(t))
	h := NewBlueprintHandler(uc)
	r := gin.New()
	r.GET("/v1/projects/:project_id/blueprints", h.ListByProject)
	r.GET("/v1/blueprints/:id", h.GetByID)

	uc.EXPECT().ListByProject(gomock.Any(), "p1").Return([]entities.BlueprintOfValues{{ID: "bov-1"}}, nil)
	uc.EXPECT().GetByID(gomock.Any(), "bov-x").Return(entities.BlueprintOfValues{}, usecase.ErrBlueprintNotFound)

	expectStatus(t, perform(r, http.MethodGet, "/v1/projects/p1/blueprints", ""), http.StatusOK)
	w := perform(r, http.MethodGet, "/v1/blueprints/bov-x", "")
	expectStatus(t, w, http.StatusNotFound)
	expectCode(t, w, "BLUEPRINT_NOT_FOUND")
}
