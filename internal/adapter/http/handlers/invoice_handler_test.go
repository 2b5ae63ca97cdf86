package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"project_billing/internal/adapter/http/handlers/mocks"
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type invoiceFixture struct {
	gen      *mocks.MockIInvoiceGenerator
	invoices *mocks.MockIInvoiceUseCase
	recorder *countingRecorder
	router   *gin.Engine
}

func newInvoiceFixture(t *testing.T) invoiceFixture {
	ctrl := gomock.NewController(t)
	f := invoiceFixture{
		gen:      mocks.NewMockIInvoiceGenerator(ctrl),
		invoices: mocks.NewMockIInvoiceUseCase(ctrl),
		recorder: newCountingRecorder(),
		router:   gin.New(),
	}
	h := NewInvoiceHandler(f.gen, f.invoices, f.recorder)
	f.router.POST("/v1/projects/:project_id/invoices/estimate", h.GenerateFromEstimate)
	f.router.POST("/v1/projects/:project_id/invoices/change-orders", h.GenerateFromChangeOrders)
	f.router.POST("/v1/projects/:project_id/invoices/expenses", h.GenerateFromExpenses)
	f.router.POST("/v1/projects/:project_id/invoices/time-entries", h.GenerateFromTimeEntries)
	f.router.POST("/v1/projects/:project_id/invoices/comprehensive", h.GenerateComprehensive)
	f.router.GET("/v1/projects/:project_id/invoices", h.ListByProject)
	f.router.GET("/v1/invoices/:id", h.GetByID)
	f.router.PUT("/v1/invoices/:id/line-items", h.ReplaceLineItems)
	f.router.PATCH("/v1/invoices/:id/status", h.UpdateStatus)
	f.router.DELETE("/v1/invoices/:id", h.Delete)
	return f
}

func TestInvoiceHandler_GenerateFromEstimate(t *testing.T) {
	const path = "/v1/projects/p1/invoices/estimate"

	t.Run("invalid json", func(t *testing.T) {
		f := newInvoiceFixture(t)
		expectStatus(t, perform(f.router, http.MethodPost, path, "{"), http.StatusBadRequest)
	})

	t.Run("unknown mode", func(t *testing.T) {
		f := newInvoiceFixture(t)
		expectStatus(t, perform(f.router, http.MethodPost, path, `{"mode":"half"}`), http.StatusBadRequest)
	})

	t.Run("malformed due date", func(t *testing.T) {
		f := newInvoiceFixture(t)
		expectStatus(t, perform(f.router, http.MethodPost, path, `{"mode":"all","due_date":"01/02/2026"}`), http.StatusBadRequest)
	})

	t.Run("deposit", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.gen.EXPECT().GenerateFromEstimate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req usecase.EstimateInvoiceRequest) (string, error) {
				mode, ok := req.Mode.(usecase.EstimateDepositMode)
				if !ok || !mode.Percentage.Equal(decimal.NewFromInt(20)) {
					t.Fatalf("unexpected mode %#v", req.Mode)
				}
				if req.ProjectID != "p1" || req.Actor != "ana" {
					t.Fatalf("unexpected request %+v", req)
				}
				return "inv-1", nil
			})

		w := perform(f.router, http.MethodPost, path, `{"mode":"deposit","deposit_percentage":20,"due_date":"2026-11-30"}`)
		expectStatus(t, w, http.StatusCreated)
		if decodeBody(t, w)["invoice_id"] != "inv-1" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
		if f.recorder.invoices["estimate"] != 1 {
			t.Fatalf("expected one recorded invoice, got %v", f.recorder.invoices)
		}
	})

	t.Run("estimate not accepted", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.gen.EXPECT().GenerateFromEstimate(gomock.Any(), gomock.Any()).Return("", usecase.ErrEstimateNotAccepted)

		w := perform(f.router, http.MethodPost, path, `{"mode":"all"}`)
		expectStatus(t, w, http.StatusUnprocessableEntity)
		expectCode(t, w, "ESTIMATE_NOT_ACCEPTED")
		if len(f.recorder.invoices) != 0 {
			t.Fatalf("failed generation must not be recorded")
		}
	})

	t.Run("stored but not fully billed", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.gen.EXPECT().GenerateFromEstimate(gomock.Any(), gomock.Any()).
			Return("inv-9", fmt.Errorf("%w: mark billed: timeout", usecase.ErrPersistence))

		w := perform(f.router, http.MethodPost, path, `{"mode":"selected","item_ids":["l1"]}`)
		expectStatus(t, w, http.StatusInternalServerError)
		body := decodeBody(t, w)
		if body["code"] != "INVOICE_PARTIALLY_BILLED" || !strings.Contains(body["message"].(string), "inv-9") {
			t.Fatalf("unexpected body %v", body)
		}
	})
}

func TestInvoiceHandler_GenerateFromOtherSources(t *testing.T) {
	t.Run("change orders require ids", func(t *testing.T) {
		f := newInvoiceFixture(t)
		w := perform(f.router, http.MethodPost, "/v1/projects/p1/invoices/change-orders", `{"change_order_ids":[]}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("change orders", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.gen.EXPECT().GenerateFromChangeOrders(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req usecase.ChangeOrderInvoiceRequest) (string, error) {
				if len(req.ChangeOrderIDs) != 2 {
					t.Fatalf("unexpected ids %v", req.ChangeOrderIDs)
				}
				return "inv-2", nil
			})
		w := perform(f.router, http.MethodPost, "/v1/projects/p1/invoices/change-orders", `{"change_order_ids":["co1","co2"]}`)
		expectStatus(t, w, http.StatusCreated)
		if f.recorder.invoices["change_orders"] != 1 {
			t.Fatalf("unexpected recorder %v", f.recorder.invoices)
		}
	})

	t.Run("expenses carry the markup", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.gen.EXPECT().GenerateFromExpenses(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req usecase.ExpenseInvoiceRequest) (string, error) {
				if !req.MarkupPercentage.Equal(decimal.NewFromInt(10)) {
					t.Fatalf("unexpected markup %s", req.MarkupPercentage)
				}
				return "inv-3", nil
			})
		w := perform(f.router, http.MethodPost, "/v1/projects/p1/invoices/expenses", `{"expense_ids":["x1"],"markup_percentage":"10"}`)
		expectStatus(t, w, http.StatusCreated)
	})

	t.Run("expense already billed", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.gen.EXPECT().GenerateFromExpenses(gomock.Any(), gomock.Any()).Return("", usecase.ErrNoBillableItems)
		w := perform(f.router, http.MethodPost, "/v1/projects/p1/invoices/expenses", `{"expense_ids":["x1"]}`)
		expectStatus(t, w, http.StatusUnprocessableEntity)
		expectCode(t, w, "NO_BILLABLE_ITEMS")
	})

	t.Run("detailed time entries", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.gen.EXPECT().GenerateFromTimeEntries(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req usecase.TimeEntryInvoiceRequest) (string, error) {
				if !req.Detailed || len(req.TimeEntryIDs) != 1 {
					t.Fatalf("unexpected request %+v", req)
				}
				return "inv-4", nil
			})
		w := perform(f.router, http.MethodPost, "/v1/projects/p1/invoices/time-entries", `{"time_entry_ids":["te1"],"detailed":true}`)
		expectStatus(t, w, http.StatusCreated)
	})

	t.Run("comprehensive", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.gen.EXPECT().GenerateComprehensiveInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req usecase.ComprehensiveInvoiceRequest) (string, error) {
				if !req.IncludeEstimate || len(req.ExpenseIDs) != 1 || len(req.TimeEntryIDs) != 0 {
					t.Fatalf("unexpected request %+v", req)
				}
				return "inv-5", nil
			})
		w := perform(f.router, http.MethodPost, "/v1/projects/p1/invoices/comprehensive", `{"include_estimate":true,"expense_ids":["x1"]}`)
		expectStatus(t, w, http.StatusCreated)
		if f.recorder.invoices["comprehensive"] != 1 {
			t.Fatalf("unexpected recorder %v", f.recorder.invoices)
		}
	})
}

func TestInvoiceHandler_Maintenance(t *testing.T) {
	t.Run("get by id", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.invoices.EXPECT().GetByID(gomock.Any(), "inv-1").Return(entities.Invoice{
			ID:          "inv-1",
			Status:      entities.InvoiceStatusPartiallyPaid,
			TotalAmount: decimal.NewFromInt(2000),
			AmountPaid:  decimal.NewFromInt(500),
		}, nil)
		w := perform(f.router, http.MethodGet, "/v1/invoices/inv-1", "")
		expectStatus(t, w, http.StatusOK)
		if decodeBody(t, w)["balance"] != "1500" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("missing invoice", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.invoices.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Invoice{}, usecase.ErrInvoiceNotFound)
		w := perform(f.router, http.MethodGet, "/v1/invoices/nope", "")
		expectStatus(t, w, http.StatusNotFound)
		expectCode(t, w, "INVOICE_NOT_FOUND")
	})

	t.Run("list by project", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.invoices.EXPECT().ListByProject(gomock.Any(), "p1").Return([]entities.Invoice{{ID: "a"}, {ID: "b"}}, nil)
		w := perform(f.router, http.MethodGet, "/v1/projects/p1/invoices", "")
		expectStatus(t, w, http.StatusOK)
		if !strings.HasPrefix(w.Body.String(), "[") || strings.Count(w.Body.String(), `"invoice_number"`) != 2 {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("replace line items needs descriptions", func(t *testing.T) {
		f := newInvoiceFixture(t)
		w := perform(f.router, http.MethodPut, "/v1/invoices/inv-1/line-items", `{"items":[{"total":10}]}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("replace line items", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.invoices.EXPECT().ReplaceLineItems(gomock.Any(), "inv-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req usecase.ReplaceLineItemsRequest) (entities.Invoice, error) {
				if len(req.Items) != 2 || req.Actor != "ana" || req.Items[1].LinkedExpenseID != "x1" {
					t.Fatalf("unexpected request %+v", req)
				}
				return entities.Invoice{ID: "inv-1", TotalAmount: decimal.NewFromInt(110)}, nil
			})
		body := `{"items":[{"description":"Materials","is_section_header":true},{"description":"Lumber","quantity":1,"unit_price":110,"linked_expense_id":"x1"}]}`
		w := perform(f.router, http.MethodPut, "/v1/invoices/inv-1/line-items", body)
		expectStatus(t, w, http.StatusOK)
		if decodeBody(t, w)["total_amount"] != "110" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("status transition refused", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.invoices.EXPECT().UpdateStatus(gomock.Any(), "inv-1", entities.InvoiceStatusPaid, "ana").Return(entities.Invoice{}, usecase.ErrInvalidTransition)
		w := perform(f.router, http.MethodPatch, "/v1/invoices/inv-1/status", `{"status":"Paid"}`)
		expectStatus(t, w, http.StatusUnprocessableEntity)
		expectCode(t, w, "INVALID_TRANSITION")
	})

	t.Run("status requires a value", func(t *testing.T) {
		f := newInvoiceFixture(t)
		expectStatus(t, perform(f.router, http.MethodPatch, "/v1/invoices/inv-1/status", `{}`), http.StatusBadRequest)
	})

	t.Run("delete", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.invoices.EXPECT().Delete(gomock.Any(), "inv-1", "ana").Return(nil)
		expectStatus(t, perform(f.router, http.MethodDelete, "/v1/invoices/inv-1", ""), http.StatusNoContent)
	})

	t.Run("delete storage failure", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.invoices.EXPECT().Delete(gomock.Any(), "inv-1", "ana").Return(fmt.Errorf("%w: delete: timeout", usecase.ErrPersistence))
		w := perform(f.router, http.MethodDelete, "/v1/invoices/inv-1", "")
		expectStatus(t, w, http.StatusInternalServerError)
		if strings.Contains(w.Body.String(), "timeout") {
			t.Fatalf("internal cause leaked: %s", w.Body.String())
		}
	})
}
