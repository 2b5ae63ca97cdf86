package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"project_billing/internal/adapter/http/handlers/mocks"
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(t *testing.T) (*mocks.MockIPaymentUseCase, *countingRecorder, *gin.Engine) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	rec := newCountingRecorder()
	h := NewPaymentHandler(uc, rec)

	r := gin.New()
	r.POST("/v1/invoices/:id/payments", h.RecordPayment)
	r.GET("/v1/invoices/:id/payments", h.ListByInvoice)
	r.GET("/v1/payments/:id", h.GetByID)
	r.DELETE("/v1/payments/:id", h.DeletePayment)
	return uc, rec, r
}

func TestPaymentHandler_RecordPayment(t *testing.T) {
	const path = "/v1/invoices/inv-1/payments"

	t.Run("invalid json", func(t *testing.T) {
		_, _, r := newPaymentRouter(t)
		expectStatus(t, perform(r, http.MethodPost, path, "{"), http.StatusBadRequest)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, _, r := newPaymentRouter(t)
		expectStatus(t, perform(r, http.MethodPost, path, `{"amount":10,"method":"barter"}`), http.StatusBadRequest)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, _, r := newPaymentRouter(t)
		expectStatus(t, perform(r, http.MethodPost, path, `{"amount":10,"payment_date":"yesterday"}`), http.StatusBadRequest)
	})

	t.Run("non positive amount", func(t *testing.T) {
		uc, rec, r := newPaymentRouter(t)
		uc.EXPECT().RecordPayment(gomock.Any(), "inv-1", gomock.Any()).Return(entities.Payment{}, usecase.ErrInvalidAmount)

		w := perform(r, http.MethodPost, path, `{"amount":0}`)
		expectStatus(t, w, http.StatusBadRequest)
		expectCode(t, w, "INVALID_AMOUNT")
		if rec.payments != 0 {
			t.Fatalf("rejected payment must not be recorded")
		}
	})

	t.Run("void invoice", func(t *testing.T) {
		uc, _, r := newPaymentRouter(t)
		uc.EXPECT().RecordPayment(gomock.Any(), "inv-1", gomock.Any()).Return(entities.Payment{}, usecase.ErrInvoiceVoid)

		w := perform(r, http.MethodPost, path, `{"amount":10}`)
		expectStatus(t, w, http.StatusUnprocessableEntity)
		expectCode(t, w, "INVOICE_VOID")
	})

	t.Run("success", func(t *testing.T) {
		uc, rec, r := newPaymentRouter(t)
		uc.EXPECT().RecordPayment(gomock.Any(), "inv-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req usecase.PaymentRequest) (entities.Payment, error) {
				if !req.Amount.Equal(decimal.NewFromInt(500)) || req.Method != entities.PaymentMethod("check") || req.Actor != "ana" {
					t.Fatalf("unexpected request %+v", req)
				}
				if !req.PaymentDate.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)) {
					t.Fatalf("unexpected date %v", req.PaymentDate)
				}
				return entities.Payment{ID: "pay-1", InvoiceID: "inv-1", Amount: req.Amount}, nil
			})

		w := perform(r, http.MethodPost, path, `{"amount":"500.00","payment_date":"2026-10-01","method":"check","reference":"#1001"}`)
		expectStatus(t, w, http.StatusCreated)
		body := decodeBody(t, w)
		if body["id"] != "pay-1" || body["amount"] != "500" {
			t.Fatalf("unexpected body %v", body)
		}
		if rec.payments != 1 {
			t.Fatalf("expected one recorded payment, got %d", rec.payments)
		}
	})
}

func TestPaymentHandler_ReadAndDelete(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		uc, _, r := newPaymentRouter(t)
		uc.EXPECT().ListByInvoiceID(gomock.Any(), "inv-1").Return(nil, nil)
		w := perform(r, http.MethodGet, "/v1/invoices/inv-1/payments", "")
		expectStatus(t, w, http.StatusOK)
		if w.Body.String() != "[]" {
			t.Fatalf("expected empty array, got %s", w.Body.String())
		}
	})

	t.Run("get missing", func(t *testing.T) {
		uc, _, r := newPaymentRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "pay-x").Return(entities.Payment{}, usecase.ErrPaymentNotFound)
		w := perform(r, http.MethodGet, "/v1/payments/pay-x", "")
		expectStatus(t, w, http.StatusNotFound)
		expectCode(t, w, "PAYMENT_NOT_FOUND")
	})

	t.Run("delete", func(t *testing.T) {
		uc, _, r := newPaymentRouter(t)
		uc.EXPECT().DeletePayment(gomock.Any(), "pay-1", "ana").Return(nil)
		expectStatus(t, perform(r, http.MethodDelete, "/v1/payments/pay-1", ""), http.StatusNoContent)
	})
}
