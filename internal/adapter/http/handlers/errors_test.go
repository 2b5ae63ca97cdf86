package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"project_billing/internal/usecase"
)

func TestMapUseCaseError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"invoice not found", fmt.Errorf("load: %w", usecase.ErrInvoiceNotFound), "INVOICE_NOT_FOUND", http.StatusNotFound},
		{"generic not found", fmt.Errorf("%w: thing", usecase.ErrNotFound), "NOT_FOUND", http.StatusNotFound},
		{"transition", usecase.ErrInvalidTransition, "INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{"foreign source", fmt.Errorf("%w: expense x1 is billed on another invoice", usecase.ErrSourceNotLinkable), "SOURCE_NOT_LINKABLE", http.StatusUnprocessableEntity},
		{"void", usecase.ErrInvoiceVoid, "INVOICE_VOID", http.StatusUnprocessableEntity},
		{"amount", usecase.ErrInvalidAmount, "INVALID_AMOUNT", http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: notes too long", usecase.ErrValidation), "INVALID_REQUEST", http.StatusBadRequest},
		{"persistence", fmt.Errorf("%w: save: %w", usecase.ErrPersistence, errors.New("timeout")), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapUseCaseError(tc.err)
			if got.Code != tc.code || got.HTTPStatus != tc.status {
				t.Fatalf("expected %s/%d, got %s/%d", tc.code, tc.status, got.Code, got.HTTPStatus)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("mapped error should wrap the cause")
			}
		})
	}
}

func TestMapGenerationError(t *testing.T) {
	partial := fmt.Errorf("%w: mark billed: %w", usecase.ErrPersistence, errors.New("timeout"))

	got := mapGenerationError("inv-1", partial)
	if got.Code != "INVOICE_PARTIALLY_BILLED" || !strings.Contains(got.Message, "inv-1") {
		t.Fatalf("unexpected mapping: %+v", got)
	}

	if got := mapGenerationError("", partial); got.Code != "INTERNAL_ERROR" {
		t.Fatalf("without an invoice id the failure is internal, got %s", got.Code)
	}
	if got := mapGenerationError("inv-1", usecase.ErrNoBillableItems); got.Code != "NO_BILLABLE_ITEMS" {
		t.Fatalf("unexpected mapping: %+v", got)
	}
}
