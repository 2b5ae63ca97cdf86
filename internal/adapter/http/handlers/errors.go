package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"project_billing/internal/usecase"
	"project_billing/pkg"

	"github.com/gin-gonic/gin"
)

// ActorHeader names the user performing a mutation. It is recorded on
// ledger entries, payments and status changes.
const ActorHeader = "X-Actor"

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
)

type errorMapping struct {
	target  error
	code    string
	message string
	status  int
}

// Specific errors come first; the kind sentinels close each group.
var errorMappings = []errorMapping{
	{usecase.ErrProjectNotFound, "PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound},
	{usecase.ErrEstimateNotFound, "ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound},
	{usecase.ErrChangeOrderNotFound, "CHANGE_ORDER_NOT_FOUND", "Change order not found", http.StatusNotFound},
	{usecase.ErrExpenseNotFound, "EXPENSE_NOT_FOUND", "Expense not found", http.StatusNotFound},
	{usecase.ErrTimeEntryNotFound, "TIME_ENTRY_NOT_FOUND", "Time entry not found", http.StatusNotFound},
	{usecase.ErrJobNotFound, "JOB_NOT_FOUND", "Job not found", http.StatusNotFound},
	{usecase.ErrInvoiceNotFound, "INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound},
	{usecase.ErrPaymentNotFound, "PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound},
	{usecase.ErrBlueprintNotFound, "BLUEPRINT_NOT_FOUND", "Blueprint of values not found", http.StatusNotFound},
	{usecase.ErrNotFound, "NOT_FOUND", "Resource not found", http.StatusNotFound},

	{usecase.ErrInvalidTransition, "INVALID_TRANSITION", "Status transition not allowed", http.StatusUnprocessableEntity},
	{usecase.ErrNoLinkedEstimate, "NO_LINKED_ESTIMATE", "Project has no linked estimate", http.StatusUnprocessableEntity},
	{usecase.ErrEstimateNotAccepted, "ESTIMATE_NOT_ACCEPTED", "Estimate has not been accepted", http.StatusUnprocessableEntity},
	{usecase.ErrNoBillableItems, "NO_BILLABLE_ITEMS", "Nothing left to bill", http.StatusUnprocessableEntity},
	{usecase.ErrInvoiceVoid, "INVOICE_VOID", "Invoice is void", http.StatusUnprocessableEntity},
	{usecase.ErrChangeOrderBilled, "CHANGE_ORDER_BILLED", "Change order already billed", http.StatusUnprocessableEntity},
	{usecase.ErrSourceNotLinkable, "SOURCE_NOT_LINKABLE", "Source cannot be billed on this invoice", http.StatusUnprocessableEntity},
	{usecase.ErrInvalidAmount, "INVALID_AMOUNT", "Amount must be greater than zero", http.StatusBadRequest},
	{usecase.ErrInvalidStatus, "INVALID_STATUS", "Unknown status", http.StatusBadRequest},
	{usecase.ErrValidation, "INVALID_REQUEST", "Invalid request", http.StatusBadRequest},
}

func mapUseCaseError(err error) *pkg.AppError {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return pkg.NewDomainError(m.code, m.message, err, m.status)
		}
	}
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}

// mapGenerationError reports an invoice that was stored but not fully
// linked to its sources, so clients can repair or delete it.
func mapGenerationError(invoiceID string, err error) *pkg.AppError {
	if invoiceID != "" && errors.Is(err, usecase.ErrPersistence) {
		msg := fmt.Sprintf("Invoice %s was created but not every source was marked billed", invoiceID)
		return pkg.NewDomainError("INVOICE_PARTIALLY_BILLED", msg, err, http.StatusInternalServerError)
	}
	return mapUseCaseError(err)
}

// writeError attaches the full error to the context for the request logger
// and replies with the public body only.
func writeError(c *gin.Context, appErr *pkg.AppError) {
	_ = c.Error(appErr)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func actor(c *gin.Context) string {
	return c.GetHeader(ActorHeader)
}
