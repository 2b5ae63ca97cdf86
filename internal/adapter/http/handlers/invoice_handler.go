package handlers

import (
	"net/http"

	request "project_billing/internal/adapter/http/dto/request"
	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/usecase"
	"project_billing/pkg"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=../../../usecase/invoice_generator.go -destination=mocks/invoice_generator_mock.go -package=mocks
//go:generate mockgen -source=../../../usecase/invoice_usecase.go -destination=mocks/invoice_usecase_mock.go -package=mocks

// InvoiceRecorder receives one call per generated invoice.
type InvoiceRecorder interface {
	InvoiceGenerated(source string)
}

type nopRecorder struct{}

func (nopRecorder) InvoiceGenerated(string) {}
func (nopRecorder) PaymentRecorded()        {}

// InvoiceHandler serves invoice generation and invoice maintenance.
type InvoiceHandler struct {
	generator usecase.IInvoiceGenerator
	invoices  usecase.IInvoiceUseCase
	recorder  InvoiceRecorder
}

func NewInvoiceHandler(generator usecase.IInvoiceGenerator, invoices usecase.IInvoiceUseCase, recorder InvoiceRecorder) *InvoiceHandler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &InvoiceHandler{generator: generator, invoices: invoices, recorder: recorder}
}

// GenerateFromEstimate godoc
// @Summary  Bill the project's estimate (deposit, all items or selected items)
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Param    body body request.EstimateInvoiceRequest true "Billing mode"
// @Success  201 {object} response.GeneratedInvoiceResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  404 {object} pkg.HTTPError
// @Failure  422 {object} pkg.HTTPError
// @Router   /projects/{project_id}/invoices/estimate [post]
func (h *InvoiceHandler) GenerateFromEstimate(c *gin.Context) {
	var payload request.EstimateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	req, err := payload.ToUseCase(c.Param("project_id"), actor(c))
	if err != nil {
		writeError(c, pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest))
		return
	}
	id, err := h.generator.GenerateFromEstimate(c.Request.Context(), req)
	h.respondGenerated(c, "estimate", id, err)
}

// GenerateFromChangeOrders godoc
// @Summary  Bill approved change orders
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Param    body body request.ChangeOrderInvoiceRequest true "Change orders"
// @Success  201 {object} response.GeneratedInvoiceResponse
// @Router   /projects/{project_id}/invoices/change-orders [post]
func (h *InvoiceHandler) GenerateFromChangeOrders(c *gin.Context) {
	var payload request.ChangeOrderInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	req, err := payload.ToUseCase(c.Param("project_id"), actor(c))
	if err != nil {
		writeError(c, pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest))
		return
	}
	id, err := h.generator.GenerateFromChangeOrders(c.Request.Context(), req)
	h.respondGenerated(c, "change_orders", id, err)
}

// GenerateFromExpenses godoc
// @Summary  Bill expenses with an optional markup
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Param    body body request.ExpenseInvoiceRequest true "Expenses"
// @Success  201 {object} response.GeneratedInvoiceResponse
// @Router   /projects/{project_id}/invoices/expenses [post]
func (h *InvoiceHandler) GenerateFromExpenses(c *gin.Context) {
	var payload request.ExpenseInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	req, err := payload.ToUseCase(c.Param("project_id"), actor(c))
	if err != nil {
		writeError(c, pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest))
		return
	}
	id, err := h.generator.GenerateFromExpenses(c.Request.Context(), req)
	h.respondGenerated(c, "expenses", id, err)
}

// GenerateFromTimeEntries godoc
// @Summary  Bill time entries grouped by job
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Param    body body request.TimeEntryInvoiceRequest true "Time entries"
// @Success  201 {object} response.GeneratedInvoiceResponse
// @Router   /projects/{project_id}/invoices/time-entries [post]
func (h *InvoiceHandler) GenerateFromTimeEntries(c *gin.Context) {
	var payload request.TimeEntryInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	req, err := payload.ToUseCase(c.Param("project_id"), actor(c))
	if err != nil {
		writeError(c, pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest))
		return
	}
	id, err := h.generator.GenerateFromTimeEntries(c.Request.Context(), req)
	h.respondGenerated(c, "time_entries", id, err)
}

// GenerateComprehensive godoc
// @Summary  Bill every selected source on one sectioned invoice
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Param    body body request.ComprehensiveInvoiceRequest true "Sources"
// @Success  201 {object} response.GeneratedInvoiceResponse
// @Router   /projects/{project_id}/invoices/comprehensive [post]
func (h *InvoiceHandler) GenerateComprehensive(c *gin.Context) {
	var payload request.ComprehensiveInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	req, err := payload.ToUseCase(c.Param("project_id"), actor(c))
	if err != nil {
		writeError(c, pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest))
		return
	}
	id, err := h.generator.GenerateComprehensiveInvoice(c.Request.Context(), req)
	h.respondGenerated(c, "comprehensive", id, err)
}

func (h *InvoiceHandler) respondGenerated(c *gin.Context, source, invoiceID string, err error) {
	if err != nil {
		writeError(c, mapGenerationError(invoiceID, err))
		return
	}
	h.recorder.InvoiceGenerated(source)
	c.JSON(http.StatusCreated, response.GeneratedInvoiceResponse{InvoiceID: invoiceID})
}

// ListByProject godoc
// @Summary  List a project's invoices
// @Tags     invoices
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Success  200 {array} response.InvoiceResponse
// @Router   /projects/{project_id}/invoices [get]
func (h *InvoiceHandler) ListByProject(c *gin.Context) {
	invoices, err := h.invoices.ListByProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

// GetByID godoc
// @Summary  Get an invoice with its line items
// @Tags     invoices
// @Produce  json
// @Param    id path string true "Invoice ID"
// @Success  200 {object} response.InvoiceResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	inv, err := h.invoices.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// ReplaceLineItems godoc
// @Summary  Replace every line item of an invoice
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id path string true "Invoice ID"
// @Param    body body request.ReplaceLineItemsRequest true "New line items"
// @Success  200 {object} response.InvoiceResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /invoices/{id}/line-items [put]
func (h *InvoiceHandler) ReplaceLineItems(c *gin.Context) {
	var payload request.ReplaceLineItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	inv, err := h.invoices.ReplaceLineItems(c.Request.Context(), c.Param("id"), payload.ToUseCase(actor(c)))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// UpdateStatus godoc
// @Summary  Move an invoice to Sent, Overdue, Void or back to Draft
// @Tags     invoices
// @Accept   json
// @Produce  json
// @Param    id path string true "Invoice ID"
// @Param    body body request.StatusRequest true "Target status"
// @Success  200 {object} response.InvoiceResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	inv, err := h.invoices.UpdateStatus(c.Request.Context(), c.Param("id"), payload.InvoiceStatus(), actor(c))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// Delete godoc
// @Summary  Delete an invoice and release its billed sources
// @Tags     invoices
// @Param    id path string true "Invoice ID"
// @Success  204
// @Failure  404 {object} pkg.HTTPError
// @Router   /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoices.Delete(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
