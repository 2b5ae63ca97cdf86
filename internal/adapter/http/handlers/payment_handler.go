package handlers

import (
	"net/http"

	request "project_billing/internal/adapter/http/dto/request"
	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/usecase"
	"project_billing/pkg"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=../../../usecase/payment_usecase.go -destination=mocks/payment_usecase_mock.go -package=mocks

type PaymentRecorder interface {
	PaymentRecorded()
}

// PaymentHandler handles HTTP requests for invoice payments.
type PaymentHandler struct {
	usecase  usecase.IPaymentUseCase
	recorder PaymentRecorder
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, recorder PaymentRecorder) *PaymentHandler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &PaymentHandler{usecase: uc, recorder: recorder}
}

// RecordPayment godoc
// @Summary  Record a payment against an invoice
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id path string true "Invoice ID"
// @Param    body body request.PaymentRequest true "Payment"
// @Success  201 {object} response.PaymentResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  404 {object} pkg.HTTPError
// @Router   /invoices/{id}/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var payload request.PaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	req, err := payload.ToUseCase(actor(c))
	if err != nil {
		writeError(c, pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest))
		return
	}

	p, err := h.usecase.RecordPayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	h.recorder.PaymentRecorded()
	c.JSON(http.StatusCreated, response.FromPayment(p))
}

// ListByInvoice godoc
// @Summary  List the payments of an invoice
// @Tags     payments
// @Produce  json
// @Param    id path string true "Invoice ID"
// @Success  200 {array} response.PaymentResponse
// @Router   /invoices/{id}/payments [get]
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	payments, err := h.usecase.ListByInvoiceID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// GetByID godoc
// @Summary  Get a payment
// @Tags     payments
// @Produce  json
// @Param    id path string true "Payment ID"
// @Success  200 {object} response.PaymentResponse
// @Router   /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// DeletePayment godoc
// @Summary  Delete a payment and roll back its invoice and project totals
// @Tags     payments
// @Param    id path string true "Payment ID"
// @Success  204
// @Router   /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	if err := h.usecase.DeletePayment(c.Request.Context(), c.Param("id"), actor(c)); err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
