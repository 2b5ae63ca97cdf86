package handlers

import (
	"net/http"

	request "project_billing/internal/adapter/http/dto/request"
	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/domain/entities"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=../../../usecase/project_finance_usecase.go -destination=mocks/project_finance_usecase_mock.go -package=mocks

// ProjectFinanceHandler exposes the project ledger, its summary and the
// manual cost and budget adjustments.
type ProjectFinanceHandler struct {
	usecase usecase.IProjectFinanceUseCase
}

func NewProjectFinanceHandler(uc usecase.IProjectFinanceUseCase) *ProjectFinanceHandler {
	return &ProjectFinanceHandler{usecase: uc}
}

// @Summary  Project ledger, newest entry first
// @Tags     finance
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Success  200 {array} response.LedgerEntryResponse
// @Router   /projects/{project_id}/ledger [get]
func (h *ProjectFinanceHandler) Ledger(c *gin.Context) {
	entries, err := h.usecase.Ledger(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLedgerEntries(entries))
}

// @Summary  Contract, billing and cost totals of a project
// @Tags     finance
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Success  200 {object} response.FinancialSummaryResponse
// @Router   /projects/{project_id}/financial-summary [get]
func (h *ProjectFinanceHandler) Summary(c *gin.Context) {
	s, err := h.usecase.Summary(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromFinancialSummary(s))
}

// @Summary  Compare the cached project totals with the ledger
// @Tags     finance
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Success  200 {object} response.ReconciliationResponse
// @Router   /projects/{project_id}/reconciliation [get]
func (h *ProjectFinanceHandler) Reconcile(c *gin.Context) {
	r, err := h.usecase.Reconcile(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromReconciliation(r))
}

// @Summary  Record a cost or adjust the budget
// @Tags     finance
// @Accept   json
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Param    body body request.AdjustmentRequest true "Adjustment"
// @Success  201 {object} response.LedgerEntryResponse
// @Router   /projects/{project_id}/adjustments [post]
func (h *ProjectFinanceHandler) Adjust(c *gin.Context) {
	var payload request.AdjustmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	req := payload.ToUseCase(actor(c))

	var (
		entry entities.LedgerEntry
		err   error
	)
	if req.Kind == usecase.AdjustmentBudget {
		entry, err = h.usecase.AdjustBudget(c.Request.Context(), c.Param("project_id"), req)
	} else {
		entry, err = h.usecase.RecordCost(c.Request.Context(), c.Param("project_id"), req)
	}
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromLedgerEntry(entry))
}
