package handlers

import (
	"context"
	"net/http"

	request "project_billing/internal/adapter/http/dto/request"
	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=../../../usecase/estimate_usecase.go -destination=mocks/estimate_usecase_mock.go -package=mocks

// EstimateHandler handles HTTP requests for estimates. Accepting an
// estimate converts it to a blueprint of values and issues its deposit
// invoice.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// GetByID godoc
// @Summary  Get an estimate
// @Tags     estimates
// @Produce  json
// @Param    id path string true "Estimate ID"
// @Success  200 {object} response.EstimateResponse
// @Failure  404 {object} pkg.HTTPError
// @Router   /estimates/{id} [get]
func (h *EstimateHandler) GetByID(c *gin.Context) {
	e, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(e))
}

// UpdateStatus godoc
// @Summary  Change an estimate's status
// @Description Entering Accepted runs the acceptance cascade. Cascade step
// @Description failures are listed in the body and do not fail the request.
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    id path string true "Estimate ID"
// @Param    body body request.StatusRequest true "Target status"
// @Success  200 {object} response.AcceptanceResponse
// @Failure  400 {object} pkg.HTTPError
// @Failure  404 {object} pkg.HTTPError
// @Router   /estimates/{id}/status [patch]
func (h *EstimateHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	h.respond(c, func(ctx context.Context, id, actor string) (usecase.AcceptanceResult, error) {
		return h.usecase.UpdateStatus(ctx, id, payload.EstimateStatus(), actor)
	})
}

// ResumeAcceptance godoc
// @Summary  Re-run the steps of the acceptance cascade that have not completed
// @Tags     estimates
// @Produce  json
// @Param    id path string true "Estimate ID"
// @Success  200 {object} response.AcceptanceResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /estimates/{id}/acceptance/resume [post]
func (h *EstimateHandler) ResumeAcceptance(c *gin.Context) {
	h.respond(c, h.usecase.ResumeAcceptance)
}

func (h *EstimateHandler) respond(
	c *gin.Context,
	run func(ctx context.Context, id, actor string) (usecase.AcceptanceResult, error),
) {
	result, err := run(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAcceptance(result))
}
