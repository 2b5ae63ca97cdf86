package handlers

import (
	"net/http"

	request "project_billing/internal/adapter/http/dto/request"
	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=../../../usecase/change_order_usecase.go -destination=mocks/change_order_usecase_mock.go -package=mocks

type ChangeOrderHandler struct {
	usecase usecase.IChangeOrderUseCase
}

func NewChangeOrderHandler(uc usecase.IChangeOrderUseCase) *ChangeOrderHandler {
	return &ChangeOrderHandler{usecase: uc}
}

// @Summary  List a project's change orders
// @Tags     change-orders
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Success  200 {array} response.ChangeOrderResponse
// @Router   /projects/{project_id}/change-orders [get]
func (h *ChangeOrderHandler) ListByProject(c *gin.Context) {
	cos, err := h.usecase.ListByProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChangeOrders(cos))
}

// @Summary  Get a change order
// @Tags     change-orders
// @Produce  json
// @Param    id path string true "Change order ID"
// @Success  200 {object} response.ChangeOrderResponse
// @Router   /change-orders/{id} [get]
func (h *ChangeOrderHandler) GetByID(c *gin.Context) {
	co, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChangeOrder(co))
}

// @Summary  Change a change order's status; approval moves the project budget
// @Tags     change-orders
// @Accept   json
// @Produce  json
// @Param    id path string true "Change order ID"
// @Param    body body request.StatusRequest true "Target status"
// @Success  200 {object} response.ChangeOrderResponse
// @Router   /change-orders/{id}/status [patch]
func (h *ChangeOrderHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	co, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), payload.ChangeOrderStatus(), actor(c))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromChangeOrder(co))
}
