package handlers

import (
	"net/http"

	response "project_billing/internal/adapter/http/dto/response"
	"project_billing/internal/usecase"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=../../../usecase/blueprint_usecase.go -destination=mocks/blueprint_usecase_mock.go -package=mocks

type BlueprintHandler struct {
	usecase usecase.IBlueprintUseCase
}

func NewBlueprintHandler(uc usecase.IBlueprintUseCase) *BlueprintHandler {
	return &BlueprintHandler{usecase: uc}
}

// @Summary  List a project's blueprints of values
// @Tags     blueprints
// @Produce  json
// @Param    project_id path string true "Project ID"
// @Success  200 {array} response.BlueprintResponse
// @Router   /projects/{project_id}/blueprints [get]
func (h *BlueprintHandler) ListByProject(c *gin.Context) {
	bs, err := h.usecase.ListByProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBlueprints(bs))
}

// @Summary  Get a blueprint of values
// @Tags     blueprints
// @Produce  json
// @Param    id path string true "Blueprint ID"
// @Success  200 {object} response.BlueprintResponse
// @Router   /blueprints/{id} [get]
func (h *BlueprintHandler) GetByID(c *gin.Context) {
	b, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapUseCaseError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBlueprint(b))
}
