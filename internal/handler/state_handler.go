package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"detos/internal/port"
)

// StateHandler serves the static GST state directory.
type StateHandler struct {
	stateRepo port.StateRepository
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(stateRepo port.StateRepository) *StateHandler {
	return &StateHandler{stateRepo: stateRepo}
}

// List handles GET /api/v1/states
// @Summary List GST states
// @Description List the Indian GST state directory used for billing state selection
// @Tags states
// @Produce json
// @Success 200 {object} Response{data=[]domain.State} "List of states"
// @Security BearerAuth
// @Router /states [get]
func (h *StateHandler) List(c *gin.Context) {
	states, err := h.stateRepo.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, states)
}

// GetByID handles GET /api/v1/states/:id
// @Summary Get a GST state by numeric code
// @Tags states
// @Produce json
// @Param id path int true "GST state code"
// @Success 200 {object} Response{data=domain.State} "State details"
// @Failure 404 {object} ErrorResponseBody "State not found"
// @Security BearerAuth
// @Router /states/{id} [get]
func (h *StateHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid state code")
		return
	}

	state, err := h.stateRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, state)
}
