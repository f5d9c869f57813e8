package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"detos/internal/service"
)

// PlanHandler handles service catalogue endpoints.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Create handles POST /api/v1/plans
// @Summary Create a service plan
// @Description Add a detailing service to the tenant's catalogue
// @Tags plans
// @Accept json
// @Produce json
// @Param request body service.CreatePlanInput true "Plan details"
// @Success 201 {object} Response{data=domain.ServicePlan} "Plan created"
// @Failure 422 {object} ErrorResponseBody "Invalid price or GST rate"
// @Security BearerAuth
// @Router /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, plan)
}

// List handles GET /api/v1/plans
// @Summary List service plans
// @Tags plans
// @Produce json
// @Param active query bool false "Only active plans" default(false)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ServicePlan,meta=PagMeta} "List of plans"
// @Security BearerAuth
// @Router /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	plans, total, err := h.planService.List(c.Request.Context(), tenantID, activeOnly, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, plans, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/plans/:id
// @Summary Get plan by ID
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID (UUID)"
// @Success 200 {object} Response{data=domain.ServicePlan} "Plan details"
// @Failure 404 {object} ErrorResponseBody "Plan not found"
// @Security BearerAuth
// @Router /plans/{id} [get]
func (h *PlanHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid plan ID")
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plan)
}

// Update handles PUT /api/v1/plans/:id
// @Summary Update a service plan
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID (UUID)"
// @Param request body service.UpdatePlanInput true "Fields to update"
// @Success 200 {object} Response{data=domain.ServicePlan} "Plan updated"
// @Failure 404 {object} ErrorResponseBody "Plan not found"
// @Failure 422 {object} ErrorResponseBody "Invalid price or GST rate"
// @Security BearerAuth
// @Router /plans/{id} [put]
func (h *PlanHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid plan ID")
		return
	}

	var input service.UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plan)
}

// Delete handles DELETE /api/v1/plans/:id
// @Summary Deactivate a service plan
// @Description Plans are deactivated rather than removed so historical invoice lines keep their reference
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Plan deactivated"
// @Failure 404 {object} ErrorResponseBody "Plan not found"
// @Security BearerAuth
// @Router /plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid plan ID")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "plan deactivated"})
}
