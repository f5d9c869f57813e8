package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"detos/internal/service"
)

// ChecklistHandler handles SOP template and checklist endpoints.
type ChecklistHandler struct {
	checklistService service.ChecklistService
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService}
}

// CreateTemplate handles POST /api/v1/sop-templates
// @Summary Create an SOP template
// @Description Define a reusable checklist of workshop steps
// @Tags checklists
// @Accept json
// @Produce json
// @Param request body service.CreateTemplateInput true "Template details"
// @Success 201 {object} Response{data=service.TemplateDetail} "Template created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /sop-templates [post]
func (h *ChecklistHandler) CreateTemplate(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	detail, err := h.checklistService.CreateTemplate(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// ListTemplates handles GET /api/v1/sop-templates
// @Summary List SOP templates
// @Tags checklists
// @Produce json
// @Success 200 {object} Response{data=[]domain.SOPTemplate} "List of templates"
// @Security BearerAuth
// @Router /sop-templates [get]
func (h *ChecklistHandler) ListTemplates(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	templates, err := h.checklistService.ListTemplates(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, templates)
}

// GetTemplate handles GET /api/v1/sop-templates/:id
// @Summary Get SOP template by ID
// @Tags checklists
// @Produce json
// @Param id path string true "Template ID (UUID)"
// @Success 200 {object} Response{data=service.TemplateDetail} "Template with steps"
// @Failure 404 {object} ErrorResponseBody "Template not found"
// @Security BearerAuth
// @Router /sop-templates/{id} [get]
func (h *ChecklistHandler) GetTemplate(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid template ID")
		return
	}

	detail, err := h.checklistService.GetTemplate(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Instantiate handles POST /api/v1/job-cards/:id/checklists
// @Summary Attach a checklist to a job card
// @Description Copy a template's steps onto a job card as a fresh checklist
// @Tags checklists
// @Accept json
// @Produce json
// @Param id path string true "Job card ID (UUID)"
// @Param request body InstantiateChecklistRequest true "Template to instantiate"
// @Success 201 {object} Response{data=service.ChecklistDetail} "Checklist created"
// @Failure 404 {object} ErrorResponseBody "Job card or template not found"
// @Security BearerAuth
// @Router /job-cards/{id}/checklists [post]
func (h *ChecklistHandler) Instantiate(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job card ID")
		return
	}

	var input InstantiateChecklistRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	detail, err := h.checklistService.Instantiate(c.Request.Context(), tenantID, jobID, input.TemplateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// ListByJobCard handles GET /api/v1/job-cards/:id/checklists
// @Summary List checklists on a job card
// @Tags checklists
// @Produce json
// @Param id path string true "Job card ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Checklist} "Checklists on the job"
// @Failure 404 {object} ErrorResponseBody "Job card not found"
// @Security BearerAuth
// @Router /job-cards/{id}/checklists [get]
func (h *ChecklistHandler) ListByJobCard(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job card ID")
		return
	}

	checklists, err := h.checklistService.ListByJobCard(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, checklists)
}

// GetChecklist handles GET /api/v1/checklists/:id
// @Summary Get checklist by ID
// @Tags checklists
// @Produce json
// @Param id path string true "Checklist ID (UUID)"
// @Success 200 {object} Response{data=service.ChecklistDetail} "Checklist with items"
// @Failure 404 {object} ErrorResponseBody "Checklist not found"
// @Security BearerAuth
// @Router /checklists/{id} [get]
func (h *ChecklistHandler) GetChecklist(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid checklist ID")
		return
	}

	detail, err := h.checklistService.GetChecklist(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// CompleteItem handles POST /api/v1/checklists/items/:id/complete
// @Summary Complete or skip a checklist step
// @Description Mark a step done or skipped; steps flagged photo_required need an uploaded photo file ID
// @Tags checklists
// @Accept json
// @Produce json
// @Param id path string true "Checklist item ID (UUID)"
// @Param request body service.CompleteItemInput true "Completion details"
// @Success 200 {object} Response{data=domain.ChecklistItem} "Step updated"
// @Failure 404 {object} ErrorResponseBody "Item or photo file not found"
// @Failure 422 {object} ErrorResponseBody "Photo evidence required"
// @Security BearerAuth
// @Router /checklists/items/{id}/complete [post]
func (h *ChecklistHandler) CompleteItem(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid checklist item ID")
		return
	}

	var input service.CompleteItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.checklistService.CompleteItem(c.Request.Context(), tenantID, userID, itemID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}
