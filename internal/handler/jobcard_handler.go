package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/service"
)

// JobCardHandler handles workshop job card endpoints.
type JobCardHandler struct {
	jobCardService service.JobCardService
}

// NewJobCardHandler creates a new JobCardHandler.
func NewJobCardHandler(jobCardService service.JobCardService) *JobCardHandler {
	return &JobCardHandler{jobCardService: jobCardService}
}

// Create handles POST /api/v1/job-cards
// @Summary Open a job card
// @Description Open a workshop job for a customer's vehicle with the planned services
// @Tags job-cards
// @Accept json
// @Produce json
// @Param request body service.CreateJobCardInput true "Job card details"
// @Success 201 {object} Response{data=service.JobCardDetail} "Job card opened"
// @Failure 404 {object} ErrorResponseBody "Customer, vehicle, or plan not found"
// @Security BearerAuth
// @Router /job-cards [post]
func (h *JobCardHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateJobCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	detail, err := h.jobCardService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// List handles GET /api/v1/job-cards
// @Summary List job cards
// @Tags job-cards
// @Produce json
// @Param status query string false "Filter by status (open, in_progress, completed, invoiced, cancelled)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.JobCard,meta=PagMeta} "List of job cards"
// @Security BearerAuth
// @Router /job-cards [get]
func (h *JobCardHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	status := domain.JobCardStatus(c.Query("status"))
	jobs, total, err := h.jobCardService.List(c.Request.Context(), tenantID, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/job-cards/:id
// @Summary Get job card by ID
// @Tags job-cards
// @Produce json
// @Param id path string true "Job card ID (UUID)"
// @Success 200 {object} Response{data=service.JobCardDetail} "Job card with plans"
// @Failure 404 {object} ErrorResponseBody "Job card not found"
// @Security BearerAuth
// @Router /job-cards/{id} [get]
func (h *JobCardHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job card ID")
		return
	}

	detail, err := h.jobCardService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Update handles PUT /api/v1/job-cards/:id
// @Summary Update a job card
// @Description Update notes, assignee, or planned services on an open job
// @Tags job-cards
// @Accept json
// @Produce json
// @Param id path string true "Job card ID (UUID)"
// @Param request body service.UpdateJobCardInput true "Fields to update"
// @Success 200 {object} Response{data=service.JobCardDetail} "Job card updated"
// @Failure 404 {object} ErrorResponseBody "Job card not found"
// @Failure 409 {object} ErrorResponseBody "Job card already invoiced"
// @Security BearerAuth
// @Router /job-cards/{id} [put]
func (h *JobCardHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job card ID")
		return
	}

	var input service.UpdateJobCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	detail, err := h.jobCardService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// ChangeStatus handles POST /api/v1/job-cards/:id/status
// @Summary Change job card status
// @Description Move a job through open → in_progress → completed; cancellation allowed before completion
// @Tags job-cards
// @Accept json
// @Produce json
// @Param id path string true "Job card ID (UUID)"
// @Param request body ChangeJobStatusRequest true "Target status"
// @Success 200 {object} Response{data=domain.JobCard} "Status changed"
// @Failure 404 {object} ErrorResponseBody "Job card not found"
// @Failure 409 {object} ErrorResponseBody "Transition not allowed"
// @Security BearerAuth
// @Router /job-cards/{id}/status [post]
func (h *JobCardHandler) ChangeStatus(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job card ID")
		return
	}

	var input ChangeJobStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	job, err := h.jobCardService.ChangeStatus(c.Request.Context(), tenantID, id, input.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}

// GenerateInvoice handles POST /api/v1/job-cards/:id/invoice
// @Summary Generate a draft invoice from a completed job card
// @Description Turn a completed job's sold plans into draft invoice lines and mark the job invoiced
// @Tags job-cards
// @Produce json
// @Param id path string true "Job card ID (UUID)"
// @Success 201 {object} Response{data=service.InvoiceDetail} "Draft invoice created"
// @Failure 404 {object} ErrorResponseBody "Job card not found"
// @Failure 409 {object} ErrorResponseBody "Job not completed or already billed"
// @Security BearerAuth
// @Router /job-cards/{id}/invoice [post]
func (h *JobCardHandler) GenerateInvoice(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job card ID")
		return
	}

	detail, err := h.jobCardService.GenerateInvoice(c.Request.Context(), tenantID, userID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// Delete handles DELETE /api/v1/job-cards/:id
// @Summary Delete a job card
// @Tags job-cards
// @Produce json
// @Param id path string true "Job card ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Job card deleted"
// @Failure 404 {object} ErrorResponseBody "Job card not found"
// @Failure 409 {object} ErrorResponseBody "Invoiced jobs cannot be deleted"
// @Security BearerAuth
// @Router /job-cards/{id} [delete]
func (h *JobCardHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job card ID")
		return
	}

	if err := h.jobCardService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "job card deleted"})
}
