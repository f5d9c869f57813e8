package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"detos/internal/service"
)

// AppointmentHandler handles appointment scheduling endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Create handles POST /api/v1/appointments
// @Summary Book an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body service.CreateAppointmentInput true "Appointment details"
// @Success 201 {object} Response{data=domain.Appointment} "Appointment booked"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Failure 422 {object} ErrorResponseBody "Scheduled time is in the past"
// @Security BearerAuth
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	appt, err := h.appointmentService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, appt)
}

// List handles GET /api/v1/appointments
// @Summary List appointments in a time range
// @Description List appointments scheduled within [from, to); defaults to the next 7 days
// @Tags appointments
// @Produce json
// @Param from query string false "Range start (RFC 3339)"
// @Param to query string false "Range end (RFC 3339)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Appointment,meta=PagMeta} "List of appointments"
// @Security BearerAuth
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	from := time.Now().Truncate(24 * time.Hour)
	to := from.Add(7 * 24 * time.Hour)
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid from timestamp")
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid to timestamp")
			return
		}
		to = t
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	appts, total, err := h.appointmentService.ListByRange(c.Request.Context(), tenantID, from, to, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, appts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/appointments/:id
// @Summary Get appointment by ID
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID (UUID)"
// @Success 200 {object} Response{data=domain.Appointment} "Appointment details"
// @Failure 404 {object} ErrorResponseBody "Appointment not found"
// @Security BearerAuth
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid appointment ID")
		return
	}

	appt, err := h.appointmentService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, appt)
}

// Update handles PUT /api/v1/appointments/:id
// @Summary Update an appointment
// @Description Reschedule, change status, or annotate; rescheduling re-arms the reminder
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID (UUID)"
// @Param request body service.UpdateAppointmentInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Appointment} "Appointment updated"
// @Failure 404 {object} ErrorResponseBody "Appointment not found"
// @Security BearerAuth
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid appointment ID")
		return
	}

	var input service.UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	appt, err := h.appointmentService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, appt)
}

// Delete handles DELETE /api/v1/appointments/:id
// @Summary Delete an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Appointment deleted"
// @Failure 404 {object} ErrorResponseBody "Appointment not found"
// @Security BearerAuth
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid appointment ID")
		return
	}

	if err := h.appointmentService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "appointment deleted"})
}
