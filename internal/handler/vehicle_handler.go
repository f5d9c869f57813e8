package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"detos/internal/service"
)

// VehicleHandler handles vehicle registry endpoints.
type VehicleHandler struct {
	vehicleService service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// Create handles POST /api/v1/vehicles
// @Summary Register a vehicle
// @Description Register a vehicle against an existing customer
// @Tags vehicles
// @Accept json
// @Produce json
// @Param request body service.CreateVehicleInput true "Vehicle details"
// @Success 201 {object} Response{data=domain.Vehicle} "Vehicle registered"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Failure 409 {object} ErrorResponseBody "Registration number already exists"
// @Security BearerAuth
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, vehicle)
}

// List handles GET /api/v1/vehicles
// @Summary List vehicles
// @Description List vehicles, or look one up by registration number
// @Tags vehicles
// @Produce json
// @Param registration_no query string false "Exact registration number lookup"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Vehicle,meta=PagMeta} "List of vehicles"
// @Security BearerAuth
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	if regNo := c.Query("registration_no"); regNo != "" {
		vehicle, err := h.vehicleService.GetByRegistration(c.Request.Context(), tenantID, regNo)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, []interface{}{vehicle})
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

	vehicles, total, err := h.vehicleService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, vehicles, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/vehicles/:id
// @Summary Get vehicle by ID
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID (UUID)"
// @Success 200 {object} Response{data=domain.Vehicle} "Vehicle details"
// @Failure 404 {object} ErrorResponseBody "Vehicle not found"
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vehicle)
}

// Update handles PUT /api/v1/vehicles/:id
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID (UUID)"
// @Param request body service.UpdateVehicleInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Vehicle} "Vehicle updated"
// @Failure 404 {object} ErrorResponseBody "Vehicle not found"
// @Failure 409 {object} ErrorResponseBody "Registration number already exists"
// @Security BearerAuth
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vehicle ID")
		return
	}

	var input service.UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vehicle)
}

// Delete handles DELETE /api/v1/vehicles/:id
// @Summary Delete a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Vehicle deleted"
// @Failure 404 {object} ErrorResponseBody "Vehicle not found"
// @Security BearerAuth
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vehicle ID")
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "vehicle deleted"})
}
