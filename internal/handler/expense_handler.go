package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/service"
)

// ExpenseHandler handles expense tracking endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create handles POST /api/v1/expenses
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body service.CreateExpenseInput true "Expense details"
// @Success 201 {object} Response{data=domain.Expense} "Expense recorded"
// @Failure 422 {object} ErrorResponseBody "Invalid category or amount"
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, expense)
}

// List handles GET /api/v1/expenses
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param category query string false "Filter by category"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Expense,meta=PagMeta} "List of expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
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

	category := domain.ExpenseCategory(c.Query("category"))
	expenses, total, err := h.expenseService.List(c.Request.Context(), tenantID, category, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, expenses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/expenses/:id
// @Summary Get expense by ID
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Success 200 {object} Response{data=domain.Expense} "Expense details"
// @Failure 404 {object} ErrorResponseBody "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, expense)
}

// Update handles PUT /api/v1/expenses/:id
// @Summary Correct an expense entry
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Param request body service.UpdateExpenseInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Expense} "Expense updated"
// @Failure 404 {object} ErrorResponseBody "Expense not found"
// @Failure 422 {object} ErrorResponseBody "Invalid category or amount"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid expense ID")
		return
	}

	var input service.UpdateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, expense)
}

// Delete handles DELETE /api/v1/expenses/:id
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Expense deleted"
// @Failure 404 {object} ErrorResponseBody "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "expense deleted"})
}
