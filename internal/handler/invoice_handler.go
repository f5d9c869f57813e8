package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/port"
	"detos/internal/service"
)

// InvoiceHandler handles invoicing endpoints. All money math happens
// server-side in the billing engine; clients only submit plan references,
// quantities, and discounts.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Preview handles POST /api/v1/invoices/preview
// @Summary Preview invoice totals
// @Description Compute line and summary totals for a submission without persisting anything
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Customer and line items"
// @Success 200 {object} Response{data=service.InvoicePreview} "Computed totals"
// @Failure 404 {object} ErrorResponseBody "Customer or plan not found"
// @Failure 422 {object} ErrorResponseBody "Invalid line items (field errors keyed items.<row>.<field>)"
// @Security BearerAuth
// @Router /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.PreviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	preview, err := h.invoiceService.Preview(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// Create handles POST /api/v1/invoices
// @Summary Create a draft invoice
// @Description Create a draft invoice; totals are recomputed server-side from the catalogue
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Customer and line items"
// @Success 201 {object} Response{data=service.InvoiceDetail} "Draft created"
// @Failure 404 {object} ErrorResponseBody "Customer or plan not found"
// @Failure 422 {object} ErrorResponseBody "Invalid line items"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	detail, err := h.invoiceService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param status query string false "Filter by status (draft, issued, paid, void)"
// @Param customer_id query string false "Filter by customer ID"
// @Param from query string false "Issued-at window start (RFC 3339)"
// @Param to query string false "Issued-at window end (RFC 3339)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta} "List of invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseInvoiceFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
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

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=service.InvoiceDetail} "Invoice with lines"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	detail, err := h.invoiceService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Update handles PUT /api/v1/invoices/:id
// @Summary Update a draft invoice
// @Description Replace a draft invoice's line items; issued invoices are immutable
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body CreateInvoiceRequest true "Replacement line items"
// @Success 200 {object} Response{data=service.InvoiceDetail} "Draft updated"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice is not a draft"
// @Failure 422 {object} ErrorResponseBody "Invalid line items"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var input service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	detail, err := h.invoiceService.UpdateDraft(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Issue handles POST /api/v1/invoices/:id/issue
// @Summary Issue a draft invoice
// @Description Finalize a draft; requires the customer's billing state to be set for tax determination
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice issued"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice is not a draft"
// @Failure 422 {object} ErrorResponseBody "Billing state unset"
// @Security BearerAuth
// @Router /invoices/{id}/issue [post]
func (h *InvoiceHandler) Issue(c *gin.Context) {
	h.changeStatus(c, h.invoiceService.Issue)
}

// MarkPaid handles POST /api/v1/invoices/:id/pay
// @Summary Mark an issued invoice as paid
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice marked paid"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice is not issued"
// @Security BearerAuth
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.changeStatus(c, h.invoiceService.MarkPaid)
}

// Void handles POST /api/v1/invoices/:id/void
// @Summary Void an invoice
// @Description Void a draft or issued invoice; paid invoices cannot be voided
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice voided"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice cannot be voided"
// @Security BearerAuth
// @Router /invoices/{id}/void [post]
func (h *InvoiceHandler) Void(c *gin.Context) {
	h.changeStatus(c, h.invoiceService.Void)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete a draft invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Draft deleted"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 409 {object} ErrorResponseBody "Invoice is not a draft"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

type statusChangeFn func(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)

func (h *InvoiceHandler) changeStatus(c *gin.Context, change statusChangeFn) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	invoice, err := change(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// parseInvoiceFilters reads the shared list/export filter query params.
func parseInvoiceFilters(c *gin.Context) (*port.InvoiceFilters, error) {
	filters := &port.InvoiceFilters{
		Status: domain.InvoiceStatus(c.Query("status")),
	}

	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		filters.CustomerID = &id
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		filters.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		filters.To = &t
	}

	return filters, nil
}
