package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"detos/internal/csvexport"
	"detos/internal/domain"
	"detos/internal/service"
)

// ReportHandler handles financial reporting endpoints. Reports cover issued
// and paid invoices only; drafts never count toward revenue or tax.
type ReportHandler struct {
	reportService service.ReportService
	tenantService service.TenantService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, tenantService service.TenantService) *ReportHandler {
	return &ReportHandler{reportService: reportService, tenantService: tenantService}
}

// Revenue handles GET /api/v1/reports/revenue
// @Summary Monthly revenue summary
// @Description Revenue per month over the requested issued-at window
// @Tags reports
// @Produce json
// @Param from query string false "Window start (RFC 3339)"
// @Param to query string false "Window end (RFC 3339)"
// @Success 200 {object} Response{data=[]domain.RevenueMonthRow} "Revenue by month"
// @Security BearerAuth
// @Router /reports/revenue [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rows, err := h.reportService.RevenueSummary(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// Tax handles GET /api/v1/reports/tax
// @Summary Tax collected summary
// @Description CGST, SGST, and IGST collected over the requested issued-at window
// @Tags reports
// @Produce json
// @Param from query string false "Window start (RFC 3339)"
// @Param to query string false "Window end (RFC 3339)"
// @Success 200 {object} Response{data=domain.TaxSummaryRow} "Tax totals per component"
// @Security BearerAuth
// @Router /reports/tax [get]
func (h *ReportHandler) Tax(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	summary, err := h.reportService.TaxSummary(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// TopPlans handles GET /api/v1/reports/top-plans
// @Summary Top service plans by revenue
// @Tags reports
// @Produce json
// @Param from query string false "Window start (RFC 3339)"
// @Param to query string false "Window end (RFC 3339)"
// @Param limit query int false "Number of plans to return (max 50)" default(10)
// @Success 200 {object} Response{data=[]domain.PlanRevenueRow} "Plans ranked by revenue"
// @Security BearerAuth
// @Router /reports/top-plans [get]
func (h *ReportHandler) TopPlans(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.reportService.TopPlans(c.Request.Context(), tenantID, filters, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// Dashboard handles GET /api/v1/reports/dashboard
// @Summary Dashboard headline counts
// @Description Open job cards, today's appointments, draft invoices, and unpaid invoices
// @Tags reports
// @Produce json
// @Success 200 {object} Response{data=domain.DashboardCounts} "Headline counts"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	counts, err := h.reportService.Dashboard(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, counts)
}

// Expenses handles GET /api/v1/reports/expenses
// @Summary Monthly expense summary
// @Description Expenses per month per category for the given year
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year" default(current year)
// @Success 200 {object} Response{data=[]domain.ExpenseMonthRow} "Expenses by month and category"
// @Security BearerAuth
// @Router /reports/expenses [get]
func (h *ReportHandler) Expenses(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	rows, err := h.reportService.ExpenseSummary(c.Request.Context(), tenantID, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// ExportInvoices handles GET /api/v1/reports/invoices/export
// @Summary Export the invoice register as CSV
// @Description Stream a UTF-8 BOM CSV of invoices matching the filters; defaults to issued and paid invoices
// @Tags reports
// @Produce text/csv
// @Param status query string false "Filter by status (draft, issued, paid, void)"
// @Param customer_id query string false "Filter by customer ID"
// @Param from query string false "Issued-at window start (RFC 3339)"
// @Param to query string false "Issued-at window end (RFC 3339)"
// @Success 200 {string} string "CSV file"
// @Security BearerAuth
// @Router /reports/invoices/export [get]
func (h *ReportHandler) ExportInvoices(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseInvoiceFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename(tenant.Name)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := h.reportService.ExportInvoicesCSV(c.Request.Context(), tenantID, filters, c.Writer); err != nil {
		// Headers are already out; all we can do is log through gin's recovery path.
		_ = c.Error(err)
	}
}

// parseReportFilters reads the shared report window query params.
func parseReportFilters(c *gin.Context) (*domain.ReportFilters, error) {
	filters := &domain.ReportFilters{}

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
