package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Fields is populated for
// validation failures, keyed items.<rowIndex>.<fieldName> for line-level
// problems.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondFieldErrors sends a 422 with per-field validation messages.
func RespondFieldErrors(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "one or more fields failed validation",
			Fields:  fields,
		},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrTenantInactive):
		return http.StatusForbidden, "TENANT_INACTIVE", "tenant is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists for this tenant"
	case errors.Is(err, domain.ErrDuplicateTenantSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "tenant slug already exists"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "INSUFFICIENT_ROLE", "insufficient role for this action"
	case errors.Is(err, domain.ErrStateNotFound):
		return http.StatusBadRequest, "STATE_NOT_FOUND", "unknown state code"
	case errors.Is(err, domain.ErrPlanNotFound):
		return http.StatusNotFound, "PLAN_NOT_FOUND", "service plan not found"
	case errors.Is(err, domain.ErrPlanInactive):
		return http.StatusBadRequest, "PLAN_INACTIVE", "service plan is inactive"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, "VEHICLE_NOT_FOUND", "vehicle not found"
	case errors.Is(err, domain.ErrDuplicateRegistration):
		return http.StatusConflict, "DUPLICATE_REGISTRATION", "vehicle registration number already exists"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrInvoiceNotDraft):
		return http.StatusConflict, "INVOICE_NOT_DRAFT", "invoice is not in draft status"
	case errors.Is(err, domain.ErrBillingStateUnset):
		return http.StatusUnprocessableEntity, "BILLING_STATE_UNSET", "customer state must be set before issuing"
	case errors.Is(err, domain.ErrJobCardNotFound):
		return http.StatusNotFound, "JOB_CARD_NOT_FOUND", "job card not found"
	case errors.Is(err, domain.ErrJobCardNotCompleted):
		return http.StatusConflict, "JOB_CARD_NOT_COMPLETED", "job card must be completed before invoicing"
	case errors.Is(err, domain.ErrJobCardAlreadyBilled):
		return http.StatusConflict, "JOB_CARD_ALREADY_BILLED", "job card has already been invoiced"
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, "APPOINTMENT_NOT_FOUND", "appointment not found"
	case errors.Is(err, domain.ErrAppointmentInPast):
		return http.StatusBadRequest, "APPOINTMENT_IN_PAST", "appointment time is in the past"
	case errors.Is(err, domain.ErrChecklistNotFound):
		return http.StatusNotFound, "CHECKLIST_NOT_FOUND", "checklist not found"
	case errors.Is(err, domain.ErrChecklistItemNotFound):
		return http.StatusNotFound, "CHECKLIST_ITEM_NOT_FOUND", "checklist item not found"
	case errors.Is(err, domain.ErrExpenseNotFound):
		return http.StatusNotFound, "EXPENSE_NOT_FOUND", "expense not found"
	case errors.Is(err, domain.ErrInvalidStatusChange):
		return http.StatusConflict, "INVALID_STATUS_CHANGE", "invalid status transition"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts tenant ID, user ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (tenantID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	tenantID, err = middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return tenantID, userID, role, true
}

// HandleError maps a domain error and sends the appropriate error response.
// Validation errors carry their field map through to the client.
func HandleError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		RespondFieldErrors(c, vErr.Fields)
		return
	}

	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
