package handler

import (
	"github.com/google/uuid"

	"detos/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// CreateTenantRequest represents the create tenant request body.
type CreateTenantRequest struct {
	Name          string `json:"name" binding:"required" example:"Shine Auto Spa"`
	Slug          string `json:"slug" binding:"required" example:"shine-auto"`
	GSTIN         string `json:"gstin" example:"27ABCDE1234F1Z5"`
	SellerStateID int    `json:"seller_state_id" example:"27"`
}

// UpdateTenantRequest represents the update tenant request body.
type UpdateTenantRequest struct {
	Name          *string `json:"name" example:"Shine Auto Spa Pvt Ltd"`
	Slug          *string `json:"slug" example:"shine-auto"`
	GSTIN         *string `json:"gstin" example:"27ABCDE1234F1Z5"`
	SellerStateID *int    `json:"seller_state_id" example:"27"`
	IsActive      *bool   `json:"is_active" example:"false"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email    string          `json:"email" binding:"required" example:"priya@shine-auto.com"`
	Password string          `json:"password" binding:"required" example:"securepassword123"`
	FullName string          `json:"full_name" example:"Priya Sharma"`
	Role     domain.UserRole `json:"role" binding:"required" example:"member"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	Email    *string          `json:"email" example:"priya.s@shine-auto.com"`
	FullName *string          `json:"full_name" example:"Priya Sharma"`
	Role     *domain.UserRole `json:"role" example:"admin"`
	IsActive *bool            `json:"is_active" example:"true"`
}

// InvoiceItemRequest represents one line of an invoice submission.
type InvoiceItemRequest struct {
	ServicePlanID   uuid.UUID `json:"service_plan_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity        string    `json:"quantity" example:"2"`
	DiscountPercent string    `json:"discount_percent" example:"10"`
	DiscountAmount  string    `json:"discount_amount" example:"150.00"`
	DiscountSource  string    `json:"discount_source" example:"percent"`
}

// CreateInvoiceRequest represents the create invoice request body.
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID            `json:"customer_id" binding:"required" example:"660e8400-e29b-41d4-a716-446655440001"`
	VehicleID  *uuid.UUID           `json:"vehicle_id" example:"770e8400-e29b-41d4-a716-446655440002"`
	Items      []InvoiceItemRequest `json:"items" binding:"required"`
}

// ChangeJobStatusRequest represents the job card status change request body.
type ChangeJobStatusRequest struct {
	Status domain.JobCardStatus `json:"status" binding:"required" example:"in_progress"`
}

// InstantiateChecklistRequest represents the checklist instantiation request body.
type InstantiateChecklistRequest struct {
	TemplateID uuid.UUID `json:"template_id" binding:"required" example:"880e8400-e29b-41d4-a716-446655440003"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// FileWithDownloadURL represents a file with its download URL.
type FileWithDownloadURL struct {
	File        domain.FileMeta `json:"file"`
	DownloadURL string          `json:"download_url" example:"https://s3.amazonaws.com/detos-uploads/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
