package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents one detailing business (workshop) on the platform.
type Tenant struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Slug          string    `db:"slug" json:"slug"`
	GSTIN         string    `db:"gstin" json:"gstin"`
	SellerStateID int       `db:"seller_state_id" json:"seller_state_id"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// State is one row of the GST state master. The numeric code doubles as the
// state ID used for tax regime resolution.
type State struct {
	ID   int    `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// Customer represents a billing party: an individual or organization whose
// vehicles the workshop services. StateID drives the tax regime for every
// invoice billed to this customer.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Email     string    `db:"email" json:"email"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	StateID   *int      `db:"state_id" json:"state_id"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Vehicle represents a customer's vehicle.
type Vehicle struct {
	ID             uuid.UUID `db:"id" json:"id"`
	TenantID       uuid.UUID `db:"tenant_id" json:"tenant_id"`
	CustomerID     uuid.UUID `db:"customer_id" json:"customer_id"`
	RegistrationNo string    `db:"registration_no" json:"registration_no"`
	Make           string    `db:"make" json:"make"`
	Model          string    `db:"model" json:"model"`
	Year           int       `db:"year" json:"year"`
	Color          string    `db:"color" json:"color"`
	OdometerKM     int       `db:"odometer_km" json:"odometer_km"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ServicePlan is one entry of the service catalogue: a billable detailing
// service with its SAC code and statutory GST rate.
type ServicePlan struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	TenantID  uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	PlanName  string          `db:"plan_name" json:"plan_name"`
	SACCode   string          `db:"sac_code" json:"sac_code"`
	Price     decimal.Decimal `db:"price" json:"price"`
	GSTRate   decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	IsActive  bool            `db:"is_active" json:"is_active"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Invoice represents a tax invoice. All monetary totals are engine output
// (internal/billing), persisted as computed, never client arithmetic.
type Invoice struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	TenantID       uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	InvoiceNumber  string          `db:"invoice_number" json:"invoice_number"`
	CustomerID     uuid.UUID       `db:"customer_id" json:"customer_id"`
	VehicleID      *uuid.UUID      `db:"vehicle_id" json:"vehicle_id"`
	JobCardID      *uuid.UUID      `db:"job_card_id" json:"job_card_id"`
	Status         InvoiceStatus   `db:"status" json:"status"`
	BillingStateID int             `db:"billing_state_id" json:"billing_state_id"`
	SellerStateID  int             `db:"seller_state_id" json:"seller_state_id"`
	TotalItems     int             `db:"total_items" json:"total_items"`
	SubTotal       decimal.Decimal `db:"sub_total" json:"sub_total"`
	DiscountTotal  decimal.Decimal `db:"discount_total" json:"discount_total"`
	CGSTTotal      decimal.Decimal `db:"cgst_total" json:"cgst_total"`
	SGSTTotal      decimal.Decimal `db:"sgst_total" json:"sgst_total"`
	IGSTTotal      decimal.Decimal `db:"igst_total" json:"igst_total"`
	GrandTotal     decimal.Decimal `db:"grand_total" json:"grand_total"`
	IssuedAt       *time.Time      `db:"issued_at" json:"issued_at"`
	PaidAt         *time.Time      `db:"paid_at" json:"paid_at"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceLine is one persisted invoice line. Derived columns mirror the
// billing engine's LineItem output for the invoice's resolved regime.
type InvoiceLine struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	InvoiceID        uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	TenantID         uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	ServicePlanID    uuid.UUID       `db:"service_plan_id" json:"service_plan_id"`
	Position         int             `db:"position" json:"position"`
	PlanName         string          `db:"plan_name" json:"plan_name"`
	SACCode          string          `db:"sac_code" json:"sac_code"`
	UnitPrice        decimal.Decimal `db:"unit_price" json:"unit_price"`
	Quantity         int             `db:"quantity" json:"quantity"`
	DiscountPercent  decimal.Decimal `db:"discount_percent" json:"discount_percent"`
	DiscountAmount   decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	DiscountSource   string          `db:"discount_source" json:"discount_source"`
	SubAmount        decimal.Decimal `db:"sub_amount" json:"sub_amount"`
	DiscountedAmount decimal.Decimal `db:"discounted_amount" json:"discounted_amount"`
	CGSTRate         decimal.Decimal `db:"cgst_rate" json:"cgst_rate"`
	CGSTAmount       decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTRate         decimal.Decimal `db:"sgst_rate" json:"sgst_rate"`
	SGSTAmount       decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	IGSTRate         decimal.Decimal `db:"igst_rate" json:"igst_rate"`
	IGSTAmount       decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// JobCard represents one workshop job for a customer's vehicle.
type JobCard struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	TenantID    uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	JobNumber   string        `db:"job_number" json:"job_number"`
	CustomerID  uuid.UUID     `db:"customer_id" json:"customer_id"`
	VehicleID   uuid.UUID     `db:"vehicle_id" json:"vehicle_id"`
	Status      JobCardStatus `db:"status" json:"status"`
	Notes       string        `db:"notes" json:"notes"`
	AssignedTo  *uuid.UUID    `db:"assigned_to" json:"assigned_to"`
	InvoiceID   *uuid.UUID    `db:"invoice_id" json:"invoice_id"`
	OpenedAt    time.Time     `db:"opened_at" json:"opened_at"`
	CompletedAt *time.Time    `db:"completed_at" json:"completed_at"`
	CreatedBy   uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// JobCardPlan links a service plan to a job card (the services sold on the
// job, later turned into invoice lines).
type JobCardPlan struct {
	JobCardID     uuid.UUID `db:"job_card_id" json:"job_card_id"`
	ServicePlanID uuid.UUID `db:"service_plan_id" json:"service_plan_id"`
	TenantID      uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Quantity      int       `db:"quantity" json:"quantity"`
	AddedAt       time.Time `db:"added_at" json:"added_at"`
}

// Appointment represents a scheduled service slot.
type Appointment struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	TenantID     uuid.UUID         `db:"tenant_id" json:"tenant_id"`
	CustomerID   uuid.UUID         `db:"customer_id" json:"customer_id"`
	VehicleID    *uuid.UUID        `db:"vehicle_id" json:"vehicle_id"`
	ScheduledAt  time.Time         `db:"scheduled_at" json:"scheduled_at"`
	DurationMins int               `db:"duration_mins" json:"duration_mins"`
	Status       AppointmentStatus `db:"status" json:"status"`
	Notes        string            `db:"notes" json:"notes"`
	ReminderSent bool              `db:"reminder_sent" json:"reminder_sent"`
	CreatedBy    uuid.UUID         `db:"created_by" json:"created_by"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// SOPTemplate is a reusable standard-operating-procedure checklist definition.
type SOPTemplate struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SOPTemplateItem is one step of an SOP template.
type SOPTemplateItem struct {
	ID            uuid.UUID `db:"id" json:"id"`
	TemplateID    uuid.UUID `db:"template_id" json:"template_id"`
	TenantID      uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Position      int       `db:"position" json:"position"`
	Label         string    `db:"label" json:"label"`
	PhotoRequired bool      `db:"photo_required" json:"photo_required"`
}

// Checklist is an SOP template instantiated against a job card.
type Checklist struct {
	ID         uuid.UUID `db:"id" json:"id"`
	TenantID   uuid.UUID `db:"tenant_id" json:"tenant_id"`
	JobCardID  uuid.UUID `db:"job_card_id" json:"job_card_id"`
	TemplateID uuid.UUID `db:"template_id" json:"template_id"`
	Name       string    `db:"name" json:"name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ChecklistItem is one step of a checklist instance, optionally backed by an
// uploaded photo.
type ChecklistItem struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	ChecklistID   uuid.UUID           `db:"checklist_id" json:"checklist_id"`
	TenantID      uuid.UUID           `db:"tenant_id" json:"tenant_id"`
	Position      int                 `db:"position" json:"position"`
	Label         string              `db:"label" json:"label"`
	PhotoRequired bool                `db:"photo_required" json:"photo_required"`
	Status        ChecklistItemStatus `db:"status" json:"status"`
	PhotoFileID   *uuid.UUID          `db:"photo_file_id" json:"photo_file_id"`
	CompletedBy   *uuid.UUID          `db:"completed_by" json:"completed_by"`
	CompletedAt   *time.Time          `db:"completed_at" json:"completed_at"`
}

// Expense is one workshop expense entry.
type Expense struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	TenantID    uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Category    ExpenseCategory `db:"category" json:"category"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	SpentOn     time.Time       `db:"spent_on" json:"spent_on"`
	CreatedBy   uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded file (checklist photos).
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
