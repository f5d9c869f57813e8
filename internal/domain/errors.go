package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTenantInactive        = errors.New("tenant is inactive")
	ErrUserInactive          = errors.New("user is inactive")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail        = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug   = errors.New("tenant slug already exists")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrInsufficientRole      = errors.New("insufficient role for this operation")
	ErrStateNotFound         = errors.New("state not found")
	ErrPlanNotFound          = errors.New("service plan not found")
	ErrPlanInactive          = errors.New("service plan is inactive")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrVehicleNotFound       = errors.New("vehicle not found")
	ErrDuplicateRegistration = errors.New("vehicle registration number already exists")
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvoiceNotDraft       = errors.New("invoice is not in draft status")
	ErrInvoiceInvalidItems   = errors.New("invoice items failed validation")
	ErrBillingStateUnset     = errors.New("billing state is not set")
	ErrJobCardNotFound       = errors.New("job card not found")
	ErrJobCardNotCompleted   = errors.New("job card is not completed")
	ErrJobCardAlreadyBilled  = errors.New("job card has already been invoiced")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAppointmentInPast     = errors.New("appointment time is in the past")
	ErrChecklistNotFound     = errors.New("checklist not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrInvalidStatusChange   = errors.New("invalid status transition")
)

// ValidationError carries per-field messages keyed items.<rowIndex>.<fieldName>
// (or a plain field name for header-level fields). It wraps
// ErrInvoiceInvalidItems so callers can match with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrInvoiceInvalidItems.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvoiceInvalidItems
}
