package domain

// FileType represents the allowed file types for checklist photo upload.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
	FileTypePDF FileType = "pdf"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
	FileTypePDF: "application/pdf",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"pdf":  FileTypePDF,
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// InvoiceStatus represents the invoice lifecycle.
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// JobCardStatus represents the workshop job lifecycle.
type JobCardStatus string

const (
	JobCardStatusOpen       JobCardStatus = "open"
	JobCardStatusInProgress JobCardStatus = "in_progress"
	JobCardStatusCompleted  JobCardStatus = "completed"
	JobCardStatusInvoiced   JobCardStatus = "invoiced"
	JobCardStatusCancelled  JobCardStatus = "cancelled"
)

// AppointmentStatus represents the appointment lifecycle.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// ExpenseCategory classifies workshop expenses.
type ExpenseCategory string

const (
	ExpenseCategoryConsumables ExpenseCategory = "consumables"
	ExpenseCategoryEquipment   ExpenseCategory = "equipment"
	ExpenseCategoryRent        ExpenseCategory = "rent"
	ExpenseCategorySalary      ExpenseCategory = "salary"
	ExpenseCategoryUtilities   ExpenseCategory = "utilities"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// ValidExpenseCategories lists every accepted expense category.
var ValidExpenseCategories = map[ExpenseCategory]bool{
	ExpenseCategoryConsumables: true,
	ExpenseCategoryEquipment:   true,
	ExpenseCategoryRent:        true,
	ExpenseCategorySalary:      true,
	ExpenseCategoryUtilities:   true,
	ExpenseCategoryOther:       true,
}

// ChecklistItemStatus represents the state of a single SOP checklist item.
type ChecklistItemStatus string

const (
	ChecklistItemPending ChecklistItemStatus = "pending"
	ChecklistItemDone    ChecklistItemStatus = "done"
	ChecklistItemSkipped ChecklistItemStatus = "skipped"
)
