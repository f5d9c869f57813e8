package port

import (
	"context"

	"detos/internal/domain"
)

// EmailSender defines the contract for sending transactional emails.
type EmailSender interface {
	SendAppointmentReminder(ctx context.Context, toEmail, toName string, appt *domain.Appointment) error
	SendInvoiceIssued(ctx context.Context, toEmail, toName string, inv *domain.Invoice) error
}
