package noop

import (
	"context"
	"log"

	"detos/internal/domain"
	"detos/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs. Used in development
// and when no email provider is configured.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendAppointmentReminder(_ context.Context, toEmail, toName string, appt *domain.Appointment) error {
	log.Printf("noopSender: appointment reminder to %s <%s> for %s", toName, toEmail, appt.ScheduledAt.Format("2006-01-02 15:04"))
	return nil
}

func (s *noopSender) SendInvoiceIssued(_ context.Context, toEmail, toName string, inv *domain.Invoice) error {
	log.Printf("noopSender: invoice issued email to %s <%s> for %s (total %s)", toName, toEmail, inv.InvoiceNumber, inv.GrandTotal.StringFixed(2))
	return nil
}
