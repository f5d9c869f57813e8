package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendAppointmentReminder(ctx context.Context, toEmail, toName string, appt *domain.Appointment) error {
	args := m.Called(ctx, toEmail, toName, appt)
	return args.Error(0)
}

func (m *MockEmailSender) SendInvoiceIssued(ctx context.Context, toEmail, toName string, inv *domain.Invoice) error {
	args := m.Called(ctx, toEmail, toName, inv)
	return args.Error(0)
}
