package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"detos/internal/domain"
	"detos/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendAppointmentReminder(ctx context.Context, toEmail, toName string, appt *domain.Appointment) error {
	when := appt.ScheduledAt.Format("Mon, 2 Jan 2006 at 3:04 PM")

	subject := fmt.Sprintf("Reminder: your detailing appointment on %s", appt.ScheduledAt.Format("2 Jan"))
	htmlBody := buildReminderHTML(toName, when, appt.DurationMins)
	textBody := fmt.Sprintf("Hi %s,\n\nThis is a reminder that your vehicle detailing appointment is scheduled for %s (approx. %d minutes).\n\nIf you need to reschedule, please call the workshop.\n\nDETOS Team", toName, when, appt.DurationMins)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendInvoiceIssued(ctx context.Context, toEmail, toName string, inv *domain.Invoice) error {
	subject := fmt.Sprintf("Invoice %s from your detailing studio", inv.InvoiceNumber)
	htmlBody := buildInvoiceIssuedHTML(toName, inv)
	textBody := fmt.Sprintf("Hi %s,\n\nInvoice %s has been issued for a total of ₹%s.\n\nThank you for your business.\n\nDETOS Team", toName, inv.InvoiceNumber, inv.GrandTotal.StringFixed(2))

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReminderHTML(name, when string, durationMins int) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Appointment reminder</h2>
  <p>Hi %s,</p>
  <p>This is a reminder that your vehicle detailing appointment is scheduled for:</p>
  <p style="text-align: center; margin: 30px 0; font-size: 18px;"><strong>%s</strong></p>
  <p>Planned duration: approximately %d minutes.</p>
  <p>If you need to reschedule, please call the workshop.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">DETOS - Vehicle Detailing Studio</p>
</body>
</html>`, name, when, durationMins)
}

func buildInvoiceIssuedHTML(name string, inv *domain.Invoice) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>Your invoice has been issued. Summary:</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 6px 0;">Sub total</td><td style="text-align: right;">₹%s</td></tr>
    <tr><td style="padding: 6px 0;">Discount</td><td style="text-align: right;">₹%s</td></tr>
    <tr><td style="padding: 6px 0; font-weight: bold; border-top: 1px solid #eee;">Grand total</td><td style="text-align: right; font-weight: bold; border-top: 1px solid #eee;">₹%s</td></tr>
  </table>
  <p>Thank you for your business.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">DETOS - Vehicle Detailing Studio</p>
</body>
</html>`, inv.InvoiceNumber, name, inv.SubTotal.StringFixed(2), inv.DiscountTotal.StringFixed(2), inv.GrandTotal.StringFixed(2))
}
