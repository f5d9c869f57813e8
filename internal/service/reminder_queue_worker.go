package service

import (
	"context"
	"log"
	"sync"
	"time"

	"detos/internal/port"
)

// ReminderQueueConfig holds settings for the appointment reminder worker.
type ReminderQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
	LeadHours    int
}

// ReminderQueueWorker polls for appointments entering their reminder window
// and emails the customer.
type ReminderQueueWorker struct {
	apptRepo     port.AppointmentRepository
	customerRepo port.CustomerRepository
	email        port.EmailSender
	cfg          ReminderQueueConfig
	wg           sync.WaitGroup
}

// NewReminderQueueWorker creates a new ReminderQueueWorker.
func NewReminderQueueWorker(
	apptRepo port.AppointmentRepository,
	customerRepo port.CustomerRepository,
	email port.EmailSender,
	cfg ReminderQueueConfig,
) *ReminderQueueWorker {
	return &ReminderQueueWorker{
		apptRepo:     apptRepo,
		customerRepo: customerRepo,
		email:        email,
		cfg:          cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight sends have finished.
func (w *ReminderQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("reminderQueueWorker: started (poll=%s, concurrency=%d, lead=%dh)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.LeadHours)

	for {
		select {
		case <-ctx.Done():
			log.Printf("reminderQueueWorker: shutting down, waiting for in-flight sends...")
			w.wg.Wait()
			log.Printf("reminderQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			appts, err := w.apptRepo.ClaimDueReminders(ctx, w.cfg.LeadHours, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("reminderQueueWorker: ClaimDueReminders error: %v", err)
				continue
			}

			for i := range appts {
				appt := appts[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so claimed reminders go out even during shutdown.
					sendCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
					defer cancel()

					customer, err := w.customerRepo.GetByID(sendCtx, appt.TenantID, appt.CustomerID)
					if err != nil {
						log.Printf("reminderQueueWorker: customer lookup failed for appointment %s: %v", appt.ID, err)
						return
					}
					if customer.Email == "" {
						return
					}

					log.Printf("reminderQueueWorker: sending reminder for appointment %s (scheduled %s)",
						appt.ID, appt.ScheduledAt.Format(time.RFC3339))
					if err := w.email.SendAppointmentReminder(sendCtx, customer.Email, customer.Name, &appt); err != nil {
						log.Printf("reminderQueueWorker: send failed for appointment %s: %v", appt.ID, err)
					}
				}()
			}
		}
	}
}
