package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"detos/internal/config"
	emailnoop "detos/internal/email/noop"
	emailses "detos/internal/email/ses"
	"detos/internal/handler"
	"detos/internal/port"
	"detos/internal/repository/postgres"
	"detos/internal/router"
	"detos/internal/service"
	s3storage "detos/internal/storage/s3"
)

// @title DETOS API
// @version 1.0
// @description Backend for vehicle detailing studios: customers, job cards, GST invoicing, and reporting.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	stateRepo := postgres.NewStateRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	vehicleRepo := postgres.NewVehicleRepo(db)
	planRepo := postgres.NewPlanRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	jobCardRepo := postgres.NewJobCardRepo(db)
	appointmentRepo := postgres.NewAppointmentRepo(db)
	checklistRepo := postgres.NewChecklistRepo(db)
	expenseRepo := postgres.NewExpenseRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = emailnoop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	tenantSvc := service.NewTenantService(tenantRepo)
	userSvc := service.NewUserService(userRepo)
	customerSvc := service.NewCustomerService(customerRepo, stateRepo)
	vehicleSvc := service.NewVehicleService(vehicleRepo, customerRepo)
	planSvc := service.NewPlanService(planRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, planRepo, customerRepo, tenantRepo, emailSender, cfg.Invoice)
	jobCardSvc := service.NewJobCardService(jobCardRepo, customerRepo, vehicleRepo, invoiceSvc)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, customerRepo)
	checklistSvc := service.NewChecklistService(checklistRepo, jobCardRepo, fileRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	reportSvc := service.NewReportService(reportRepo, invoiceRepo, expenseRepo)

	// Initialize handlers
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc, userSvc),
		Tenant:      handler.NewTenantHandler(tenantSvc),
		User:        handler.NewUserHandler(userSvc),
		Customer:    handler.NewCustomerHandler(customerSvc, vehicleSvc),
		Vehicle:     handler.NewVehicleHandler(vehicleSvc),
		Plan:        handler.NewPlanHandler(planSvc),
		State:       handler.NewStateHandler(stateRepo),
		Invoice:     handler.NewInvoiceHandler(invoiceSvc),
		JobCard:     handler.NewJobCardHandler(jobCardSvc),
		Appointment: handler.NewAppointmentHandler(appointmentSvc),
		Checklist:   handler.NewChecklistHandler(checklistSvc),
		File:        handler.NewFileHandler(fileSvc),
		Expense:     handler.NewExpenseHandler(expenseSvc),
		Report:      handler.NewReportHandler(reportSvc, tenantSvc),
		Health:      handler.NewHealthHandler(db),
	}

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, handlers)

	// Appointment reminder worker
	worker := service.NewReminderQueueWorker(appointmentRepo, customerRepo, emailSender, service.ReminderQueueConfig{
		PollInterval: time.Duration(cfg.Reminder.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Reminder.Concurrency,
		LeadHours:    cfg.Reminder.LeadHours,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-workerDone

	return nil
}
