package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"detos/internal/domain"
	"detos/internal/handler"
	"detos/internal/middleware"
	"detos/internal/service"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	User        *handler.UserHandler
	Customer    *handler.CustomerHandler
	Vehicle     *handler.VehicleHandler
	Plan        *handler.PlanHandler
	State       *handler.StateHandler
	Invoice     *handler.InvoiceHandler
	JobCard     *handler.JobCardHandler
	Appointment *handler.AppointmentHandler
	Checklist   *handler.ChecklistHandler
	File        *handler.FileHandler
	Expense     *handler.ExpenseHandler
	Report      *handler.ReportHandler
	Health      *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	protected.GET("/auth/me", h.Auth.Me)

	// GST state directory
	states := protected.Group("/states")
	states.GET("", h.State.List)
	states.GET("/:id", h.State.GetByID)

	// Customer registry
	customers := protected.Group("/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.GetByID)
	customers.GET("/:id/vehicles", h.Customer.ListVehicles)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Customer.Delete)

	// Vehicle registry
	vehicles := protected.Group("/vehicles")
	vehicles.POST("", h.Vehicle.Create)
	vehicles.GET("", h.Vehicle.List)
	vehicles.GET("/:id", h.Vehicle.GetByID)
	vehicles.PUT("/:id", h.Vehicle.Update)
	vehicles.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Vehicle.Delete)

	// Service catalogue
	plans := protected.Group("/plans")
	plans.POST("", middleware.RequireRole(domain.RoleAdmin), h.Plan.Create)
	plans.GET("", h.Plan.List)
	plans.GET("/:id", h.Plan.GetByID)
	plans.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), h.Plan.Update)
	plans.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Plan.Delete)

	// Invoicing
	invoices := protected.Group("/invoices")
	invoices.POST("/preview", h.Invoice.Preview)
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.PUT("/:id", h.Invoice.Update)
	invoices.POST("/:id/issue", h.Invoice.Issue)
	invoices.POST("/:id/pay", h.Invoice.MarkPaid)
	invoices.POST("/:id/void", h.Invoice.Void)
	invoices.DELETE("/:id", h.Invoice.Delete)

	// Workshop job cards
	jobCards := protected.Group("/job-cards")
	jobCards.POST("", h.JobCard.Create)
	jobCards.GET("", h.JobCard.List)
	jobCards.GET("/:id", h.JobCard.GetByID)
	jobCards.PUT("/:id", h.JobCard.Update)
	jobCards.POST("/:id/status", h.JobCard.ChangeStatus)
	jobCards.POST("/:id/invoice", h.JobCard.GenerateInvoice)
	jobCards.POST("/:id/checklists", h.Checklist.Instantiate)
	jobCards.GET("/:id/checklists", h.Checklist.ListByJobCard)
	jobCards.DELETE("/:id", h.JobCard.Delete)

	// Appointments
	appointments := protected.Group("/appointments")
	appointments.POST("", h.Appointment.Create)
	appointments.GET("", h.Appointment.List)
	appointments.GET("/:id", h.Appointment.GetByID)
	appointments.PUT("/:id", h.Appointment.Update)
	appointments.DELETE("/:id", h.Appointment.Delete)

	// SOP templates and checklists
	templates := protected.Group("/sop-templates")
	templates.POST("", middleware.RequireRole(domain.RoleAdmin), h.Checklist.CreateTemplate)
	templates.GET("", h.Checklist.ListTemplates)
	templates.GET("/:id", h.Checklist.GetTemplate)

	checklists := protected.Group("/checklists")
	checklists.GET("/:id", h.Checklist.GetChecklist)
	checklists.POST("/items/:id/complete", h.Checklist.CompleteItem)

	// File uploads (checklist photos etc.)
	files := protected.Group("/files")
	files.POST("/upload", h.File.Upload)
	files.GET("/:id", h.File.GetByID)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.File.Delete)

	// Expense tracking
	expenses := protected.Group("/expenses")
	expenses.POST("", h.Expense.Create)
	expenses.GET("", h.Expense.List)
	expenses.GET("/:id", h.Expense.GetByID)
	expenses.PUT("/:id", h.Expense.Update)
	expenses.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Expense.Delete)

	// Reporting
	reports := protected.Group("/reports")
	reports.GET("/revenue", h.Report.Revenue)
	reports.GET("/tax", h.Report.Tax)
	reports.GET("/top-plans", h.Report.TopPlans)
	reports.GET("/dashboard", h.Report.Dashboard)
	reports.GET("/expenses", h.Report.Expenses)
	reports.GET("/invoices/export", h.Report.ExportInvoices)

	// User management (tenant-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), h.User.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.Delete)

	// Admin routes - tenant management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/tenants", h.Tenant.Create)
	admin.GET("/tenants", h.Tenant.List)
	admin.GET("/tenants/:id", h.Tenant.GetByID)
	admin.PUT("/tenants/:id", h.Tenant.Update)
	admin.DELETE("/tenants/:id", h.Tenant.Delete)

	return r
}
