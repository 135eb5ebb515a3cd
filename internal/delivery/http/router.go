package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confregistry/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAdmin wraps the back-office handlers with the shared-password check.
func NewRouter(
	healthController *controllers.HealthController,
	registrationController *controllers.RegistrationController,
	paymentController *controllers.PaymentController,
	adminController *controllers.AdminController,
	requireAdmin func(http.HandlerFunc) http.HandlerFunc,
	uploadDir string,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Public API
	mux.HandleFunc("GET /api/health", healthController.Health)
	mux.HandleFunc("GET /api/fees", registrationController.ListFees)
	mux.HandleFunc("POST /api/register", registrationController.CreateRegistration)
	mux.HandleFunc("GET /api/registrations/{id}", registrationController.GetRegistration)
	// Legacy alias kept for older portal builds.
	mux.HandleFunc("GET /api/participant/{id}", registrationController.GetRegistration)
	mux.HandleFunc("POST /api/create-payment/{id}", paymentController.CreatePayment)
	mux.HandleFunc("POST /api/confirm-payment/{id}", paymentController.ConfirmPayment)

	// Admin
	mux.HandleFunc("GET /api/admin/registrations", requireAdmin(adminController.ListRegistrations))
	mux.HandleFunc("GET /api/admin/export", requireAdmin(adminController.ExportCSV))
	mux.HandleFunc("POST /api/admin/mark-paid/{id}", requireAdmin(adminController.MarkPaid))

	// Uploaded files
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
