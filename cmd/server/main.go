package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"confregistry/config"
	_ "confregistry/docs"
	"confregistry/internal/adapters/email"
	"confregistry/internal/adapters/idgen"
	"confregistry/internal/adapters/payment"
	"confregistry/internal/adapters/uploads"
	delivery "confregistry/internal/delivery/http"
	"confregistry/internal/delivery/http/controllers"
	"confregistry/internal/delivery/http/middleware"
	"confregistry/internal/domain"
	"confregistry/internal/repository/jsonfile"
	"confregistry/internal/repository/postgres"
	"confregistry/internal/services"
)

const serviceTimeout = 2 * time.Second

// @title Conference Registration API
// @version 1.0
// @description Registration, payment, and back-office API for the conference portal.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	repo, err := newRepository(cfg, logger)
	if err != nil {
		logger.Error("init store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}

	codes := idgen.New()
	files, err := uploads.NewLocalStore(cfg.UploadDir, codes)
	if err != nil {
		logger.Error("init upload store", "dir", cfg.UploadDir, "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:        cfg.EmailProvider,
		FromAddress:     cfg.EmailFrom,
		FromName:        cfg.EmailFromName,
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		logger.Error("init mailer", "provider", cfg.EmailProvider, "err", err)
		os.Exit(1)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("init email templates", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, renderer)

	registrationService := services.NewRegistrationService(repo, files, codes, emailService, serviceTimeout)
	paymentService := services.NewPaymentService(repo, files, payment.NewJWTIssuer(cfg.PaymentSecret), emailService,
		services.PaymentConfig{BaseURL: cfg.PaymentBaseURL, RequireProof: cfg.PaymentRequireProof}, serviceTimeout)
	adminService := services.NewAdminService(repo, serviceTimeout)

	mux := delivery.NewRouter(
		controllers.NewHealthController(),
		controllers.NewRegistrationController(logger, registrationService),
		controllers.NewPaymentController(logger, paymentService),
		controllers.NewAdminController(logger, adminService),
		middleware.RequireAdmin(cfg.AdminPassword, logger),
		cfg.UploadDir,
	)
	handler := middleware.CORS(cfg.CORSOrigins,
		middleware.LoggingMiddleware(logger,
			middleware.Recover(logger, mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}

// newRepository picks the persistence backend from config. The default file
// store needs no external services; postgres expects the schema to already
// exist.
func newRepository(cfg *config.Config, logger *slog.Logger) (domain.RegistrationRepository, error) {
	if cfg.StoreDriver == "postgres" {
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		return postgres.NewRegistrationRepository(db), nil
	}
	return jsonfile.NewRegistrationRepository(cfg.DataFile, logger)
}
