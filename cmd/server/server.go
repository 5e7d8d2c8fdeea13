package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	localcontext "github.com/rahul4469/truthguardian/context"
	"github.com/rahul4469/truthguardian/internal/config"
	"github.com/rahul4469/truthguardian/internal/controllers"
	"github.com/rahul4469/truthguardian/internal/middleware"
	"github.com/rahul4469/truthguardian/internal/models"
	"github.com/rahul4469/truthguardian/internal/services"
	"github.com/rahul4469/truthguardian/internal/views"
	"github.com/rahul4469/truthguardian/templates"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup Services ---------------
	analyzer, err := newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	sink := services.NewSimulatedSink(cfg.Report.SubmitDelay, logger)

	router, err := newRouter(cfg, logger, analyzer, sink)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Server.Environment))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newRouter wires templates, controllers and middleware into the handler
// tree served by the web server.
func newRouter(cfg *config.Config, logger *zap.Logger, analyzer controllers.Analyzer, sink models.ReportSink) (http.Handler, error) {
	// Parse templates ---------------
	analyzeTpl, err := views.ParseFS(templates.FS, "pages/analyze.gohtml")
	if err != nil {
		return nil, err
	}
	aboutTpl, err := views.ParseFS(templates.FS, "pages/about.gohtml")
	if err != nil {
		return nil, err
	}
	reportTpl, err := views.ParseFS(templates.FS, "pages/report.gohtml")
	if err != nil {
		return nil, err
	}

	// Setup Controllers ---------------
	analyzeCtrl := controllers.NewAnalyzeController(analyzer, controllers.AnalyzeTemplates{Page: analyzeTpl})
	reportCtrl := controllers.NewReportController(sink, controllers.ReportTemplates{Page: reportTpl})
	staticCtrl := controllers.NewStaticController(controllers.StaticTemplates{About: aboutTpl})

	// CSRF middleware
	csrfMw := csrf.Protect(
		[]byte(cfg.Security.CSRFSecret),
		csrf.Secure(cfg.Security.SecureCookies),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins(cfg.Security.TrustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", controllers.HealthCheck)

	// ---- Pages ----
	r.Group(func(r chi.Router) {
		if !cfg.IsProduction() {
			r.Use(middleware.PlaintextHTTP)
		}
		r.Use(csrfMw)

		r.Get("/", analyzeCtrl.GetAnalyze)
		r.Post("/analyze", analyzeCtrl.PostAnalyze)

		r.Get("/about", staticCtrl.GetAbout)

		r.Get("/report", reportCtrl.GetReport)
		r.Post("/report", reportCtrl.PostReport)
		r.Post("/report/reset", reportCtrl.PostReset)
	})

	// ---- JSON API ----
	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))
		r.Post("/analyze", analyzeCtrl.PostAnalyzeAPI)
	})

	return r, nil
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	localcontext.ContextGetLogger(r.Context()).Warn("csrf check failed", zap.Error(csrf.FailureReason(r)))
	http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
}
