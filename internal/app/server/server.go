package server

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"smartleave/internal/domain/directory"
	"smartleave/internal/domain/export"
	"smartleave/internal/domain/feedback"
	"smartleave/internal/domain/leave"
	"smartleave/internal/platform/config"
	"smartleave/internal/platform/metrics"
	"smartleave/internal/transport/http/api"
	audithandler "smartleave/internal/transport/http/handlers/audit"
	authhandler "smartleave/internal/transport/http/handlers/auth"
	feedbackhandler "smartleave/internal/transport/http/handlers/feedback"
	leavehandler "smartleave/internal/transport/http/handlers/leave"
	profilehandler "smartleave/internal/transport/http/handlers/profile"
	reportshandler "smartleave/internal/transport/http/handlers/reports"
	"smartleave/internal/transport/http/middleware"
)

type App struct {
	Config        config.Config
	Dir           *directory.Directory
	Ledger        *leave.Ledger
	Feedback      *feedback.Store
	Announcements *feedback.Announcements
	Metrics       *metrics.Collector
	Router        http.Handler
}

// New assembles the application from configuration. It does not bind a
// listener, so tests can drive the router directly.
func New(cfg config.Config) (*App, error) {
	dir := directory.New()
	ledger := leave.NewLedger(dir)
	store := feedback.NewStore()
	announcements := feedback.NewAnnouncements()
	collector := metrics.New()
	writer := export.Writer{Dir: cfg.ExportDir}

	if cfg.SeedDemoData {
		if err := seedDemoData(dir, ledger); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(dir, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		leavehandler.NewHandler(ledger).RegisterRoutes(r)
		reportshandler.NewHandler(dir, ledger, writer).RegisterRoutes(r)
		feedbackhandler.NewHandler(store, announcements, dir, writer).RegisterRoutes(r)
		audithandler.NewHandler(ledger, writer).RegisterRoutes(r)
		profilehandler.NewHandler(dir, ledger, writer, time.Now().UnixNano()).RegisterRoutes(r)
	})

	return &App{
		Config:        cfg,
		Dir:           dir,
		Ledger:        ledger,
		Feedback:      store,
		Announcements: announcements,
		Metrics:       collector,
		Router:        router,
	}, nil
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	slog.Info("smartleave server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// seedDemoData loads the demo organization used by local development.
func seedDemoData(dir *directory.Directory, ledger *leave.Ledger) error {
	if _, err := dir.Register(101, "Shubhangi Tyagi", "shubhangi@smartleave.io", "employee123", directory.RoleEmployee, 26, directory.DefaultAnnualLeave); err != nil {
		return err
	}
	if _, err := dir.Register(201, "Parul Rana", "parul@smartleave.io", "manager123", directory.RoleManager, directory.DefaultAnnualLeave, directory.DefaultAnnualLeave); err != nil {
		return err
	}
	if _, err := dir.Register(301, "Dr. Swati Gupta", "swati@smartleave.io", "admin123", directory.RoleAdmin, 50, 50); err != nil {
		return err
	}

	start := time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.November, 11, 0, 0, 0, 0, time.UTC)
	req, err := ledger.Apply(101, start, end, "Work From Home", "Remote work")
	if err != nil {
		return err
	}
	if _, err := ledger.Approve(req.ID); err != nil {
		return err
	}
	return nil
}
