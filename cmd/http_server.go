package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/performance-review/internal"
	"github.com/frahmantamala/performance-review/internal/analytics"
	analyticsPostgres "github.com/frahmantamala/performance-review/internal/analytics/postgres"
	"github.com/frahmantamala/performance-review/internal/auth"
	authPostgres "github.com/frahmantamala/performance-review/internal/auth/postgres"
	"github.com/frahmantamala/performance-review/internal/core/events"
	"github.com/frahmantamala/performance-review/internal/department"
	departmentPostgres "github.com/frahmantamala/performance-review/internal/department/postgres"
	"github.com/frahmantamala/performance-review/internal/employee"
	employeePostgres "github.com/frahmantamala/performance-review/internal/employee/postgres"
	"github.com/frahmantamala/performance-review/internal/review"
	reviewPostgres "github.com/frahmantamala/performance-review/internal/review/postgres"
	"github.com/frahmantamala/performance-review/internal/transport"
	"github.com/frahmantamala/performance-review/internal/transport/rest"
	"github.com/frahmantamala/performance-review/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	lg := deps.Logger
	gormDB := deps.GormDB

	bus := events.NewEventBus(lg)
	registerAuditSubscribers(bus, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), bus, lg)
	employeeHandler := employee.NewHandler(employeeService)

	departmentService := department.NewService(departmentPostgres.NewDepartmentRepository(gormDB), lg)
	departmentHandler := department.NewHandler(transport.NewBaseHandler(lg), departmentService)

	reviewService := review.NewService(reviewPostgres.NewReviewRepository(gormDB), bus, lg)
	reviewHandler := review.NewHandler(reviewService)

	analyticsService := analytics.NewService(analyticsPostgres.NewAnalyticsRepository(gormDB), lg)
	analyticsHandler := analytics.NewHandler(transport.NewBaseHandler(lg), analyticsService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, authHandler, employeeHandler, departmentHandler, reviewHandler, analyticsHandler, lg)
}

// registerAuditSubscribers wires the audit trail: domain events get logged
// asynchronously so request latency never depends on them.
func registerAuditSubscribers(bus *events.EventBus, lg *slog.Logger) {
	bus.Subscribe(events.EventTypeReviewSubmitted, func(ctx context.Context, event events.Event) error {
		lg.Info("audit: review submitted",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	bus.Subscribe(events.EventTypeEmployeeDeleted, func(ctx context.Context, event events.Event) error {
		lg.Info("audit: employee deleted",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := openGORM(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection pool
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// openGORM layers the ORM over the existing pool so both share connections.
func openGORM(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
