package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/performance-review/internal/analytics"
	"github.com/frahmantamala/performance-review/internal/auth"
	"github.com/frahmantamala/performance-review/internal/department"
	"github.com/frahmantamala/performance-review/internal/employee"
	"github.com/frahmantamala/performance-review/internal/review"
	"github.com/frahmantamala/performance-review/internal/transport/middleware"
	"github.com/frahmantamala/performance-review/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, employeeHandler *employee.Handler, departmentHandler *department.Handler, reviewHandler *review.Handler, analyticsHandler *analytics.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Post("/login", authHandler.Login)
		r.Post("/signup", authHandler.Signup)
		r.Post("/logout", authHandler.Logout)
		r.Post("/refresh", authHandler.RefreshToken)

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			// Employee directory is readable by any authenticated user
			pr.Get("/employees", employeeHandler.ListEmployees)
			pr.Get("/employees/{id}", employeeHandler.GetEmployee)

			// Admin routes
			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireRole(auth.RoleAdmin))

				ar.Get("/dashboard", analyticsHandler.Dashboard)
				ar.Get("/analytics", analyticsHandler.Analytics)
				ar.Get("/departments", departmentHandler.GetDepartments)
				ar.Post("/employees", employeeHandler.CreateEmployee)
				ar.Delete("/employees/{id}", employeeHandler.DeleteEmployee)
			})

			// Customer routes
			pr.Group(func(cr chi.Router) {
				cr.Use(authHandler.RequireRole(auth.RoleCustomer))

				cr.Post("/reviews", reviewHandler.SubmitReview)
			})
		})
	})
}
