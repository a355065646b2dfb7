package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"timelog/config"
	"timelog/database"
	"timelog/handlers"
	"timelog/middleware"
	"timelog/models"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	entryHandler := handlers.NewTimeEntryHandler()
	calendarHandler := handlers.NewCalendarHandler()
	adminHandler := handlers.NewAdminHandler()
	receiptHandler := handlers.NewFuelReceiptHandler()

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/login", authHandler.Login)
	router.Post("/first-login", authHandler.FirstLogin)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Post("/logout", authHandler.Logout)

		// Password change is reachable even before the first password is set
		r.Post("/password", authHandler.ChangePassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePasswordSet)

			// Attendance calendar
			r.Get("/calendar", calendarHandler.Month)

			// Time entries (all authenticated users, scoped by role)
			r.Get("/entries", entryHandler.List)
			r.Post("/entries", entryHandler.Create)
			r.Put("/entries/{id}", entryHandler.Update)
			r.Delete("/entries/{id}", entryHandler.Delete)

			// Fuel receipts: employees submit and track their own
			r.Get("/receipts", receiptHandler.List)
			r.Post("/receipts", receiptHandler.Create)
			r.Put("/receipts/{id}", receiptHandler.Update)

			// Backoffice only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleBackoffice))

				r.Get("/export/csv", entryHandler.ExportCSV)

				r.Post("/invites", authHandler.InviteEmployee)
				r.Get("/users", authHandler.ListUsers)

				r.Get("/holidays", adminHandler.ListHolidays)
				r.Post("/holidays", adminHandler.CreateHoliday)
				r.Put("/holidays/{id}", adminHandler.UpdateHoliday)
				r.Delete("/holidays/{id}", adminHandler.DeleteHoliday)

				r.Get("/non-working-days", adminHandler.ListNonWorkingDays)
				r.Post("/non-working-days", adminHandler.CreateNonWorkingDay)
				r.Put("/non-working-days/{id}", adminHandler.UpdateNonWorkingDay)
				r.Delete("/non-working-days/{id}", adminHandler.DeleteNonWorkingDay)

				r.Get("/vehicles", adminHandler.ListVehicles)
				r.Post("/vehicles", adminHandler.CreateVehicle)
				r.Put("/vehicles/{id}", adminHandler.UpdateVehicle)
				r.Delete("/vehicles/{id}", adminHandler.DeleteVehicle)

				r.Post("/receipts/{id}/approve", receiptHandler.Approve)
				r.Post("/receipts/{id}/reject", receiptHandler.Reject)
			})
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Printf("Default backoffice credentials: admin / admin")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
