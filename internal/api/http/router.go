package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

// Services bundles the service dependencies the router wires up.
type Services struct {
	Auth          service.AuthService
	Fleet         service.FleetService
	Rental        service.RentalService
	Notifications service.NotificationService
}

// NewRouter builds the full API route table.
func NewRouter(svcs Services, tokens security.TokenManager) *mux.Router {
	authHandler := NewAuthHandler(svcs.Auth)
	carHandler := NewCarHandler(svcs.Fleet)
	rentalHandler := NewRentalHandler(svcs.Rental)
	noteHandler := NewNotificationHandler(svcs.Notifications)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset/request", authHandler.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset/confirm", authHandler.ConfirmPasswordReset).Methods(http.MethodPost)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/cars", carHandler.ListAvailable).Methods(http.MethodGet)
	authed.HandleFunc("/cars/{id:[0-9]+}", carHandler.Get).Methods(http.MethodGet)

	authed.HandleFunc("/bookings", rentalHandler.Book).Methods(http.MethodPost)
	authed.HandleFunc("/bookings", rentalHandler.ListHistory).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}", rentalHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", rentalHandler.Cancel).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/payments", rentalHandler.RecordPayment).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id:[0-9]+}/payments", rentalHandler.ListPayments).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	// Admin routes
	admin := authed.NewRoute().Subrouter()
	admin.Use(RequireAdmin)

	admin.HandleFunc("/admin/cars", carHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/cars", carHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/cars/{id:[0-9]+}", carHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/cars/{id:[0-9]+}", carHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/admin/bookings/pending", rentalHandler.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}/approve", rentalHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id:[0-9]+}/reject", rentalHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id:[0-9]+}/return", rentalHandler.Return).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id:[0-9]+}", rentalHandler.Delete).Methods(http.MethodDelete)

	return r
}
