package http

import (
	"net/http"

	"lendahand-backend/internal/domain"
	"lendahand-backend/internal/security"
	"lendahand-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires every API route. All /api/v1 routes sit behind the
// bearer-token middleware; role gates are applied per route, with admins
// passing every gate.
func NewRouter(
	tokens security.TokenManager,
	equipmentSvc service.EquipmentService,
	rentalSvc service.RentalService,
	reviewSvc service.ReviewService,
) *mux.Router {
	equipment := NewEquipmentHandler(equipmentSvc)
	rentals := NewRentalHandler(rentalSvc)
	reviews := NewReviewHandler(reviewSvc)

	vendor := requireRole(domain.RoleVendor)
	farmer := requireRole(domain.RoleFarmer)
	admin := requireRole()

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tokens).Handler)

	// Marketplace
	api.HandleFunc("/equipment", equipment.ListAvailable).Methods("GET")

	// Vendor listings
	api.HandleFunc("/equipment", vendor(equipment.Create)).Methods("POST")
	api.HandleFunc("/equipment/{id:[0-9]+}", vendor(equipment.Update)).Methods("PUT")
	api.HandleFunc("/equipment/{id:[0-9]+}", vendor(equipment.Delete)).Methods("DELETE")
	api.HandleFunc("/equipment/{id:[0-9]+}/stock", vendor(equipment.AdjustStock)).Methods("PATCH")
	api.HandleFunc("/vendor/equipment", vendor(equipment.ListMine)).Methods("GET")

	// Instant bookings
	api.HandleFunc("/bookings", farmer(rentals.SubmitBooking)).Methods("POST")
	api.HandleFunc("/bookings", farmer(rentals.ListMyBookings)).Methods("GET")
	api.HandleFunc("/bookings/{id:[0-9]+}/approve", vendor(rentals.Approve)).Methods("POST")
	api.HandleFunc("/bookings/{id:[0-9]+}/reject", vendor(rentals.Reject)).Methods("POST")
	api.HandleFunc("/bookings/{id:[0-9]+}/complete", vendor(rentals.Complete)).Methods("POST")
	api.HandleFunc("/vendor/bookings", vendor(rentals.ListVendorBookings)).Methods("GET")

	// Multi-day rent requests
	api.HandleFunc("/rent-requests", farmer(rentals.SubmitRentRequest)).Methods("POST")
	api.HandleFunc("/rent-requests", farmer(rentals.ListMyRentRequests)).Methods("GET")
	api.HandleFunc("/rent-requests/{id:[0-9]+}/approve", vendor(rentals.Approve)).Methods("POST")
	api.HandleFunc("/rent-requests/{id:[0-9]+}/reject", vendor(rentals.Reject)).Methods("POST")
	api.HandleFunc("/rent-requests/{id:[0-9]+}/return", farmer(rentals.MarkReturned)).Methods("POST")
	api.HandleFunc("/rent-requests/{id:[0-9]+}/complete", vendor(rentals.Complete)).Methods("POST")
	api.HandleFunc("/vendor/rent-requests", vendor(rentals.ListVendorRentRequests)).Methods("GET")

	// Reviews
	api.HandleFunc("/reviews", farmer(reviews.Submit)).Methods("POST")
	api.HandleFunc("/reviews", farmer(reviews.ListMine)).Methods("GET")
	api.HandleFunc("/reviews/{id:[0-9]+}", reviews.Delete).Methods("DELETE")
	api.HandleFunc("/vendor/reviews", vendor(reviews.ListForVendor)).Methods("GET")

	// Admin
	api.HandleFunc("/admin/equipment", admin(equipment.ListAll)).Methods("GET")
	api.HandleFunc("/admin/bookings", admin(rentals.ListAllBookings)).Methods("GET")
	api.HandleFunc("/admin/bookings/{id:[0-9]+}", admin(rentals.DeleteBooking)).Methods("DELETE")
	api.HandleFunc("/admin/rent-requests", admin(rentals.ListAllRentRequests)).Methods("GET")

	return router
}
