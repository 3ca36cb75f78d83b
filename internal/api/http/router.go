package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"borrowhood-backend/internal/security"
	"borrowhood-backend/internal/service"
)

// Handler bundles the services behind the REST surface.
type Handler struct {
	auth         service.AuthService
	users        service.UserService
	items        service.ItemService
	borrows      service.BorrowService
	reviews      service.ReviewService
	trustScores  service.TrustScoreService
	payments     service.PaymentService
	notification service.NotificationService
}

func NewHandler(
	auth service.AuthService,
	users service.UserService,
	items service.ItemService,
	borrows service.BorrowService,
	reviews service.ReviewService,
	trustScores service.TrustScoreService,
	payments service.PaymentService,
	notification service.NotificationService,
) *Handler {
	return &Handler{
		auth:         auth,
		users:        users,
		items:        items,
		borrows:      borrows,
		reviews:      reviews,
		trustScores:  trustScores,
		payments:     payments,
		notification: notification,
	}
}

// NewRouter wires every route. Everything under /api except auth and the
// payment webhook sits behind the bearer token middleware.
func NewRouter(h *Handler, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/otp/request", h.RequestOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/otp/verify", h.VerifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", h.PaymentWebhook).Methods(http.MethodPost)

	// Authenticated
	auth := api.NewRoute().Subrouter()
	auth.Use(authMiddleware(tokens))

	auth.HandleFunc("/users/me", h.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/users/me", h.UpdateProfile).Methods(http.MethodPut)
	auth.HandleFunc("/users/me/stats", h.GetStats).Methods(http.MethodGet)
	auth.HandleFunc("/users/nearby", h.NearbyUsers).Methods(http.MethodGet)
	auth.HandleFunc("/users/{id:[0-9]+}/reviews", h.ListUserReviews).Methods(http.MethodGet)
	auth.HandleFunc("/users/{id:[0-9]+}/trust-score", h.GetTrustScore).Methods(http.MethodGet)

	auth.HandleFunc("/items", h.AddItem).Methods(http.MethodPost)
	auth.HandleFunc("/items", h.SearchItems).Methods(http.MethodGet)
	auth.HandleFunc("/items/nearby", h.NearbyItems).Methods(http.MethodGet)
	auth.HandleFunc("/items/{id:[0-9]+}", h.GetItem).Methods(http.MethodGet)
	auth.HandleFunc("/items/{id:[0-9]+}", h.UpdateItem).Methods(http.MethodPut)
	auth.HandleFunc("/items/{id:[0-9]+}", h.DeleteItem).Methods(http.MethodDelete)

	auth.HandleFunc("/borrows", h.CreateBorrow).Methods(http.MethodPost)
	auth.HandleFunc("/borrows/active", h.ListActiveBorrows).Methods(http.MethodGet)
	auth.HandleFunc("/borrows/history", h.ListBorrowHistory).Methods(http.MethodGet)
	auth.HandleFunc("/borrows/received", h.ListReceivedRequests).Methods(http.MethodGet)
	auth.HandleFunc("/borrows/{id:[0-9]+}", h.GetBorrow).Methods(http.MethodGet)
	auth.HandleFunc("/borrows/{id:[0-9]+}/approve", h.ApproveBorrow).Methods(http.MethodPost)
	auth.HandleFunc("/borrows/{id:[0-9]+}/cancel", h.CancelBorrow).Methods(http.MethodPost)
	auth.HandleFunc("/borrows/{id:[0-9]+}/return", h.ReturnBorrow).Methods(http.MethodPost)

	auth.HandleFunc("/reviews", h.CreateReview).Methods(http.MethodPost)

	auth.HandleFunc("/payments/orders", h.CreatePaymentOrder).Methods(http.MethodPost)
	auth.HandleFunc("/payments/confirm", h.ConfirmPayment).Methods(http.MethodPost)

	auth.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{id:[0-9]+}/read", h.MarkNotificationRead).Methods(http.MethodPost)

	return r
}
