package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"marketplace-availability/internal/security"
	"marketplace-availability/internal/service"
)

// Pinger reports backing store health for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter wires the availability API. store may be nil when there is
// nothing to ping.
func NewRouter(svc service.BookingService, tm security.TokenManager, store Pinger, log *slog.Logger) http.Handler {
	h := NewBookingHandler(svc)
	auth := NewAuthMiddleware(tm)

	router := mux.NewRouter()
	router.Use(auth.Handler)
	router.HandleFunc("/healthz", healthHandler(store)).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/resources/{resourceID}/occupied", h.OccupiedDates).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceID}/availability", h.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceID}/reservations", h.ListReservations).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceID}/reservations", h.CreateReservation).Methods(http.MethodPost)
	api.HandleFunc("/resources/{resourceID}/reservations/{reservationID}/status", h.UpdateReservationStatus).Methods(http.MethodPatch)
	api.HandleFunc("/resources/{resourceID}/reservations/{reservationID}/extensions", h.RequestExtension).Methods(http.MethodPost)
	api.HandleFunc("/resources/{resourceID}/quote", h.Quote).Methods(http.MethodPost)
	api.HandleFunc("/resources/{resourceID}/calendar.ics", h.CalendarFeed).Methods(http.MethodGet)
	api.HandleFunc("/listings/{listingID}/distance", h.ListingDistance).Methods(http.MethodGet)

	handler := Chain(router,
		WithRequestID(log),
		WithAccessLog,
		WithRecovery,
		WithBodyLimit(maxBodyBytes),
	)
	return otelhttp.NewHandler(handler, "availability-api")
}

func healthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				writeError(w, http.StatusServiceUnavailable, "store unavailable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
