package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"marketplace-availability/internal/availability"
	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/geo"
	"marketplace-availability/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type dateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type createReservationRequest struct {
	dateRangeRequest
	RenterName string `json:"renter_name"`
	Status     string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) OccupiedDates(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceID"]

	var statuses []domain.ReservationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			s, err := domain.ParseReservationStatus(part)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			statuses = append(statuses, s)
		}
	}

	dates, err := h.svc.OccupiedDates(r.Context(), resourceID, statuses)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if dates == nil {
		dates = []availability.Date{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"resource_id": resourceID, "dates": dates})
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceID"]
	q := r.URL.Query()

	rng, err := availability.ParseDateRange(q.Get("start"), q.Get("end"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	blockPast := false
	if raw := q.Get("block_past"); raw != "" {
		if blockPast, err = strconv.ParseBool(raw); err != nil {
			writeError(w, http.StatusBadRequest, "block_past must be a boolean")
			return
		}
	}

	var maxDate *availability.Date
	if raw := q.Get("max"); raw != "" {
		d, err := availability.ParseDate(raw)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		maxDate = &d
	}

	ok, err := h.svc.CheckAvailability(r.Context(), resourceID, rng, blockPast, maxDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resource_id": resourceID, "range": rng, "available": ok})
}

func (h *BookingHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceID"]
	periods, err := h.svc.ListReservations(r.Context(), resourceID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if periods == nil {
		periods = []domain.ReservationPeriod{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": periods})
}

func (h *BookingHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceID"]

	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	rng, err := availability.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	period := &domain.ReservationPeriod{
		ResourceID: resourceID,
		StartDate:  rng.Start.Time(time.UTC),
		EndDate:    rng.End.Time(time.UTC),
		RenterName: req.RenterName,
	}
	if req.Status != "" {
		if period.Status, err = domain.ParseReservationStatus(req.Status); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	if period.RenterName == "" {
		if claims := ClaimsFromContext(r.Context()); claims != nil {
			period.RenterName = claims.UserID
		}
	}

	created, err := h.svc.AppendReservation(r.Context(), period)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *BookingHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	next, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	updated, err := h.svc.UpdateReservationStatus(r.Context(), vars["resourceID"], vars["reservationID"], next)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RequestExtension answers 200 for both accepted and rejected extensions; the
// verdict and reason are in the body.
func (h *BookingHandler) RequestExtension(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dateRangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	start, err := availability.ParseDate(req.StartDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	end, err := availability.ParseDate(req.EndDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	quote, err := h.svc.RequestExtension(r.Context(), vars["resourceID"], vars["reservationID"], availability.DateRange{Start: start, End: end})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceID"]

	var req dateRangeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	rng, err := availability.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	quote, err := h.svc.QuoteBooking(r.Context(), resourceID, rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) ListingDistance(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["listingID"]
	q := r.URL.Query()

	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	origin := geo.NewCoordinates(lat, lng)
	if errLat != nil || errLng != nil || origin == nil {
		writeError(w, http.StatusBadRequest, "lat and lng must be valid coordinates")
		return
	}

	miles, label, err := h.svc.ListingDistance(r.Context(), listingID, *origin)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"listing_id":     listingID,
		"distance_miles": miles,
		"label":          label,
	})
}
