package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/emersion/go-ical"
	"github.com/gorilla/mux"

	"marketplace-availability/internal/availability"
	"marketplace-availability/internal/domain"
	"marketplace-availability/internal/logger"
)

const calendarProductID = "-//Marketplace//Availability//EN"

// CalendarFeed serves the resource's blocking reservations as an iCalendar
// feed so owners can subscribe from any calendar client.
func (h *BookingHandler) CalendarFeed(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceID"]

	periods, err := h.svc.ListReservations(r.Context(), resourceID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(buildCalendar(resourceID, periods, time.Now())); err != nil {
		logger.ErrorContext(r.Context(), "failed to encode calendar", "error", err, "resourceID", resourceID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.ics"`, resourceID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// buildCalendar emits one all-day event per pending or accepted period. iCal
// all-day events end exclusively, so DTEND is the day after the last booked day.
func buildCalendar(resourceID string, periods []domain.ReservationPeriod, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)

	for _, p := range periods {
		if !p.Status.Blocks() {
			continue
		}
		rng := availability.PeriodRange(p)

		vevent := ical.NewEvent()
		vevent.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", p.ID, resourceID))
		vevent.Props.SetText(ical.PropSummary, summaryFor(p))
		vevent.Props.SetText(ical.PropStatus, eventStatus(p.Status))
		vevent.Props.SetDate(ical.PropDateTimeStart, rng.Start.Time(time.UTC))
		vevent.Props.SetDate(ical.PropDateTimeEnd, rng.End.AddDays(1).Time(time.UTC))
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())

		cal.Children = append(cal.Children, vevent.Component)
	}
	return cal
}

func summaryFor(p domain.ReservationPeriod) string {
	if p.RenterName != "" {
		return "Booked: " + p.RenterName
	}
	return "Booked"
}

func eventStatus(s domain.ReservationStatus) string {
	if s == domain.ReservationStatusPending {
		return "TENTATIVE"
	}
	return "CONFIRMED"
}
