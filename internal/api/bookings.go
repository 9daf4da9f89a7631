package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req createBookingRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	booking, err := s.svc.Bookings.CreateBooking(r.Context(), userID, models.BookingDraft{
		ItemID: req.ItemID,
		Start:  req.Start.ptr(),
		End:    req.End.ptr(),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("approved"))
	approved, err := strconv.ParseBool(raw)
	if err != nil {
		s.fail(w, r, domain.Validationf("approved must be true or false, got %q", raw))
		return
	}

	booking, err := s.svc.Bookings.ApproveBooking(r.Context(), userID, bookingID, approved)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	booking, err := s.svc.Bookings.GetBookingByID(r.Context(), userID, bookingID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (s *HTTPServer) handleUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	bookings, err := s.svc.Bookings.GetUserBookings(r.Context(), userID, stateParam(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (s *HTTPServer) handleOwnerBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	bookings, err := s.svc.Bookings.GetOwnerBookings(r.Context(), userID, stateParam(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (s *HTTPServer) handleOwnerBookingsExport(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	state := stateParam(r)
	bookings, err := s.svc.Bookings.GetOwnerBookings(r.Context(), userID, state)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// Книга собирается в памяти, чтобы ошибка не оборвала уже начатый ответ
	var buf bytes.Buffer
	title := fmt.Sprintf("Бронирования владельца %d (%s)", userID, strings.ToUpper(state))
	if err := s.svc.Exporter.WriteBookings(&buf, title, bookings); err != nil {
		if errors.Is(err, export.ErrTooManyRows) {
			s.fail(w, r, domain.Validationf("%v", err))
			return
		}
		s.fail(w, r, fmt.Errorf("export bookings: %w", err))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings_owner_%d.xlsx"`, userID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// stateParam defaults a missing state to ALL.
func stateParam(r *http.Request) string {
	state := r.URL.Query().Get("state")
	if state == "" {
		return models.StateAll.String()
	}
	return state
}
