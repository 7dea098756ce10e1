// Package web is the JSON transport over the booking coordinator. It
// shapes requests and responses and maps booking error kinds to status
// codes; all booking rules live below it.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/akintayo/reservation/internal/application/usecases"
	"github.com/akintayo/reservation/internal/domain/booking"
)

const dateLayout = "2006-01-02"

type Server struct {
	Bookings *usecases.Coordinator
	Log      zerolog.Logger

	// Metrics exposes /metrics when set.
	Metrics http.Handler
}

type bookRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	CheckInDate  string `json:"checkInDate"`
	CheckoutDate string `json:"checkoutDate"`
}

type modifyRequest struct {
	BookingReferenceID string `json:"bookingReferenceId"`
	CheckInDate        string `json:"checkInDate"`
	CheckoutDate       string `json:"checkoutDate"`
}

type reservationResponse struct {
	BookingReferenceID string `json:"bookingReferenceId"`
	Status             string `json:"status"`
	CheckInDate        string `json:"checkInDate"`
	CheckoutDate       string `json:"checkoutDate"`
}

type availableWindowResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type errorResponse struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics)
	}

	mux.HandleFunc("GET /availability", s.handleAvailability)
	mux.HandleFunc("POST /book", s.handleBook)
	mux.HandleFunc("PUT /modify", s.handleModify)
	mux.HandleFunc("DELETE /cancel/{reference}", s.handleCancel)
	mux.HandleFunc("GET /reservation/{reference}", s.handleRetrieve)

	return mux
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	from, err := parseOptionalDate(r.URL.Query().Get("startDate"))
	if err != nil {
		s.writeError(w, booking.NewInvalidRange("startDate must be formatted as %s", dateLayout))
		return
	}
	to, err := parseOptionalDate(r.URL.Query().Get("endDate"))
	if err != nil {
		s.writeError(w, booking.NewInvalidRange("endDate must be formatted as %s", dateLayout))
		return
	}

	windows, err := s.Bookings.CheckAvailability(r.Context(), from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]availableWindowResponse, 0, len(windows))
	for _, win := range windows {
		out = append(out, availableWindowResponse{
			StartDate: win.Start.Format(dateLayout),
			EndDate:   win.End.Format(dateLayout),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, booking.NewInvalidRange("invalid request body"))
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		s.writeError(w, booking.NewInvalidRange("full name is required"))
		return
	}
	if !strings.Contains(req.Email, "@") {
		s.writeError(w, booking.NewInvalidRange("please provide a valid email address"))
		return
	}
	arrival, departure, err := parseStay(req.CheckInDate, req.CheckoutDate)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.Bookings.Book(r.Context(), strings.TrimSpace(req.Email), strings.TrimSpace(req.FullName), arrival, departure)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func (s *Server) handleModify(w http.ResponseWriter, r *http.Request) {
	var req modifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, booking.NewInvalidRange("invalid request body"))
		return
	}
	if strings.TrimSpace(req.BookingReferenceID) == "" {
		s.writeError(w, booking.NewInvalidRange("booking reference cannot be empty"))
		return
	}
	arrival, departure, err := parseStay(req.CheckInDate, req.CheckoutDate)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.Bookings.Modify(r.Context(), req.BookingReferenceID, arrival, departure)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.Bookings.Cancel(r.Context(), r.PathValue("reference")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	res, err := s.Bookings.Retrieve(r.Context(), r.PathValue("reference"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func toReservationResponse(res booking.Reservation) reservationResponse {
	return reservationResponse{
		BookingReferenceID: res.Reference,
		Status:             string(res.Status),
		CheckInDate:        res.Arrival.Format(dateLayout),
		CheckoutDate:       res.Departure.Format(dateLayout),
	}
}

func parseStay(checkIn, checkout string) (time.Time, time.Time, error) {
	if checkIn == "" {
		return time.Time{}, time.Time{}, booking.NewInvalidRange("check in date is required")
	}
	if checkout == "" {
		return time.Time{}, time.Time{}, booking.NewInvalidRange("check out date is required")
	}
	arrival, err := time.ParseInLocation(dateLayout, checkIn, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, booking.NewInvalidRange("check in date must be formatted as %s", dateLayout)
	}
	departure, err := time.ParseInLocation(dateLayout, checkout, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, booking.NewInvalidRange("check out date must be formatted as %s", dateLayout)
	}
	return arrival, departure, nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Error().Err(err).Msg("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResponse{Message: err.Error(), ErrorCode: "internal-error"}
	status := http.StatusInternalServerError

	switch booking.KindOf(err) {
	case booking.KindInvalidRange:
		status, resp.ErrorCode = http.StatusBadRequest, "invalid-request"
	case booking.KindConflict:
		status, resp.ErrorCode = http.StatusForbidden, "reservation-conflict"
	case booking.KindNotFound:
		status, resp.ErrorCode = http.StatusNotFound, "object-not-found"
	default:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status, resp.ErrorCode = http.StatusServiceUnavailable, "request-cancelled"
			resp.Message = "request cancelled"
		} else {
			s.Log.Error().Err(err).Msg("request failed")
			resp.Message = "internal error"
		}
	}
	s.writeJSON(w, status, resp)
}

// Start serves h on addr until ctx is done, then shuts down gracefully.
func Start(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info().Str("addr", addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
