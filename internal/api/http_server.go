package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/export"
	"shareit/internal/logging"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const (
	sharerHeader = "X-Sharer-User-Id"
	maxBodyBytes = 1 << 20
)

// Services are the application services served over HTTP.
type Services struct {
	Bookings   domain.BookingService
	Users      domain.UserService
	Items      domain.ItemService
	Requests   domain.RequestService
	RateLimits domain.RateLimitStore
	Exporter   *export.Exporter
}

// HTTPServer exposes the sharing API over HTTP/JSON.
type HTTPServer struct {
	cfg      config.APIConfig
	svc      Services
	validate *validator.Validate
	auth     *HTTPAuth
	server   *http.Server
	logger   *zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, svc Services, logger *zerolog.Logger) *HTTPServer {
	if svc.Exporter == nil {
		svc.Exporter = export.NewExporter(0, time.UTC)
	}
	srv := &HTTPServer{
		cfg:      cfg,
		svc:      svc,
		validate: validator.New(),
		auth:     NewHTTPAuth(cfg),
		logger:   logging.Component(logger, "http"),
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	return srv
}

func (s *HTTPServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestID)
	r.Use(accessLog(s.logger))

	r.Get("/healthz", s.handleHealthz)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Wrap)
		r.Use(userRateLimit(s.svc.RateLimits, s.cfg.UserRateLimit, s.logger))

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", s.handleCreateBooking)
			r.Get("/", s.handleUserBookings)
			r.Get("/owner", s.handleOwnerBookings)
			r.Get("/owner/export", s.handleOwnerBookingsExport)
			r.Get("/{bookingId}", s.handleGetBooking)
			r.Patch("/{bookingId}", s.handleApproveBooking)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleCreateUser)
			r.Get("/", s.handleListUsers)
			r.Get("/{userId}", s.handleGetUser)
			r.Patch("/{userId}", s.handleUpdateUser)
			r.Delete("/{userId}", s.handleDeleteUser)
		})

		r.Route("/items", func(r chi.Router) {
			r.Post("/", s.handleCreateItem)
			r.Get("/", s.handleOwnerItems)
			r.Get("/search", s.handleSearchItems)
			r.Get("/{itemId}", s.handleGetItem)
			r.Patch("/{itemId}", s.handleUpdateItem)
			r.Post("/{itemId}/comment", s.handleAddComment)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", s.handleCreateRequest)
			r.Get("/", s.handleOwnRequests)
			r.Get("/all", s.handleOtherRequests)
			r.Get("/{requestId}", s.handleGetRequest)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Handler is the fully wired router, used by tests and embedding servers.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body into dst and runs its validate tags.
func (s *HTTPServer) decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Validationf("invalid request body: %v", err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return domain.Validationf("%s", validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", lowerFirst(fe.Field())))
		case "email":
			parts = append(parts, fmt.Sprintf("invalid email format: %v", fe.Value()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", lowerFirst(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// sharerID reads the caller identity header.
func sharerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(sharerHeader))
	if raw == "" {
		return 0, domain.Validationf("missing %s header", sharerHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.Validationf("invalid %s header: %s", sharerHeader, raw)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.Validationf("invalid %s: %s", name, raw)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validationf("invalid %s: %s", name, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail maps a service error onto a status. Internal errors are logged and
// answered with a generic message.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error().
			Err(err).
			Str("request_id", RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeError(w, code, "internal server error")
		return
	}
	writeError(w, code, err.Error())
}
