// Package rentaltest provides an in-memory car-rental service for tests.
//
// The fake implements the full endpoint table of the real service under an
// "/api" prefix, issues HS256 bearer tokens and answers failures with
// {"message": "..."} bodies, so client code can be exercised end to end
// without a network dependency:
//
//	srv := rentaltest.NewServer()
//	defer srv.Close()
//	c, _ := client.New(srv.BaseURL())
package rentaltest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime/debug"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Server is a running fake rental service.
type Server struct {
	srv    *httptest.Server
	store  *store
	secret []byte
	logger zerolog.Logger

	mu       sync.Mutex
	failures []injectedFailure
}

type injectedFailure struct {
	status  int
	message string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger routes handler logs (panics, encode failures) to l.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer starts a fake service on a loopback port. Call Close when done.
func NewServer(opts ...Option) *Server {
	s := &Server{
		store:  newStore(),
		secret: randomSecret(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.srv = httptest.NewServer(s.Handler())
	return s
}

// URL is the root of the listener, without the "/api" prefix.
func (s *Server) URL() string { return s.srv.URL }

// BaseURL is the value to hand to client.New.
func (s *Server) BaseURL() string { return s.srv.URL + "/api" }

// Close shuts the listener down.
func (s *Server) Close() { s.srv.Close() }

// FailNext makes the next n requests fail with status and a
// {"message": message} body before reaching any handler.
func (s *Server) FailNext(n, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.failures = append(s.failures, injectedFailure{status: status, message: message})
	}
}

func (s *Server) nextFailure() (injectedFailure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.failures) == 0 {
		return injectedFailure{}, false
	}
	f := s.failures[0]
	s.failures = s.failures[1:]
	return f, true
}

// Handler returns the router, for mounting the fake in a custom server.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.recoverPanics, s.injectFailures)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	api := router.PathPrefix("/api").Subrouter()

	// Auth endpoints
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-otp", s.verifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", s.forgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", s.resetPassword).Methods(http.MethodPost)
	api.HandleFunc("/admin/activate", s.requireUser(s.activateAdmin)).Methods(http.MethodPost)

	// Car endpoints; reads are public, writes need an admin
	api.HandleFunc("/cars", s.listCars).Methods(http.MethodGet)
	api.HandleFunc("/cars", s.requireAdmin(s.createCar)).Methods(http.MethodPost)
	api.HandleFunc("/cars/{id}", s.getCar).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id}", s.requireAdmin(s.updateCar)).Methods(http.MethodPut)
	api.HandleFunc("/cars/{id}", s.requireAdmin(s.deleteCar)).Methods(http.MethodDelete)

	// Booking endpoints (user route registered before the {id} routes)
	api.HandleFunc("/bookings/user/{userId}", s.requireUser(s.listUserBookings)).Methods(http.MethodGet)
	api.HandleFunc("/bookings", s.requireUser(s.createBooking)).Methods(http.MethodPost)
	api.HandleFunc("/bookings", s.requireUser(s.listBookings)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", s.requireUser(s.getBooking)).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", s.requireUser(s.updateBooking)).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{id}", s.requireUser(s.deleteBooking)).Methods(http.MethodDelete)

	// User endpoints
	api.HandleFunc("/users", s.requireAdmin(s.listUsers)).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", s.requireAdmin(s.updateUser)).Methods(http.MethodPut)

	// Notification endpoints
	api.HandleFunc("/notifications", s.requireUser(s.createNotification)).Methods(http.MethodPost)
	api.HandleFunc("/notifications/{id}/read", s.requireUser(s.markNotificationRead)).Methods(http.MethodPut)
	api.HandleFunc("/notifications/{userId}", s.requireUser(s.listNotifications)).Methods(http.MethodGet)

	return router
}

// recoverPanics turns a handler panic into a 500 with a message body.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				s.writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, ok := s.nextFailure(); ok {
			s.writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes data with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// writeError writes the {"message": ...} body the client parses.
func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, map[string]string{"message": message})
}

func (s *Server) writeMessage(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// decode reads a JSON body into v, answering 400 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
