package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Server struct {
	Server     *http.Server
	log        *zerolog.Logger
	db         *sql.DB
	bookingAPI *BookingHandler
	userAPI    *UserHandler
}

// Options configures the HTTP server timeouts.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func New(addr string, db *sql.DB, bookingAPI *BookingHandler, userAPI *UserHandler, opts Options, log *zerolog.Logger) *Server {
	s := &Server{
		Server: &http.Server{
			Addr:         addr,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		db:         db,
		log:        log,
		bookingAPI: bookingAPI,
		userAPI:    userAPI,
	}

	// Setup routes
	r := mux.NewRouter()
	s.setupRoutes(r)
	s.Server.Handler = cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowCredentials: true,
	}).Handler(r)

	return s
}

func (s *Server) setupRoutes(r *mux.Router) {
	// Use the logging middleware for all routes
	r.Use(s.loggingMiddleware)

	// Health check endpoint
	r.HandleFunc("/health", s.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Bookings routes
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.HandleFunc("", s.bookingAPI.ListBookings).Methods("GET")
	bookings.HandleFunc("", s.bookingAPI.CreateBooking).Methods("POST")
	bookings.HandleFunc("/{id}", s.bookingAPI.UpdateBooking).Methods("POST")
	bookings.HandleFunc("/{id}", s.bookingAPI.DeleteBooking).Methods("DELETE")

	// Calendar events for the widget
	api.HandleFunc("/events", s.bookingAPI.ListCalendarEvents).Methods("GET")

	// User profile routes
	api.HandleFunc("/users", s.userAPI.AssignFamily).Methods("POST")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("address", s.Server.Addr).Msg("Starting server")
	return s.Server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info().Msg("Shutting down server")
	return s.Server.Shutdown(ctx)
}

// loggingMiddleware logs all incoming requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Capture the status code
		rw := &responseWriter{w, http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Str("duration", duration.String()).
			Msg("Request processed")
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if s.db == nil {
		s.log.Error().Msg("Database is not initialized")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unhealthy","error":"database not initialized"}`))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.log.Error().Err(err).Msg("Database health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unhealthy","error":"database connection failed"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
