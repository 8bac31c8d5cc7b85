package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sandarbhasthana/pms-app-sub005/internal/metrics"
	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
	"github.com/sandarbhasthana/pms-app-sub005/internal/reservation"
)

type Server struct {
	Calc         opday.Calculator
	Properties   property.Registry
	Reservations *reservation.Service
	Cookies      *PropertyContext
	Logger       *slog.Logger

	// DefaultTimezone applies when a request omits tz.
	DefaultTimezone string

	validate *validator.Validate
}

func NewServer(calc opday.Calculator, props property.Registry, res *reservation.Service, cookies *PropertyContext, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		Calc:         calc,
		Properties:   props,
		Reservations: res,
		Cookies:      cookies,
		Logger:       log,
		validate:     newValidator(calc),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /api/v1/opday", s.handleOpDay)
	mux.HandleFunc("GET /api/v1/opday/{date}", s.handleOpDayOn)
	mux.HandleFunc("GET /api/v1/nights", s.handleNights)
	mux.HandleFunc("GET /api/v1/within", s.handleWithin)

	mux.HandleFunc("GET /api/v1/properties", s.handlePropertyList)
	mux.HandleFunc("POST /api/v1/properties", s.handlePropertyCreate)
	mux.HandleFunc("PATCH /api/v1/properties/{id}", s.handlePropertyUpdate)
	mux.HandleFunc("POST /api/v1/property-context", s.handlePropertyContext)
	mux.HandleFunc("DELETE /api/v1/property-context", s.handlePropertyContextClear)

	mux.HandleFunc("GET /api/v1/daysheet", s.handleDaySheet)
	mux.HandleFunc("POST /api/v1/reservations", s.handleReservationCreate)
	mux.HandleFunc("GET /api/v1/reservations/{id}", s.handleReservationGet)

	return s.instrument(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records every request under the mux pattern that served it.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.ObserveHTTP(route, rec.code, elapsed)
		s.Logger.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", rec.code,
			"elapsed_ms", elapsed.Milliseconds(),
		)
	})
}

// Start serves h on addr until ctx is cancelled. It returns once in-flight
// requests have drained.
func Start(ctx context.Context, addr string, h http.Handler, log *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h, log)
}

// Serve is Start on an existing listener.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Info("http.listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-drained
	return nil
}
