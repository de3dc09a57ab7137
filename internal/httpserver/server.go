// internal/httpserver/server.go
//
// HTTP server wiring for the Waffle cheatsheet.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Stateless cheatsheet endpoint: POST /cheatsheet.
//   - Overlay sessions (token-gated): mounted under /session.
//   - Daily board endpoints: mounted under /daily.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the session cookie works).
//   - Every cheatsheet is rebuilt from a fresh grid snapshot; nothing derived
//     from a grid is cached between requests.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/waffle-cheatsheet/internal/cheatsheet"
	"github.com/robalobadob/waffle-cheatsheet/internal/daily"
	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
	"github.com/robalobadob/waffle-cheatsheet/internal/store"
	"github.com/robalobadob/waffle-cheatsheet/internal/waffle"
)

// maxBody bounds request bodies; a board document is a few hundred bytes.
const maxBody = 64 << 10

// Options carries the server's collaborators and settings.
type Options struct {
	Sessions     store.Store
	Catalog      *daily.Store // nil disables /daily
	Secret       string       // HS256 key for session tokens
	DailySalt    string
	ClientOrigin string
	SessionTTL   time.Duration
	Registry     *prometheus.Registry // nil → a fresh registry
}

// Server bundles router, session store and board catalog.
type Server struct {
	r       *chi.Mux
	opts    Options
	metrics *metrics
	locks   sessionLocks
	now     func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{
		r:       chi.NewRouter(),
		opts:    opts,
		metrics: newMetrics(opts.Registry),
		now:     time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(corsFor(opts.ClientOrigin))      // credentials-friendly CORS

	// --- diagnostics ---
	s.r.With(jsonContentType).Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"waffle-cheatsheet","endpoints":["/health","/metrics","POST /cheatsheet","/session/*","/daily/*"]}`))
	})
	s.r.With(jsonContentType).Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Post("/cheatsheet", s.handleCheatsheet)
		s.mountSessions(r)
		if opts.Catalog != nil {
			s.mountDaily(r)
		}
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ---------------------------- CHEATSHEET -----------------------------------

// sheetRes is returned by every endpoint that hands out a cheatsheet.
type sheetRes struct {
	Name   string           `json:"name,omitempty"`
	Layout string           `json:"layout"`
	Sheet  cheatsheet.Sheet `json:"sheet"`
}

// handleCheatsheet builds a sheet from the posted board without keeping
// anything. A text/plain body is read as a bare layout.
func (s *Server) handleCheatsheet(w http.ResponseWriter, r *http.Request) {
	b, ok := readBoard(w, r)
	if !ok {
		return
	}
	res, err := buildSheet(b)
	if err != nil {
		s.metrics.sheet("inline", err)
		writeDomainError(w, err)
		return
	}
	s.metrics.sheet("inline", nil)
	_ = json.NewEncoder(w).Encode(res)
}

// buildSheet ingests b and derives its sheet, failing on any bad word.
func buildSheet(b ingest.Board) (sheetRes, error) {
	nb, err := b.Normalize()
	if err != nil {
		return sheetRes{}, err
	}
	pz, err := ingest.ParseLayout(nb.Layout)
	if err != nil {
		return sheetRes{}, err
	}
	sheet, err := cheatsheet.Build(pz)
	if err != nil {
		return sheetRes{}, err
	}
	return sheetRes{Name: nb.Name, Layout: nb.Layout, Sheet: sheet}, nil
}

// readBoard decodes the request body into a board, writing a 400 on failure.
func readBoard(w http.ResponseWriter, r *http.Request) (ingest.Board, bool) {
	body := http.MaxBytesReader(w, r.Body, maxBody)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/plain") {
		raw, err := io.ReadAll(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_body")
			return ingest.Board{}, false
		}
		return ingest.Board{Layout: string(raw)}, true
	}
	var b ingest.Board
	if err := json.NewDecoder(body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return ingest.Board{}, false
	}
	return b, true
}

// ------------------------------- errors ------------------------------------

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeDomainError maps grid errors to 422 and anything else to 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, waffle.ErrIncomplete), errors.Is(err, waffle.ErrMalformed):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("cheatsheet")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
