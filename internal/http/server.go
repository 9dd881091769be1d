package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"budgethero/internal/core"
	"budgethero/internal/log"
	"budgethero/internal/middleware/cors"
	"budgethero/internal/middleware/ratelimit"
	"budgethero/internal/middleware/security"
	"budgethero/internal/middleware/trace"
)

// Ledger is what the handlers need from the service layer.
// *services.LedgerService satisfies it.
type Ledger interface {
	GetBudget(ctx context.Context) (core.Budget, error)
	UpdateBudget(ctx context.Context, id int64, amount core.Money) (core.Budget, error)
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	CreateWishlistItem(ctx context.Context, item core.WishlistItem) (core.WishlistItem, error)
	ListWishlistItems(ctx context.Context) ([]core.WishlistItem, error)
	UpdateWishlistItem(ctx context.Context, id int64, delta core.Money) (core.WishlistItem, error)
	Ready(ctx context.Context) error
}

// Options tunes the middleware around the API.
type Options struct {
	AllowedOrigin string
	// RequestsPerMinute caps writes per client IP. Zero disables limiting.
	RequestsPerMinute int
	Logger            *log.Logger
}

type Server struct {
	http.Server
	ledger       Ledger
	logger       *log.Logger
	events       *log.StructuredLogger
	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	detector     *security.Detector
	shutdownOnce sync.Once
}

func NewServer(addr string, ledger Ledger, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	httpLogger := logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		ledger:   ledger,
		logger:   httpLogger,
		events:   log.NewStructuredLogger(logger.WithComponent(log.ComponentLedger)),
		detector: security.NewDetector(),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP, logger.WithComponent(log.ComponentTrace))

	mux := http.NewServeMux()
	s.routes(mux)

	var h http.Handler = mux
	if opts.RequestsPerMinute > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RequestsPerMinute,
			Methods:           []string{http.MethodPost, http.MethodPut},
		})
		h = s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited)(h)
	}
	h = cors.New(cors.DefaultConfig(opts.AllowedOrigin)).Handler(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = s.detector.Middleware(h)
	h = recoverer(h)
	h = log.RequestIDMiddleware(trace.RequestIDFromRequest)(h)
	h = log.Middleware(httpLogger)(h)
	h = s.tracer.Middleware(h)
	s.Handler = h

	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/budget", s.handleGetBudget)
	mux.HandleFunc("PUT /api/budget/{budget_id}", s.handleUpdateBudget)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/wishlist", s.handleCreateWishlistItem)
	mux.HandleFunc("GET /api/wishlist", s.handleListWishlistItems)
	mux.HandleFunc("PUT /api/wishlist/{item_id}", s.handleUpdateWishlistItem)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	// Known paths with an unsupported method.
	for _, pattern := range []string{
		"/api/budget",
		"/api/budget/{budget_id}",
		"/api/transactions",
		"/api/wishlist",
		"/api/wishlist/{item_id}",
		"/healthz",
		"/readyz",
	} {
		mux.HandleFunc(pattern, handleMethodNotAllowed)
	}
	mux.HandleFunc("/", handleNotFound)
}

// Shutdown stops background routines and then the listener. Safe to call twice.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	writeError(w, http.StatusTooManyRequests, "Too many requests")
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}
