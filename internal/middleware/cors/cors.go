// Package cors lets one trusted browser origin call the API with credentials.
package cors

import (
	"net/http"
	"strconv"
	"strings"
)

type Config struct {
	AllowedOrigin  string
	AllowedMethods []string
	MaxAge         int // seconds a preflight may be cached
}

func DefaultConfig(origin string) Config {
	return Config{
		AllowedOrigin:  origin,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		MaxAge:         600,
	}
}

type Middleware struct {
	config  Config
	methods string
}

func New(config Config) *Middleware {
	return &Middleware{
		config:  config,
		methods: strings.Join(config.AllowedMethods, ", "),
	}
}

func (m *Middleware) allowed(origin string) bool {
	return origin != "" && origin == m.config.AllowedOrigin
}

// Handler answers preflight requests itself and decorates the rest.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Add("Vary", "Origin")

		preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
		if !m.allowed(origin) {
			if preflight {
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"detail":"Disallowed CORS origin"}`))
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")

		if !preflight {
			next.ServeHTTP(w, r)
			return
		}

		h.Set("Access-Control-Allow-Methods", m.methods)
		if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
			h.Set("Access-Control-Allow-Headers", reqHeaders)
		}
		if m.config.MaxAge > 0 {
			h.Set("Access-Control-Max-Age", strconv.Itoa(m.config.MaxAge))
		}
		w.WriteHeader(http.StatusOK)
	})
}
