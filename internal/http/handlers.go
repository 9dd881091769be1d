package http

import (
	"context"
	"net/http"
	"time"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	traffic := s.tracer.GetMetrics()
	body := map[string]any{
		"status":              "ok",
		"requests":            traffic.TotalRequests,
		"avg_response_micros": traffic.AverageResponseTime,
		"suspicious_requests": s.detector.GetMetrics().SuspiciousRequests,
	}
	if s.limiter != nil {
		limits := s.limiter.GetMetrics()
		body["rate_limited"] = limits.TotalHits
		body["rate_limit_clients"] = limits.ClientCount
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.ledger.Ready(ctx); err != nil {
		s.logger.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
