package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	PingRedis(ctx context.Context, timeout time.Duration) error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker      Checker
	RedisTimeout time.Duration
	// ScrapeEnabled is reported informationally; a disabled scraper is a
	// valid configuration, not a readiness failure.
	ScrapeEnabled bool
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes. A missing cache is
// degraded service, not downtime, so only an explicit probe failure turns
// readiness off.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	redisStatus := "ok"
	if h.Checker != nil {
		if err := h.Checker.PingRedis(r.Context(), h.redisTimeout()); err != nil {
			redisStatus = err.Error()
		}
	} else {
		redisStatus = "disabled"
	}

	scrape := "disabled"
	if h.ScrapeEnabled {
		scrape = "enabled"
	}
	status := map[string]string{
		"redis":  redisStatus,
		"scrape": scrape,
	}
	w.Header().Set("Content-Type", "application/json")
	if redisStatus != "ok" && redisStatus != "disabled" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) redisTimeout() time.Duration {
	if h.RedisTimeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.RedisTimeout
}
