package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/blogicum-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// pinger checks the data store. A nil pinger means there is nothing to reach.
type pinger interface {
	PingContext(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	pinger      pinger
	startupTime time.Time
}

func newHealthHandler(p pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		pinger:      p,
		startupTime: startupTime,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:    "ok",
			Database:  "ok",
			StartedAt: h.startupTime,
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
		}

		if h.pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := h.pinger.PingContext(ctx); err != nil {
				h.logger.Error().Err(err).Msg("database ping failed")
				h.responder.WriteStatusJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:    "degraded",
					Database:  errs.ErrDatabaseConnection.Error(),
					StartedAt: response.StartedAt,
					Uptime:    response.Uptime,
				})
				return
			}
		}

		h.responder.WriteJSON(w, response)
	}
}
