package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/aussiebroadwan/mibanco/pkg/bancosdk"
	"github.com/aussiebroadwan/mibanco/pkg/httpx"
	"github.com/aussiebroadwan/mibanco/pkg/slogx"
)

const pingTimeout = 2 * time.Second

// LivezHandler godoc
//
//	@Summary		Liveness check
//	@Description	Always returns 200 OK while the process is serving
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	bancosdk.HealthResponse	"status"
//	@Router			/livez [get].
func LivezHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, bancosdk.HealthResponse{Status: "ok"})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness check
//	@Description	Returns 200 when the database answers a ping, 503 otherwise
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	bancosdk.HealthResponse	"status"
//	@Failure		503	{object}	bancosdk.HealthResponse	"status"
//	@Router			/readyz [get].
func ReadyzHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context(), st); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, bancosdk.HealthResponse{Status: "unavailable"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, bancosdk.HealthResponse{Status: "ok"})
	}
}

// HealthHandler godoc
//
//	@Summary		System health
//	@Description	Reports the build version, uptime and database connection state. Returns 503 when the database is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	bancosdk.SystemHealth	"Database connected"
//	@Failure		503	{object}	bancosdk.SystemHealth	"Database disconnected"
//	@Router			/health [get].
func HealthHandler(st store.Store, version string, started time.Time, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := st.Info()
		at := now()
		resp := bancosdk.SystemHealth{
			Status:        "ok",
			Version:       version,
			UptimeSeconds: int64(at.Sub(started) / time.Second),
			Database: bancosdk.DatabaseStatus{
				Connected: true,
				State:     "connected",
				Host:      info.Host,
				Name:      info.Name,
			},
			Timestamp: at.UTC(),
		}
		code := http.StatusOK

		if err := ping(r.Context(), st); err != nil {
			slogx.FromContext(r.Context()).Warn("database ping failed",
				slog.String("driver", info.Driver),
				slog.Any("error", err),
			)
			resp.Status = "error"
			resp.Database.Connected = false
			resp.Database.State = "disconnected"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, resp)
	}
}

func ping(ctx context.Context, st store.Store) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return st.Ping(ctx)
}
