package controllers

import (
	"context"
	"net/http"

	"github.com/pitb-dev/wwh-gateway/api/responses"
	"github.com/pitb-dev/wwh-gateway/pkg/config"
	pkgerrors "github.com/pitb-dev/wwh-gateway/pkg/errors"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WWH-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the session store and the registration backend.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-WWH-Env", cfg.App.Env)

		checks := map[string]string{}
		failed := false
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				checks[name] = "down"
				failed = true
				if logg != nil {
					ctx := logg.WithField(r.Context(), "dependency", name)
					logg.Error(ctx, "readiness check failed", err)
				}
				continue
			}
			checks[name] = "up"
		}

		if failed {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

// ReadinessDeps bundles the pingable dependencies for the ready endpoint.
func ReadinessDeps(redisClient pinger, upstreamClient pinger) map[string]pinger {
	return map[string]pinger{
		"redis":    redisClient,
		"upstream": upstreamClient,
	}
}
