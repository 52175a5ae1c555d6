package main

import (
	"context"
	"net/http"
	"time"
)

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	checks := make(map[string]string, len(app.healthChecks))
	for _, hc := range app.healthChecks {
		if err := hc.check(ctx); err != nil {
			app.logger.Warnw("health check failed", "check", hc.name, "error", err.Error())
			checks[hc.name] = "unavailable"
			status = "degraded"
			continue
		}
		checks[hc.name] = "ok"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	app.jsonResponse(w, code, map[string]any{
		"status":  status,
		"env":     app.config.env,
		"version": version,
		"checks":  checks,
	})
}
