package router

import (
	"net/http"
	"slices"

	"github.com/shandysiswandi/authmigrate/internal/pkg/config"
)

// maintenanceAll blocks every registered route.
const maintenanceAll = "*"

// middlewareMaintenance answers 503 for routes listed in
// app.maintenance.endpoints. The list is read per request so a config file
// edit takes effect without a restart.
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		if cfg == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			blocked := cfg.GetArray("app.maintenance.endpoints")
			if slices.Contains(blocked, maintenanceAll) || slices.Contains(blocked, matchedRoutePath(r)) {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
