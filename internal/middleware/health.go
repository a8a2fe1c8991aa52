package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/bryanwahyu/automaton-ml/internal/infra/accel"
)

// HealthHandler creates a health check handler reporting service
// liveness and accelerator state.
func HealthHandler(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": service,
			"gpu":     accel.GetStatus(),
		})
	}
}

// GPUStatusHandler reports detailed accelerator information
func GPUStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accel.GetStatus())
}
