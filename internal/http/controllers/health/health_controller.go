// Package health contiene el controller para health checks.
package health

import (
	"net/http"

	"github.com/dropDatabas3/itemboard/internal/http/helpers"
)

// Controller maneja las rutas de health check.
type Controller struct {
	Version string
}

func NewController(version string) *Controller {
	return &Controller{Version: version}
}

type readyzResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Readyz maneja GET /readyz. Siempre 200: el proceso no mantiene estado
// propio y la disponibilidad del directorio se reporta por request.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	if c.Version != "" {
		w.Header().Set("X-Service-Version", c.Version)
	}
	helpers.WriteJSON(w, http.StatusOK, readyzResponse{Status: "ready", Version: c.Version})
}
