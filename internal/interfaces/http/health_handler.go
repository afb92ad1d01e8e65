package http

import (
	"github.com/gofiber/fiber/v2"

	appinv "github.com/jhoicas/inventario-planilla/internal/application/inventory"
)

// HealthResponse estado del servicio y de la caché.
type HealthResponse struct {
	Status  string             `json:"status"` // ok | degraded
	Service string             `json:"service"`
	Cache   appinv.CacheStatus `json:"cache"`
}

// Health godoc
// @Summary      Estado del servicio
// @Description  degraded indica que la caché tiene datos de ejemplo porque la planilla no respondió.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func Health(svc *appinv.Service, service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := svc.Status()
		status := "ok"
		if st.Loaded && st.Degraded {
			status = "degraded"
		}
		return c.JSON(HealthResponse{Status: status, Service: service, Cache: st})
	}
}
