package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appinv "github.com/jhoicas/inventario-planilla/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory   *appinv.Service
	Journal     MovementJournal     // opcional: habilita GET /api/stock/:code/movements
	Gatherer    prometheus.Gatherer // opcional: habilita GET /metrics
	ServiceName string
	JWTSecret   string // vacío = rutas de escritura abiertas
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.Inventory, deps.ServiceName))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	h := NewInventoryHandler(deps.Inventory, deps.Journal)

	// Lecturas (públicas)
	stock := api.Group("/stock")
	stock.Get("/", h.ListStock)
	stock.Get("/summary", h.Summary)
	stock.Get("/:code", h.GetByCode)
	if deps.Journal != nil {
		stock.Get("/:code/movements", h.ListJournal)
	}
	api.Get("/entradas", h.ListEntradas)
	api.Get("/salidas", h.ListSalidas)
	api.Get("/movements/recent", h.RecentMovements)

	// Escrituras: Bearer Token si hay JWT_SECRET
	write := []fiber.Handler{}
	if deps.JWTSecret != "" {
		write = append(write, AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	}
	api.Post("/entradas", append(write, h.RecordEntrada)...)
	api.Post("/salidas", append(write, h.RecordSalida)...)
	api.Post("/sync", append(write, h.Sync)...)
}
