package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-planilla/internal/application/dto"
	appinv "github.com/jhoicas/inventario-planilla/internal/application/inventory"
	"github.com/jhoicas/inventario-planilla/internal/domain"
	"github.com/jhoicas/inventario-planilla/internal/domain/entity"
)

// MovementJournal lectura opcional del journal de movimientos en PostgreSQL.
type MovementJournal interface {
	ListByCode(ctx context.Context, code string, limit int) ([]entity.Movement, error)
}

// InventoryHandler maneja las peticiones HTTP de stock, entradas y salidas.
type InventoryHandler struct {
	svc     *appinv.Service
	journal MovementJournal
}

// NewInventoryHandler construye el handler. journal puede ser nil.
func NewInventoryHandler(svc *appinv.Service, journal MovementJournal) *InventoryHandler {
	return &InventoryHandler{svc: svc, journal: journal}
}

// ListStock godoc
// @Summary      Listar stock
// @Tags         stock
// @Produce      json
// @Param        q  query  string  false  "Filtro por código, descripción o proveedor"
// @Success      200  {object}  dto.RecordListResponse
// @Router       /api/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	items := h.svc.SearchStock(c.UserContext(), c.Query("q"))
	return c.JSON(dto.RecordListResponse{Total: len(items), Items: items})
}

// Summary godoc
// @Summary      Resumen del stock
// @Tags         stock
// @Produce      json
// @Success      200  {object}  inventory.Summary
// @Router       /api/stock/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.svc.Summary(c.UserContext()))
}

// GetByCode godoc
// @Summary      Buscar producto por código
// @Tags         stock
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {object}  entity.InventoryRecord
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{code} [get]
func (h *InventoryHandler) GetByCode(c *fiber.Ctx) error {
	rec, err := h.svc.FindByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(rec)
}

// ListJournal godoc
// @Summary      Movimientos guardados en el journal para un código
// @Tags         stock
// @Produce      json
// @Param        code   path   string  true   "Código del producto"
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/{code}/movements [get]
func (h *InventoryHandler) ListJournal(c *fiber.Ctx) error {
	list, err := h.journal.ListByCode(c.UserContext(), c.Params("code"), clampLimit(c.QueryInt("limit", 50)))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.MovementListResponse{Total: len(list), Items: list})
}

// ListEntradas godoc
// @Summary      Historial de entradas (más recientes primero)
// @Tags         entradas
// @Produce      json
// @Param        q  query  string  false  "Filtro por código, descripción o proveedor"
// @Success      200  {object}  dto.RecordListResponse
// @Router       /api/entradas [get]
func (h *InventoryHandler) ListEntradas(c *fiber.Ctx) error {
	return h.history(c, entity.KindEntrada)
}

// ListSalidas godoc
// @Summary      Historial de salidas (más recientes primero)
// @Tags         salidas
// @Produce      json
// @Param        q  query  string  false  "Filtro por código, descripción o proveedor"
// @Success      200  {object}  dto.RecordListResponse
// @Router       /api/salidas [get]
func (h *InventoryHandler) ListSalidas(c *fiber.Ctx) error {
	return h.history(c, entity.KindSalida)
}

func (h *InventoryHandler) history(c *fiber.Ctx, kind string) error {
	items, err := h.svc.History(c.UserContext(), kind, c.Query("q"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.RecordListResponse{Total: len(items), Items: items})
}

// RecentMovements godoc
// @Summary      Últimos movimientos (entradas y salidas)
// @Tags         movements
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements/recent [get]
func (h *InventoryHandler) RecentMovements(c *fiber.Ctx) error {
	list := h.svc.RecentMovements(c.UserContext(), clampLimit(c.QueryInt("limit", 10)))
	return c.JSON(dto.MovementListResponse{Total: len(list), Items: list})
}

// RecordEntrada godoc
// @Summary      Registrar entrada
// @Description  Agrega la entrada y suma la cantidad al stock del código (lo crea si no existe).
// @Tags         entradas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "code obligatorio; quantity y price aceptan número o texto"
// @Success      201   {object}  entity.InventoryRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/entradas [post]
func (h *InventoryHandler) RecordEntrada(c *fiber.Ctx) error {
	return h.record(c, h.svc.RecordEntrada)
}

// RecordSalida godoc
// @Summary      Registrar salida
// @Description  Agrega la salida y descuenta la cantidad del stock del código, sin bajar de cero.
// @Tags         salidas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "code obligatorio; quantity y price aceptan número o texto"
// @Success      201   {object}  entity.InventoryRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/salidas [post]
func (h *InventoryHandler) RecordSalida(c *fiber.Ctx) error {
	return h.record(c, h.svc.RecordSalida)
}

type recordFunc func(ctx context.Context, in appinv.MovementInput) (entity.InventoryRecord, error)

func (h *InventoryHandler) record(c *fiber.Ctx, fn recordFunc) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: validationDetails(err),
		})
	}
	rec, err := fn(c.UserContext(), appinv.MovementInput{
		Code:        in.Code,
		Description: in.DescriptionValue(),
		Supplier:    in.Supplier,
		Quantity:    in.Quantity.Decimal,
		Price:       in.Price.Decimal,
		Note:        in.Note,
		Operator:    GetOperator(c),
	})
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Sync godoc
// @Summary      Forzar recarga de la planilla
// @Description  Descarga la planilla ignorando el TTL. status=fallback indica que se usaron datos de ejemplo.
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncResponse
// @Router       /api/sync [post]
func (h *InventoryHandler) Sync(c *fiber.Ctx) error {
	out := h.svc.Refresh(c.UserContext())
	return c.JSON(dto.NewSyncResponse(out))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// writeError traduce los errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "recurso no encontrado"
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
