package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lapstock/lapstock-api/internal/application/catalog"
	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

// CatalogHandler maneja la administración de catálogos (protegido).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// kindParam valida el segmento :kind de la ruta.
func kindParam(c *fiber.Ctx) (entity.Kind, bool) {
	kind := entity.Kind(c.Params("kind"))
	return kind, kind.Valid()
}

// Stats godoc
// @Summary      Entradas activas por dimensión de catálogo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CatalogStatsResponse
// @Router       /api/catalogs/stats [get]
func (h *CatalogHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar entradas de una dimensión
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        kind         path   string  true   "Dimensión (brand, model, processor, ...)"
// @Param        only_active  query  bool    false  "Solo activas"  default(true)
// @Param        limit        query  int     false  "Límite"        default(50)
// @Param        offset       query  int     false  "Offset"        default(0)
// @Success      200  {object}  dto.CatalogListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{kind} [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	kind, ok := kindParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "dimensión de catálogo desconocida"})
	}
	onlyActive := c.QueryBool("only_active", true)
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(kind, onlyActive, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar una entrada (soft-delete)
// @Tags         catalogs
// @Security     Bearer
// @Param        kind  path  string  true  "Dimensión"
// @Param        id    path  int     true  "ID de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{kind}/{id} [delete]
func (h *CatalogHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

// Reactivate godoc
// @Summary      Reactivar una entrada desactivada
// @Tags         catalogs
// @Security     Bearer
// @Param        kind  path  string  true  "Dimensión"
// @Param        id    path  int     true  "ID de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{kind}/{id}/reactivate [post]
func (h *CatalogHandler) Reactivate(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *CatalogHandler) setActive(c *fiber.Ctx, active bool) error {
	kind, ok := kindParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "dimensión de catálogo desconocida"})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico es requerido"})
	}
	var found bool
	if active {
		found, err = h.uc.Reactivate(kind, int64(id))
	} else {
		found, err = h.uc.Deactivate(kind, int64(id))
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Merge godoc
// @Summary      Fusionar dos entradas duplicadas
// @Description  Repunta las laptops que referencian al source hacia el target y desactiva el source. Atómico.
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string            true  "Dimensión"
// @Param        body  body  dto.MergeRequest  true  "IDs de source y target"
// @Success      200   {object}  dto.MergeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalogs/{kind}/merge [post]
func (h *CatalogHandler) Merge(c *fiber.Ctx) error {
	kind, ok := kindParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "dimensión de catálogo desconocida"})
	}
	var in dto.MergeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SourceID <= 0 || in.TargetID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "source_id y target_id son requeridos"})
	}
	out, err := h.uc.Merge(c.UserContext(), kind, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
