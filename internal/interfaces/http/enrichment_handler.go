package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/application/enrichment"
	"github.com/lapstock/lapstock-api/internal/domain"
)

// EnrichmentHandler maneja la importación de laptops por GTIN (protegido).
type EnrichmentHandler struct {
	uc *enrichment.UseCase
}

// NewEnrichmentHandler construye el handler.
func NewEnrichmentHandler(uc *enrichment.UseCase) *EnrichmentHandler {
	return &EnrichmentHandler{uc: uc}
}

// ImportByGTIN godoc
// @Summary      Importar laptop por GTIN
// @Description  Consulta la ficha del producto en el proveedor de datos y da de alta la laptop con sus catálogos resueltos.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportByGTINRequest  true  "GTIN y datos operativos"
// @Success      201   {object}  dto.LaptopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/import/gtin [post]
func (h *EnrichmentHandler) ImportByGTIN(c *fiber.Ctx) error {
	var in dto.ImportByGTINRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ImportByGTIN(c.UserContext(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProviderUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PROVIDER_UNAVAILABLE", Message: "proveedor de datos no configurado o no disponible"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el GTIN no tiene ficha publicada"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "gtin es requerido"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el SKU ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
