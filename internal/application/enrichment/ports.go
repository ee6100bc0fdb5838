package enrichment

import (
	"context"

	"github.com/lapstock/lapstock-api/internal/application/dto"
)

// ProductDataProvider puerto hacia el proveedor externo de fichas de producto.
// Devuelve (nil, domain.ErrNotFound) si el GTIN no tiene ficha publicada.
type ProductDataProvider interface {
	FetchByGTIN(ctx context.Context, gtin string) (*dto.ProductSpecs, error)
}
