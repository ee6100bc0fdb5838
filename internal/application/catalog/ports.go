package catalog

import (
	"context"

	"github.com/lapstock/lapstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que todas las resoluciones de un
// ProcessForm — y la pareja repunte+desactivación de una fusión — hagan commit
// o rollback juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		catalogRepo repository.CatalogRepository,
		laptopRepo repository.LaptopRepository,
	) error) error
}
