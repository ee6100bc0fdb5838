package catalog

import (
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/repository"
)

// Merger fusiona dos entradas ya resueltas del mismo kind: repunta todas las
// laptops que referencian al source hacia el target y desactiva el source.
// Operación manual de deduplicación (p. ej. unir "HP" con "Hewlett-Packard").
// Igual que el Resolver, opera sobre repositorios atados a la tx del caller:
// repunte y desactivación comparten commit o rollback.
type Merger struct {
	catalogRepo repository.CatalogRepository
	laptopRepo  repository.LaptopRepository
}

// NewMerger construye el merger con repositorios (pool o tx).
func NewMerger(catalogRepo repository.CatalogRepository, laptopRepo repository.LaptopRepository) *Merger {
	return &Merger{catalogRepo: catalogRepo, laptopRepo: laptopRepo}
}

// Merge repunta y desactiva. Devuelve el número de laptops actualizadas.
//   - Si source o target no existen en el kind: no-op, devuelve 0.
//   - El repunte es un único UPDATE set-based; no se cargan filas en memoria.
//   - No se reconcilian atributos entre source y target: el caller elige de
//     antemano el target más completo.
//   - Reinvocar con el mismo source (ya inactivo, sin referencias) devuelve 0
//     y no cambia nada. La auto-fusión no se trata aparte: devuelve cuántas
//     filas coincidieron con el filtro.
func (m *Merger) Merge(kind entity.Kind, sourceID, targetID int64, repoint bool) (int64, error) {
	source, err := m.catalogRepo.GetByID(kind, sourceID)
	if err != nil {
		return 0, err
	}
	target, err := m.catalogRepo.GetByID(kind, targetID)
	if err != nil {
		return 0, err
	}
	if source == nil || target == nil {
		return 0, nil
	}

	var updated int64
	if repoint {
		updated, err = m.laptopRepo.RepointCatalogRef(kind, sourceID, targetID)
		if err != nil {
			return 0, err
		}
	}

	if err := m.catalogRepo.SetActive(kind, sourceID, false); err != nil {
		return 0, err
	}
	return updated, nil
}
