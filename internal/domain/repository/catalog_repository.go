package repository

import "github.com/lapstock/lapstock-api/internal/domain/entity"

// CatalogRepository define el puerto de persistencia para entradas de catálogo (DIP).
// Las búsquedas por nombre son case-insensitive e incluyen entradas inactivas:
// resolver sobre un nombre desactivado lo reutiliza en vez de duplicar filas muertas.
type CatalogRepository interface {
	GetByID(kind entity.Kind, id int64) (*entity.CatalogItem, error)
	// FindByName busca una entrada por nombre exacto (case-insensitive) dentro del
	// kind; si parentID no es nil, restringe al scope del padre (Model por Brand,
	// Location por Store). Devuelve (nil, nil) si no hay coincidencia.
	FindByName(kind entity.Kind, name string, parentID *int64) (*entity.CatalogItem, error)
	// Create inserta la entrada y rellena item.ID (RETURNING id): el "flush" que
	// permite a resoluciones posteriores de la misma transacción depender del ID.
	// Devuelve domain.ErrDuplicate en violación del índice único.
	Create(item *entity.CatalogItem) error
	// Update persiste cambios de atributos/nombre sobre una entrada existente.
	Update(item *entity.CatalogItem) error
	SetActive(kind entity.Kind, id int64, active bool) error
	ListByKind(kind entity.Kind, onlyActive bool, limit, offset int) ([]*entity.CatalogItem, error)
	// CountActive cuenta entradas activas por kind (para estadísticas de catálogo).
	CountActive(kind entity.Kind) (int64, error)
}
