package repository

import "github.com/lapstock/lapstock-api/internal/domain/entity"

// LaptopRepository define el puerto de persistencia para Laptop (DIP).
type LaptopRepository interface {
	Create(laptop *entity.Laptop) error
	GetByID(id int64) (*entity.Laptop, error)
	GetBySKU(sku string) (*entity.Laptop, error)
	Update(laptop *entity.Laptop) error
	List(limit, offset int) ([]*entity.Laptop, error)
	Delete(id int64) error
	// RepointCatalogRef repunta en bloque (un solo UPDATE set-based, sin cargar
	// filas en memoria) todas las laptops cuyo FK del kind dado vale sourceID
	// hacia targetID. Devuelve el número de filas afectadas.
	RepointCatalogRef(kind entity.Kind, sourceID, targetID int64) (int64, error)
}
