package catalog_test

import (
	"strings"
	"time"

	"github.com/lapstock/lapstock-api/internal/domain"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

// fakeCatalogRepo implementación en memoria del puerto CatalogRepository para
// tests. Reproduce el contrato del adaptador PostgreSQL: búsqueda
// case-insensitive sobre activas e inactivas, y ErrDuplicate al violar la
// unicidad (kind, lower(name), padre).
type fakeCatalogRepo struct {
	items  []*entity.CatalogItem
	nextID int64

	// raceItem simula perder la carrera contra otra transacción: mientras la
	// carrera está armada, FindByName no ve esta fila (aún no estaba al hacer
	// el pre-chequeo) y el siguiente Create falla con ErrDuplicate (el índice
	// único sí la ve). Tras el fallo la fila se vuelve visible.
	raceItem  *entity.CatalogItem
	raceArmed bool
}

// armRace inserta la fila ganadora de la transacción rival y arma la carrera.
func (f *fakeCatalogRepo) armRace(kind entity.Kind, name string) *entity.CatalogItem {
	f.raceItem = f.seed(kind, name, nil, true, nil)
	f.raceArmed = true
	return f.raceItem
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{nextID: 1}
}

func (f *fakeCatalogRepo) seed(kind entity.Kind, name string, parentID *int64, active bool, attrs entity.Attributes) *entity.CatalogItem {
	if attrs == nil {
		attrs = entity.Attributes{}
	}
	item := &entity.CatalogItem{
		ID:        f.nextID,
		Kind:      kind,
		ParentID:  parentID,
		Name:      name,
		IsActive:  active,
		Attrs:     attrs,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.nextID++
	f.items = append(f.items, item)
	return item
}

func (f *fakeCatalogRepo) GetByID(kind entity.Kind, id int64) (*entity.CatalogItem, error) {
	for _, item := range f.items {
		if item.Kind == kind && item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) FindByName(kind entity.Kind, name string, parentID *int64) (*entity.CatalogItem, error) {
	for _, item := range f.items {
		if f.raceArmed && item == f.raceItem {
			continue // la fila rival aún no era visible para nuestro SELECT
		}
		if item.Kind != kind || !strings.EqualFold(item.Name, name) {
			continue
		}
		if parentID != nil && (item.ParentID == nil || *item.ParentID != *parentID) {
			continue
		}
		return item, nil
	}
	return nil, nil
}

func (f *fakeCatalogRepo) Create(item *entity.CatalogItem) error {
	if f.raceArmed {
		f.raceArmed = false
		return domain.ErrDuplicate
	}
	for _, other := range f.items {
		if other.Kind == item.Kind && strings.EqualFold(other.Name, item.Name) && sameParent(other.ParentID, item.ParentID) {
			return domain.ErrDuplicate
		}
	}
	item.ID = f.nextID
	f.nextID++
	f.items = append(f.items, item)
	return nil
}

func (f *fakeCatalogRepo) Update(item *entity.CatalogItem) error {
	for i, other := range f.items {
		if other.Kind == item.Kind && other.ID == item.ID {
			f.items[i] = item
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeCatalogRepo) SetActive(kind entity.Kind, id int64, active bool) error {
	for _, item := range f.items {
		if item.Kind == kind && item.ID == id {
			item.IsActive = active
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeCatalogRepo) ListByKind(kind entity.Kind, onlyActive bool, limit, offset int) ([]*entity.CatalogItem, error) {
	var out []*entity.CatalogItem
	for _, item := range f.items {
		if item.Kind == kind && (!onlyActive || item.IsActive) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) CountActive(kind entity.Kind) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.Kind == kind && item.IsActive {
			n++
		}
	}
	return n, nil
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// fakeLaptopRepo implementación en memoria del puerto LaptopRepository
// (solo lo que usan estos tests: repunte de FKs).
type fakeLaptopRepo struct {
	laptops []*entity.Laptop
}

func (f *fakeLaptopRepo) Create(l *entity.Laptop) error {
	f.laptops = append(f.laptops, l)
	return nil
}

func (f *fakeLaptopRepo) GetByID(int64) (*entity.Laptop, error) { return nil, nil }
func (f *fakeLaptopRepo) GetBySKU(string) (*entity.Laptop, error) {
	return nil, nil
}
func (f *fakeLaptopRepo) Update(*entity.Laptop) error { return nil }
func (f *fakeLaptopRepo) List(int, int) ([]*entity.Laptop, error) {
	return f.laptops, nil
}
func (f *fakeLaptopRepo) Delete(int64) error { return nil }

func (f *fakeLaptopRepo) RepointCatalogRef(kind entity.Kind, sourceID, targetID int64) (int64, error) {
	var updated int64
	for _, l := range f.laptops {
		ref := refFor(l, kind)
		if ref != nil && *ref != nil && **ref == sourceID {
			**ref = targetID
			updated++
		}
	}
	return updated, nil
}

// countRefs cuenta laptops que referencian un ID en el FK del kind.
func (f *fakeLaptopRepo) countRefs(kind entity.Kind, id int64) int {
	n := 0
	for _, l := range f.laptops {
		ref := refFor(l, kind)
		if ref != nil && *ref != nil && **ref == id {
			n++
		}
	}
	return n
}

func refFor(l *entity.Laptop, kind entity.Kind) **int64 {
	switch kind {
	case entity.KindBrand:
		return &l.BrandID
	case entity.KindModel:
		return &l.ModelID
	case entity.KindProcessor:
		return &l.ProcessorID
	case entity.KindOperatingSystem:
		return &l.OSID
	case entity.KindScreen:
		return &l.ScreenID
	case entity.KindGraphicsCard:
		return &l.GraphicsCardID
	case entity.KindStorage:
		return &l.StorageID
	case entity.KindRam:
		return &l.RamID
	case entity.KindStore:
		return &l.StoreID
	case entity.KindLocation:
		return &l.LocationID
	case entity.KindSupplier:
		return &l.SupplierID
	}
	return nil
}
