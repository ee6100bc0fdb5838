package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lapstock/lapstock-api/internal/domain"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/repository"
)

var _ repository.LaptopRepository = (*LaptopRepo)(nil)

// LaptopRepo implementación del puerto LaptopRepository sobre PostgreSQL (usable con pool o tx).
type LaptopRepo struct {
	q Querier
}

// NewLaptopRepository construye el adaptador de persistencia para laptops. Pasar pool o tx (Querier).
func NewLaptopRepository(q Querier) *LaptopRepo {
	return &LaptopRepo{q: q}
}

const laptopColumns = `id, sku, slug, gtin, display_name, price, cost,
	brand_id, model_id, processor_id, os_id, screen_id, graphics_card_id,
	storage_id, ram_id, store_id, location_id, supplier_id,
	is_published, notes, created_by, created_at, updated_at`

// catalogRefColumns whitelist de FKs repuntables por kind. Solo estas columnas
// pueden interpolarse en el UPDATE de RepointCatalogRef.
var catalogRefColumns = map[entity.Kind]string{
	entity.KindBrand:           "brand_id",
	entity.KindModel:           "model_id",
	entity.KindProcessor:       "processor_id",
	entity.KindOperatingSystem: "os_id",
	entity.KindScreen:          "screen_id",
	entity.KindGraphicsCard:    "graphics_card_id",
	entity.KindStorage:         "storage_id",
	entity.KindRam:             "ram_id",
	entity.KindStore:           "store_id",
	entity.KindLocation:        "location_id",
	entity.KindSupplier:        "supplier_id",
}

// Create persiste una laptop nueva y rellena su ID.
func (r *LaptopRepo) Create(laptop *entity.Laptop) error {
	query := `
		INSERT INTO laptops (sku, slug, gtin, display_name, price, cost,
			brand_id, model_id, processor_id, os_id, screen_id, graphics_card_id,
			storage_id, ram_id, store_id, location_id, supplier_id,
			is_published, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		laptop.SKU, laptop.Slug, nullIfEmpty(laptop.GTIN), laptop.DisplayName, laptop.Price, laptop.Cost,
		laptop.BrandID, laptop.ModelID, laptop.ProcessorID, laptop.OSID, laptop.ScreenID, laptop.GraphicsCardID,
		laptop.StorageID, laptop.RamID, laptop.StoreID, laptop.LocationID, laptop.SupplierID,
		laptop.IsPublished, laptop.Notes, laptop.CreatedBy, laptop.CreatedAt, laptop.UpdatedAt,
	).Scan(&laptop.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert laptop: %w", err)
	}
	return nil
}

// GetByID obtiene una laptop por ID. (nil, nil) si no existe.
func (r *LaptopRepo) GetByID(id int64) (*entity.Laptop, error) {
	query := `SELECT ` + laptopColumns + ` FROM laptops WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get laptop")
}

// GetBySKU obtiene una laptop por SKU. (nil, nil) si no existe.
func (r *LaptopRepo) GetBySKU(sku string) (*entity.Laptop, error) {
	query := `SELECT ` + laptopColumns + ` FROM laptops WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get laptop by sku")
}

// Update actualiza una laptop existente.
func (r *LaptopRepo) Update(laptop *entity.Laptop) error {
	query := `
		UPDATE laptops SET sku = $2, slug = $3, gtin = $4, display_name = $5, price = $6, cost = $7,
			brand_id = $8, model_id = $9, processor_id = $10, os_id = $11, screen_id = $12,
			graphics_card_id = $13, storage_id = $14, ram_id = $15, store_id = $16,
			location_id = $17, supplier_id = $18, is_published = $19, notes = $20, updated_at = $21
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		laptop.ID, laptop.SKU, laptop.Slug, nullIfEmpty(laptop.GTIN), laptop.DisplayName, laptop.Price, laptop.Cost,
		laptop.BrandID, laptop.ModelID, laptop.ProcessorID, laptop.OSID, laptop.ScreenID,
		laptop.GraphicsCardID, laptop.StorageID, laptop.RamID, laptop.StoreID,
		laptop.LocationID, laptop.SupplierID, laptop.IsPublished, laptop.Notes, laptop.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update laptop: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista laptops con paginación, las más recientes primero.
func (r *LaptopRepo) List(limit, offset int) ([]*entity.Laptop, error) {
	query := `SELECT ` + laptopColumns + ` FROM laptops ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list laptops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Laptop
	for rows.Next() {
		lap, err := scanLaptop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan laptop: %w", err)
		}
		list = append(list, lap)
	}
	return list, rows.Err()
}

// Delete elimina una laptop por ID.
func (r *LaptopRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM laptops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete laptop: %w", err)
	}
	return nil
}

// RepointCatalogRef repunta en un solo UPDATE todas las laptops cuyo FK del
// kind vale sourceID hacia targetID. Devuelve filas afectadas.
func (r *LaptopRepo) RepointCatalogRef(kind entity.Kind, sourceID, targetID int64) (int64, error) {
	column, ok := catalogRefColumns[kind]
	if !ok {
		return 0, fmt.Errorf("repoint: kind sin columna FK: %s", kind)
	}
	query := fmt.Sprintf(
		`UPDATE laptops SET %s = $2, updated_at = now() WHERE %s = $1`,
		column, column,
	)
	cmd, err := r.q.Exec(context.Background(), query, sourceID, targetID)
	if err != nil {
		return 0, fmt.Errorf("repoint %s: %w", column, err)
	}
	return cmd.RowsAffected(), nil
}

func (r *LaptopRepo) scanOne(row pgx.Row, op string) (*entity.Laptop, error) {
	lap, err := scanLaptop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lap, nil
}

func scanLaptop(row pgx.Row) (*entity.Laptop, error) {
	var lap entity.Laptop
	var gtin *string
	err := row.Scan(
		&lap.ID, &lap.SKU, &lap.Slug, &gtin, &lap.DisplayName, &lap.Price, &lap.Cost,
		&lap.BrandID, &lap.ModelID, &lap.ProcessorID, &lap.OSID, &lap.ScreenID, &lap.GraphicsCardID,
		&lap.StorageID, &lap.RamID, &lap.StoreID, &lap.LocationID, &lap.SupplierID,
		&lap.IsPublished, &lap.Notes, &lap.CreatedBy, &lap.CreatedAt, &lap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if gtin != nil {
		lap.GTIN = *gtin
	}
	return &lap, nil
}

// nullIfEmpty guarda NULL en vez de "" para que el índice único de GTIN no
// choque entre laptops sin GTIN.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
