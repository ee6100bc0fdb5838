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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL
// (usable con pool o tx). Todas las dimensiones viven en una sola tabla
// catalog_items discriminada por kind, con atributos en JSONB. La unicidad
// real la impone el índice único (kind, lower(name), coalesce(parent_id, 0)).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const catalogColumns = `id, kind, parent_id, name, is_active, attrs, created_at, updated_at`

// GetByID obtiene una entrada por kind e ID (activa o no). (nil, nil) si no existe.
func (r *CatalogRepo) GetByID(kind entity.Kind, id int64) (*entity.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE kind = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, kind, id), "get catalog item")
}

// FindByName busca por nombre exacto case-insensitive, sobre activas e
// inactivas. parentID nil no restringe el padre.
func (r *CatalogRepo) FindByName(kind entity.Kind, name string, parentID *int64) (*entity.CatalogItem, error) {
	query := `
		SELECT ` + catalogColumns + `
		FROM catalog_items
		WHERE kind = $1 AND lower(name) = lower($2) AND ($3::bigint IS NULL OR parent_id = $3)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, kind, name, parentID), "find catalog item")
}

// Create inserta la entrada y rellena su ID. Devuelve domain.ErrDuplicate si
// otra fila ya ocupa (kind, nombre, padre).
func (r *CatalogRepo) Create(item *entity.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (kind, parent_id, name, is_active, attrs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.Kind, item.ParentID, item.Name, item.IsActive, item.Attrs, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// Update actualiza nombre y atributos de una entrada existente.
func (r *CatalogRepo) Update(item *entity.CatalogItem) error {
	query := `
		UPDATE catalog_items SET name = $3, attrs = $4, updated_at = $5
		WHERE kind = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		item.Kind, item.ID, item.Name, item.Attrs, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update catalog item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva (soft-delete) una entrada.
func (r *CatalogRepo) SetActive(kind entity.Kind, id int64, active bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE catalog_items SET is_active = $3, updated_at = now() WHERE kind = $1 AND id = $2`,
		kind, id, active,
	)
	if err != nil {
		return fmt.Errorf("set catalog item active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByKind lista entradas de un kind con paginación, ordenadas por nombre.
func (r *CatalogRepo) ListByKind(kind entity.Kind, onlyActive bool, limit, offset int) ([]*entity.CatalogItem, error) {
	query := `
		SELECT ` + catalogColumns + `
		FROM catalog_items
		WHERE kind = $1 AND ($2 = false OR is_active)
		ORDER BY lower(name) LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, kind, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		var item entity.CatalogItem
		if err := rows.Scan(&item.ID, &item.Kind, &item.ParentID, &item.Name, &item.IsActive,
			&item.Attrs, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// CountActive cuenta las entradas activas de un kind.
func (r *CatalogRepo) CountActive(kind entity.Kind) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM catalog_items WHERE kind = $1 AND is_active`, kind,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count catalog items: %w", err)
	}
	return n, nil
}

func (r *CatalogRepo) scanOne(row pgx.Row, op string) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := row.Scan(&item.ID, &item.Kind, &item.ParentID, &item.Name, &item.IsActive,
		&item.Attrs, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}
