package catalog

import (
	"context"

	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/repository"
)

// UseCase operaciones administrativas de catálogo: listados, estadísticas,
// soft-delete y fusión. Las lecturas usan el repositorio atado al pool; la
// fusión corre dentro del TxRunner para que repunte y desactivación sean atómicos.
type UseCase struct {
	repo     repository.CatalogRepository
	txRunner TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CatalogRepository, txRunner TxRunner) *UseCase {
	return &UseCase{repo: repo, txRunner: txRunner}
}

// List lista entradas de un kind con paginación.
func (uc *UseCase) List(kind entity.Kind, onlyActive bool, limit, offset int) (*dto.CatalogListResponse, error) {
	items, err := uc.repo.ListByKind(kind, onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCatalogItemResponse(item))
	}
	return &dto.CatalogListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Stats cuenta las entradas activas de cada kind.
func (uc *UseCase) Stats() (*dto.CatalogStatsResponse, error) {
	counts := make(map[string]int64, len(entity.AllKinds))
	for _, kind := range entity.AllKinds {
		n, err := uc.repo.CountActive(kind)
		if err != nil {
			return nil, err
		}
		counts[string(kind)] = n
	}
	return &dto.CatalogStatsResponse{Counts: counts}, nil
}

// Deactivate soft-delete de una entrada. Devuelve false si no existe.
func (uc *UseCase) Deactivate(kind entity.Kind, id int64) (bool, error) {
	return uc.setActive(kind, id, false)
}

// Reactivate reactiva una entrada desactivada. Devuelve false si no existe.
func (uc *UseCase) Reactivate(kind entity.Kind, id int64) (bool, error) {
	return uc.setActive(kind, id, true)
}

func (uc *UseCase) setActive(kind entity.Kind, id int64, active bool) (bool, error) {
	item, err := uc.repo.GetByID(kind, id)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}
	if err := uc.repo.SetActive(kind, id, active); err != nil {
		return false, err
	}
	return true, nil
}

// Merge fusiona source en target dentro de una transacción.
func (uc *UseCase) Merge(ctx context.Context, kind entity.Kind, in dto.MergeRequest) (*dto.MergeResponse, error) {
	repoint := in.Repoint == nil || *in.Repoint

	var updated int64
	err := uc.txRunner.Run(ctx, func(
		catalogRepo repository.CatalogRepository,
		laptopRepo repository.LaptopRepository,
	) error {
		merger := NewMerger(catalogRepo, laptopRepo)
		n, err := merger.Merge(kind, in.SourceID, in.TargetID, repoint)
		if err != nil {
			return err
		}
		updated = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.MergeResponse{UpdatedLaptops: updated}, nil
}

func toCatalogItemResponse(item *entity.CatalogItem) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		ID:        item.ID,
		Kind:      string(item.Kind),
		ParentID:  item.ParentID,
		Name:      item.Name,
		IsActive:  item.IsActive,
		Attrs:     item.Attrs,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
