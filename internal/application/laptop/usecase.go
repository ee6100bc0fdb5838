package laptop

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/lapstock/lapstock-api/internal/application/catalog"
	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/domain"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/repository"
	"github.com/lapstock/lapstock-api/pkg/slug"
)

// UseCase orquesta el alta y mantenimiento de laptops. El alta resuelve las 11
// dimensiones de catálogo y persiste la laptop dentro de UNA transacción: si la
// inserción falla, las entradas de catálogo creadas por el resolver se revierten
// con ella.
type UseCase struct {
	laptopRepo repository.LaptopRepository
	txRunner   appcatalog.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(laptopRepo repository.LaptopRepository, txRunner appcatalog.TxRunner) *UseCase {
	return &UseCase{laptopRepo: laptopRepo, txRunner: txRunner}
}

// Create da de alta una laptop resolviendo sus especificaciones contra el
// catálogo. SKU vacío se genera; el slug se deriva del display name con el SKU
// como sufijo discriminador.
func (uc *UseCase) Create(ctx context.Context, createdBy string, in dto.CreateLaptopRequest) (*dto.LaptopResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		sku = generateSKU()
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = displayNameFromSpecs(in.Specs)
	}
	if displayName == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.laptopRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	lap := &entity.Laptop{
		SKU:         sku,
		Slug:        slug.Make(displayName + "-" + sku),
		GTIN:        strings.TrimSpace(in.GTIN),
		DisplayName: displayName,
		Price:       in.Price,
		Cost:        in.Cost,
		IsPublished: in.IsPublished,
		Notes:       in.Notes,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(
		catalogRepo repository.CatalogRepository,
		laptopRepo repository.LaptopRepository,
	) error {
		refs, err := appcatalog.NewResolver(catalogRepo).ProcessForm(in.Specs)
		if err != nil {
			return err
		}
		applyRefs(lap, refs)
		return laptopRepo.Create(lap)
	})
	if err != nil {
		return nil, err
	}
	resp := toLaptopResponse(lap)
	return &resp, nil
}

// GetByID devuelve una laptop o domain.ErrNotFound.
func (uc *UseCase) GetByID(id int64) (*dto.LaptopResponse, error) {
	lap, err := uc.laptopRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lap == nil {
		return nil, domain.ErrNotFound
	}
	resp := toLaptopResponse(lap)
	return &resp, nil
}

// List lista laptops con paginación.
func (uc *UseCase) List(limit, offset int) (*dto.LaptopListResponse, error) {
	laptops, err := uc.laptopRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LaptopResponse, 0, len(laptops))
	for _, lap := range laptops {
		out = append(out, toLaptopResponse(lap))
	}
	return &dto.LaptopListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualización parcial. Si vienen Specs se re-resuelven las 11
// dimensiones dentro de una transacción, igual que en el alta.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdateLaptopRequest) (*dto.LaptopResponse, error) {
	lap, err := uc.laptopRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lap == nil {
		return nil, domain.ErrNotFound
	}

	if in.DisplayName != nil && strings.TrimSpace(*in.DisplayName) != "" {
		lap.DisplayName = strings.TrimSpace(*in.DisplayName)
		lap.Slug = slug.Make(lap.DisplayName + "-" + lap.SKU)
	}
	if in.Price != nil {
		lap.Price = *in.Price
	}
	if in.Cost != nil {
		lap.Cost = *in.Cost
	}
	if in.IsPublished != nil {
		lap.IsPublished = *in.IsPublished
	}
	if in.Notes != nil {
		lap.Notes = *in.Notes
	}
	lap.UpdatedAt = time.Now()

	if in.Specs == nil {
		if err := uc.laptopRepo.Update(lap); err != nil {
			return nil, err
		}
		resp := toLaptopResponse(lap)
		return &resp, nil
	}

	err = uc.txRunner.Run(ctx, func(
		catalogRepo repository.CatalogRepository,
		laptopRepo repository.LaptopRepository,
	) error {
		refs, err := appcatalog.NewResolver(catalogRepo).ProcessForm(*in.Specs)
		if err != nil {
			return err
		}
		applyRefs(lap, refs)
		return laptopRepo.Update(lap)
	})
	if err != nil {
		return nil, err
	}
	resp := toLaptopResponse(lap)
	return &resp, nil
}

// Delete elimina una laptop. Devuelve domain.ErrNotFound si no existe.
func (uc *UseCase) Delete(id int64) error {
	lap, err := uc.laptopRepo.GetByID(id)
	if err != nil {
		return err
	}
	if lap == nil {
		return domain.ErrNotFound
	}
	return uc.laptopRepo.Delete(id)
}

// generateSKU genera un SKU corto legible a partir de un UUID v4.
func generateSKU() string {
	return "LAP-" + strings.ToUpper(uuid.NewString()[:8])
}

// displayNameFromSpecs sintetiza "Marca Modelo" cuando el alta no trae nombre.
func displayNameFromSpecs(specs dto.LaptopSpecForm) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(specs.Brand.Text); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(specs.Model.Text); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func applyRefs(lap *entity.Laptop, refs dto.ResolvedRefs) {
	lap.BrandID = refs.BrandID
	lap.ModelID = refs.ModelID
	lap.ProcessorID = refs.ProcessorID
	lap.OSID = refs.OSID
	lap.ScreenID = refs.ScreenID
	lap.GraphicsCardID = refs.GraphicsCardID
	lap.StorageID = refs.StorageID
	lap.RamID = refs.RamID
	lap.StoreID = refs.StoreID
	lap.LocationID = refs.LocationID
	lap.SupplierID = refs.SupplierID
}

func toLaptopResponse(lap *entity.Laptop) dto.LaptopResponse {
	return dto.LaptopResponse{
		ID:          lap.ID,
		SKU:         lap.SKU,
		Slug:        lap.Slug,
		GTIN:        lap.GTIN,
		DisplayName: lap.DisplayName,
		Price:       lap.Price,
		Cost:        lap.Cost,
		Refs: dto.ResolvedRefs{
			BrandID:        lap.BrandID,
			ModelID:        lap.ModelID,
			ProcessorID:    lap.ProcessorID,
			OSID:           lap.OSID,
			ScreenID:       lap.ScreenID,
			GraphicsCardID: lap.GraphicsCardID,
			StorageID:      lap.StorageID,
			RamID:          lap.RamID,
			StoreID:        lap.StoreID,
			LocationID:     lap.LocationID,
			SupplierID:     lap.SupplierID,
		},
		IsPublished: lap.IsPublished,
		Notes:       lap.Notes,
		CreatedBy:   lap.CreatedBy,
		CreatedAt:   lap.CreatedAt,
		UpdatedAt:   lap.UpdatedAt,
	}
}
