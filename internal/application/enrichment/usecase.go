package enrichment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/application/laptop"
	"github.com/lapstock/lapstock-api/internal/domain"
)

// UseCase importa laptops a partir de un GTIN: consulta el proveedor de datos,
// aplana su ficha a un formulario de especificaciones y delega el alta (con
// resolución de catálogos incluida) en el caso de uso de laptops.
type UseCase struct {
	provider ProductDataProvider
	laptops  *laptop.UseCase
}

// NewUseCase construye el caso de uso. provider puede ser nil si no hay
// credenciales configuradas: ImportByGTIN responde ErrProviderUnavailable.
func NewUseCase(provider ProductDataProvider, laptops *laptop.UseCase) *UseCase {
	return &UseCase{provider: provider, laptops: laptops}
}

// ImportByGTIN consulta la ficha del GTIN y da de alta la laptop. Precio y
// costo quedan en cero: el proveedor describe el producto, no la operación
// comercial.
func (uc *UseCase) ImportByGTIN(ctx context.Context, createdBy string, in dto.ImportByGTINRequest) (*dto.LaptopResponse, error) {
	if uc.provider == nil {
		return nil, domain.ErrProviderUnavailable
	}
	gtin := strings.TrimSpace(in.GTIN)
	if gtin == "" {
		return nil, domain.ErrInvalidInput
	}

	specs, err := uc.provider.FetchByGTIN(ctx, gtin)
	if err != nil {
		return nil, err
	}
	if specs == nil {
		return nil, domain.ErrNotFound
	}

	return uc.laptops.Create(ctx, createdBy, dto.CreateLaptopRequest{
		SKU:         in.SKU,
		GTIN:        gtin,
		DisplayName: specs.Title,
		Price:       decimal.Zero,
		Cost:        decimal.Zero,
		Specs:       toSpecForm(specs, in),
	})
}

// toSpecForm aplana la ficha del proveedor al formulario que consume el resolver,
// añadiendo los datos operativos (tienda, ubicación, proveedor) del request.
func toSpecForm(specs *dto.ProductSpecs, in dto.ImportByGTINRequest) dto.LaptopSpecForm {
	return dto.LaptopSpecForm{
		Brand: dto.CatalogText(specs.Brand),
		Model: dto.CatalogText(specs.ModelName),

		ProcessorFamily:     specs.ProcessorFamily,
		ProcessorGeneration: specs.ProcessorGeneration,
		ProcessorModel:      specs.ProcessorModel,
		ProcessorFullName:   specs.ProcessorFullName,
		ProcessorHasNPU:     specs.ProcessorHasNPU,

		OS: dto.CatalogText(specs.OSName),

		ScreenDiagonalInches: specs.ScreenDiagonalInches,
		ScreenResolution:     specs.ScreenResolution,
		ScreenHDType:         specs.ScreenHDType,
		ScreenPanelType:      specs.ScreenPanelType,
		ScreenRefreshRate:    specs.ScreenRefreshRate,
		ScreenTouchscreen:    specs.ScreenTouchscreen,

		GPUBrand:         specs.GPUBrand,
		HasDiscreteGPU:   specs.HasDiscreteGPU,
		DiscreteGPUModel: specs.DiscreteGPUModel,
		OnboardGPUModel:  specs.OnboardGPUModel,
		GPUMemoryGB:      specs.GPUMemoryGB,

		StorageCapacityGB: specs.StorageCapacityGB,
		StorageMediaType:  specs.StorageMediaType,
		StorageNVMe:       specs.StorageNVMe,
		StorageFormFactor: specs.StorageFormFactor,

		RamCapacityGB: specs.RamCapacityGB,
		RamType:       specs.RamType,
		RamSpeedMHz:   specs.RamSpeedMHz,

		Store:    in.Store,
		Location: in.Location,
		Supplier: in.Supplier,
	}
}
