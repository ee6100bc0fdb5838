package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/domain"
	domcatalog "github.com/lapstock/lapstock-api/internal/domain/catalog"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/repository"
)

// Resolver convierte valores crudos (ID existente, texto libre o atributos
// estructurados) en IDs canónicos de catálogo, creando la entrada si no existe
// y reconciliando atributos sobre coincidencias. No gestiona transacciones:
// se construye con repositorios ya atados a la tx del caller (ver TxRunner).
type Resolver struct {
	repo repository.CatalogRepository
}

// NewResolver construye el resolver sobre un repositorio de catálogo (pool o tx).
func NewResolver(repo repository.CatalogRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve resuelve un valor crudo de un kind sin scope. Ver ResolveScoped.
func (r *Resolver) Resolve(kind entity.Kind, value dto.CatalogValue, attrs entity.Attributes) (*int64, error) {
	return r.ResolveScoped(kind, value, nil, attrs)
}

// ResolveScoped resuelve un valor crudo dentro del scope de un padre opcional
// (Model bajo Brand, Location bajo Store).
//   - Valor vacío, 0 o "0": nil (sin selección explícita).
//   - ID positivo: se devuelve tal cual, sin verificar existencia — contrato de
//     confianza con el caller, que ya tiene un ID válido en la mano.
//   - Texto: trim; búsqueda exacta case-insensitive sobre activas e inactivas.
//     Con coincidencia, los atributos suministrados se reconcilian (fill-in/
//     override, nunca se borran) y el cambio se persiste de inmediato para que
//     resoluciones posteriores de la misma tx lo observen. Sin coincidencia se
//     crea la entrada activa y se persiste ya para obtener su ID.
func (r *Resolver) ResolveScoped(kind entity.Kind, value dto.CatalogValue, parentID *int64, attrs entity.Attributes) (*int64, error) {
	if value.ID > 0 {
		id := value.ID
		return &id, nil
	}
	name := strings.TrimSpace(value.Text)
	if name == "" || name == "0" {
		return nil, nil
	}
	return r.resolveText(kind, name, parentID, attrs)
}

// ResolveDerived resuelve los kinds con nombre sintetizado (Screen, GraphicsCard,
// Storage, Ram): cuando no llega nombre explícito pero sí atributos, el nombre
// canónico se construye con la tabla de reglas del kind. Para Screen, una
// resolución embebida en el texto (p. ej. "1920x1080" del escáner) se captura
// como atributo y, si el texto ES la resolución, se sintetiza un nombre más visual.
func (r *Resolver) ResolveDerived(kind entity.Kind, value dto.CatalogValue, attrs entity.Attributes) (*int64, error) {
	if value.IsZero() && !anyPresent(attrs) {
		return nil, nil
	}
	if value.ID > 0 {
		id := value.ID
		return &id, nil
	}

	name := strings.TrimSpace(value.Text)

	if kind == entity.KindScreen && name != "" && !entity.Present(attrs["resolution"]) {
		if res := domcatalog.ExtractResolution(name); res != "" {
			attrs["resolution"] = res
		}
	}

	if name == "" || (kind == entity.KindScreen && name == attrs.String("resolution")) {
		name = domcatalog.DisplayName(kind, attrs)
	}
	if name == "" || name == "0" {
		return nil, nil
	}
	return r.resolveText(kind, name, nil, attrs)
}

// ProcessorInput datos crudos de procesador del formulario o del proveedor.
type ProcessorInput struct {
	Family       string
	Generation   string
	Model        string
	Manufacturer string
	FullName     string
	HasNPU       bool
}

// ResolveProcessor resolución especializada: el nombre canónico es la GENERACIÓN
// (o la familia si no hay generación); el fabricante se infiere del texto de la
// familia cuando falta; has_npu solo sube a true, nunca baja (capacidad monótona).
func (r *Resolver) ResolveProcessor(in ProcessorInput) (*int64, error) {
	generation := strings.TrimSpace(in.Generation)
	family := strings.TrimSpace(in.Family)

	catName := generation
	if catName == "" {
		catName = family
	}
	if catName == "" {
		return nil, nil
	}

	manufacturer := strings.TrimSpace(in.Manufacturer)
	if manufacturer == "" {
		manufacturer = domcatalog.InferManufacturer(family)
	}

	existing, err := r.repo.FindByName(entity.KindProcessor, catName, nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		changed := false
		if in.HasNPU && !existing.Attrs.Bool("has_npu") {
			existing.Attrs["has_npu"] = true
			changed = true
		}
		if in.FullName != "" && existing.Attrs.String("full_name") != in.FullName {
			existing.Attrs["full_name"] = in.FullName
			changed = true
		}
		if changed {
			existing.UpdatedAt = time.Now()
			if err := r.repo.Update(existing); err != nil {
				return nil, err
			}
		}
		return &existing.ID, nil
	}

	attrs := entity.Attributes{}
	setIfPresent(attrs, "family", family)
	setIfPresent(attrs, "generation", generation)
	setIfPresent(attrs, "model_number", strings.TrimSpace(in.Model))
	setIfPresent(attrs, "manufacturer", manufacturer)
	setIfPresent(attrs, "full_name", in.FullName)
	if in.HasNPU {
		attrs["has_npu"] = true
	}
	return r.create(entity.KindProcessor, catName, nil, attrs)
}

// ProcessForm resuelve las 11 dimensiones de un registro plano de
// especificaciones, en orden fijo: Brand → Model → Processor → OS → Screen →
// GraphicsCard → Storage → Ram → Store → Location → Supplier. El orden solo
// importa para las parejas con scope (Model necesita el ID ya persistido de
// Brand; Location el de Store), por eso la resolución es estrictamente
// secuencial y debe ejecutarse dentro de una única transacción abierta.
func (r *Resolver) ProcessForm(form dto.LaptopSpecForm) (dto.ResolvedRefs, error) {
	var refs dto.ResolvedRefs
	var err error

	if refs.BrandID, err = r.Resolve(entity.KindBrand, form.Brand, nil); err != nil {
		return refs, err
	}
	if refs.ModelID, err = r.ResolveScoped(entity.KindModel, form.Model, refs.BrandID, nil); err != nil {
		return refs, err
	}
	if refs.ProcessorID, err = r.ResolveProcessor(ProcessorInput{
		Family:       form.ProcessorFamily,
		Generation:   form.ProcessorGeneration,
		Model:        form.ProcessorModel,
		Manufacturer: form.ProcessorManufacturer,
		FullName:     form.ProcessorFullName,
		HasNPU:       form.ProcessorHasNPU,
	}); err != nil {
		return refs, err
	}
	if refs.OSID, err = r.Resolve(entity.KindOperatingSystem, form.OS, nil); err != nil {
		return refs, err
	}

	screenAttrs := entity.Attributes{}
	setIfPresent(screenAttrs, "diagonal_inches", form.ScreenDiagonalInches)
	setIfPresent(screenAttrs, "resolution", form.ScreenResolution)
	setIfPresent(screenAttrs, "hd_type", form.ScreenHDType)
	setIfPresent(screenAttrs, "panel_type", form.ScreenPanelType)
	setIfPresent(screenAttrs, "refresh_rate", form.ScreenRefreshRate)
	setIfPresent(screenAttrs, "touchscreen", form.ScreenTouchscreen)
	setIfPresent(screenAttrs, "full_name", form.ScreenFullName)
	if refs.ScreenID, err = r.ResolveDerived(entity.KindScreen, form.Screen, screenAttrs); err != nil {
		return refs, err
	}

	gpuAttrs := entity.Attributes{}
	setIfPresent(gpuAttrs, "brand", form.GPUBrand)
	setIfPresent(gpuAttrs, "has_discrete_gpu", form.HasDiscreteGPU)
	setIfPresent(gpuAttrs, "discrete_model", form.DiscreteGPUModel)
	setIfPresent(gpuAttrs, "onboard_model", form.OnboardGPUModel)
	setIfPresent(gpuAttrs, "memory_gb", form.GPUMemoryGB)
	if refs.GraphicsCardID, err = r.ResolveDerived(entity.KindGraphicsCard, form.GraphicsCard, gpuAttrs); err != nil {
		return refs, err
	}

	storageAttrs := entity.Attributes{}
	setIfPresent(storageAttrs, "capacity_gb", form.StorageCapacityGB)
	setIfPresent(storageAttrs, "media_type", form.StorageMediaType)
	setIfPresent(storageAttrs, "nvme", form.StorageNVMe)
	setIfPresent(storageAttrs, "form_factor", form.StorageFormFactor)
	if refs.StorageID, err = r.ResolveDerived(entity.KindStorage, form.Storage, storageAttrs); err != nil {
		return refs, err
	}

	ramAttrs := entity.Attributes{}
	setIfPresent(ramAttrs, "capacity_gb", form.RamCapacityGB)
	setIfPresent(ramAttrs, "ram_type", form.RamType)
	setIfPresent(ramAttrs, "speed_mhz", form.RamSpeedMHz)
	if refs.RamID, err = r.ResolveDerived(entity.KindRam, form.Ram, ramAttrs); err != nil {
		return refs, err
	}

	if refs.StoreID, err = r.Resolve(entity.KindStore, form.Store, nil); err != nil {
		return refs, err
	}
	if refs.LocationID, err = r.ResolveScoped(entity.KindLocation, form.Location, refs.StoreID, nil); err != nil {
		return refs, err
	}
	if refs.SupplierID, err = r.Resolve(entity.KindSupplier, form.Supplier, nil); err != nil {
		return refs, err
	}

	return refs, nil
}

// resolveText busca por nombre (case-insensitive, activas e inactivas) y crea
// si no hay coincidencia. Sobre una coincidencia, los atributos se reconcilian
// y el cambio se persiste de inmediato.
func (r *Resolver) resolveText(kind entity.Kind, name string, parentID *int64, attrs entity.Attributes) (*int64, error) {
	existing, err := r.repo.FindByName(kind, name, parentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Attrs == nil {
			existing.Attrs = entity.Attributes{}
		}
		if len(attrs) > 0 && existing.Attrs.Merge(attrs) {
			existing.UpdatedAt = time.Now()
			if err := r.repo.Update(existing); err != nil {
				return nil, err
			}
		}
		return &existing.ID, nil
	}
	return r.create(kind, name, parentID, attrs)
}

// create inserta la entrada nueva. El pre-chequeo por nombre es una
// optimización, no una garantía: la unicidad real la impone el índice único de
// la DB, así que ante una violación por carrera se relee UNA sola vez y se
// reutiliza la fila del ganador.
func (r *Resolver) create(kind entity.Kind, name string, parentID *int64, attrs entity.Attributes) (*int64, error) {
	now := time.Now()
	item := &entity.CatalogItem{
		Kind:      kind,
		ParentID:  parentID,
		Name:      name,
		IsActive:  true,
		Attrs:     presentOnly(attrs),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.repo.Create(item)
	if err == nil {
		return &item.ID, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return nil, err
	}

	existing, ferr := r.repo.FindByName(kind, name, parentID)
	if ferr != nil {
		return nil, ferr
	}
	if existing == nil {
		// perdimos la carrera pero el ganador ya no está visible: propagar
		return nil, err
	}
	return &existing.ID, nil
}

// setIfPresent añade el atributo solo si el valor cuenta como suministrado.
func setIfPresent(attrs entity.Attributes, key string, v any) {
	if entity.Present(v) {
		attrs[key] = v
	}
}

// presentOnly filtra los atributos no suministrados antes de persistir.
func presentOnly(attrs entity.Attributes) entity.Attributes {
	out := entity.Attributes{}
	for k, v := range attrs {
		if entity.Present(v) {
			out[k] = v
		}
	}
	return out
}

// anyPresent reporta si hay al menos un atributo suministrado.
func anyPresent(attrs entity.Attributes) bool {
	for _, v := range attrs {
		if entity.Present(v) {
			return true
		}
	}
	return false
}
