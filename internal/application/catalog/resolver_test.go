package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapstock/lapstock-api/internal/application/catalog"
	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

func ptr(v int64) *int64 { return &v }

// ── Entradas inválidas ────────────────────────────────────────────────────────

func TestResolve_ValoresVaciosDevuelvenNil(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	cases := []dto.CatalogValue{
		{},                         // sin ID ni texto
		dto.CatalogText(""),        // texto vacío
		dto.CatalogText("   "),     // solo espacios
		dto.CatalogText("0"),       // el string "0" es "sin selección"
		dto.CatalogID(0),           // ID cero
	}
	for _, v := range cases {
		id, err := r.Resolve(entity.KindBrand, v, nil)
		require.NoError(t, err)
		assert.Nil(t, id, "el valor %+v debe resolver a nil", v)
	}
	assert.Empty(t, repo.items, "ninguna resolución inválida debe crear entradas")
}

func TestResolve_IDPositivoPasaSinVerificar(t *testing.T) {
	r := catalog.NewResolver(newFakeCatalogRepo())

	// 999 no existe en el repo: el contrato de confianza lo devuelve igual.
	id, err := r.Resolve(entity.KindBrand, dto.CatalogID(999), nil)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(999), *id)
}

// ── Get-or-create ─────────────────────────────────────────────────────────────

func TestResolve_CreaYEsIdempotente(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	first, err := r.Resolve(entity.KindBrand, dto.CatalogText("Dell"), nil)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := r.Resolve(entity.KindBrand, dto.CatalogText("Dell"), nil)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, *first, *second, "resolver dos veces el mismo texto debe dar el mismo ID")
	assert.Len(t, repo.items, 1, "no debe crearse una entrada duplicada")
}

func TestResolve_MatchCaseInsensitive(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	lower, err := r.Resolve(entity.KindBrand, dto.CatalogText("Dell"), nil)
	require.NoError(t, err)
	upper, err := r.Resolve(entity.KindBrand, dto.CatalogText("DELL"), nil)
	require.NoError(t, err)

	assert.Equal(t, *lower, *upper)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, "Dell", repo.items[0].Name, "se conserva el nombre con el que se creó")
}

func TestResolve_TrimDeEspacios(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	a, err := r.Resolve(entity.KindSupplier, dto.CatalogText("  TechSupply  "), nil)
	require.NoError(t, err)
	b, err := r.Resolve(entity.KindSupplier, dto.CatalogText("TechSupply"), nil)
	require.NoError(t, err)

	assert.Equal(t, *a, *b)
	assert.Equal(t, "TechSupply", repo.items[0].Name)
}

func TestResolveScoped_MismoNombreDistintoPadre(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	brandA, err := r.Resolve(entity.KindBrand, dto.CatalogText("Dell"), nil)
	require.NoError(t, err)
	brandB, err := r.Resolve(entity.KindBrand, dto.CatalogText("HP"), nil)
	require.NoError(t, err)

	modelA, err := r.ResolveScoped(entity.KindModel, dto.CatalogText("XPS"), brandA, nil)
	require.NoError(t, err)
	modelB, err := r.ResolveScoped(entity.KindModel, dto.CatalogText("XPS"), brandB, nil)
	require.NoError(t, err)

	assert.NotEqual(t, *modelA, *modelB, "\"XPS\" bajo marcas distintas son entradas distintas")

	// Y dentro del mismo scope sí se deduplica
	again, err := r.ResolveScoped(entity.KindModel, dto.CatalogText("xps"), brandA, nil)
	require.NoError(t, err)
	assert.Equal(t, *modelA, *again)
}

// La búsqueda no filtra por is_active: resolver el nombre de una entrada
// desactivada la reutiliza (y puede "resucitarla" funcionalmente) en vez de
// crear una fila muerta duplicada. Comportamiento heredado y deliberado.
func TestResolve_ReutilizaEntradaInactiva(t *testing.T) {
	repo := newFakeCatalogRepo()
	inactive := repo.seed(entity.KindBrand, "Compaq", nil, false, nil)
	r := catalog.NewResolver(repo)

	id, err := r.Resolve(entity.KindBrand, dto.CatalogText("compaq"), nil)
	require.NoError(t, err)
	require.NotNil(t, id)

	assert.Equal(t, inactive.ID, *id, "debe reutilizar la entrada inactiva, no duplicar")
	assert.Len(t, repo.items, 1)
}

// ── Reconciliación de atributos ───────────────────────────────────────────────

func TestResolve_AtributosFillInOverride(t *testing.T) {
	repo := newFakeCatalogRepo()
	seeded := repo.seed(entity.KindBrand, "Lenovo", nil, true, entity.Attributes{"country": "CN"})
	r := catalog.NewResolver(repo)

	id, err := r.Resolve(entity.KindBrand, dto.CatalogText("Lenovo"), entity.Attributes{
		"country": "China",        // distinto: se sobreescribe
		"website": "lenovo.com",   // ausente: se rellena
		"logo":    "",             // vacío: nunca borra ni escribe
	})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, seeded.ID, *id)

	assert.Equal(t, "China", seeded.Attrs.String("country"))
	assert.Equal(t, "lenovo.com", seeded.Attrs.String("website"))
	_, hasLogo := seeded.Attrs["logo"]
	assert.False(t, hasLogo, "un valor vacío no debe escribirse")
}

// ── Carrera de creación ───────────────────────────────────────────────────────

func TestResolve_ReintentaUnaVezTrasViolacionDeUnicidad(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	// Otra transacción inserta "Asus" entre nuestro pre-chequeo y nuestro
	// INSERT: el SELECT no la ve, el INSERT choca con el índice único y la
	// relectura (una sola) debe resolver a la fila ganadora.
	winner := repo.armRace(entity.KindBrand, "Asus")

	id, err := r.Resolve(entity.KindBrand, dto.CatalogText("ASUS"), nil)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, winner.ID, *id)
	assert.Len(t, repo.items, 1)
}

// ── Kinds con nombre sintetizado ──────────────────────────────────────────────

func TestResolveDerived_SintetizaNombreDesdeAtributos(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	id, err := r.ResolveDerived(entity.KindStorage, dto.CatalogValue{}, entity.Attributes{
		"capacity_gb": 512,
		"media_type":  "SSD",
		"nvme":        true,
		"form_factor": "M.2",
	})
	require.NoError(t, err)
	require.NotNil(t, id)

	item, _ := repo.GetByID(entity.KindStorage, *id)
	require.NotNil(t, item)
	assert.Equal(t, "512GB SSD NVMe M.2", item.Name)
	assert.True(t, item.IsActive)
}

func TestResolveDerived_SinNadaDevuelveNil(t *testing.T) {
	r := catalog.NewResolver(newFakeCatalogRepo())

	id, err := r.ResolveDerived(entity.KindRam, dto.CatalogValue{}, entity.Attributes{})
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestResolveDerived_ScreenCapturaResolucionDelTexto(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	// El texto es solo la resolución: se captura como atributo y el nombre se
	// sintetiza más visual con el resto de campos.
	id, err := r.ResolveDerived(entity.KindScreen, dto.CatalogText("1920x1080"), entity.Attributes{
		"diagonal_inches": 15.6,
		"panel_type":      "IPS",
	})
	require.NoError(t, err)
	require.NotNil(t, id)

	item, _ := repo.GetByID(entity.KindScreen, *id)
	require.NotNil(t, item)
	assert.Equal(t, `15.6" 1920x1080 IPS`, item.Name)
	assert.Equal(t, "1920x1080", item.Attrs.String("resolution"))
}

// ── Procesador ────────────────────────────────────────────────────────────────

func TestResolveProcessor_GeneracionComoNombreCanonico(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	id, err := r.ResolveProcessor(catalog.ProcessorInput{
		Family:     "Intel Core Ultra 7",
		Generation: "Series 2",
		Model:      "268V",
	})
	require.NoError(t, err)
	require.NotNil(t, id)

	item, _ := repo.GetByID(entity.KindProcessor, *id)
	require.NotNil(t, item)
	assert.Equal(t, "Series 2", item.Name, "el nombre canónico es la generación, no el modelo")
	assert.Equal(t, "Intel", item.Attrs.String("manufacturer"), "el fabricante se infiere de la familia")
	assert.Equal(t, "268V", item.Attrs.String("model_number"))
}

func TestResolveProcessor_FamiliaComoFallback(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	id, err := r.ResolveProcessor(catalog.ProcessorInput{Family: "AMD Ryzen 7"})
	require.NoError(t, err)
	require.NotNil(t, id)

	item, _ := repo.GetByID(entity.KindProcessor, *id)
	assert.Equal(t, "AMD Ryzen 7", item.Name)
	assert.Equal(t, "AMD", item.Attrs.String("manufacturer"))
}

func TestResolveProcessor_SinDatosDevuelveNil(t *testing.T) {
	r := catalog.NewResolver(newFakeCatalogRepo())

	id, err := r.ResolveProcessor(catalog.ProcessorInput{Model: "8940HX"})
	require.NoError(t, err)
	assert.Nil(t, id, "sin generación ni familia no hay nombre de catálogo")
}

func TestResolveProcessor_HasNPUEsMonotono(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	in := catalog.ProcessorInput{Family: "Intel Core Ultra 7", Generation: "Series 2"}

	// 1ª resolución sin NPU
	id1, err := r.ResolveProcessor(in)
	require.NoError(t, err)
	item, _ := repo.GetByID(entity.KindProcessor, *id1)
	assert.False(t, item.Attrs.Bool("has_npu"))

	// 2ª con NPU: sube a true
	in.HasNPU = true
	id2, err := r.ResolveProcessor(in)
	require.NoError(t, err)
	assert.Equal(t, *id1, *id2)
	assert.True(t, item.Attrs.Bool("has_npu"))

	// 3ª sin NPU: se queda en true (nunca baja)
	in.HasNPU = false
	id3, err := r.ResolveProcessor(in)
	require.NoError(t, err)
	assert.Equal(t, *id1, *id3)
	assert.True(t, item.Attrs.Bool("has_npu"), "has_npu no debe degradarse a false")
}

// ── ProcessForm ───────────────────────────────────────────────────────────────

func TestProcessForm_ResuelveTodoElFormulario(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	refs, err := r.ProcessForm(dto.LaptopSpecForm{
		Brand:               dto.CatalogText("Dell"),
		Model:               dto.CatalogText("XPS 13"),
		ProcessorFamily:     "Intel Core Ultra 7",
		ProcessorGeneration: "Series 2",
		ProcessorHasNPU:     true,
		OS:                  dto.CatalogText("Windows 11 Pro"),

		ScreenDiagonalInches: 13.4,
		ScreenHDType:         "Full HD+",
		ScreenPanelType:      "IPS",

		GPUBrand:        "Intel",
		OnboardGPUModel: "Arc Graphics",

		StorageCapacityGB: 512,
		StorageMediaType:  "SSD",
		StorageNVMe:       true,

		RamCapacityGB: 16,
		RamType:       "LPDDR5X",

		Store:    dto.CatalogText("Centro"),
		Location: dto.CatalogText("Vitrina 2"),
		Supplier: dto.CatalogText("TechSupply"),
	})
	require.NoError(t, err)

	require.NotNil(t, refs.BrandID)
	require.NotNil(t, refs.ModelID)
	require.NotNil(t, refs.ProcessorID)
	require.NotNil(t, refs.OSID)
	require.NotNil(t, refs.ScreenID)
	require.NotNil(t, refs.GraphicsCardID)
	require.NotNil(t, refs.StorageID)
	require.NotNil(t, refs.RamID)
	require.NotNil(t, refs.StoreID)
	require.NotNil(t, refs.LocationID)
	require.NotNil(t, refs.SupplierID)

	// El modelo queda bajo el scope de la marca resuelta en el mismo lote
	model, _ := repo.GetByID(entity.KindModel, *refs.ModelID)
	require.NotNil(t, model.ParentID)
	assert.Equal(t, *refs.BrandID, *model.ParentID)

	// Y la ubicación bajo la tienda
	location, _ := repo.GetByID(entity.KindLocation, *refs.LocationID)
	require.NotNil(t, location.ParentID)
	assert.Equal(t, *refs.StoreID, *location.ParentID)

	// Nombres sintetizados de los kinds derivados
	screen, _ := repo.GetByID(entity.KindScreen, *refs.ScreenID)
	assert.Equal(t, `13.4" Full HD+ IPS`, screen.Name)
	gpu, _ := repo.GetByID(entity.KindGraphicsCard, *refs.GraphicsCardID)
	assert.Equal(t, "Intel Arc Graphics", gpu.Name)
}

func TestProcessForm_CamposVaciosQuedanNil(t *testing.T) {
	r := catalog.NewResolver(newFakeCatalogRepo())

	refs, err := r.ProcessForm(dto.LaptopSpecForm{
		Brand: dto.CatalogText("HP"),
		// todo lo demás vacío
	})
	require.NoError(t, err)

	require.NotNil(t, refs.BrandID)
	assert.Nil(t, refs.ModelID)
	assert.Nil(t, refs.ProcessorID)
	assert.Nil(t, refs.ScreenID)
	assert.Nil(t, refs.StorageID)
	assert.Nil(t, refs.SupplierID)
}

func TestProcessForm_IdempotenteSobreElMismoFormulario(t *testing.T) {
	repo := newFakeCatalogRepo()
	r := catalog.NewResolver(repo)

	form := dto.LaptopSpecForm{
		Brand:    dto.CatalogText("Dell"),
		Model:    dto.CatalogText("Latitude 7450"),
		Store:    dto.CatalogText("Centro"),
		Location: dto.CatalogText("Bodega"),
	}

	first, err := r.ProcessForm(form)
	require.NoError(t, err)
	before := len(repo.items)

	second, err := r.ProcessForm(form)
	require.NoError(t, err)

	assert.Equal(t, *first.BrandID, *second.BrandID)
	assert.Equal(t, *first.ModelID, *second.ModelID)
	assert.Equal(t, *first.LocationID, *second.LocationID)
	assert.Len(t, repo.items, before, "reprocesar el mismo formulario no debe crear nada nuevo")
}
