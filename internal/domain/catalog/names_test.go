package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domcatalog "github.com/lapstock/lapstock-api/internal/domain/catalog"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

func TestDisplayName_Screen(t *testing.T) {
	name := domcatalog.DisplayName(entity.KindScreen, entity.Attributes{
		"diagonal_inches": 15.6,
		"hd_type":         "Full HD",
		"panel_type":      "IPS-Level",
		"refresh_rate":    144,
		"touchscreen":     true,
	})
	assert.Equal(t, `15.6" Full HD IPS 144Hz Touch`, name)
}

func TestDisplayName_ScreenResolucionSoloSiNoHayHDType(t *testing.T) {
	name := domcatalog.DisplayName(entity.KindScreen, entity.Attributes{
		"diagonal_inches": 14.0,
		"resolution":      "1920x1080",
	})
	assert.Equal(t, `14" 1920x1080`, name)

	// hd_type tiene prioridad sobre resolution
	name = domcatalog.DisplayName(entity.KindScreen, entity.Attributes{
		"hd_type":    "4K UHD",
		"resolution": "3840x2160",
	})
	assert.Equal(t, "4K UHD", name)
}

func TestDisplayName_ScreenRefreshBajoSeOmite(t *testing.T) {
	name := domcatalog.DisplayName(entity.KindScreen, entity.Attributes{
		"diagonal_inches": 13.3,
		"refresh_rate":    60, // 60Hz es lo normal, no aporta al nombre
	})
	assert.Equal(t, `13.3"`, name)
}

func TestDisplayName_GraphicsCard(t *testing.T) {
	name := domcatalog.DisplayName(entity.KindGraphicsCard, entity.Attributes{
		"brand":          "NVIDIA",
		"discrete_model": "RTX 4060",
		"memory_gb":      8,
	})
	assert.Equal(t, "NVIDIA RTX 4060 8GB", name)
}

func TestDisplayName_Storage(t *testing.T) {
	name := domcatalog.DisplayName(entity.KindStorage, entity.Attributes{
		"capacity_gb": 512,
		"media_type":  "SSD",
		"nvme":        true,
		"form_factor": "M.2",
	})
	assert.Equal(t, "512GB SSD NVMe M.2", name)
}

func TestDisplayName_Ram(t *testing.T) {
	name := domcatalog.DisplayName(entity.KindRam, entity.Attributes{
		"capacity_gb": 16,
		"ram_type":    "DDR5",
		"speed_mhz":   5600,
	})
	assert.Equal(t, "16GB DDR5 5600MHz", name)
}

func TestDisplayName_SinAtributosUsaPlaceholder(t *testing.T) {
	assert.Equal(t, "Generic Screen", domcatalog.DisplayName(entity.KindScreen, entity.Attributes{}))
	assert.Equal(t, "Generic GPU", domcatalog.DisplayName(entity.KindGraphicsCard, nil))
	assert.Equal(t, "Generic Storage", domcatalog.DisplayName(entity.KindStorage, nil))
	assert.Equal(t, "Generic RAM", domcatalog.DisplayName(entity.KindRam, nil))
}

func TestDisplayName_KindNoDerivadoDevuelveVacio(t *testing.T) {
	assert.Empty(t, domcatalog.DisplayName(entity.KindBrand, entity.Attributes{"country": "US"}))
}

func TestExtractResolution(t *testing.T) {
	assert.Equal(t, "1920x1080", domcatalog.ExtractResolution("1920x1080"))
	assert.Equal(t, "1920x1080", domcatalog.ExtractResolution("Panel 1920 X 1080 mate"))
	assert.Equal(t, "2560x1600", domcatalog.ExtractResolution("2560 x 1600"))
	assert.Empty(t, domcatalog.ExtractResolution("Full HD"))
	assert.Empty(t, domcatalog.ExtractResolution(""))
}

func TestInferManufacturer(t *testing.T) {
	cases := map[string]string{
		"Intel Core i7":      "Intel",
		"AMD Ryzen 7":        "AMD",
		"Apple Silicon":      "Apple",
		"M2 Pro":             "Apple",
		"Snapdragon X Elite": "Qualcomm",
		"Qualcomm Oryon":     "Qualcomm",
		"Loongson 3A6000":    "",
		"":                   "",
	}
	for family, want := range cases {
		assert.Equal(t, want, domcatalog.InferManufacturer(family), "familia %q", family)
	}
}
