package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaptopSpecForm es el registro plano de especificaciones que consume el
// resolver: un valor crudo por dimensión de catálogo más los campos técnicos
// granulares de los kinds derivados. Lo producen tanto el formulario manual
// como la importación por GTIN.
type LaptopSpecForm struct {
	Brand CatalogValue `json:"brand"`
	Model CatalogValue `json:"model"`

	// Procesador (resolución especializada: el nombre canónico es la generación)
	ProcessorFamily       string `json:"processor_family"`
	ProcessorGeneration   string `json:"processor_generation"`
	ProcessorModel        string `json:"processor_model"`
	ProcessorManufacturer string `json:"processor_manufacturer"`
	ProcessorFullName     string `json:"processor_full_name"`
	ProcessorHasNPU       bool   `json:"processor_has_npu"`

	OS CatalogValue `json:"os"`

	// Pantalla
	Screen               CatalogValue `json:"screen"`
	ScreenDiagonalInches float64      `json:"screen_diagonal_inches"`
	ScreenResolution     string       `json:"screen_resolution"`
	ScreenHDType         string       `json:"screen_hd_type"`
	ScreenPanelType      string       `json:"screen_panel_type"`
	ScreenRefreshRate    int          `json:"screen_refresh_rate"`
	ScreenTouchscreen    bool         `json:"screen_touchscreen"`
	ScreenFullName       string       `json:"screen_full_name"`

	// Gráfica
	GraphicsCard     CatalogValue `json:"graphics_card"`
	GPUBrand         string       `json:"gpu_brand"`
	HasDiscreteGPU   bool         `json:"has_discrete_gpu"`
	DiscreteGPUModel string       `json:"discrete_gpu_model"`
	OnboardGPUModel  string       `json:"onboard_gpu_model"`
	GPUMemoryGB      int          `json:"gpu_memory_gb"`

	// Almacenamiento
	Storage           CatalogValue `json:"storage"`
	StorageCapacityGB int          `json:"storage_capacity_gb"`
	StorageMediaType  string       `json:"storage_media_type"`
	StorageNVMe       bool         `json:"storage_nvme"`
	StorageFormFactor string       `json:"storage_form_factor"`

	// RAM
	Ram           CatalogValue `json:"ram"`
	RamCapacityGB int          `json:"ram_capacity_gb"`
	RamType       string       `json:"ram_type"`
	RamSpeedMHz   int          `json:"ram_speed_mhz"`

	Store    CatalogValue `json:"store"`
	Location CatalogValue `json:"location"`
	Supplier CatalogValue `json:"supplier"`
}

// ResolvedRefs IDs canónicos por dimensión tras ProcessForm (nil = sin selección).
type ResolvedRefs struct {
	BrandID        *int64 `json:"brand_id"`
	ModelID        *int64 `json:"model_id"`
	ProcessorID    *int64 `json:"processor_id"`
	OSID           *int64 `json:"os_id"`
	ScreenID       *int64 `json:"screen_id"`
	GraphicsCardID *int64 `json:"graphics_card_id"`
	StorageID      *int64 `json:"storage_id"`
	RamID          *int64 `json:"ram_id"`
	StoreID        *int64 `json:"store_id"`
	LocationID     *int64 `json:"location_id"`
	SupplierID     *int64 `json:"supplier_id"`
}

// CreateLaptopRequest alta de una laptop: datos comerciales + especificaciones crudas.
type CreateLaptopRequest struct {
	SKU         string          `json:"sku"` // vacío = se genera
	GTIN        string          `json:"gtin"`
	DisplayName string          `json:"display_name"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	IsPublished bool            `json:"is_published"`
	Notes       string          `json:"notes"`
	Specs       LaptopSpecForm  `json:"specs"`
}

// UpdateLaptopRequest actualización parcial; Specs re-resuelve catálogos si viene.
type UpdateLaptopRequest struct {
	DisplayName *string          `json:"display_name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	IsPublished *bool            `json:"is_published,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Specs       *LaptopSpecForm  `json:"specs,omitempty"`
}

// LaptopResponse representación API de una laptop.
type LaptopResponse struct {
	ID          int64           `json:"id"`
	SKU         string          `json:"sku"`
	Slug        string          `json:"slug"`
	GTIN        string          `json:"gtin,omitempty"`
	DisplayName string          `json:"display_name"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Refs        ResolvedRefs    `json:"refs"`
	IsPublished bool            `json:"is_published"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LaptopListResponse listado paginado de laptops.
type LaptopListResponse struct {
	Items []LaptopResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
