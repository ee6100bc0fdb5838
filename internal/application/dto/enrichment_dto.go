package dto

// ProductSpecs es el registro plano por dimensión de catálogo que devuelve el
// proveedor de datos de producto tras normalizar su payload. El resolver solo
// consume esta forma; el formato de red del proveedor vive en infraestructura.
type ProductSpecs struct {
	GTIN  string `json:"gtin"`
	Title string `json:"title"`

	Brand     string `json:"brand"`
	ModelName string `json:"model_name"`

	ProcessorFamily     string `json:"processor_family"`
	ProcessorGeneration string `json:"processor_generation"`
	ProcessorModel      string `json:"processor_model"`
	ProcessorFullName   string `json:"processor_full_name"`
	ProcessorHasNPU     bool   `json:"processor_has_npu"`

	OSName string `json:"os_name"`

	ScreenDiagonalInches float64 `json:"screen_diagonal_inches"`
	ScreenResolution     string  `json:"screen_resolution"`
	ScreenHDType         string  `json:"screen_hd_type"`
	ScreenPanelType      string  `json:"screen_panel_type"`
	ScreenRefreshRate    int     `json:"screen_refresh_rate"`
	ScreenTouchscreen    bool    `json:"screen_touchscreen"`

	GPUBrand         string `json:"gpu_brand"`
	HasDiscreteGPU   bool   `json:"has_discrete_gpu"`
	DiscreteGPUModel string `json:"discrete_gpu_model"`
	OnboardGPUModel  string `json:"onboard_gpu_model"`
	GPUMemoryGB      int    `json:"gpu_memory_gb"`

	StorageCapacityGB int    `json:"storage_capacity_gb"`
	StorageMediaType  string `json:"storage_media_type"`
	StorageNVMe       bool   `json:"storage_nvme"`
	StorageFormFactor string `json:"storage_form_factor"`

	RamCapacityGB int    `json:"ram_capacity_gb"`
	RamType       string `json:"ram_type"`
	RamSpeedMHz   int    `json:"ram_speed_mhz"`
}

// ImportByGTINRequest importa una laptop desde el proveedor de datos.
type ImportByGTINRequest struct {
	GTIN string `json:"gtin"`
	// Datos comerciales que el proveedor no conoce.
	SKU      string       `json:"sku,omitempty"`
	Store    CatalogValue `json:"store"`
	Location CatalogValue `json:"location"`
	Supplier CatalogValue `json:"supplier"`
}
