package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Laptop es el registro de inventario: referencia (sin ownership) a una entrada
// de cada dimensión de catálogo ya resuelta. Fusionar un catálogo repunta estos FKs.
type Laptop struct {
	ID          int64
	SKU         string // único
	Slug        string // único, derivado del display name
	GTIN        string // UPC/EAN, opcional
	DisplayName string
	Price       decimal.Decimal
	Cost        decimal.Decimal

	// FKs de catálogo (nil = sin selección)
	BrandID        *int64
	ModelID        *int64
	ProcessorID    *int64
	OSID           *int64
	ScreenID       *int64
	GraphicsCardID *int64
	StorageID      *int64
	RamID          *int64
	StoreID        *int64
	LocationID     *int64
	SupplierID     *int64

	IsPublished bool
	Notes       string
	CreatedBy   string // UUID del usuario creador
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
