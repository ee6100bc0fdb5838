package dto

import (
	"time"

	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

// CatalogItemResponse representación API de una entrada de catálogo.
type CatalogItemResponse struct {
	ID        int64             `json:"id"`
	Kind      string            `json:"kind"`
	ParentID  *int64            `json:"parent_id,omitempty"`
	Name      string            `json:"name"`
	IsActive  bool              `json:"is_active"`
	Attrs     entity.Attributes `json:"attrs,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CatalogListResponse listado paginado de un kind.
type CatalogListResponse struct {
	Items []CatalogItemResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CatalogStatsResponse conteo de entradas activas por kind.
type CatalogStatsResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// MergeRequest fusiona dos entradas del mismo kind: el source se desactiva y
// sus referencias en laptops se repuntan al target.
type MergeRequest struct {
	SourceID int64 `json:"source_id"`
	TargetID int64 `json:"target_id"`
	// Repoint controla si se repuntan las laptops (default true).
	Repoint *bool `json:"repoint,omitempty"`
}

// MergeResponse resultado de una fusión.
type MergeResponse struct {
	UpdatedLaptops int64 `json:"updated_laptops"`
}
