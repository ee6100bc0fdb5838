package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CatalogValue es un identificador crudo de catálogo tal como llega del
// formulario o del proveedor: un ID numérico existente o texto libre a resolver.
// En JSON acepta ambas formas: 12 (ID) o "Hewlett-Packard" (texto).
type CatalogValue struct {
	ID   int64
	Text string
}

// CatalogID construye un valor a partir de un ID ya conocido.
func CatalogID(id int64) CatalogValue { return CatalogValue{ID: id} }

// CatalogText construye un valor de texto libre.
func CatalogText(s string) CatalogValue { return CatalogValue{Text: s} }

// IsZero reporta si no hay ni ID ni texto.
func (v CatalogValue) IsZero() bool { return v.ID == 0 && v.Text == "" }

// UnmarshalJSON acepta número (ID existente), string (texto libre) o null.
func (v *CatalogValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*v = CatalogValue{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = CatalogValue{Text: s}
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	*v = CatalogValue{ID: id}
	return nil
}

// MarshalJSON emite el ID si existe, el texto si no, o null.
func (v CatalogValue) MarshalJSON() ([]byte, error) {
	if v.ID > 0 {
		return []byte(strconv.FormatInt(v.ID, 10)), nil
	}
	if strings.TrimSpace(v.Text) != "" {
		return json.Marshal(v.Text)
	}
	return []byte("null"), nil
}
