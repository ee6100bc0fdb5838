// Package catalog contiene las reglas puras de normalización de catálogo:
// síntesis de nombres canónicos para kinds derivados e inferencia de fabricante.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

// namePart es una regla de la tabla de síntesis: el primer atributo presente
// de keys gana y format lo convierte en un fragmento del nombre ("" lo omite).
// La tabla es datos, no código: añadir un kind o atributo es una entrada más.
type namePart struct {
	keys   []string
	format func(v any) string
}

func raw(v any) string { return asString(v) }

// nameRules define, por kind derivado, el orden de prioridad de atributos para
// sintetizar un nombre canónico legible cuando el caller no suministra uno.
var nameRules = map[entity.Kind][]namePart{
	entity.KindScreen: {
		{keys: []string{"diagonal_inches"}, format: func(v any) string { return asString(v) + `"` }},
		{keys: []string{"hd_type", "resolution"}, format: raw},
		{keys: []string{"panel_type"}, format: func(v any) string { return strings.ReplaceAll(asString(v), "-Level", "") }},
		{keys: []string{"refresh_rate"}, format: func(v any) string {
			if n, ok := asInt(v); ok && n > 60 {
				return fmt.Sprintf("%dHz", n)
			}
			return ""
		}},
		{keys: []string{"touchscreen"}, format: func(v any) string {
			if b, _ := v.(bool); b {
				return "Touch"
			}
			return ""
		}},
	},
	entity.KindGraphicsCard: {
		{keys: []string{"brand"}, format: raw},
		{keys: []string{"model", "onboard_model", "discrete_model"}, format: raw},
		{keys: []string{"memory_gb"}, format: func(v any) string { return asString(v) + "GB" }},
	},
	entity.KindStorage: {
		{keys: []string{"capacity_gb"}, format: func(v any) string { return asString(v) + "GB" }},
		{keys: []string{"media_type"}, format: raw},
		{keys: []string{"nvme"}, format: func(v any) string {
			if b, _ := v.(bool); b {
				return "NVMe"
			}
			return ""
		}},
		{keys: []string{"form_factor"}, format: raw},
	},
	entity.KindRam: {
		{keys: []string{"capacity_gb"}, format: func(v any) string { return asString(v) + "GB" }},
		{keys: []string{"ram_type"}, format: raw},
		{keys: []string{"speed_mhz"}, format: func(v any) string { return asString(v) + "MHz" }},
	},
}

// placeholders cuando no hay ningún atributo con el que construir un nombre.
var placeholders = map[entity.Kind]string{
	entity.KindScreen:       "Generic Screen",
	entity.KindGraphicsCard: "Generic GPU",
	entity.KindStorage:      "Generic Storage",
	entity.KindRam:          "Generic RAM",
}

// HasNameRules reporta si el kind sintetiza nombre a partir de atributos.
func HasNameRules(kind entity.Kind) bool {
	_, ok := nameRules[kind]
	return ok
}

// DisplayName sintetiza el nombre canónico de un kind derivado concatenando
// los atributos presentes según la tabla de reglas. Si ningún atributo aporta,
// devuelve el placeholder genérico del kind ("" si el kind no es derivado).
func DisplayName(kind entity.Kind, attrs entity.Attributes) string {
	rules, ok := nameRules[kind]
	if !ok {
		return ""
	}
	var parts []string
	for _, rule := range rules {
		for _, key := range rule.keys {
			v, present := attrs[key]
			if !present || !entity.Present(v) {
				continue
			}
			if s := rule.format(v); s != "" {
				parts = append(parts, s)
			}
			break
		}
	}
	if len(parts) == 0 {
		return placeholders[kind]
	}
	return strings.Join(parts, " ")
}

// resolutionPattern detecta resoluciones tipo "1920x1080" o "1920 x 1080".
var resolutionPattern = regexp.MustCompile(`(\d{3,4})\s*[xX]\s*(\d{3,4})`)

// ExtractResolution extrae y normaliza una resolución embebida en texto libre
// (p. ej. del escáner o del proveedor): "15.6 1920 X 1080" -> "1920x1080".
// Devuelve "" si no hay resolución reconocible.
func ExtractResolution(s string) string {
	m := resolutionPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1] + "x" + m[2]
}

// InferManufacturer deduce el fabricante de un procesador a partir del texto de
// la familia, contra un vocabulario fijo. Devuelve "" si no reconoce ninguno.
func InferManufacturer(family string) string {
	fam := strings.ToLower(strings.TrimSpace(family))
	switch {
	case fam == "":
		return ""
	case strings.Contains(fam, "intel"):
		return "Intel"
	case strings.Contains(fam, "amd"):
		return "AMD"
	case strings.Contains(fam, "apple"),
		strings.HasPrefix(fam, "m1"), strings.HasPrefix(fam, "m2"), strings.HasPrefix(fam, "m3"):
		return "Apple"
	case strings.Contains(fam, "snapdragon"), strings.Contains(fam, "qualcomm"):
		return "Qualcomm"
	}
	return ""
}

// asString formatea un valor de atributo para el nombre visible.
// Los float enteros pierden el ".0" (15.0 -> "15", 15.6 -> "15.6").
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return fmt.Sprintf("%v", v)
}

// asInt intenta leer un valor numérico como entero.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}
