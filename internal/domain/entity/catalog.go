package entity

import "time"

// Kind identifica cada dimensión de catálogo. El valor coincide con la
// columna `kind` en la tabla catalog_items y con el segmento de ruta de la API.
type Kind string

// Los 11 tipos de catálogo del inventario de portátiles.
const (
	KindBrand           Kind = "brand"
	KindModel           Kind = "model"
	KindProcessor       Kind = "processor"
	KindOperatingSystem Kind = "operating_system"
	KindScreen          Kind = "screen"
	KindGraphicsCard    Kind = "graphics_card"
	KindStorage         Kind = "storage"
	KindRam             Kind = "ram"
	KindStore           Kind = "store"
	KindLocation        Kind = "location"
	KindSupplier        Kind = "supplier"
)

// AllKinds en el orden de resolución de ProcessForm (las parejas con scope
// van después de su padre: Model tras Brand, Location tras Store).
var AllKinds = []Kind{
	KindBrand, KindModel, KindProcessor, KindOperatingSystem, KindScreen,
	KindGraphicsCard, KindStorage, KindRam, KindStore, KindLocation, KindSupplier,
}

// parentOf indica el kind padre de los kinds con scope.
var parentOf = map[Kind]Kind{
	KindModel:    KindBrand, // nombre de modelo único por marca
	KindLocation: KindStore, // nombre de ubicación único por tienda
}

// Parent devuelve el kind padre y true si este kind tiene scope.
func (k Kind) Parent() (Kind, bool) {
	p, ok := parentOf[k]
	return p, ok
}

// Valid reporta si k es uno de los kinds conocidos.
func (k Kind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Attributes campos técnicos por kind, persistidos como JSONB
// (mismo patrón que Product.Attributes en inventarios multi-atributo).
// Claves según el kind: screen usa diagonal_inches, resolution, hd_type,
// panel_type, refresh_rate, touchscreen; storage usa capacity_gb, media_type,
// nvme, form_factor; etc.
type Attributes map[string]any

// Present reporta si un valor de atributo cuenta como "suministrado":
// strings no vacíos, números distintos de cero y booleanos true.
// Los valores ausentes nunca pisan datos existentes (regla fill-in/override).
func Present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

// Merge aplica los atributos entrantes sobre los actuales: cada clave con valor
// presente y distinto del actual se sobreescribe. Nunca borra claves.
// Devuelve true si algo cambió.
func (a Attributes) Merge(incoming Attributes) bool {
	changed := false
	for key, val := range incoming {
		if !Present(val) {
			continue
		}
		if cur, ok := a[key]; ok && equalAttr(cur, val) {
			continue
		}
		a[key] = val
		changed = true
	}
	return changed
}

// equalAttr compara valores de atributo tolerando la pérdida de tipo del JSON
// (los números vuelven de JSONB como float64).
func equalAttr(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// Bool lee un atributo booleano; ausente o de otro tipo devuelve false.
func (a Attributes) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// String lee un atributo string; ausente o de otro tipo devuelve "".
func (a Attributes) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// CatalogItem es una entrada canónica y deduplicada de catálogo.
// El nombre es único por kind (y por padre cuando hay scope),
// case-insensitive; la unicidad real la garantiza el índice único en DB.
type CatalogItem struct {
	ID        int64
	Kind      Kind
	ParentID  *int64 // brand para model, store para location; nil en el resto
	Name      string
	IsActive  bool
	Attrs     Attributes
	CreatedAt time.Time
	UpdatedAt time.Time
}
