package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// EntityType etiqueta de colección (patient, user, inventoryItem, ...).
type EntityType string

// Record registro genérico: etiqueta de tipo + id único + campos escalares.
// Los valores de Fields son string, int, bool o decimal.Decimal.
type Record struct {
	ID     string
	Type   EntityType
	Fields map[string]any
}

// Get devuelve el valor crudo del campo. "id" resuelve al ID del registro.
func (r Record) Get(name string) (any, bool) {
	if name == "id" {
		return r.ID, true
	}
	v, ok := r.Fields[name]
	return v, ok
}

// Text representación textual del campo (búsqueda, tablas, PDF). Ausente = "".
func (r Record) Text(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return FormatScalar(v)
}

// Str alias de Text para campos de texto.
func (r Record) Str(name string) string { return r.Text(name) }

// Int devuelve el campo como entero; false si está vacío o no es numérico.
func (r Record) Int(name string) (int, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case decimal.Decimal:
		if n.IsInteger() {
			return int(n.IntPart()), true
		}
	case string:
		i, err := strconv.Atoi(n)
		if err == nil {
			return i, true
		}
	}
	return 0, false
}

// Decimal devuelve el campo como decimal; false si está vacío o no es numérico.
func (r Record) Decimal(name string) (decimal.Decimal, bool) {
	v, ok := r.Get(name)
	if !ok {
		return decimal.Zero, false
	}
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		d, err := decimal.NewFromString(n)
		if err == nil {
			return d, true
		}
	}
	return decimal.Zero, false
}

// Clone copia profunda (los valores escalares son inmutables).
func (r Record) Clone() Record {
	fields := make(map[string]any, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return Record{ID: r.ID, Type: r.Type, Fields: fields}
}

// FormatScalar convierte un valor escalar a texto.
func FormatScalar(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	case decimal.Decimal:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// NormalizeScalar reduce un valor de entrada a string, int, bool o decimal.Decimal.
// Devuelve false para valores no escalares (mapas, slices, structs, punteros).
func NormalizeScalar(v any) (any, bool) {
	switch n := v.(type) {
	case nil:
		return "", true
	case string, bool:
		return n, true
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case float32:
		return normalizeFloat(float64(n))
	case float64:
		return normalizeFloat(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil, false
		}
		return d, true
	case decimal.Decimal:
		return n, true
	default:
		return nil, false
	}
}

func normalizeFloat(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f), true
	}
	return decimal.NewFromFloat(f), true
}
