package entity

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caresync-hms/internal/domain"
)

// Formatos de fecha usados en los registros.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04"
)

// Kind tipo escalar esperado de un campo.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindDecimal
	KindDate
	KindTimestamp
)

// FieldSpec describe un campo de un tipo de entidad.
type FieldSpec struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Enum        []string // vacío = cualquier valor
	Default     string   // se aplica cuando el campo llega vacío
	AutoNow     bool     // vacío -> fecha/hora actual
	NonNegative bool
	Positive    bool
}

// Schema forma de un tipo de entidad: prefijo de id, campos y criterios de búsqueda.
type Schema struct {
	Type         EntityType
	Prefix       string
	Label        string
	Fields       []FieldSpec
	SearchFields []string // campos para búsqueda de texto libre ("id" incluido)
	Filters      []string // campos categóricos para filtros exactos
}

// Field devuelve la especificación de un campo por nombre.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// FormatID arma el id con prefijo y ordinal con relleno a 3 dígitos (PAT003).
func (s Schema) FormatID(ordinal int) string {
	return s.Prefix + pad3(ordinal)
}

// ParseOrdinal extrae el ordinal de un id con el prefijo del tipo; false si no aplica.
func (s Schema) ParseOrdinal(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, s.Prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 3 {
		s = strings.Repeat("0", 3-len(s)) + s
	}
	return s
}

// Normalize valida y normaliza los campos de entrada de un formulario.
// existing es el registro actual en una actualización (nil en creación): los campos
// automáticos ausentes conservan su valor. "id" y "type" de la entrada se ignoran.
// Devuelve *domain.ValidationError con todos los campos que fallaron.
func (s Schema) Normalize(in map[string]any, now time.Time, existing *Record) (map[string]any, error) {
	verr := domain.NewValidationError()
	out := make(map[string]any, len(s.Fields)+len(in))

	for name, raw := range in {
		if name == "id" || name == "type" {
			continue
		}
		if _, known := s.Field(name); known {
			continue
		}
		v, ok := NormalizeScalar(raw)
		if !ok {
			verr.Add(name, "valor no escalar")
			continue
		}
		out[name] = v
	}

	for _, f := range s.Fields {
		raw, present := in[f.Name]
		if present {
			if _, ok := NormalizeScalar(raw); !ok {
				verr.Add(f.Name, "valor no escalar")
				continue
			}
		}
		text := strings.TrimSpace(FormatScalar(raw))
		if !present || text == "" {
			switch {
			case f.AutoNow && existing != nil && existing.Text(f.Name) != "":
				out[f.Name] = existing.Fields[f.Name]
			case f.Default != "":
				v, _ := f.convert(f.Default)
				out[f.Name] = v
			case f.AutoNow:
				out[f.Name] = f.now(now)
			case f.Required:
				verr.Add(f.Name, "requerido")
			default:
				out[f.Name] = ""
			}
			continue
		}

		v, reason := f.convert(raw)
		if reason != "" {
			verr.Add(f.Name, reason)
			continue
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, FormatScalar(v)) {
			verr.Add(f.Name, "valor no permitido: "+FormatScalar(v))
			continue
		}
		if reason := f.checkSign(v); reason != "" {
			verr.Add(f.Name, reason)
			continue
		}
		out[f.Name] = v
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func (f FieldSpec) now(now time.Time) string {
	if f.Kind == KindTimestamp {
		return now.Format(TimestampLayout)
	}
	return now.Format(DateLayout)
}

// convert lleva el valor al tipo del campo; devuelve el motivo si no es posible.
func (f FieldSpec) convert(raw any) (any, string) {
	v, _ := NormalizeScalar(raw)
	switch f.Kind {
	case KindInt:
		switch n := v.(type) {
		case int:
			return n, ""
		case decimal.Decimal:
			if n.IsInteger() {
				return int(n.IntPart()), ""
			}
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return i, ""
			}
		}
		return nil, "debe ser un número entero"
	case KindDecimal:
		switch n := v.(type) {
		case int:
			return decimal.NewFromInt(int64(n)), ""
		case decimal.Decimal:
			return n, ""
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
				return d, ""
			}
		}
		return nil, "debe ser un número"
	case KindDate:
		t, err := time.Parse(DateLayout, strings.TrimSpace(FormatScalar(v)))
		if err != nil {
			return nil, "fecha inválida (AAAA-MM-DD)"
		}
		return t.Format(DateLayout), ""
	case KindTimestamp:
		text := strings.TrimSpace(FormatScalar(v))
		for _, layout := range []string{TimestampLayout, time.RFC3339, DateLayout} {
			if t, err := time.Parse(layout, text); err == nil {
				return t.Format(TimestampLayout), ""
			}
		}
		return nil, "fecha y hora inválidas (AAAA-MM-DD HH:MM)"
	default:
		return strings.TrimSpace(FormatScalar(v)), ""
	}
}

func (f FieldSpec) checkSign(v any) string {
	var d decimal.Decimal
	switch n := v.(type) {
	case int:
		d = decimal.NewFromInt(int64(n))
	case decimal.Decimal:
		d = n
	default:
		return ""
	}
	if f.Positive && !d.IsPositive() {
		return "debe ser mayor que cero"
	}
	if f.NonNegative && d.IsNegative() {
		return "no puede ser negativo"
	}
	return ""
}
