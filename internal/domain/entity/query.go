package entity

import (
	"strings"

	"golang.org/x/text/cases"
)

// Predicate criterio de selección para Search.
type Predicate func(Record) bool

// Query búsqueda de texto libre combinada (AND) con filtros categóricos exactos.
// Término vacío y filtros con valor vacío se ignoran.
type Query struct {
	Term    string
	Filters map[string]string
}

// Predicate compila la consulta contra los campos buscables del esquema.
func (q Query) Predicate(s Schema) Predicate {
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(q.Term))
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		if v != "" {
			filters[k] = v
		}
	}

	return func(r Record) bool {
		for field, want := range filters {
			if r.Text(field) != want {
				return false
			}
		}
		if term == "" {
			return true
		}
		for _, field := range s.SearchFields {
			if strings.Contains(fold.String(r.Text(field)), term) {
				return true
			}
		}
		return false
	}
}

// All predicado que acepta todo.
func All(Record) bool { return true }

// IsLowStock un ítem de inventario está bajo stock si quantity < minStock (derivado, no se guarda).
func IsLowStock(r Record) bool {
	if r.Type != TypeInventoryItem {
		return false
	}
	qty, ok1 := r.Int("quantity")
	minStock, ok2 := r.Int("minStock")
	return ok1 && ok2 && qty < minStock
}
