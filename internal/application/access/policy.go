package access

import (
	"fmt"

	"github.com/jhoicas/caresync-hms/internal/application/navigation"
	"github.com/jhoicas/caresync-hms/internal/domain"
)

// RoleAccessPolicy tabla rol → páginas permitidas.
// Un rol ausente de la tabla puede acceder a todas las páginas; login y dashboard siempre se permiten.
type RoleAccessPolicy struct {
	table map[string]map[navigation.Page]struct{}
}

// Permissive política sin restricciones.
func Permissive() *RoleAccessPolicy {
	return &RoleAccessPolicy{table: map[string]map[navigation.Page]struct{}{}}
}

// NewRoleAccessPolicy construye la política desde las restricciones de configuración
// (rol → lista de páginas). Una página desconocida devuelve error.
func NewRoleAccessPolicy(restrictions map[string][]string) (*RoleAccessPolicy, error) {
	p := Permissive()
	for role, list := range restrictions {
		set := make(map[navigation.Page]struct{}, len(list))
		for _, name := range list {
			page := navigation.Page(name)
			if !navigation.IsKnown(page) {
				return nil, fmt.Errorf("access: página %q del rol %q: %w", name, role, domain.ErrNotFound)
			}
			set[page] = struct{}{}
		}
		p.table[role] = set
	}
	return p, nil
}

// IsPermitted informa si el rol puede entrar a la página.
func (p *RoleAccessPolicy) IsPermitted(role string, page navigation.Page) bool {
	if page == navigation.Login || page == navigation.Dashboard {
		return true
	}
	set, restricted := p.table[role]
	if !restricted {
		return true
	}
	_, ok := set[page]
	return ok
}

// PermittedPages páginas del menú visibles para el rol, en orden de menú.
func (p *RoleAccessPolicy) PermittedPages(role string) []navigation.PageInfo {
	var out []navigation.PageInfo
	for _, info := range navigation.Pages() {
		if p.IsPermitted(role, info.Page) {
			out = append(out, info)
		}
	}
	return out
}
