package dto

// SearchRequest búsqueda de una página de registros: término libre + filtros exactos.
type SearchRequest struct {
	Term    string            `json:"term"`
	Filters map[string]string `json:"filters,omitempty"`
}

// ErrorResponse error presentable al usuario.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}
