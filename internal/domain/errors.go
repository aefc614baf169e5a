package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidationFailed   = errors.New("validación fallida")
	ErrDuplicateEmail     = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("email o contraseña inválidos")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// FieldError describe un campo que no pasó la validación.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError agrupa todos los campos inválidos de un formulario.
// errors.Is(err, ErrValidationFailed) es verdadero para cualquier *ValidationError.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye el error con los campos indicados.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return ErrValidationFailed.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// FieldNames devuelve los nombres de los campos inválidos en orden.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

// Add agrega un campo inválido.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil devuelve nil si no hay campos inválidos (evita el nil tipado en interfaces).
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
