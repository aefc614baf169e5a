package console

import (
	"errors"

	"github.com/jhoicas/caresync-hms/internal/application/dto"
	"github.com/jhoicas/caresync-hms/internal/domain"
)

// Describe traduce un error de un comando a un mensaje presentable.
func Describe(err error) dto.ErrorResponse {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return dto.ErrorResponse{}
	case errors.As(err, &verr):
		return dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error(), Fields: verr.FieldNames()}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return dto.ErrorResponse{Code: "DUPLICATE_EMAIL", Message: "el email ya está registrado"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "email o contraseña inválidos"}
	case errors.Is(err, domain.ErrForbidden):
		return dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado para su rol"}
	case errors.Is(err, domain.ErrNotFound):
		return dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	default:
		return dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}
