package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrReadOnlyField      = errors.New("campo de solo lectura")
	ErrRangesExhausted    = errors.New("no quedan faixas de frecuencia libres")
	ErrSignInInProgress   = errors.New("inicio de sesión en curso")
	ErrNotSupported       = errors.New("operación no soportada por el backend")
)
