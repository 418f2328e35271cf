package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidArgument = errors.New("argumento requerido nulo")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrUnbalancedEntry = errors.New("comprobante descuadrado: débitos y créditos no coinciden")
	ErrPeriodClosed    = errors.New("el periodo contable está cerrado")
)
