package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrRemoteUnavailable = errors.New("planilla remota no disponible")
	ErrEmptyPayload      = errors.New("planilla remota sin datos")
)
