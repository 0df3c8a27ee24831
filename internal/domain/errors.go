package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrPartnerNotFound       = errors.New("partner no encontrado")
	ErrStartupNotFound       = errors.New("startup no encontrada")
	ErrCollaborationNotFound = errors.New("colaboración no encontrada")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")

	// ErrDuplicateActiveCollaboration ya existe una colaboración activa para el par (startup, partner).
	ErrDuplicateActiveCollaboration = errors.New("ya existe una colaboración activa con este partner")
	// ErrInvalidTransition el cambio de estado solicitado no está permitido desde el estado actual.
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrDuplicateReview   = errors.New("la colaboración ya tiene una reseña")
	// ErrHasDependents el recurso aún es referenciado por otros registros y no puede eliminarse.
	ErrHasDependents = errors.New("el recurso tiene registros dependientes")
)
