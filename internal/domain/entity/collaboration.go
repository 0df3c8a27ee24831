package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollaborationStatus estado del ciclo de vida de una colaboración.
type CollaborationStatus string

const (
	StatusRequested     CollaborationStatus = "REQUESTED"
	StatusReviewing     CollaborationStatus = "REVIEWING"
	StatusInProgress    CollaborationStatus = "IN_PROGRESS"
	StatusCompleted     CollaborationStatus = "COMPLETED"
	StatusCancelled     CollaborationStatus = "CANCELLED"
	StatusSelfActivated CollaborationStatus = "SELF_ACTIVATED"
)

// AllStatuses en orden de presentación.
var AllStatuses = []CollaborationStatus{
	StatusRequested, StatusReviewing, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusSelfActivated,
}

// ActiveStatuses estados que bloquean una nueva solicitud para el mismo par (startup, partner).
var ActiveStatuses = []CollaborationStatus{
	StatusRequested, StatusReviewing, StatusInProgress, StatusSelfActivated,
}

// Valid informa si el estado es conocido.
func (s CollaborationStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsActive informa si el estado cuenta como colaboración en curso.
func (s CollaborationStatus) IsActive() bool {
	for _, st := range ActiveStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsTerminal informa si el estado no tiene transiciones de salida.
// SELF_ACTIVATED es terminal: la activación de un beneficio self-service es de un solo paso.
func (s CollaborationStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusSelfActivated:
		return true
	}
	return false
}

// IsFulfilled informa si el estado cuenta como beneficio entregado (reportes y reseñas).
func (s CollaborationStatus) IsFulfilled() bool {
	return s == StatusCompleted || s == StatusSelfActivated
}

// Collaboration vínculo entre una startup y un partner; raíz del agregado.
type Collaboration struct {
	ID              string
	StartupID       string
	PartnerID       string
	Title           string
	Status          CollaborationStatus
	StartDate       *time.Time
	EndDate         *time.Time
	ActualSaving    *decimal.Decimal
	RejectionReason *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ParseStatus valida un estado recibido como texto (ej. query ?status=).
func ParseStatus(s string) (CollaborationStatus, bool) {
	st := CollaborationStatus(s)
	return st, st.Valid()
}
