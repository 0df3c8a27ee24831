// Package lifecycle contiene la máquina de estados de las colaboraciones startup↔partner.
// Es el único punto que decide qué cambios de estado son legales y qué campos
// acompañan a cada transición (fechas, ahorro real, motivo de rechazo).
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
)

// Command acción administrativa sobre una colaboración existente.
type Command string

const (
	CommandReview   Command = "review"   // REQUESTED → REVIEWING
	CommandApprove  Command = "approve"  // REQUESTED|REVIEWING → IN_PROGRESS
	CommandReject   Command = "reject"   // REQUESTED|REVIEWING → CANCELLED
	CommandComplete Command = "complete" // IN_PROGRESS → COMPLETED
)

// transitions tabla from → command → to. Los estados terminales no aparecen como origen.
var transitions = map[entity.CollaborationStatus]map[Command]entity.CollaborationStatus{
	entity.StatusRequested: {
		CommandReview:  entity.StatusReviewing,
		CommandApprove: entity.StatusInProgress,
		CommandReject:  entity.StatusCancelled,
	},
	entity.StatusReviewing: {
		CommandApprove: entity.StatusInProgress,
		CommandReject:  entity.StatusCancelled,
	},
	entity.StatusInProgress: {
		CommandComplete: entity.StatusCompleted,
	},
}

// Params datos opcionales que acompañan a una transición.
type Params struct {
	RejectionReason string
	ActualSaving    *decimal.Decimal
}

// InitialState devuelve el estado y la fecha de inicio con que nace una colaboración
// según el tipo de servicio del partner.
func InitialState(serviceType entity.ServiceType, now time.Time) (entity.CollaborationStatus, *time.Time, error) {
	switch serviceType {
	case entity.ServiceTypeSelfService:
		start := now
		return entity.StatusSelfActivated, &start, nil
	case entity.ServiceTypeApprovalRequired:
		return entity.StatusRequested, nil, nil
	default:
		return "", nil, fmt.Errorf("%w: tipo de servicio desconocido %q", domain.ErrInvalidInput, serviceType)
	}
}

// CommandFor traduce el estado destino pedido por la API al comando correspondiente.
func CommandFor(target entity.CollaborationStatus) (Command, error) {
	switch target {
	case entity.StatusReviewing:
		return CommandReview, nil
	case entity.StatusInProgress:
		return CommandApprove, nil
	case entity.StatusCancelled:
		return CommandReject, nil
	case entity.StatusCompleted:
		return CommandComplete, nil
	}
	return "", fmt.Errorf("%w: no se puede pasar a %s", domain.ErrInvalidTransition, target)
}

// Next devuelve el estado resultante de aplicar cmd sobre from, o ErrInvalidTransition.
func Next(from entity.CollaborationStatus, cmd Command) (entity.CollaborationStatus, error) {
	to, ok := transitions[from][cmd]
	if !ok {
		return "", fmt.Errorf("%w: %s no admite %s", domain.ErrInvalidTransition, from, cmd)
	}
	return to, nil
}

// Allowed lista los comandos válidos desde un estado (vacío para estados terminales).
func Allowed(from entity.CollaborationStatus) []Command {
	out := make([]Command, 0, len(transitions[from]))
	for _, cmd := range []Command{CommandReview, CommandApprove, CommandReject, CommandComplete} {
		if _, ok := transitions[from][cmd]; ok {
			out = append(out, cmd)
		}
	}
	return out
}

// Apply valida y aplica la transición sobre c (en memoria). El llamador persiste
// estado y campos asociados en una sola escritura.
// Si devuelve error, c queda sin modificar.
func Apply(c *entity.Collaboration, cmd Command, p Params, now time.Time) error {
	to, err := Next(c.Status, cmd)
	if err != nil {
		return err
	}

	switch cmd {
	case CommandApprove:
		start := now
		c.StartDate = &start
	case CommandReject:
		reason := strings.TrimSpace(p.RejectionReason)
		if reason == "" {
			return fmt.Errorf("%w: rejection_reason es obligatorio para rechazar", domain.ErrInvalidInput)
		}
		c.RejectionReason = &reason
	case CommandComplete:
		if p.ActualSaving != nil {
			if p.ActualSaving.IsNegative() {
				return fmt.Errorf("%w: actual_saving no puede ser negativo", domain.ErrInvalidInput)
			}
			saving := *p.ActualSaving
			c.ActualSaving = &saving
		}
		end := now
		c.EndDate = &end
	}

	c.Status = to
	c.UpdatedAt = now
	return nil
}
