package repository

import (
	"context"

	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
)

// CollaborationFilter filtros opcionales para listar colaboraciones (vacío = sin filtro).
type CollaborationFilter struct {
	StartupID string
	PartnerID string
	Status    entity.CollaborationStatus
	Limit     int // 0 = sin límite
}

// CollaborationRepository define el puerto de persistencia para Collaboration (DIP).
type CollaborationRepository interface {
	// Create inserta la colaboración. Devuelve domain.ErrDuplicateActiveCollaboration si
	// el almacén ya tiene una activa para el mismo par (startup, partner).
	Create(ctx context.Context, c *entity.Collaboration) error
	GetByID(ctx context.Context, id string) (*entity.Collaboration, error)
	// Update escribe estado y campos asociados en una sola operación, solo si el estado
	// persistido sigue siendo expected. Si no, devuelve domain.ErrConflict.
	Update(ctx context.Context, c *entity.Collaboration, expected entity.CollaborationStatus) error
	List(ctx context.Context, filter CollaborationFilter) ([]*entity.Collaboration, error)
	// HasActive informa si existe una colaboración en estado activo para el par.
	HasActive(ctx context.Context, startupID, partnerID string) (bool, error)
	CountByPartner(ctx context.Context, partnerID string) (int, error)
	CountByStartup(ctx context.Context, startupID string) (int, error)
	Delete(ctx context.Context, id string) error
}
