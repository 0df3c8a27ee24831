package repository

import (
	"context"

	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
)

// ReviewFilter filtros opcionales; partner y startup se resuelven a través de la colaboración.
type ReviewFilter struct {
	CollaborationID string
	PartnerID       string
	StartupID       string
}

// ReviewRepository define el puerto de persistencia para Review (DIP).
type ReviewRepository interface {
	// Create devuelve domain.ErrDuplicateReview si la colaboración ya tiene reseña.
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByCollaboration(ctx context.Context, collaborationID string) (*entity.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]*entity.Review, error)
	Delete(ctx context.Context, id string) error
}
