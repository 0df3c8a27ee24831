package repository

import (
	"context"

	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
)

// PartnerFilter filtros opcionales para listar partners.
type PartnerFilter struct {
	CategoryID string
	IsActive   *bool
}

// PartnerRepository define el puerto de persistencia para Partner (DIP).
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	Update(ctx context.Context, partner *entity.Partner) error
	List(ctx context.Context, filter PartnerFilter) ([]*entity.Partner, error)
	// CountByCategory devuelve cuántos partners referencian cada categoría.
	CountByCategory(ctx context.Context) (map[string]int, error)
	Delete(ctx context.Context, id string) error
}
