package repository

import (
	"context"

	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
)

// StartupRepository define el puerto de persistencia para Startup (DIP).
type StartupRepository interface {
	Create(ctx context.Context, startup *entity.Startup) error
	GetByID(ctx context.Context, id string) (*entity.Startup, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Startup, error)
	Update(ctx context.Context, startup *entity.Startup) error
	List(ctx context.Context) ([]*entity.Startup, error)
	Delete(ctx context.Context, id string) error
}
