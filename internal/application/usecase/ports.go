package usecase

import (
	"context"

	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

// StartupTxRunner ejecuta fn en una transacción con los repositorios de startups y usuarios,
// para crear una startup junto con su cuenta vinculada de forma atómica.
type StartupTxRunner interface {
	RunStartup(ctx context.Context, fn func(startupRepo repository.StartupRepository, userRepo repository.UserRepository) error) error
}
