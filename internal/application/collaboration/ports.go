package collaboration

import (
	"context"

	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repositorio de
// colaboraciones atado a esa tx. Verificación de duplicado e inserción van en la misma tx.
type TxRunner interface {
	RunCollaboration(ctx context.Context, fn func(collabRepo repository.CollaborationRepository) error) error
}
