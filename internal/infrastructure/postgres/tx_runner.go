package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Alianzas-api/internal/application/collaboration"
	"github.com/jhoicas/Alianzas-api/internal/application/usecase"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

var (
	_ collaboration.TxRunner = (*TxRunner)(nil)
	_ usecase.StartupTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCollaboration inicia una transacción, ejecuta fn con el repo de colaboraciones atado a la tx
// y hace Commit o Rollback.
func (r *TxRunner) RunCollaboration(ctx context.Context, fn func(collabRepo repository.CollaborationRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCollaborationRepository(tx))
	})
}

// RunStartup transacción con los repos de startups y usuarios (alta de startup con cuenta).
func (r *TxRunner) RunStartup(ctx context.Context, fn func(startupRepo repository.StartupRepository, userRepo repository.UserRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStartupRepository(tx), NewUserRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
