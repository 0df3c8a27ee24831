package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

var _ repository.StartupRepository = (*StartupRepo)(nil)

// StartupRepo implementación de StartupRepository sobre PostgreSQL.
type StartupRepo struct {
	q Querier
}

// NewStartupRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStartupRepository(q Querier) *StartupRepo {
	return &StartupRepo{q: q}
}

const startupColumns = `id, name, description, category, contact_name, contact_email, website, user_id, created_at, updated_at`

func (r *StartupRepo) Create(ctx context.Context, s *entity.Startup) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO startups (`+startupColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.Description, s.Category, s.ContactName, s.ContactEmail, s.Website, s.UserID,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la cuenta ya está vinculada a otra startup", domain.ErrConflict)
		}
		return fmt.Errorf("insert startup: %w", err)
	}
	return nil
}

func (r *StartupRepo) GetByID(ctx context.Context, id string) (*entity.Startup, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+startupColumns+` FROM startups WHERE id = $1`, id)
}

func (r *StartupRepo) GetByUserID(ctx context.Context, userID string) (*entity.Startup, error) {
	if !validID(userID) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+startupColumns+` FROM startups WHERE user_id = $1`, userID)
}

func (r *StartupRepo) getOne(ctx context.Context, query string, arg string) (*entity.Startup, error) {
	s, err := scanStartup(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get startup: %w", err)
	}
	return s, nil
}

func (r *StartupRepo) Update(ctx context.Context, s *entity.Startup) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE startups SET
			name = $2, description = $3, category = $4, contact_name = $5,
			contact_email = $6, website = $7, user_id = $8, updated_at = $9
		WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Category, s.ContactName, s.ContactEmail, s.Website, s.UserID, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la cuenta ya está vinculada a otra startup", domain.ErrConflict)
		}
		return fmt.Errorf("update startup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStartupNotFound
	}
	return nil
}

func (r *StartupRepo) List(ctx context.Context) ([]*entity.Startup, error) {
	rows, err := r.q.Query(ctx, `SELECT `+startupColumns+` FROM startups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	defer rows.Close()
	list := []*entity.Startup{}
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan startup: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *StartupRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM startups WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("delete startup: %w", err)
	}
	return nil
}

func scanStartup(row pgxScanner) (*entity.Startup, error) {
	var s entity.Startup
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.ContactName, &s.ContactEmail,
		&s.Website, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
