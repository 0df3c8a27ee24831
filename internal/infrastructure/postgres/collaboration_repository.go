package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

var _ repository.CollaborationRepository = (*CollaborationRepo)(nil)

// activePairIndex índice único parcial que garantiza una sola colaboración activa por par.
const activePairIndex = "collaborations_active_pair_uq"

// CollaborationRepo implementación de CollaborationRepository sobre PostgreSQL (usable con pool o tx).
type CollaborationRepo struct {
	q Querier
}

// NewCollaborationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCollaborationRepository(q Querier) *CollaborationRepo {
	return &CollaborationRepo{q: q}
}

const collaborationColumns = `id, startup_id, partner_id, title, status, start_date, end_date,
	actual_saving, rejection_reason, notes, created_at, updated_at`

// Create inserta la colaboración. Dos solicitudes simultáneas para el mismo par pasan ambas
// el HasActive; el índice parcial rechaza la segunda.
func (r *CollaborationRepo) Create(ctx context.Context, c *entity.Collaboration) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO collaborations (`+collaborationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.StartupID, c.PartnerID, c.Title, string(c.Status), c.StartDate, c.EndDate,
		c.ActualSaving, c.RejectionReason, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, activePairIndex) {
			return domain.ErrDuplicateActiveCollaboration
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: startup o partner inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert collaboration: %w", err)
	}
	return nil
}

func (r *CollaborationRepo) GetByID(ctx context.Context, id string) (*entity.Collaboration, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanCollaboration(r.q.QueryRow(ctx, `SELECT `+collaborationColumns+` FROM collaborations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collaboration: %w", err)
	}
	return c, nil
}

// Update escribe estado y campos asociados en un solo UPDATE condicionado al estado esperado.
func (r *CollaborationRepo) Update(ctx context.Context, c *entity.Collaboration, expected entity.CollaborationStatus) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE collaborations SET
			status = $3, start_date = $4, end_date = $5, actual_saving = $6,
			rejection_reason = $7, notes = $8, title = $9, updated_at = $10
		WHERE id = $1 AND status = $2`,
		c.ID, string(expected), string(c.Status), c.StartDate, c.EndDate, c.ActualSaving,
		c.RejectionReason, c.Notes, c.Title, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update collaboration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM collaborations WHERE id = $1)`, c.ID).Scan(&exists); err != nil {
			return fmt.Errorf("update collaboration: %w", err)
		}
		if !exists {
			return domain.ErrCollaborationNotFound
		}
		return fmt.Errorf("%w: la colaboración cambió de estado", domain.ErrConflict)
	}
	return nil
}

func (r *CollaborationRepo) List(ctx context.Context, f repository.CollaborationFilter) ([]*entity.Collaboration, error) {
	var (
		where []string
		args  []any
	)
	for _, cond := range []struct {
		col, val string
		uuid     bool
	}{
		{"startup_id", f.StartupID, true},
		{"partner_id", f.PartnerID, true},
		{"status", string(f.Status), false},
	} {
		if cond.val == "" {
			continue
		}
		if cond.uuid && !validID(cond.val) {
			return []*entity.Collaboration{}, nil
		}
		args = append(args, cond.val)
		where = append(where, fmt.Sprintf("%s = $%d", cond.col, len(args)))
	}
	query := `SELECT ` + collaborationColumns + ` FROM collaborations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collaborations: %w", err)
	}
	defer rows.Close()
	list := []*entity.Collaboration{}
	for rows.Next() {
		c, err := scanCollaboration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collaboration: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CollaborationRepo) HasActive(ctx context.Context, startupID, partnerID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM collaborations
			WHERE startup_id = $1 AND partner_id = $2
			  AND status IN ('REQUESTED', 'REVIEWING', 'IN_PROGRESS', 'SELF_ACTIVATED'))`,
		startupID, partnerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active collaboration: %w", err)
	}
	return exists, nil
}

func (r *CollaborationRepo) CountByPartner(ctx context.Context, partnerID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM collaborations WHERE partner_id = $1`, partnerID)
}

func (r *CollaborationRepo) CountByStartup(ctx context.Context, startupID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM collaborations WHERE startup_id = $1`, startupID)
}

func (r *CollaborationRepo) count(ctx context.Context, query, id string) (int, error) {
	if !validID(id) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count collaborations: %w", err)
	}
	return n, nil
}

// Delete elimina la colaboración; su reseña cae por ON DELETE CASCADE.
func (r *CollaborationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM collaborations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}
	return nil
}

func scanCollaboration(row pgxScanner) (*entity.Collaboration, error) {
	var c entity.Collaboration
	var status string
	err := row.Scan(
		&c.ID, &c.StartupID, &c.PartnerID, &c.Title, &status, &c.StartDate, &c.EndDate,
		&c.ActualSaving, &c.RejectionReason, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = entity.CollaborationStatus(status)
	return &c, nil
}
