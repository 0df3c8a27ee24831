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

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementación de PartnerRepository sobre PostgreSQL.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

const partnerColumns = `id, name, description, category_id, service_type, benefits, usage_guide,
	self_service_info, estimated_saving, contact_name, contact_email, website, is_active,
	created_at, updated_at`

func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO partners (`+partnerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.Name, p.Description, p.CategoryID, string(p.ServiceType), p.Benefits, p.UsageGuide,
		p.SelfServiceInfo, p.EstimatedSaving, p.ContactName, p.ContactEmail, p.Website, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanPartner(r.q.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE partners SET
			name = $2, description = $3, category_id = $4, service_type = $5, benefits = $6,
			usage_guide = $7, self_service_info = $8, estimated_saving = $9, contact_name = $10,
			contact_email = $11, website = $12, is_active = $13, updated_at = $14
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.CategoryID, string(p.ServiceType), p.Benefits,
		p.UsageGuide, p.SelfServiceInfo, p.EstimatedSaving, p.ContactName,
		p.ContactEmail, p.Website, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPartnerNotFound
	}
	return nil
}

func (r *PartnerRepo) List(ctx context.Context, f repository.PartnerFilter) ([]*entity.Partner, error) {
	var (
		where []string
		args  []any
	)
	if f.CategoryID != "" {
		if !validID(f.CategoryID) {
			return []*entity.Partner{}, nil
		}
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	query := `SELECT ` + partnerColumns + ` FROM partners`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	list := []*entity.Partner{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartnerRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT category_id::text, COUNT(*) FROM partners
		WHERE category_id IS NOT NULL
		GROUP BY category_id`)
	if err != nil {
		return nil, fmt.Errorf("count partners by category: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan partner count: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}

// Delete elimina el partner. La FK de collaborations (RESTRICT) impide borrar uno referenciado.
func (r *PartnerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM partners WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
		return fmt.Errorf("delete partner: %w", err)
	}
	return nil
}

func scanPartner(row pgxScanner) (*entity.Partner, error) {
	var p entity.Partner
	var serviceType string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &serviceType, &p.Benefits, &p.UsageGuide,
		&p.SelfServiceInfo, &p.EstimatedSaving, &p.ContactName, &p.ContactEmail, &p.Website, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ServiceType = entity.ServiceType(serviceType)
	return &p, nil
}
