package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consulta de solo lectura para el reporte de impacto.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador del reporte.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListReportRows devuelve las colaboraciones del período con startup, partner, categoría y
// reseña resueltas mediante LEFT JOIN: una relación ausente llega como NULL y se mapea a nil.
func (r *ReportRepo) ListReportRows(ctx context.Context, period impact.Period) ([]impact.Row, error) {
	const query = `
	SELECT
	    c.id, c.startup_id, c.partner_id, c.status, c.actual_saving, c.created_at,
	    s.id, s.name,
	    p.id, p.name, p.service_type, p.estimated_saving,
	    cat.id, cat.name,
	    rv.rating
	FROM collaborations c
	LEFT JOIN startups   s   ON s.id   = c.startup_id
	LEFT JOIN partners   p   ON p.id   = c.partner_id
	LEFT JOIN categories cat ON cat.id = p.category_id
	LEFT JOIN reviews    rv  ON rv.collaboration_id = c.id
	WHERE ($1::timestamptz IS NULL OR c.created_at >= $1)
	  AND ($2::timestamptz IS NULL OR c.created_at <= $2)
	ORDER BY c.created_at, c.id`

	rows, err := r.q.Query(ctx, query, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("report.ListReportRows: %w", err)
	}
	defer rows.Close()

	out := []impact.Row{}
	for rows.Next() {
		var (
			row                      impact.Row
			status                   string
			startupID, startupName   *string
			partnerID, partnerName   *string
			serviceType              *string
			estimated                *decimal.Decimal
			categoryID, categoryName *string
			rating                   *int16
			createdAt                time.Time
		)
		if err := rows.Scan(
			&row.CollaborationID, &row.StartupID, &row.PartnerID, &status, &row.ActualSaving, &createdAt,
			&startupID, &startupName,
			&partnerID, &partnerName, &serviceType, &estimated,
			&categoryID, &categoryName,
			&rating,
		); err != nil {
			return nil, fmt.Errorf("report.ListReportRows scan: %w", err)
		}
		row.Status = entity.CollaborationStatus(status)
		row.CreatedAt = createdAt
		if startupID != nil {
			row.Startup = &impact.StartupRef{ID: *startupID, Name: deref(startupName)}
		}
		if partnerID != nil {
			row.Partner = &impact.PartnerRef{
				ID:              *partnerID,
				Name:            deref(partnerName),
				ServiceType:     entity.ServiceType(deref(serviceType)),
				EstimatedSaving: estimated,
			}
		}
		if categoryID != nil {
			row.Category = &impact.CategoryRef{ID: *categoryID, Name: deref(categoryName)}
		}
		if rating != nil {
			v := int(*rating)
			row.Rating = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
