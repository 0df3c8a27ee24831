package repository

import (
	"context"

	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
)

// ReportRepository consulta de solo lectura para el reporte de impacto.
// Devuelve las colaboraciones del período con sus relaciones ya resueltas;
// una relación inexistente llega como referencia nil, nunca como literal de relleno.
type ReportRepository interface {
	ListReportRows(ctx context.Context, period impact.Period) ([]impact.Row, error)
}
