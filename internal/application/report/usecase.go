// Package report genera el reporte de impacto del programa de partners
// y su exportación a hoja de cálculo o PDF.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
	"github.com/jhoicas/Alianzas-api/internal/domain/repository"
)

const (
	dateLayout    = "2006-01-02"
	defaultFormat = "xlsx"
)

// File archivo exportado listo para enviar.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UseCase reporte de impacto: consulta de solo lectura + agregación en memoria.
type UseCase struct {
	repo      repository.ReportRepository
	exporters map[string]Exporter
	loc       *time.Location
}

// NewUseCase construye el caso de uso con los exportadores disponibles.
func NewUseCase(repo repository.ReportRepository, exporters ...Exporter) *UseCase {
	m := make(map[string]Exporter, len(exporters))
	for _, e := range exporters {
		m[e.Format()] = e
	}
	return &UseCase{repo: repo, exporters: m, loc: time.Local}
}

// WithLocation fija la zona con que se interpretan las fechas YYYY-MM-DD.
func (uc *UseCase) WithLocation(loc *time.Location) *UseCase {
	uc.loc = loc
	return uc
}

// ParsePeriod interpreta startDate/endDate (YYYY-MM-DD o RFC3339). Vacío = sin límite.
// Un endDate de solo fecha incluye el día completo.
func (uc *UseCase) ParsePeriod(start, end string) (impact.Period, error) {
	var p impact.Period
	if s := strings.TrimSpace(start); s != "" {
		t, _, err := uc.parseDate(s)
		if err != nil {
			return p, fmt.Errorf("%w: startDate %q: use YYYY-MM-DD", domain.ErrInvalidInput, s)
		}
		p.Start = &t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, dateOnly, err := uc.parseDate(s)
		if err != nil {
			return p, fmt.Errorf("%w: endDate %q: use YYYY-MM-DD", domain.ErrInvalidInput, s)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		p.End = &t
	}
	if p.Start != nil && p.End != nil && p.Start.After(*p.End) {
		return p, fmt.Errorf("%w: startDate posterior a endDate", domain.ErrInvalidInput)
	}
	return p, nil
}

func (uc *UseCase) parseDate(s string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, s, uc.loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}

// Build carga las filas del período y las agrega.
func (uc *UseCase) Build(ctx context.Context, req dto.ReportRequest) (*impact.Report, error) {
	period, err := uc.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.ListReportRows(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("report: cargar filas: %w", err)
	}
	return impact.Aggregate(rows, period), nil
}

// Generate devuelve el reporte en formato JSON.
func (uc *UseCase) Generate(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error) {
	rep, err := uc.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return ToResponse(rep), nil
}

// Export renderiza el reporte con el exportador pedido (xlsx por defecto).
// El nombre del archivo es impact_report_YYYY-MM-DD.<ext> con la fecha de generación.
func (uc *UseCase) Export(ctx context.Context, req dto.ReportRequest) (*File, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = defaultFormat
	}
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato no soportado %q", domain.ErrInvalidInput, req.Format)
	}
	rep, err := uc.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	now := time.Now().In(uc.loc)
	data, err := exp.Render(rep, now)
	if err != nil {
		return nil, fmt.Errorf("report: exportar %s: %w", format, err)
	}
	return &File{
		Filename:    fmt.Sprintf("impact_report_%s.%s", now.Format(dateLayout), format),
		ContentType: exp.ContentType(),
		Data:        data,
	}, nil
}

// ToResponse convierte el reporte de dominio al DTO de la API.
func ToResponse(rep *impact.Report) *dto.ReportResponse {
	out := &dto.ReportResponse{
		Period: dto.ReportPeriodDTO{
			StartDate: rep.Period.Start,
			EndDate:   rep.Period.End,
		},
		Summary: dto.ReportSummaryDTO{
			TotalCollaborations:     rep.Summary.TotalCollaborations,
			CompletedCollaborations: rep.Summary.CompletedCollaborations,
			TotalEstimatedSaving:    rep.Summary.TotalEstimatedSaving,
			TotalActualSaving:       rep.Summary.TotalActualSaving,
			AvgRating:               rep.Summary.AvgRating,
			ReviewCount:             rep.Summary.ReviewCount,
		},
		ServiceTypeBreakdown: dto.ServiceTypeSplitDTO{
			SelfService:      rep.ServiceTypes.SelfService,
			ApprovalRequired: rep.ServiceTypes.ApprovalRequired,
		},
		CategoryBreakdown: make([]dto.CategoryBreakdownDTO, 0, len(rep.CategoryBreakdown)),
		StartupBreakdown:  make([]dto.StartupBreakdownDTO, 0, len(rep.StartupBreakdown)),
		Collaborations:    make([]dto.ReportRowDTO, 0, len(rep.Rows)),
	}
	for _, c := range rep.CategoryBreakdown {
		out.CategoryBreakdown = append(out.CategoryBreakdown, dto.CategoryBreakdownDTO{
			CategoryID: c.CategoryID, Name: c.Name, Count: c.Count,
		})
	}
	for _, s := range rep.StartupBreakdown {
		out.StartupBreakdown = append(out.StartupBreakdown, dto.StartupBreakdownDTO{
			StartupID: s.StartupID, Name: s.Name, Known: s.Known, Count: s.Count, Saving: s.Saving,
		})
	}
	for _, r := range rep.Rows {
		row := dto.ReportRowDTO{
			CollaborationID: r.CollaborationID,
			Status:          string(r.Status),
			EstimatedSaving: r.EstimatedSaving,
			ActualSaving:    r.ActualSaving,
			Rating:          r.Rating,
			CreatedAt:       r.CreatedAt,
		}
		if r.Startup != nil {
			row.StartupName = &r.Startup.Name
		}
		if r.Partner != nil {
			row.PartnerName = &r.Partner.Name
		}
		if r.Category != nil {
			row.CategoryName = &r.Category.Name
		}
		out.Collaborations = append(out.Collaborations, row)
	}
	return out
}
