package export

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Alianzas-api/internal/application/report"
	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
)

var _ report.Exporter = (*PDFReportExporter)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 230, Green: 236, Blue: 243}
)

// PDFReportExporter genera el reporte de impacto en PDF (A4 horizontal) con Maroto v2.
//
// Layout:
//
//	HEADER: título + período + fecha de generación
//	RESUMEN: totales y reparto por tipo de servicio
//	DESGLOSES: categorías | startups
//	DETALLE: una fila por colaboración
type PDFReportExporter struct{}

// NewPDFReportExporter construye el exportador.
func NewPDFReportExporter() *PDFReportExporter { return &PDFReportExporter{} }

func (e *PDFReportExporter) Format() string      { return "pdf" }
func (e *PDFReportExporter) ContentType() string { return "application/pdf" }

// Render genera el documento y devuelve sus bytes.
func (e *PDFReportExporter) Render(rep *impact.Report, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de impacto", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(pdfHeaderRow(rep, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(pdfSummaryRows(rep)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(pdfBreakdownRows(rep)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(pdfDetailHeaderRow())
	m.AddRows(pdfDetailRows(rep)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func pdfHeaderRow(rep *impact.Report, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE IMPACTO", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+formatPeriod(rep.Period), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedLabel(generatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func pdfSummaryRows(rep *impact.Report) []core.Row {
	s := rep.Summary
	kpi := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Align: align.Center}),
		)
	}
	return []core.Row{
		row.New(16).Add(
			kpi("Colaboraciones", strconv.Itoa(s.TotalCollaborations)),
			kpi("Completadas", strconv.Itoa(s.CompletedCollaborations)),
			kpi("Ahorro estimado", formatAmount(s.TotalEstimatedSaving)),
			kpi("Ahorro real", formatAmount(s.TotalActualSaving)),
			kpi("Valoración", fmt.Sprintf("%.2f (%d)", s.AvgRating, s.ReviewCount)),
			kpi("Self-service / Aprobación", fmt.Sprintf("%d / %d",
				rep.ServiceTypes.SelfService, rep.ServiceTypes.ApprovalRequired)),
		),
	}
}

// pdfBreakdownRows categorías a la izquierda y startups a la derecha, fila a fila.
func pdfBreakdownRows(rep *impact.Report) []core.Row {
	title := func(s string) core.Col {
		return col.New(6).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
	}
	rows := []core.Row{row.New(6).Add(title("POR CATEGORÍA"), title("POR STARTUP"))}

	n := max(len(rep.CategoryBreakdown), len(rep.StartupBreakdown))
	for i := 0; i < n; i++ {
		left, right := col.New(6), col.New(6)
		if i < len(rep.CategoryBreakdown) {
			c := rep.CategoryBreakdown[i]
			left = col.New(6).Add(text.New(fmt.Sprintf("%s: %d", c.Name, c.Count), props.Text{Size: 8, Top: 1}))
		}
		if i < len(rep.StartupBreakdown) {
			s := rep.StartupBreakdown[i]
			name := s.Name
			if !s.Known {
				name = missing
			}
			right = col.New(6).Add(text.New(
				fmt.Sprintf("%s: %d (%s)", name, s.Count, formatAmount(s.Saving)),
				props.Text{Size: 8, Top: 1},
			))
		}
		rows = append(rows, row.New(5).Add(left, right))
	}
	return rows
}

func pdfDetailHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).WithStyle(&props.Cell{BackgroundColor: colorHeader}).Add(
		h("Startup", 2, align.Left),
		h("Partner", 2, align.Left),
		h("Categoría", 2, align.Left),
		h("Estado", 2, align.Center),
		h("Ahorro est.", 1, align.Right),
		h("Ahorro real", 1, align.Right),
		h("Val.", 1, align.Center),
		h("Creada", 1, align.Center),
	)
}

func pdfDetailRows(rep *impact.Report) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		out = append(out, row.New(6).Add(
			cell(startupName(r), 2, align.Left),
			cell(partnerName(r), 2, align.Left),
			cell(categoryName(r), 2, align.Left),
			cell(string(r.Status), 2, align.Center),
			cell(formatMoney(r.EstimatedSaving), 1, align.Right),
			cell(formatMoney(r.ActualSaving), 1, align.Right),
			cell(formatRating(r.Rating), 1, align.Center),
			cell(r.CreatedAt.Format(dateLayout), 1, align.Center),
		))
	}
	return out
}
