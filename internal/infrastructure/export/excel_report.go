package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Alianzas-api/internal/application/report"
	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
)

var _ report.Exporter = (*ExcelReportExporter)(nil)

// Nombres de las hojas del libro.
const (
	SheetSummary        = "Resumen"
	SheetCollaborations = "Colaboraciones"
	SheetCategories     = "Categorías"
	SheetStartups       = "Startups"
)

// ExcelReportExporter genera el reporte de impacto como libro XLSX de cuatro hojas.
type ExcelReportExporter struct{}

// NewExcelReportExporter construye el exportador.
func NewExcelReportExporter() *ExcelReportExporter { return &ExcelReportExporter{} }

func (e *ExcelReportExporter) Format() string { return "xlsx" }

func (e *ExcelReportExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render escribe el libro en memoria y devuelve sus bytes.
func (e *ExcelReportExporter) Render(rep *impact.Report, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for _, name := range []string{SheetCollaborations, SheetCategories, SheetStartups} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	w := sheetWriter{f: f, header: bold, money: money}
	w.summary(rep, generatedAt)
	w.collaborations(rep)
	w.categories(rep)
	w.startups(rep)
	if w.err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter acumula el primer error para no chequear cada celda.
type sheetWriter struct {
	f      *excelize.File
	header int
	money  int
	err    error
}

func (w *sheetWriter) row(sheet string, n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) headerRow(sheet string, titles ...any) {
	w.row(sheet, 1, titles...)
	if w.err != nil {
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(titles), 1)
	w.err = w.f.SetCellStyle(sheet, "A1", last, w.header)
}

func (w *sheetWriter) moneyColumn(sheet, col string, rows int) {
	if w.err != nil || rows == 0 {
		return
	}
	w.err = w.f.SetCellStyle(sheet, col+"2", fmt.Sprintf("%s%d", col, rows+1), w.money)
}

func (w *sheetWriter) summary(rep *impact.Report, generatedAt time.Time) {
	s := rep.Summary
	lines := [][]any{
		{"Reporte de impacto", ""},
		{"Período", formatPeriod(rep.Period)},
		{"Generado", generatedLabel(generatedAt)},
		{"Total colaboraciones", s.TotalCollaborations},
		{"Colaboraciones completadas", s.CompletedCollaborations},
		{"Ahorro estimado total", s.TotalEstimatedSaving.InexactFloat64()},
		{"Ahorro real total", s.TotalActualSaving.InexactFloat64()},
		{"Valoración promedio", s.AvgRating},
		{"Reseñas", s.ReviewCount},
		{"Self-service", rep.ServiceTypes.SelfService},
		{"Con aprobación", rep.ServiceTypes.ApprovalRequired},
	}
	for i, l := range lines {
		w.row(SheetSummary, i+1, l...)
	}
	if w.err == nil {
		w.err = w.f.SetCellStyle(SheetSummary, "B6", "B7", w.money)
	}
	if w.err == nil {
		w.err = w.f.SetColWidth(SheetSummary, "A", "A", 30)
	}
}

func (w *sheetWriter) collaborations(rep *impact.Report) {
	w.headerRow(SheetCollaborations, "ID", "Startup", "Partner", "Categoría", "Tipo de servicio",
		"Estado", "Ahorro estimado", "Ahorro real", "Valoración", "Creada")
	for i, r := range rep.Rows {
		w.row(SheetCollaborations, i+2,
			r.CollaborationID, startupName(r), partnerName(r), categoryName(r), serviceType(r),
			string(r.Status), decimalCell(r.EstimatedSaving), decimalCell(r.ActualSaving),
			ratingCell(r.Rating), r.CreatedAt.Format(dateLayout),
		)
	}
	w.moneyColumn(SheetCollaborations, "G", len(rep.Rows))
	w.moneyColumn(SheetCollaborations, "H", len(rep.Rows))
}

func (w *sheetWriter) categories(rep *impact.Report) {
	w.headerRow(SheetCategories, "Categoría", "Colaboraciones")
	for i, c := range rep.CategoryBreakdown {
		w.row(SheetCategories, i+2, c.Name, c.Count)
	}
}

func (w *sheetWriter) startups(rep *impact.Report) {
	w.headerRow(SheetStartups, "Startup", "Colaboraciones", "Ahorro real")
	for i, s := range rep.StartupBreakdown {
		name := s.Name
		if !s.Known {
			name = missing
		}
		w.row(SheetStartups, i+2, name, s.Count, s.Saving.InexactFloat64())
	}
	w.moneyColumn(SheetStartups, "C", len(rep.StartupBreakdown))
}

// decimalCell celda numérica o vacía si no hay dato.
func decimalCell(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func ratingCell(r *int) any {
	if r == nil {
		return ""
	}
	return *r
}
