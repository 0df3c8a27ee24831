// Package export implementa los exportadores del reporte de impacto (XLSX y PDF).
package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
)

const (
	dateLayout = "2006-01-02"
	missing    = "—"
)

// printer separadores de miles en formato es (1.500.000).
var printer = message.NewPrinter(language.Spanish)

// formatMoney "$1.500.000"; nil → "—".
func formatMoney(d *decimal.Decimal) string {
	if d == nil {
		return missing
	}
	return formatAmount(*d)
}

func formatAmount(d decimal.Decimal) string {
	return "$" + printer.Sprintf("%d", d.Round(0).IntPart())
}

func formatRating(r *int) string {
	if r == nil {
		return missing
	}
	return strconv.Itoa(*r)
}

func formatPeriod(p impact.Period) string {
	start, end := "inicio", "hoy"
	if p.Start != nil {
		start = p.Start.Format(dateLayout)
	}
	if p.End != nil {
		end = p.End.Format(dateLayout)
	}
	return start + " a " + end
}

func startupName(r impact.DetailRow) string {
	if r.Startup == nil {
		return missing
	}
	return r.Startup.Name
}

func partnerName(r impact.DetailRow) string {
	if r.Partner == nil {
		return missing
	}
	return r.Partner.Name
}

func serviceType(r impact.DetailRow) string {
	if r.Partner == nil {
		return missing
	}
	return string(r.Partner.ServiceType)
}

func categoryName(r impact.DetailRow) string {
	if r.Category == nil {
		return missing
	}
	return r.Category.Name
}

func generatedLabel(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
