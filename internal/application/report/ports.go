package report

import (
	"time"

	"github.com/jhoicas/Alianzas-api/internal/domain/impact"
)

// Exporter renderiza un reporte de impacto a un archivo descargable.
type Exporter interface {
	// Format identificador usado en ?format= (ej. "xlsx").
	Format() string
	ContentType() string
	Render(rep *impact.Report, generatedAt time.Time) ([]byte, error)
}
