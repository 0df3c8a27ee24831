// Package impact calcula el reporte de impacto del programa de partners a partir de
// las colaboraciones de un período, ya unidas (join) con partner, startup, categoría y reseña.
//
// El cálculo es puro y en memoria: el volumen está acotado por el número de startups y
// partners de la aceleradora, no por un flujo de eventos.
package impact

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
)

// StartupRef datos mínimos de la startup de una fila.
type StartupRef struct {
	ID   string
	Name string
}

// PartnerRef datos del partner relevantes para el reporte.
type PartnerRef struct {
	ID              string
	Name            string
	ServiceType     entity.ServiceType
	EstimatedSaving *decimal.Decimal
}

// CategoryRef categoría del partner de una fila.
type CategoryRef struct {
	ID   string
	Name string
}

// Row colaboración con sus relaciones. Una referencia nil significa que el registro
// relacionado no existe (o no aplica, en el caso de la categoría y la reseña).
type Row struct {
	CollaborationID string
	StartupID       string
	PartnerID       string
	Status          entity.CollaborationStatus
	ActualSaving    *decimal.Decimal
	CreatedAt       time.Time

	Startup  *StartupRef
	Partner  *PartnerRef
	Category *CategoryRef
	Rating   *int
}

// Period rango inclusivo sobre la fecha de creación. Límites nil = sin acotar.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// Contains informa si t cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	if p.Start != nil && t.Before(*p.Start) {
		return false
	}
	if p.End != nil && t.After(*p.End) {
		return false
	}
	return true
}

// Summary totales del período.
type Summary struct {
	TotalCollaborations     int
	CompletedCollaborations int
	TotalEstimatedSaving    decimal.Decimal
	TotalActualSaving       decimal.Decimal
	AvgRating               float64 // 2 decimales; 0 sin reseñas
	ReviewCount             int
}

// ServiceTypeSplit conteo por tipo de servicio del partner.
type ServiceTypeSplit struct {
	SelfService      int
	ApprovalRequired int
}

// CategoryCount fila del desglose por categoría.
type CategoryCount struct {
	CategoryID string
	Name       string
	Count      int
}

// StartupCount fila del desglose por startup.
type StartupCount struct {
	StartupID string
	Name      string
	Known     bool // false si la startup ya no existe
	Count     int
	Saving    decimal.Decimal
}

// DetailRow fila plana usada por la exportación.
type DetailRow struct {
	CollaborationID string
	Startup         *StartupRef
	Partner         *PartnerRef
	Category        *CategoryRef
	Status          entity.CollaborationStatus
	EstimatedSaving *decimal.Decimal
	ActualSaving    *decimal.Decimal
	Rating          *int
	CreatedAt       time.Time
}

// Report resultado completo de la agregación.
type Report struct {
	Period            Period
	Summary           Summary
	ServiceTypes      ServiceTypeSplit
	CategoryBreakdown []CategoryCount
	StartupBreakdown  []StartupCount
	Rows              []DetailRow
}

// Aggregate filtra rows por período y calcula resumen, desgloses y detalle.
// Todas las etapas trabajan sobre el mismo conjunto filtrado.
func Aggregate(rows []Row, period Period) *Report {
	filtered := make([]Row, 0, len(rows))
	for _, r := range rows {
		if period.Contains(r.CreatedAt) {
			filtered = append(filtered, r)
		}
	}

	rep := &Report{
		Period: period,
		Summary: Summary{
			TotalCollaborations:  len(filtered),
			TotalEstimatedSaving: decimal.Zero,
			TotalActualSaving:    decimal.Zero,
		},
		CategoryBreakdown: []CategoryCount{},
		StartupBreakdown:  []StartupCount{},
		Rows:              make([]DetailRow, 0, len(filtered)),
	}

	categories := map[string]*CategoryCount{}
	startups := map[string]*StartupCount{}
	ratingSum := 0

	for _, r := range filtered {
		if r.Status.IsFulfilled() {
			rep.Summary.CompletedCollaborations++
		}

		actual := valueOrZero(r.ActualSaving)
		rep.Summary.TotalActualSaving = rep.Summary.TotalActualSaving.Add(actual)

		var estimated *decimal.Decimal
		if r.Partner != nil {
			estimated = r.Partner.EstimatedSaving
			rep.Summary.TotalEstimatedSaving = rep.Summary.TotalEstimatedSaving.Add(valueOrZero(estimated))
			switch r.Partner.ServiceType {
			case entity.ServiceTypeSelfService:
				rep.ServiceTypes.SelfService++
			case entity.ServiceTypeApprovalRequired:
				rep.ServiceTypes.ApprovalRequired++
			}
		}

		if r.Category != nil {
			cc, ok := categories[r.Category.ID]
			if !ok {
				cc = &CategoryCount{CategoryID: r.Category.ID, Name: r.Category.Name}
				categories[r.Category.ID] = cc
			}
			cc.Count++
		}

		sc, ok := startups[r.StartupID]
		if !ok {
			sc = &StartupCount{StartupID: r.StartupID, Saving: decimal.Zero}
			if r.Startup != nil {
				sc.Name = r.Startup.Name
				sc.Known = true
			}
			startups[r.StartupID] = sc
		}
		sc.Count++
		sc.Saving = sc.Saving.Add(actual)

		if r.Rating != nil {
			ratingSum += *r.Rating
			rep.Summary.ReviewCount++
		}

		rep.Rows = append(rep.Rows, DetailRow{
			CollaborationID: r.CollaborationID,
			Startup:         r.Startup,
			Partner:         r.Partner,
			Category:        r.Category,
			Status:          r.Status,
			EstimatedSaving: estimated,
			ActualSaving:    r.ActualSaving,
			Rating:          r.Rating,
			CreatedAt:       r.CreatedAt,
		})
	}

	if rep.Summary.ReviewCount > 0 {
		avg := float64(ratingSum) / float64(rep.Summary.ReviewCount)
		rep.Summary.AvgRating = math.Round(avg*100) / 100
	}

	for _, cc := range categories {
		rep.CategoryBreakdown = append(rep.CategoryBreakdown, *cc)
	}
	sort.SliceStable(rep.CategoryBreakdown, func(i, j int) bool {
		a, b := rep.CategoryBreakdown[i], rep.CategoryBreakdown[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})

	for _, sc := range startups {
		rep.StartupBreakdown = append(rep.StartupBreakdown, *sc)
	}
	sort.SliceStable(rep.StartupBreakdown, func(i, j int) bool {
		a, b := rep.StartupBreakdown[i], rep.StartupBreakdown[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.StartupID < b.StartupID
	})

	return rep
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
