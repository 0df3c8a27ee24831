package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRequest query de GET /api/reports y /api/reports/export.
type ReportRequest struct {
	StartDate string `query:"startDate"` // YYYY-MM-DD
	EndDate   string `query:"endDate"`   // YYYY-MM-DD, inclusivo
	Format    string `query:"format"`    // xlsx | pdf (solo export)
}

// ReportSummaryDTO totales del período.
type ReportSummaryDTO struct {
	TotalCollaborations     int             `json:"totalCollaborations"`
	CompletedCollaborations int             `json:"completedCollaborations"`
	TotalEstimatedSaving    decimal.Decimal `json:"totalEstimatedSaving"`
	TotalActualSaving       decimal.Decimal `json:"totalActualSaving"`
	AvgRating               float64         `json:"avgRating"`
	ReviewCount             int             `json:"reviewCount"`
}

// ServiceTypeSplitDTO conteo por tipo de servicio.
type ServiceTypeSplitDTO struct {
	SelfService      int `json:"selfService"`
	ApprovalRequired int `json:"approvalRequired"`
}

// CategoryBreakdownDTO fila del desglose por categoría.
type CategoryBreakdownDTO struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// StartupBreakdownDTO fila del desglose por startup. Known=false si la startup ya no existe.
type StartupBreakdownDTO struct {
	StartupID string          `json:"startupId"`
	Name      string          `json:"name"`
	Known     bool            `json:"known"`
	Count     int             `json:"count"`
	Saving    decimal.Decimal `json:"saving"`
}

// ReportRowDTO fila plana del detalle; nombres nil = relación inexistente.
type ReportRowDTO struct {
	CollaborationID string           `json:"collaborationId"`
	StartupName     *string          `json:"startupName"`
	PartnerName     *string          `json:"partnerName"`
	CategoryName    *string          `json:"categoryName"`
	Status          string           `json:"status"`
	EstimatedSaving *decimal.Decimal `json:"estimatedSaving"`
	ActualSaving    *decimal.Decimal `json:"actualSaving"`
	Rating          *int             `json:"rating"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ReportPeriodDTO límites aplicados; null = sin acotar.
type ReportPeriodDTO struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// ReportResponse respuesta de GET /api/reports.
type ReportResponse struct {
	Period               ReportPeriodDTO        `json:"period"`
	Summary              ReportSummaryDTO       `json:"summary"`
	ServiceTypeBreakdown ServiceTypeSplitDTO    `json:"serviceTypeBreakdown"`
	CategoryBreakdown    []CategoryBreakdownDTO `json:"categoryBreakdown"`
	StartupBreakdown     []StartupBreakdownDTO  `json:"startupBreakdown"`
	Collaborations       []ReportRowDTO         `json:"collaborations"`
}
