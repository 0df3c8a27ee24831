package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType define cómo una startup accede al beneficio de un partner.
type ServiceType string

const (
	// ServiceTypeSelfService la startup activa el beneficio por sí misma (código, enlace).
	ServiceTypeSelfService ServiceType = "SELF_SERVICE"
	// ServiceTypeApprovalRequired la solicitud pasa por aprobación del administrador.
	ServiceTypeApprovalRequired ServiceType = "APPROVAL_REQUIRED"
)

// Valid informa si el tipo de servicio es conocido.
func (s ServiceType) Valid() bool {
	return s == ServiceTypeSelfService || s == ServiceTypeApprovalRequired
}

// Partner organización que ofrece beneficios a las startups del portafolio.
type Partner struct {
	ID              string
	Name            string
	Description     string
	CategoryID      *string // nil si no tiene categoría
	ServiceType     ServiceType
	Benefits        string
	UsageGuide      string
	SelfServiceInfo *string          // código/enlace; solo visible tras la activación
	EstimatedSaving *decimal.Decimal // ahorro estimado por colaboración (KRW)
	ContactName     string
	ContactEmail    string
	Website         string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
