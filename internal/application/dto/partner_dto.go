package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartnerRequest entrada para crear un partner.
type CreatePartnerRequest struct {
	Name            string           `json:"name" validate:"required,min=1,max=200"`
	Description     string           `json:"description"`
	CategoryID      *string          `json:"category_id"`
	ServiceType     string           `json:"service_type" validate:"required,oneof=SELF_SERVICE APPROVAL_REQUIRED"`
	Benefits        string           `json:"benefits"`
	UsageGuide      string           `json:"usage_guide"`
	SelfServiceInfo *string          `json:"self_service_info"`
	EstimatedSaving *decimal.Decimal `json:"estimated_saving"`
	ContactName     string           `json:"contact_name"`
	ContactEmail    string           `json:"contact_email"`
	Website         string           `json:"website"`
	IsActive        *bool            `json:"is_active"` // default true
}

// UpdatePartnerRequest actualización parcial; nil = sin cambio.
type UpdatePartnerRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description"`
	CategoryID      *string          `json:"category_id"` // "" = quitar categoría
	ServiceType     *string          `json:"service_type"`
	Benefits        *string          `json:"benefits"`
	UsageGuide      *string          `json:"usage_guide"`
	SelfServiceInfo *string          `json:"self_service_info"`
	EstimatedSaving *decimal.Decimal `json:"estimated_saving"`
	ContactName     *string          `json:"contact_name"`
	ContactEmail    *string          `json:"contact_email"`
	Website         *string          `json:"website"`
	IsActive        *bool            `json:"is_active"`
}

// PartnerFilter filtros de GET /api/partners.
type PartnerFilter struct {
	CategoryID string `query:"category_id"`
	Active     string `query:"active"` // "true" | "false" | ""
}

// PartnerResponse salida de un partner. SelfServiceInfo se omite salvo para administradores.
type PartnerResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	CategoryID      *string          `json:"category_id"`
	CategoryName    string           `json:"category_name,omitempty"`
	ServiceType     string           `json:"service_type"`
	Benefits        string           `json:"benefits"`
	UsageGuide      string           `json:"usage_guide"`
	SelfServiceInfo *string          `json:"self_service_info,omitempty"`
	EstimatedSaving *decimal.Decimal `json:"estimated_saving"`
	ContactName     string           `json:"contact_name"`
	ContactEmail    string           `json:"contact_email"`
	Website         string           `json:"website"`
	IsActive        bool             `json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
