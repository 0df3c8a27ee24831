package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateCollaborationRequest body de POST /api/collaborations.
// StartupID solo se usa cuando quien llama es ADMIN; para STARTUP se toma del token.
type CreateCollaborationRequest struct {
	PartnerID string  `json:"partner_id" validate:"required"`
	StartupID string  `json:"startup_id,omitempty"`
	Title     string  `json:"title"`
	Notes     *string `json:"notes"`
}

// UpdateCollaborationRequest body de PUT /api/collaborations/:id.
// Status vacío = solo se actualizan las notas.
type UpdateCollaborationRequest struct {
	Status          string           `json:"status"`
	RejectionReason string           `json:"rejectionReason"`
	ActualSaving    *decimal.Decimal `json:"actualSaving"`
	Notes           *string          `json:"notes"`
}

// UnmarshalJSON acepta también rejection_reason y actual_saving.
func (r *UpdateCollaborationRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateCollaborationRequest
	var in struct {
		plain
		SnakeReason string           `json:"rejection_reason"`
		SnakeSaving *decimal.Decimal `json:"actual_saving"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = UpdateCollaborationRequest(in.plain)
	if r.RejectionReason == "" {
		r.RejectionReason = in.SnakeReason
	}
	if r.ActualSaving == nil {
		r.ActualSaving = in.SnakeSaving
	}
	return nil
}

// CollaborationFilter query de GET /api/collaborations.
// El handler completa StartupID/PartnerID desde startup_id/partner_id si vienen así.
type CollaborationFilter struct {
	Status    string `query:"status"`
	StartupID string `query:"startupId"`
	PartnerID string `query:"partnerId"`
}

// StartupSummary startup embebida en la respuesta de una colaboración.
type StartupSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PartnerSummary partner embebido en la respuesta de una colaboración.
type PartnerSummary struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	ServiceType     string           `json:"service_type"`
	EstimatedSaving *decimal.Decimal `json:"estimated_saving"`
	SelfServiceInfo *string          `json:"self_service_info,omitempty"`
}

// CollaborationResponse colaboración con startup y partner resueltos.
// Startup/Partner en null indican que el registro relacionado ya no existe.
type CollaborationResponse struct {
	ID              string           `json:"id"`
	StartupID       string           `json:"startup_id"`
	PartnerID       string           `json:"partner_id"`
	Title           string           `json:"title"`
	Status          string           `json:"status"`
	IsTerminal      bool             `json:"is_terminal"`
	AllowedActions  []string         `json:"allowed_actions"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
	ActualSaving    *decimal.Decimal `json:"actual_saving"`
	RejectionReason *string          `json:"rejection_reason"`
	Notes           *string          `json:"notes"`
	Startup         *StartupSummary  `json:"startup"`
	Partner         *PartnerSummary  `json:"partner"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
