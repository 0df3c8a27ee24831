package dto

import "time"

// CreateReviewRequest body de POST /api/reviews.
type CreateReviewRequest struct {
	CollaborationID string  `json:"collaboration_id" validate:"required"`
	Rating          int     `json:"rating" validate:"required,min=1,max=5"`
	Comment         *string `json:"comment"`
}

// ReviewFilter query de GET /api/reviews.
type ReviewFilter struct {
	CollaborationID string `query:"collaboration_id"`
	PartnerID       string `query:"partner_id"`
	StartupID       string `query:"startup_id"`
}

// ReviewResponse reseña con los datos de su colaboración.
type ReviewResponse struct {
	ID              string    `json:"id"`
	CollaborationID string    `json:"collaboration_id"`
	PartnerID       string    `json:"partner_id,omitempty"`
	PartnerName     string    `json:"partner_name,omitempty"`
	StartupID       string    `json:"startup_id,omitempty"`
	StartupName     string    `json:"startup_name,omitempty"`
	Rating          int       `json:"rating"`
	Comment         *string   `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}
