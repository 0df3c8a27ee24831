package entity

import "time"

// Rango permitido para Review.Rating.
const (
	MinRating = 1
	MaxRating = 5
)

// Review valoración de una colaboración finalizada; una por colaboración.
type Review struct {
	ID              string
	CollaborationID string
	UserID          *string
	Rating          int
	Comment         *string
	CreatedAt       time.Time
}
