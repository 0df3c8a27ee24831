package entity

import "time"

// Category agrupa partners por tipo de beneficio (cloud, marketing, legal...).
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string // solo presentación, ej: "#3b82f6"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
