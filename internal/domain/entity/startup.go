package entity

import "time"

// Startup empresa del portafolio de la aceleradora.
type Startup struct {
	ID           string
	Name         string
	Description  string
	Category     string // industria / sector, texto libre
	ContactName  string
	ContactEmail string
	Website      string
	UserID       *string // cuenta STARTUP vinculada (opcional)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
